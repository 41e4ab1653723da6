package analyzer

// Status labels printed with the overall score.
const (
	StatusGood             = "GOOD"
	StatusNeedsImprovement = "NEEDS IMPROVEMENT"
	StatusCritical         = "CRITICAL ISSUES"
)

const (
	criticalPenalty = 20
	highPenalty     = 10
)

// CalculateScore returns the pass percentage minus 20 points per critical and
// 10 per high finding, clamped to [0, 100]. No results scores 0.
func CalculateScore(results map[string]TestResult, vulns []Vulnerability) float64 {
	total := len(results)
	if total == 0 {
		return 0
	}

	base := float64(countPassed(results)) / float64(total) * 100

	var critical, high int
	for _, v := range vulns {
		switch v.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		}
	}

	score := base - float64(critical*criticalPenalty+high*highPenalty)
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}

// StatusLabel maps a score to its qualitative label.
func StatusLabel(score float64) string {
	switch {
	case score >= 80:
		return StatusGood
	case score >= 60:
		return StatusNeedsImprovement
	default:
		return StatusCritical
	}
}

func countPassed(results map[string]TestResult) int {
	passed := 0
	for _, r := range results {
		if r != nil && r.Passed() {
			passed++
		}
	}
	return passed
}
