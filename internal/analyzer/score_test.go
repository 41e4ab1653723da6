package analyzer

import (
	"fmt"
	"testing"
)

func resultsWith(passed, failed int) map[string]TestResult {
	out := make(map[string]TestResult, passed+failed)
	for i := 0; i < passed; i++ {
		out[fmt.Sprintf("pass-%d", i)] = &FileIntegrityResult{Outcome: newOutcome(true)}
	}
	for i := 0; i < failed; i++ {
		out[fmt.Sprintf("fail-%d", i)] = &FileIntegrityResult{Outcome: newOutcome(false)}
	}
	return out
}

func findings(critical, high int) []Vulnerability {
	var out []Vulnerability
	for i := 0; i < critical; i++ {
		out = append(out, Vulnerability{Severity: SeverityCritical})
	}
	for i := 0; i < high; i++ {
		out = append(out, Vulnerability{Severity: SeverityHigh})
	}
	return out
}

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name           string
		passed, failed int
		critical, high int
		want           float64
	}{
		{name: "all passed", passed: 5, want: 100},
		{name: "no results", want: 0},
		{name: "no results with findings", critical: 1, want: 0},
		{name: "one failure", passed: 4, failed: 1, want: 80},
		{name: "omitted row with critical", passed: 4, critical: 1, want: 80},
		{name: "omitted row with high", passed: 4, high: 1, want: 90},
		{name: "mixed penalties", passed: 3, failed: 1, critical: 1, high: 1, want: 45},
		{name: "clamped at zero", passed: 1, failed: 4, critical: 2, want: 0},
		{name: "all failed", failed: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScore(resultsWith(tt.passed, tt.failed), findings(tt.critical, tt.high))
			if got != tt.want {
				t.Fatalf("CalculateScore = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestCalculateScoreIgnoresOtherSeverities(t *testing.T) {
	vulns := []Vulnerability{{Severity: SeverityMedium}, {Severity: "LOW"}}
	if got := CalculateScore(resultsWith(2, 0), vulns); got != 100 {
		t.Fatalf("expected 100, got %.2f", got)
	}
}

func TestCalculateScoreMonotonic(t *testing.T) {
	for passed := 0; passed <= 5; passed++ {
		for failed := 0; passed+failed <= 5; failed++ {
			prev := 101.0
			for critical := 0; critical <= 6; critical++ {
				for high := 0; high <= 6; high++ {
					score := CalculateScore(resultsWith(passed, failed), findings(critical, high))
					if score < 0 || score > 100 {
						t.Fatalf("score %.2f out of range", score)
					}
					if high > 0 {
						less := CalculateScore(resultsWith(passed, failed), findings(critical, high-1))
						if score > less {
							t.Fatalf("adding a HIGH finding increased the score: %.2f > %.2f", score, less)
						}
					}
				}
				score := CalculateScore(resultsWith(passed, failed), findings(critical, 0))
				if score > prev {
					t.Fatalf("adding a CRITICAL finding increased the score: %.2f > %.2f", score, prev)
				}
				prev = score
			}

			if passed > 0 {
				withFailure := CalculateScore(resultsWith(passed-1, failed+1), nil)
				if withFailure > CalculateScore(resultsWith(passed, failed), nil) {
					t.Fatalf("turning a pass into a failure increased the score")
				}
			}
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, StatusGood},
		{80, StatusGood},
		{79.9, StatusNeedsImprovement},
		{60, StatusNeedsImprovement},
		{59.9, StatusCritical},
		{0, StatusCritical},
	}
	for _, tt := range tests {
		if got := StatusLabel(tt.score); got != tt.want {
			t.Errorf("StatusLabel(%.1f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
