// Package analyzer runs the cryptographic self-tests and assembles the
// security report.
package analyzer

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/khanhnv2901/p2psec/internal/compliance"
	"go.uber.org/zap"
)

// EventKind distinguishes progress notifications.
type EventKind int

const (
	EventStarted EventKind = iota
	EventFinished
)

// CheckEvent is passed to the progress callback before and after each step.
type CheckEvent struct {
	Kind     EventKind
	Check    string // empty for the advisory step
	Label    string // e.g. "Encryption test"
	Activity string // e.g. "Analyzing encryption strength..."
	Passed   bool
	Err      error
}

// ProgressFunc receives check events in order.
type ProgressFunc func(CheckEvent)

// findingTemplate describes the vulnerability a check records. Description is
// used verbatim for failures and as a prefix for errors.
type findingTemplate struct {
	Type        string
	Severity    Severity
	Description string
}

// checkSpec wires a check into the run. onError is recorded when run returns
// an error, in which case no result row is stored; onFail is recorded when run
// completes without passing.
type checkSpec struct {
	Name     string
	Label    string
	Activity string
	run      func(*Analyzer) (TestResult, error)
	onError  *findingTemplate
	onFail   *findingTemplate
}

var checkSequence = []checkSpec{
	{
		Name:     CheckEncryption,
		Label:    "Encryption test",
		Activity: "Analyzing encryption strength...",
		run:      (*Analyzer).analyzeEncryptionStrength,
		onFail: &findingTemplate{
			Type:        VulnEncryptionFailure,
			Severity:    SeverityCritical,
			Description: "AES-256-GCM encryption/decryption test failed",
		},
	},
	{
		Name:     CheckKeyExchange,
		Label:    "Key exchange test",
		Activity: "Analyzing key exchange security...",
		run:      (*Analyzer).analyzeKeyExchange,
		onError: &findingTemplate{
			Type:        VulnKeyExchangeError,
			Severity:    SeverityCritical,
			Description: "Key exchange implementation error",
		},
	},
	{
		Name:     CheckFileIntegrity,
		Label:    "File integrity test",
		Activity: "Analyzing file integrity verification...",
		run:      (*Analyzer).analyzeFileIntegrity,
	},
	{
		Name:     CheckPeerAuthentication,
		Label:    "Peer authentication test",
		Activity: "Analyzing peer authentication...",
		run:      (*Analyzer).analyzePeerAuthentication,
		onError: &findingTemplate{
			Type:        VulnAuthenticationError,
			Severity:    SeverityHigh,
			Description: "Peer authentication error",
		},
	},
	{
		Name:     CheckPrivacyProtection,
		Label:    "Privacy protection test",
		Activity: "Analyzing privacy protection...",
		run:      (*Analyzer).analyzePrivacyProtection,
	},
}

const advisoryActivity = "Checking for common vulnerabilities..."

// Analyzer collects results, findings and advisories for a single run.
type Analyzer struct {
	logger      *zap.SugaredLogger
	random      io.Reader
	localCurve  ecdh.Curve
	remoteCurve ecdh.Curve
	now         func() time.Time
	progress    ProgressFunc

	testResults     map[string]TestResult
	checks          []string
	vulnerabilities []Vulnerability
	recommendations []Recommendation
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithProgress registers a callback for check events.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// WithRandom replaces crypto/rand.Reader. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.random = r
		}
	}
}

// WithCurves sets the curves used for the two key exchange peers. Mismatched
// curves make the exchange fail.
func WithCurves(local, remote ecdh.Curve) Option {
	return func(a *Analyzer) {
		a.localCurve = local
		a.remoteCurve = remote
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an analyzer with P-256 key exchange and crypto/rand.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:      zap.NewNop().Sugar(),
		random:      rand.Reader,
		localCurve:  ecdh.P256(),
		remoteCurve: ecdh.P256(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reset()
	return a
}

func (a *Analyzer) reset() {
	a.testResults = make(map[string]TestResult, len(checkSequence))
	a.checks = a.checks[:0]
	a.vulnerabilities = []Vulnerability{}
	a.recommendations = nil
}

// Run executes every check in order, appends the advisories and returns the
// report. Check errors are contained and recorded as findings.
func (a *Analyzer) Run() *Report {
	a.reset()
	a.logger.Infow("starting security analysis", "checks", len(checkSequence))

	for _, spec := range checkSequence {
		a.runCheck(spec)
	}

	a.emit(CheckEvent{Kind: EventStarted, Activity: advisoryActivity})
	a.checkCommonVulnerabilities()

	report := a.generateReport()
	a.logger.Infow("security analysis complete",
		"score", report.OverallSecurityScore,
		"passed", report.PassedCount(),
		"total", len(report.TestResults),
		"vulnerabilities", len(report.Vulnerabilities),
	)
	return report
}

func (a *Analyzer) runCheck(spec checkSpec) {
	a.emit(CheckEvent{Kind: EventStarted, Check: spec.Name, Label: spec.Label, Activity: spec.Activity})

	result, err := spec.run(a)
	if err != nil {
		if spec.onError != nil {
			a.addVulnerability(spec.onError.Type, spec.onError.Severity,
				fmt.Sprintf("%s: %v", spec.onError.Description, err))
		}
		a.logger.Warnw("check raised an error", "check", spec.Name, "error", err)
		a.emit(CheckEvent{Kind: EventFinished, Check: spec.Name, Label: spec.Label, Err: err})
		return
	}

	a.testResults[spec.Name] = result
	a.checks = append(a.checks, spec.Name)

	passed := result.Passed()
	if !passed && spec.onFail != nil {
		a.addVulnerability(spec.onFail.Type, spec.onFail.Severity, spec.onFail.Description)
	}
	a.logger.Debugw("check finished", "check", spec.Name, "passed", passed, "rating", result.Rating())
	a.emit(CheckEvent{Kind: EventFinished, Check: spec.Name, Label: spec.Label, Passed: passed})
}

func (a *Analyzer) checkCommonVulnerabilities() {
	a.recommendations = append(a.recommendations, Recommendations()...)
}

func (a *Analyzer) addVulnerability(vulnType string, severity Severity, description string) {
	a.vulnerabilities = append(a.vulnerabilities, Vulnerability{
		Type:        vulnType,
		Severity:    severity,
		Description: description,
	})
	a.logger.Warnw("vulnerability recorded", "type", vulnType, "severity", severity)
}

func (a *Analyzer) generateReport() *Report {
	results := make(map[string]TestResult, len(a.testResults))
	for name, r := range a.testResults {
		results[name] = r
	}
	vulns := make([]Vulnerability, len(a.vulnerabilities))
	copy(vulns, a.vulnerabilities)
	recs := make([]Recommendation, len(a.recommendations))
	copy(recs, a.recommendations)
	checks := make([]string, len(a.checks))
	copy(checks, a.checks)

	return &Report{
		AnalysisTimestamp:    a.now().Format(time.RFC3339Nano),
		TestResults:          results,
		Vulnerabilities:      vulns,
		Recommendations:      recs,
		OverallSecurityScore: CalculateScore(results, vulns),
		ComplianceStatus:     compliance.Status(),
		checks:               checks,
	}
}

func (a *Analyzer) emit(ev CheckEvent) {
	if a.progress != nil {
		a.progress(ev)
	}
}
