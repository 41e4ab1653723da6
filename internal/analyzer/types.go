package analyzer

import "github.com/khanhnv2901/p2psec/internal/compliance"

// Check names, used as keys in Report.TestResults.
const (
	CheckEncryption         = "encryption"
	CheckKeyExchange        = "key_exchange"
	CheckFileIntegrity      = "file_integrity"
	CheckPeerAuthentication = "peer_authentication"
	CheckPrivacyProtection  = "privacy_protection"
)

// Severity of a vulnerability finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
)

// StrengthRating is derived from whether a check passed.
type StrengthRating string

const (
	RatingHigh   StrengthRating = "HIGH"
	RatingFailed StrengthRating = "FAILED"
)

// Vulnerability types recorded by the checks.
const (
	VulnEncryptionFailure   = "ENCRYPTION_FAILURE"
	VulnKeyExchangeError    = "KEY_EXCHANGE_ERROR"
	VulnAuthenticationError = "AUTHENTICATION_ERROR"
)

// TestResult is the outcome of one check. Each check serializes its own
// metadata alongside test_passed and strength_rating.
type TestResult interface {
	Passed() bool
	Rating() StrengthRating
}

// Outcome carries the fields every check reports.
type Outcome struct {
	TestPassed     bool           `json:"test_passed"`
	StrengthRating StrengthRating `json:"strength_rating"`
}

func newOutcome(passed bool) Outcome {
	rating := RatingFailed
	if passed {
		rating = RatingHigh
	}
	return Outcome{TestPassed: passed, StrengthRating: rating}
}

func (o Outcome) Passed() bool { return o.TestPassed }
func (o Outcome) Rating() StrengthRating { return o.StrengthRating }

// EncryptionResult describes the AES-GCM round trip.
type EncryptionResult struct {
	Algorithm   string `json:"algorithm"`
	KeySize     int    `json:"key_size"`
	NonceSize   int    `json:"nonce_size"`
	AuthTagSize int    `json:"auth_tag_size"`
	Outcome
}

// KeyExchangeResult describes the ECDH agreement and PBKDF2 derivation.
type KeyExchangeResult struct {
	Algorithm      string `json:"algorithm"`
	SharedKeySize  int    `json:"shared_key_size"`
	DerivedKeySize int    `json:"derived_key_size"`
	KDFIterations  int    `json:"kdf_iterations"`
	Outcome
}

// FileIntegrityResult describes the chunk corruption detection test.
type FileIntegrityResult struct {
	HashAlgorithm      string `json:"hash_algorithm"`
	HashSize           int    `json:"hash_size"`
	CorruptionDetected bool   `json:"corruption_detected"`
	Outcome
}

// PeerAuthenticationResult describes the challenge signature test.
type PeerAuthenticationResult struct {
	SignatureAlgorithm string `json:"signature_algorithm"`
	KeySize            int    `json:"key_size"`
	ChallengeSize      int    `json:"challenge_size"`
	SignatureSize      int    `json:"signature_size"`
	Outcome
}

// PrivacyProtectionResult describes IP hashing and peer ID anonymization.
type PrivacyProtectionResult struct {
	IPHashing              string `json:"ip_hashing"`
	PeerIDSize             int    `json:"peer_id_size"`
	AnonymizationEffective bool   `json:"anonymization_effective"`
	Outcome
}

// Vulnerability is recorded when a check errors or a round trip fails.
type Vulnerability struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Recommendation is an advisory for a known P2P attack class.
type Recommendation struct {
	Vulnerability string   `json:"vulnerability"`
	Description   string   `json:"description"`
	Mitigation    string   `json:"mitigation"`
	Priority      Severity `json:"priority"`
	Implemented   bool     `json:"implemented"`
}

// Report aggregates one run.
type Report struct {
	AnalysisTimestamp    string                `json:"analysis_timestamp"`
	TestResults          map[string]TestResult `json:"test_results"`
	Vulnerabilities      []Vulnerability       `json:"vulnerabilities"`
	Recommendations      []Recommendation      `json:"recommendations"`
	OverallSecurityScore float64               `json:"overall_security_score"`
	ComplianceStatus     compliance.Table      `json:"compliance_status"`

	checks []string
}

// Checks returns the names in TestResults in the order they ran.
func (r *Report) Checks() []string {
	out := make([]string, len(r.checks))
	copy(out, r.checks)
	return out
}

// PassedCount returns how many recorded results passed.
func (r *Report) PassedCount() int {
	return countPassed(r.TestResults)
}
