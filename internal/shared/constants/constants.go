package constants

import "io/fs"

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

// DefaultReportFilename is written to the working directory unless overridden.
const DefaultReportFilename = "security_analysis_report.json"

const (
	// AESKeyBytes is the AES-256 key length.
	AESKeyBytes = 32
	// GCMNonceBytes is the standard 96-bit GCM nonce length.
	GCMNonceBytes = 12
	// SaltBytes is used for both the PBKDF2 salt and the IP hashing salt.
	SaltBytes = 16
	// DerivedKeyBytes is the PBKDF2 output length.
	DerivedKeyBytes = 32
	// KDFIterations is the PBKDF2 iteration count.
	KDFIterations = 100000
	// RSAKeyBits is the peer identity key size.
	RSAKeyBits = 2048
	// ChallengeBytes is the size of the signed authentication challenge.
	ChallengeBytes = 32
	// PeerIDBytes is the size of the random peer identifier.
	PeerIDBytes = 32
)
