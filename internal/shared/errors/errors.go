package errors

import "errors"

// Domain errors
var (
	// Self-test errors
	ErrPlaintextMismatch    = errors.New("decrypted plaintext does not match original")
	ErrAuthenticationFailed = errors.New("message authentication failed")
	ErrInvalidKeySize       = errors.New("invalid key size")

	// Report errors
	ErrEmptyReportPath     = errors.New("report path cannot be empty")
	ErrSerializationFailed = errors.New("serialization failed")
)
