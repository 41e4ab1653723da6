package analyzer

import (
	"bytes"
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdh"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	consts "github.com/khanhnv2901/p2psec/internal/shared/constants"
	apperrors "github.com/khanhnv2901/p2psec/internal/shared/errors"
	"golang.org/x/crypto/pbkdf2"
)

var (
	encryptionPlaintext = []byte("This is a test file chunk for P2P transfer")
	integrityChunk      = []byte("Test file chunk data for integrity verification")
)

const sampleIPAddress = "192.168.1.100"

func (a *Analyzer) analyzeEncryptionStrength() (TestResult, error) {
	result := &EncryptionResult{
		Algorithm: "AES-256-GCM",
		KeySize:   consts.AESKeyBytes * 8,
		NonceSize: consts.GCMNonceBytes * 8,
	}

	passed, tagBytes, err := a.encryptionRoundTrip()
	if err != nil {
		a.logger.Warnw("encryption round trip failed", "error", err)
	}
	result.AuthTagSize = tagBytes * 8
	result.Outcome = newOutcome(passed)
	return result, nil
}

func (a *Analyzer) encryptionRoundTrip() (passed bool, tagBytes int, err error) {
	key, err := a.randomBytes(consts.AESKeyBytes)
	if err != nil {
		return false, 0, fmt.Errorf("generate key: %w", err)
	}
	nonce, err := a.randomBytes(consts.GCMNonceBytes)
	if err != nil {
		return false, 0, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext, tag, err := encryptGCM(key, nonce, encryptionPlaintext)
	if err != nil {
		return false, 0, err
	}
	decrypted, err := decryptGCM(key, nonce, ciphertext, tag)
	if err != nil {
		return false, len(tag), err
	}
	if !bytes.Equal(decrypted, encryptionPlaintext) {
		return false, len(tag), apperrors.ErrPlaintextMismatch
	}
	return true, len(tag), nil
}

// encryptGCM seals plaintext and returns the ciphertext and authentication tag
// separately.
func encryptGCM(key, nonce, plaintext []byte) (ciphertext, tag []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, nil, fmt.Errorf("nonce must be %d bytes, got %d", gcm.NonceSize(), len(nonce))
	}
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - gcm.Overhead()
	return sealed[:split], sealed[split:], nil
}

// decryptGCM verifies tag and returns the plaintext. A tampered tag, nonce,
// ciphertext or wrong key yields ErrAuthenticationFailed.
func decryptGCM(key, nonce, ciphertext, tag []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", gcm.NonceSize(), len(nonce))
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAuthenticationFailed, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != consts.AESKeyBytes {
		return nil, fmt.Errorf("%w: AES-256 requires %d bytes, got %d", apperrors.ErrInvalidKeySize, consts.AESKeyBytes, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM cipher: %w", err)
	}
	return gcm, nil
}

func (a *Analyzer) analyzeKeyExchange() (TestResult, error) {
	peer1, err := a.localCurve.GenerateKey(a.random)
	if err != nil {
		return nil, fmt.Errorf("generate peer1 key: %w", err)
	}
	peer2, err := a.remoteCurve.GenerateKey(a.random)
	if err != nil {
		return nil, fmt.Errorf("generate peer2 key: %w", err)
	}

	shared1, shared2, err := exchange(peer1, peer2)
	if err != nil {
		return nil, err
	}
	agreed := subtle.ConstantTimeCompare(shared1, shared2) == 1

	salt, err := a.randomBytes(consts.SaltBytes)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	derived := deriveKey(shared1, salt)

	return &KeyExchangeResult{
		Algorithm:      "ECDH-" + curveName(a.localCurve),
		SharedKeySize:  len(shared1) * 8,
		DerivedKeySize: len(derived) * 8,
		KDFIterations:  consts.KDFIterations,
		Outcome:        newOutcome(agreed),
	}, nil
}

// exchange runs ECDH from both sides and returns both secrets.
func exchange(priv1, priv2 *ecdh.PrivateKey) (shared1, shared2 []byte, err error) {
	shared1, err = priv1.ECDH(priv2.PublicKey())
	if err != nil {
		return nil, nil, fmt.Errorf("peer1 exchange: %w", err)
	}
	shared2, err = priv2.ECDH(priv1.PublicKey())
	if err != nil {
		return nil, nil, fmt.Errorf("peer2 exchange: %w", err)
	}
	return shared1, shared2, nil
}

// deriveKey stretches a shared secret into an AES-256 key.
func deriveKey(secret, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, consts.KDFIterations, consts.DerivedKeyBytes, sha256.New)
}

func curveName(c ecdh.Curve) string {
	switch c {
	case ecdh.P256():
		return "P256"
	case ecdh.P384():
		return "P384"
	case ecdh.P521():
		return "P521"
	case ecdh.X25519():
		return "X25519"
	}
	return fmt.Sprint(c)
}

func (a *Analyzer) analyzeFileIntegrity() (TestResult, error) {
	original := chunkDigest(integrityChunk)
	corrupted := chunkDigest(corruptLastByte(integrityChunk))
	detected := original != corrupted

	return &FileIntegrityResult{
		HashAlgorithm:      "SHA-256",
		HashSize:           len(original) * 4,
		CorruptionDetected: detected,
		Outcome:            newOutcome(detected),
	}, nil
}

// chunkDigest returns the hex SHA-256 of data.
func chunkDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// corruptLastByte returns a copy of data with every bit of the last byte
// flipped, so the copy always differs from the input.
func corruptLastByte(data []byte) []byte {
	out := bytes.Clone(data)
	if len(out) > 0 {
		out[len(out)-1] ^= 0xFF
	}
	return out
}

func (a *Analyzer) analyzePeerAuthentication() (TestResult, error) {
	priv, err := rsa.GenerateKey(a.random, consts.RSAKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate RSA key: %w", err)
	}

	challenge, err := a.randomBytes(consts.ChallengeBytes)
	if err != nil {
		return nil, fmt.Errorf("generate challenge: %w", err)
	}

	signature, err := signChallenge(priv, challenge)
	if err != nil {
		return nil, err
	}
	verified := verifyChallenge(&priv.PublicKey, challenge, signature) == nil

	return &PeerAuthenticationResult{
		SignatureAlgorithm: fmt.Sprintf("RSA-%d-SHA256", consts.RSAKeyBits),
		KeySize:            consts.RSAKeyBits,
		ChallengeSize:      len(challenge) * 8,
		SignatureSize:      len(signature) * 8,
		Outcome:            newOutcome(verified),
	}, nil
}

// signChallenge produces a PKCS #1 v1.5 SHA-256 signature.
func signChallenge(priv *rsa.PrivateKey, challenge []byte) ([]byte, error) {
	digest := sha256.Sum256(challenge)
	sig, err := rsa.SignPKCS1v15(nil, priv, crypto.SHA256, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign challenge: %w", err)
	}
	return sig, nil
}

func verifyChallenge(pub *rsa.PublicKey, challenge, signature []byte) error {
	digest := sha256.Sum256(challenge)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], signature); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrAuthenticationFailed, err)
	}
	return nil
}

func (a *Analyzer) analyzePrivacyProtection() (TestResult, error) {
	result := &PrivacyProtectionResult{IPHashing: "SHA-256 with salt"}

	salt, err := a.randomBytes(consts.SaltBytes)
	if err != nil {
		a.logger.Warnw("privacy salt generation failed", "error", err)
		result.Outcome = newOutcome(false)
		return result, nil
	}
	hashed := hashAddress(sampleIPAddress, salt)
	protected := hashed != sampleIPAddress

	peerID, err := a.randomBytes(consts.PeerIDBytes)
	if err != nil {
		a.logger.Warnw("peer ID generation failed", "error", err)
	}
	encodedID := hex.EncodeToString(peerID)

	result.PeerIDSize = len(encodedID) * 4
	result.AnonymizationEffective = protected
	result.Outcome = newOutcome(protected)
	return result, nil
}

// hashAddress returns the hex SHA-256 of addr followed by salt.
func hashAddress(addr string, salt []byte) string {
	h := sha256.New()
	h.Write([]byte(addr))
	h.Write(salt)
	return hex.EncodeToString(h.Sum(nil))
}

func (a *Analyzer) randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(a.random, buf); err != nil {
		return nil, fmt.Errorf("read %d random bytes: %w", n, err)
	}
	return buf, nil
}
