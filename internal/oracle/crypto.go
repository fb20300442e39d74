package oracle

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
)

const sha256ForRSA = crypto.SHA256

// RSAGCMOracle is the production Oracle: SHA-256 hashing, RSA-PKCS1v15
// signatures over SHA-256, and AES-256-GCM authenticated encryption.
//
// RSA-PKCS1v15/SHA-256 matches the original C++ implementation's OpenSSL
// usage (BC_CryptoUtils). AES-256-GCM replaces the original's
// unauthenticated AES-256-CBC: the source's CBC framing has no MAC, which
// the accompanying specification flags as a defect to fix in any
// reimplementation.
type RSAGCMOracle struct{}

// NewRSAGCM constructs the default production oracle.
func NewRSAGCM() RSAGCMOracle {
	return RSAGCMOracle{}
}

// Hash implements Oracle.
func (RSAGCMOracle) Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Sign implements Oracle.
func (RSAGCMOracle) Sign(privateKeyPEM string, data []byte) ([]byte, error) {
	key, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("oracle: parse private key: %w", err)
	}

	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, sha256ForRSA, digest[:])
	if err != nil {
		return nil, fmt.Errorf("oracle: sign: %w", err)
	}

	return sig, nil
}

// Verify implements Oracle. It never returns an error; internal failures
// are reported as a false verification result, matching the original
// CryptoUtils::verifySignature contract.
func (RSAGCMOracle) Verify(publicKeyPEM string, data []byte, signature []byte) bool {
	key, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return false
	}

	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(key, sha256ForRSA, digest[:], signature) == nil
}

// Encrypt implements Oracle.
func (RSAGCMOracle) Encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("oracle: generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return sealed, nil
}

// Decrypt implements Oracle.
func (RSAGCMOracle) Decrypt(sealed, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("oracle: sealed data shorter than nonce")
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("oracle: decrypt: %w", err)
	}

	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("oracle: key must be 32 bytes for AES-256, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("oracle: new cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("oracle: new gcm: %w", err)
	}

	return gcm, nil
}

func parsePrivateKey(pemStr string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("PEM block does not contain an RSA private key")
	}

	return rsaKey, nil
}

func parsePublicKey(pemStr string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("PEM block does not contain an RSA public key")
	}

	return rsaKey, nil
}

func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}
