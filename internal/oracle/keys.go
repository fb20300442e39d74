package oracle

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// KeySize is the RSA modulus size used for every generated key pair.
// 2048 bits is the minimum OpenSSL and most CAs still accept as of this
// writing; the original system used the same size.
const KeySize = 2048

// KeyPair holds a generated RSA key pair in PEM form, ready to hand the
// public half to a KeyRegistry and persist the private half to disk.
type KeyPair struct {
	PublicKeyPEM  string
	PrivateKeyPEM string
}

// GenerateKeyPair creates a new RSA key pair and PEM-encodes both halves.
// This is an external collaborator per the specification (key-pair
// generation is explicitly out of the core's scope) but is implemented
// here so the program is runnable end to end, mirroring
// BC_RSAKeyGenerator.
func GenerateKeyPair() (KeyPair, error) {
	key, err := rsa.GenerateKey(rand.Reader, KeySize)
	if err != nil {
		return KeyPair{}, fmt.Errorf("oracle: generate key: %w", err)
	}

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return KeyPair{}, fmt.Errorf("oracle: marshal public key: %w", err)
	}

	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	return KeyPair{
		PublicKeyPEM:  string(publicPEM),
		PrivateKeyPEM: string(privatePEM),
	}, nil
}

// TruncateKey shortens a PEM-encoded key to its head and tail for safe
// display in logs or a terminal, keeping the key itself out of scrollback.
func TruncateKey(key string, headLen, tailLen int) string {
	if len(key) <= headLen+tailLen {
		return key
	}
	return key[:headLen] + "................." + key[len(key)-tailLen:]
}
