// Package oracle implements the cryptographic primitives the ledger treats
// as external collaborators: a hash oracle, a signer/verifier pair, and a
// symmetric authenticated cipher for persistence. The ledger, block, and
// transaction types depend only on the Oracle interface below so the
// signature scheme or cipher can be swapped without touching chain logic.
package oracle

// Oracle bundles the four cryptographic services the ledger consumes:
// hashing, signing, signature verification, and authenticated symmetric
// encryption. A single interface mirrors the CryptoOracle component as
// specified — callers never reach for crypto/sha256 or crypto/rsa
// directly.
type Oracle interface {
	// Hash returns the SHA-256 digest of data.
	Hash(data []byte) [32]byte

	// Sign produces a signature over data using the PEM-encoded RSA
	// private key. The returned bytes are raw signature bytes, not
	// hex-encoded.
	Sign(privateKeyPEM string, data []byte) ([]byte, error)

	// Verify reports whether signature is a valid signature over data
	// produced by the holder of the PEM-encoded RSA public key. It never
	// panics; on any internal failure (bad key, malformed signature) it
	// returns false.
	Verify(publicKeyPEM string, data []byte, signature []byte) bool

	// Encrypt seals plaintext under a 32-byte key using an authenticated
	// cipher, returning nonce‖ciphertext‖tag as a single byte slice.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt reverses Encrypt. It fails closed: any authentication
	// failure or malformed framing returns a non-nil error and no
	// plaintext.
	Decrypt(sealed, key []byte) ([]byte, error)
}

// HashHex returns the lowercase hex encoding of o.Hash(data), the textual
// form used for tx_id and block hashes throughout the ledger.
func HashHex(o Oracle, data []byte) string {
	h := o.Hash(data)
	return hexEncode(h[:])
}
