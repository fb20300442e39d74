package oracle

import (
	"bytes"
	"testing"
)

func TestHashIsDeterministic(t *testing.T) {
	o := NewRSAGCM()

	h1 := o.Hash([]byte("hello"))
	h2 := o.Hash([]byte("hello"))
	if h1 != h2 {
		t.Fatalf("hash of identical input differs: %x vs %x", h1, h2)
	}

	h3 := o.Hash([]byte("hello!"))
	if h1 == h3 {
		t.Fatalf("hash collision on distinct input")
	}
}

func TestSignAndVerify(t *testing.T) {
	o := NewRSAGCM()

	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	data := []byte("transfer 10 from alice to bob")
	sig, err := o.Sign(kp.PrivateKeyPEM, data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !o.Verify(kp.PublicKeyPEM, data, sig) {
		t.Fatalf("signature did not verify against its own public key")
	}
}

func TestVerifyFailsForWrongKey(t *testing.T) {
	o := NewRSAGCM()

	kpA, _ := GenerateKeyPair()
	kpB, _ := GenerateKeyPair()

	data := []byte("transfer 10 from alice to bob")
	sig, err := o.Sign(kpA.PrivateKeyPEM, data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if o.Verify(kpB.PublicKeyPEM, data, sig) {
		t.Fatalf("signature verified against an unrelated public key")
	}
}

func TestVerifyFailsAfterTamper(t *testing.T) {
	o := NewRSAGCM()

	kp, _ := GenerateKeyPair()

	data := []byte("transfer 10 from alice to bob")
	sig, err := o.Sign(kp.PrivateKeyPEM, data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := []byte("transfer 99999 from alice to bob")
	if o.Verify(kp.PublicKeyPEM, tampered, sig) {
		t.Fatalf("signature verified for tampered data")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	o := NewRSAGCM()
	key := bytes.Repeat([]byte{0x42}, 32)

	plaintext := []byte("this is the serialized ledger contents")
	sealed, err := o.Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if len(sealed) <= len(plaintext) {
		t.Fatalf("sealed output should be longer than plaintext (nonce+tag), got %d vs %d", len(sealed), len(plaintext))
	}

	got, err := o.Decrypt(sealed, key)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestDecryptFailsOnTamperedCiphertext(t *testing.T) {
	o := NewRSAGCM()
	key := bytes.Repeat([]byte{0x7, 0x1}, 16)

	sealed, err := o.Encrypt([]byte("secret balances"), key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	sealed[len(sealed)-1] ^= 0xFF

	if _, err := o.Decrypt(sealed, key); err == nil {
		t.Fatalf("expected authentication failure on tampered ciphertext")
	}
}

func TestEncryptRejectsWrongKeyLength(t *testing.T) {
	o := NewRSAGCM()
	if _, err := o.Encrypt([]byte("data"), []byte("too-short")); err == nil {
		t.Fatalf("expected error for non-32-byte key")
	}
}
