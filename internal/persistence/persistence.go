// Package persistence renders a ledger to a deterministic text dump and
// seals it to disk with the ledger's own cryptographic oracle, mirroring
// BC_Blockchain::saveToFile's "serialize then encrypt" approach from the
// original implementation.
package persistence

import (
	"fmt"
	"os"
	"strings"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/ledger"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

const divider = "----------------------------------------"

// Serialize renders every block in the ledger as a deterministic,
// human-readable dump: one section per block with its index, timestamp,
// transactions, previous hash, and hash, separated by a fixed divider.
// The format is stable across calls for the same chain state, which is
// what makes an encrypted dump useful as a diffable backup.
func Serialize(l *ledger.Ledger) string {
	var b strings.Builder

	for _, block := range l.Blocks() {
		fmt.Fprintf(&b, "Index: %d\n", block.Index())
		fmt.Fprintf(&b, "Timestamp: %s\n", block.Timestamp())
		b.WriteString("Transactions:\n")
		for _, tx := range block.Transactions() {
			fmt.Fprintf(&b, "  %s\n", tx.Display())
		}
		fmt.Fprintf(&b, "Previous Hash: %s\n", block.PreviousHash())
		fmt.Fprintf(&b, "Hash: %s\n", block.Hash())
		b.WriteString(divider + "\n")
	}

	return b.String()
}

// Save serializes the ledger, seals it under key with o.Encrypt (which
// frames the result as nonce‖ciphertext‖tag), and writes the raw sealed
// bytes to path. key must be exactly 32 bytes, matching the oracle's
// AES-256-GCM requirement.
func Save(l *ledger.Ledger, o oracle.Oracle, key []byte, path string) error {
	plaintext := []byte(Serialize(l))

	sealed, err := o.Encrypt(plaintext, key)
	if err != nil {
		return fmt.Errorf("persistence: encrypt: %w", err)
	}

	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}

	return nil
}

// Load reads a file written by Save and returns the decrypted text dump.
// It fails closed: any authentication failure in the underlying
// decryption returns an error and no text.
func Load(o oracle.Oracle, key []byte, path string) (string, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("persistence: read %s: %w", path, err)
	}

	plaintext, err := o.Decrypt(sealed, key)
	if err != nil {
		return "", fmt.Errorf("persistence: decrypt %s: %w", path, err)
	}

	return string(plaintext), nil
}
