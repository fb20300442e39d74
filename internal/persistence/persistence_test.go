package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/ledger"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

func newTestLedger(t *testing.T) (*ledger.Ledger, oracle.Oracle) {
	t.Helper()
	o := oracle.NewRSAGCM()
	l, err := ledger.New(ledger.Config{
		Clock:      clock.NewSimulated(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Oracle:     o,
		Miner:      ledger.NewMiner(4),
		Difficulty: 1,
	})
	if err != nil {
		t.Fatalf("ledger.New: %v", err)
	}
	return l, o
}

func TestSerializeIncludesGenesisBlock(t *testing.T) {
	l, _ := newTestLedger(t)

	dump := Serialize(l)
	if !strings.Contains(dump, "Index: 0") {
		t.Errorf("Serialize() missing genesis block: %s", dump)
	}
	if !strings.Contains(dump, ledger.GenesisUser) {
		t.Errorf("Serialize() missing genesis receiver: %s", dump)
	}
}

func TestSaveProducesFramedCiphertextLongerThanPlaintext(t *testing.T) {
	l, o := newTestLedger(t)
	key := bytes.Repeat([]byte{0x11}, 32)

	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.bin")

	if err := Save(l, o, key, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sealed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	plaintext := Serialize(l)
	if len(sealed) <= len(plaintext) {
		t.Fatalf("sealed file should be longer than plaintext (nonce+tag): %d vs %d", len(sealed), len(plaintext))
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	l, o := newTestLedger(t)
	key := bytes.Repeat([]byte{0x22}, 32)

	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.bin")

	if err := Save(l, o, key, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(o, key, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got != Serialize(l) {
		t.Fatalf("Load() did not round trip Serialize() output")
	}
}

func TestLoadFailsOnTamperedFile(t *testing.T) {
	l, o := newTestLedger(t)
	key := bytes.Repeat([]byte{0x33}, 32)

	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.bin")

	if err := Save(l, o, key, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sealed, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xFF
	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(o, key, path); err == nil {
		t.Fatalf("expected Load to fail on tampered file")
	}
}

func TestLoadFailsOnWrongKey(t *testing.T) {
	l, o := newTestLedger(t)
	key := bytes.Repeat([]byte{0x44}, 32)
	wrongKey := bytes.Repeat([]byte{0x55}, 32)

	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.bin")

	if err := Save(l, o, key, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := Load(o, wrongKey, path); err == nil {
		t.Fatalf("expected Load to fail with the wrong key")
	}
}
