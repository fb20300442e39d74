package ledger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

func testFactory() Factory {
	return Factory{
		Clock:  clock.NewSimulated(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Oracle: oracle.NewRSAGCM(),
	}
}

func TestFormatAmountSixDecimals(t *testing.T) {
	cases := map[float64]string{
		0:      "0.000000",
		1:      "1.000000",
		1.5:    "1.500000",
		100.1:  "100.100000",
		0.0001: "0.000100",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestNewCoercesInvalidAddressesToEmpty(t *testing.T) {
	f := testFactory()
	tx := f.New("ab", "also bad", 10, "")
	if tx.Sender() != "" {
		t.Errorf("Sender() = %q, want empty for invalid input", tx.Sender())
	}
	if tx.Receiver() != "" {
		t.Errorf("Receiver() = %q, want empty for invalid input", tx.Receiver())
	}
}

func TestNewCoercesNonPositiveAmountToZero(t *testing.T) {
	f := testFactory()
	tx := f.New("alice", "bob", -5, "")
	if tx.Amount() != 0 {
		t.Errorf("Amount() = %v, want 0", tx.Amount())
	}
}

func TestNewTruncatesOversizedMetadata(t *testing.T) {
	f := testFactory()
	long := make([]byte, maxMetadataLen+100)
	for i := range long {
		long[i] = 'x'
	}
	tx := f.New("alice", "bob", 1, string(long))
	if len(tx.Metadata()) != maxMetadataLen {
		t.Errorf("len(Metadata()) = %d, want %d", len(tx.Metadata()), maxMetadataLen)
	}
}

func TestTxIDIsDeterministicForIdenticalFields(t *testing.T) {
	o := oracle.NewRSAGCM()
	c := clock.NewSimulated(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	f := Factory{Clock: c, Oracle: o}

	a := f.New("alice", "bob", 10, "note")
	b := f.New("alice", "bob", 10, "note")

	if a.TxID() != b.TxID() {
		t.Errorf("TxID differs for identical fields: %s vs %s", a.TxID(), b.TxID())
	}
}

func TestSignThenSignAgainFails(t *testing.T) {
	f := testFactory()
	kp, err := oracle.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	tx := f.New("alice", "bob", 10, "")
	if err := tx.Sign(f.Oracle, kp.PrivateKeyPEM); err != nil {
		t.Fatalf("first Sign: %v", err)
	}

	if err := tx.Sign(f.Oracle, kp.PrivateKeyPEM); !errors.Is(err, ErrAlreadySigned) {
		t.Fatalf("second Sign err = %v, want ErrAlreadySigned", err)
	}
}

func TestVerifySucceedsForMatchingKey(t *testing.T) {
	f := testFactory()
	kp, err := oracle.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	tx := f.New("alice", "bob", 10, "")
	if err := tx.Sign(f.Oracle, kp.PrivateKeyPEM); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !tx.Verify(f.Oracle, kp.PublicKeyPEM) {
		t.Fatalf("Verify() = false, want true")
	}
}

func TestDisplayIncludesEveryField(t *testing.T) {
	f := testFactory()
	tx := f.New("alice", "bob", 10, "note")
	d := tx.Display()

	for _, want := range []string{tx.TxID(), "alice", "bob", "10.000000", "note"} {
		if !strings.Contains(d, want) {
			t.Errorf("Display() missing %q: %s", want, d)
		}
	}
}
