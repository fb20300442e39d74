package ledger

import (
	"errors"
	"testing"
)

func TestKeyRegistryRegisterAndLookup(t *testing.T) {
	r := NewKeyRegistry()

	if err := r.Register("alice", "pem-data"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	key, ok := r.Lookup("alice")
	if !ok {
		t.Fatalf("Lookup(alice) not found")
	}
	if key != "pem-data" {
		t.Fatalf("Lookup(alice) = %q, want %q", key, "pem-data")
	}
}

func TestKeyRegistryRejectsDuplicateAddress(t *testing.T) {
	r := NewKeyRegistry()
	if err := r.Register("alice", "pem-1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := r.Register("alice", "pem-2"); !errors.Is(err, ErrAddressTaken) {
		t.Fatalf("second Register err = %v, want ErrAddressTaken", err)
	}
}

func TestKeyRegistryRejectsInvalidAddress(t *testing.T) {
	r := NewKeyRegistry()
	if err := r.Register("ab", "pem"); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("Register err = %v, want ErrAddressInvalid", err)
	}
}

func TestKeyRegistryCopyIsIndependent(t *testing.T) {
	r := NewKeyRegistry()
	if err := r.Register("alice", "pem"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	snap := r.Copy()
	snap["bob"] = "injected"

	if _, ok := r.Lookup("bob"); ok {
		t.Fatalf("mutating Copy() result should not affect the registry")
	}
}
