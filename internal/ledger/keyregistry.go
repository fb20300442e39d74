package ledger

import (
	"sync"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/address"
)

// KeyRegistry maps addresses to their registered public key, the
// ledger's analogue of the teacher's nameservice: a small, mutex-guarded
// lookup table consulted on every signature check.
type KeyRegistry struct {
	mu   sync.RWMutex
	keys map[string]string
}

// NewKeyRegistry constructs an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{keys: make(map[string]string)}
}

// Register associates address with its PEM-encoded public key. It fails
// if the address is already registered or fails the address policy.
func (r *KeyRegistry) Register(addr, publicKeyPEM string) error {
	if !address.IsValid(addr) {
		return ErrAddressInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[addr]; ok {
		return ErrAddressTaken
	}
	r.keys[addr] = publicKeyPEM
	return nil
}

// Lookup returns the public key registered for address, if any.
func (r *KeyRegistry) Lookup(addr string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.keys[addr]
	return key, ok
}

// Addresses returns every registered address, unordered.
func (r *KeyRegistry) Addresses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.keys))
	for addr := range r.keys {
		out = append(out, addr)
	}
	return out
}

// Copy returns a snapshot of the registry's address-to-key mapping.
func (r *KeyRegistry) Copy() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.keys))
	for k, v := range r.keys {
		out[k] = v
	}
	return out
}
