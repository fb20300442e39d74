// Package ledger implements the account-balance chain: transactions,
// mined blocks, a key registry, and the ledger that ties them together
// with balance validation and full chain replay.
package ledger

import (
	"fmt"
	"sync"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/address"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

// GenesisUser receives the chain's fixed initial endowment from the
// System sentinel sender when the ledger is created.
const GenesisUser = "Genesis_User"

// GenesisEndowment is the balance GenesisUser holds after genesis.
const GenesisEndowment = 1000.0

// GenesisDifficulty is the number of leading hex-zero digits the
// genesis block's hash must have. It is fixed regardless of the
// ledger's configured Difficulty, matching
// BC_Blockchain::createGenesisBlock in the original implementation,
// which hardcodes the genesis mining difficulty to 4.
const GenesisDifficulty = 4

// DefaultDifficulty is the number of leading hex-zero digits every
// block mined after genesis must have when Config.Difficulty is
// negative. A Difficulty of zero is honored and disables the search.
const DefaultDifficulty = 4

// ErrSystemTransaction is returned by AddBlock when a caller attempts to
// submit a System-sent transaction outside of genesis.
var ErrSystemTransaction = fmt.Errorf("ledger: System may only send the genesis transaction")

// Ledger is the account-balance chain: an ordered list of mined blocks,
// the current balance for every known address, and the registry of
// public keys used to verify transaction signatures. All mutating and
// reading operations hold a single mutex, matching the teacher's
// single-writer-lock approach to chain state (foundation/blockchain
// database) rather than fine-grained per-field locking.
type Ledger struct {
	mu         sync.Mutex
	blocks     []Block
	balances   map[string]float64
	registry   *KeyRegistry
	difficulty int

	clock   clock.Clock
	oracle  oracle.Oracle
	factory Factory
	builder BlockBuilder
}

// Config bundles a Ledger's collaborators and tunables.
type Config struct {
	Clock      clock.Clock
	Oracle     oracle.Oracle
	Miner      Miner
	Difficulty int
}

// New constructs a ledger with its genesis block already mined: a
// System-sent transaction crediting GenesisUser with GenesisEndowment.
func New(cfg Config) (*Ledger, error) {
	if cfg.Difficulty < 0 {
		cfg.Difficulty = DefaultDifficulty
	}

	l := &Ledger{
		balances:   make(map[string]float64),
		registry:   NewKeyRegistry(),
		difficulty: cfg.Difficulty,
		clock:      cfg.Clock,
		oracle:     cfg.Oracle,
		factory:    Factory{Clock: cfg.Clock, Oracle: cfg.Oracle},
		builder:    BlockBuilder{Clock: cfg.Clock, Oracle: cfg.Oracle, Miner: cfg.Miner},
	}

	genesisTx := l.factory.New(address.System, GenesisUser, GenesisEndowment, "genesis endowment")

	snapshot := map[string]float64{GenesisUser: GenesisEndowment}
	block := l.builder.Build(0, []Transaction{genesisTx}, "0", GenesisDifficulty, snapshot)

	l.balances[GenesisUser] = GenesisEndowment
	l.blocks = append(l.blocks, block)

	return l, nil
}

// Register associates address with its PEM-encoded public key so future
// transactions from it can be verified. AddBlock auto-registers the
// receiver of a transaction the first time it appears as a receiver,
// with an empty public key, matching the original controller's
// auto-registration-on-first-receipt convenience. Such an address can
// receive funds but cannot send them, and a later Register call for it
// returns ErrAddressTaken.
func (l *Ledger) Register(addr, publicKeyPEM string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Register(addr, publicKeyPEM)
}

// NewTransaction builds a transaction via the ledger's factory, so
// callers never construct a Transaction with a mismatched clock or
// oracle.
func (l *Ledger) NewTransaction(from, to string, amount float64, metadata string) Transaction {
	return l.factory.New(from, to, amount, metadata)
}

// Oracle returns the ledger's cryptographic oracle, for callers that need
// to sign a transaction before calling AddBlock.
func (l *Ledger) Oracle() oracle.Oracle {
	return l.oracle
}

// Difficulty returns the number of leading hex-zero digits required of
// the hash of every block mined after genesis; genesis itself is mined at
// GenesisDifficulty.
func (l *Ledger) Difficulty() int {
	return l.difficulty
}

// AddBlock validates every transaction against the ledger's current
// balances, mines a new block containing all of them, and commits the
// result atomically: either every transaction is valid and the block is
// added, or none of the ledger's state changes.
//
// Validation order per transaction: the sender must not be System,
// sender/receiver must be well-formed addresses and the amount positive,
// the transaction must be signed, the sender must have a registered
// public key, the signature must verify against it, and the working
// balance must cover the amount.
// Transactions are applied to a working copy of the balances in order,
// so a later transaction in the same block sees the effect of an earlier
// one.
func (l *Ledger) AddBlock(transactions []Transaction) (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(transactions) == 0 {
		return Block{}, ErrEmptyBlock
	}

	working := make(map[string]float64, len(l.balances))
	for k, v := range l.balances {
		working[k] = v
	}

	for i, tx := range transactions {
		if err := l.validateTransaction(tx, working); err != nil {
			return Block{}, fmt.Errorf("ledger: transaction %d (%s): %w", i, tx.TxID(), err)
		}
		working[tx.Sender()] -= tx.Amount()
		working[tx.Receiver()] += tx.Amount()
	}

	for _, tx := range transactions {
		if _, ok := l.registry.Lookup(tx.Receiver()); !ok {
			_ = l.registry.Register(tx.Receiver(), "")
		}
	}

	prevHash := l.blocks[len(l.blocks)-1].Hash()
	index := uint64(len(l.blocks))
	snapshot := snapshotFor(working, transactions)
	block := l.builder.Build(index, transactions, prevHash, l.difficulty, snapshot)

	l.balances = working
	l.blocks = append(l.blocks, block)

	return block, nil
}

// validateTransaction checks tx against working balances without
// mutating either. It does not apply the transaction.
func (l *Ledger) validateTransaction(tx Transaction, working map[string]float64) error {
	if tx.IsSystem() {
		return ErrSystemTransaction
	}
	if tx.Sender() == "" || tx.Receiver() == "" || tx.Amount() <= 0 {
		return ErrInvalidTransaction
	}
	if !tx.HasSignature() {
		return ErrUnsignedTransaction
	}

	pub, ok := l.registry.Lookup(tx.Sender())
	if !ok || pub == "" {
		return ErrUnknownSender
	}
	if !tx.Verify(l.oracle, pub) {
		return ErrBadSignature
	}
	if working[tx.Sender()] < tx.Amount() {
		return ErrInsufficientFunds
	}

	return nil
}

// snapshotFor returns the subset of balances worth recording alongside a
// block: every address involved in one of its transactions, plus every
// address with a nonzero balance. Addresses that are neither involved nor
// nonzero are dropped to keep snapshots from growing unboundedly as the
// chain ages. This is the same filter BC_Blockchain.cpp applies before
// storing a block's balance snapshot and before comparing one during
// validation.
func snapshotFor(balances map[string]float64, transactions []Transaction) map[string]float64 {
	involved := make(map[string]bool)
	for _, tx := range transactions {
		involved[tx.Sender()] = true
		involved[tx.Receiver()] = true
	}

	out := make(map[string]float64)
	for addr, bal := range balances {
		if involved[addr] || bal != 0 {
			out[addr] = bal
		}
	}
	return out
}

// copyBalances returns an independent copy of a balances map, so callers
// can't mutate a Block's or a Ledger's internal state through a returned
// snapshot.
func copyBalances(balances map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(balances))
	for k, v := range balances {
		out[k] = v
	}
	return out
}

// balancesEqual reports whether two balance maps hold exactly the same
// set of addresses with exactly the same values.
func balancesEqual(a, b map[string]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for addr, bal := range a {
		if other, ok := b[addr]; !ok || other != bal {
			return false
		}
	}
	return true
}

// Balance returns addr's current balance.
func (l *Ledger) Balance(addr string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr]
}

// Balances returns a snapshot of every address's current balance.
func (l *Ledger) Balances() map[string]float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]float64, len(l.balances))
	for k, v := range l.balances {
		out[k] = v
	}
	return out
}

// Blocks returns a snapshot of the chain.
func (l *Ledger) Blocks() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Block(nil), l.blocks...)
}

// BlockSnapshot returns the balance snapshot recorded alongside block
// index i, and whether that index exists.
func (l *Ledger) BlockSnapshot(i int) (map[string]float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.blocks) {
		return nil, false
	}
	return l.blocks[i].BalanceSnapshot(), true
}

// Height returns the number of blocks in the chain, including genesis.
func (l *Ledger) Height() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.blocks)
}

// Registry exposes the ledger's key registry, e.g. for a CLI listing
// registered users.
func (l *Ledger) Registry() *KeyRegistry {
	return l.registry
}

// Validate replays the entire chain from genesis, recomputing every
// block's hash and re-deriving every balance, and reports the first
// discrepancy it finds. A nil return means the chain is internally
// consistent: indices are sequential, each block's previous-hash link
// matches, each block's stored hash matches its recomputed pre-image,
// each hash satisfies the difficulty it was mined under, replaying every
// transaction never overdraws a balance, and — the authoritative check —
// each block's stored balance snapshot matches the involved-or-nonzero
// filter of the balances derived by replaying that block's transactions
// on top of the previous block's snapshot. This mirrors
// BC_Blockchain.cpp::isChainValid step for step: seed tempBalances from
// the previous block's snapshot, replay transactions, filter, and
// compare against the block's own stored snapshot before moving on.
func (l *Ledger) Validate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.blocks) == 0 {
		return nil
	}

	for i, block := range l.blocks {
		if block.Index() != uint64(i) {
			return fmt.Errorf("%w: block %d has index %d", ErrChainBroken, i, block.Index())
		}

		tempBalances := make(map[string]float64)
		if i > 0 {
			if block.PreviousHash() != l.blocks[i-1].Hash() {
				return fmt.Errorf("%w: block %d previous hash mismatch", ErrChainBroken, i)
			}
			tempBalances = l.blocks[i-1].BalanceSnapshot()
		}

		recomputed := oracle.HashHex(l.oracle, []byte(block.Preimage()))
		if recomputed != block.Hash() {
			return fmt.Errorf("%w: block %d hash does not match its contents", ErrChainBroken, i)
		}

		blockDifficulty := l.difficulty
		if i == 0 {
			blockDifficulty = GenesisDifficulty
		}
		if !meetsDifficulty(block.Hash(), blockDifficulty) {
			return fmt.Errorf("%w: block %d does not satisfy difficulty %d", ErrChainBroken, i, blockDifficulty)
		}

		for j, tx := range block.Transactions() {
			if i == 0 && tx.IsSystem() {
				tempBalances[tx.Receiver()] += tx.Amount()
				continue
			}
			if err := l.validateTransaction(tx, tempBalances); err != nil {
				return fmt.Errorf("%w: block %d transaction %d: %v", ErrChainBroken, i, j, err)
			}
			tempBalances[tx.Sender()] -= tx.Amount()
			tempBalances[tx.Receiver()] += tx.Amount()
		}

		filtered := snapshotFor(tempBalances, block.Transactions())
		if !balancesEqual(filtered, block.BalanceSnapshot()) {
			return fmt.Errorf("%w: block %d balance snapshot mismatch", ErrChainBroken, i)
		}
	}

	return nil
}
