package ledger

import (
	"fmt"
	"strconv"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

// Block is a mined, immutable unit of the chain: an index, a set of
// transactions, a link to the previous block's hash, a nonce whose hash
// satisfies the chain's difficulty at the time the block was built, and
// the balance snapshot in effect once the block's transactions are
// applied — the authoritative state Validate replays against.
type Block struct {
	index           uint64
	timestamp       string
	transactions    []Transaction
	previousHash    string
	nonce           uint64
	hash            string
	balanceSnapshot map[string]float64
}

// BlockBuilder constructs mined blocks, carrying the collaborators a
// block needs: a clock for its timestamp, an oracle for hashing, and a
// miner to search for a valid nonce.
type BlockBuilder struct {
	Clock clock.Clock
	Oracle oracle.Oracle
	Miner  Miner
}

// Build mines and returns a new block. It blocks until the miner finds a
// nonce whose hash has at least difficulty leading hex-zero digits.
// balanceSnapshot is stored on the block verbatim; it plays no part in
// the mined hash, matching the original's Block constructor which takes
// the snapshot as a plain field alongside, not inside, the hashed data.
func (b BlockBuilder) Build(index uint64, transactions []Transaction, previousHash string, difficulty int, balanceSnapshot map[string]float64) Block {
	blk := Block{
		index:           index,
		timestamp:       b.Clock.Now(),
		transactions:    append([]Transaction(nil), transactions...),
		previousHash:    previousHash,
		balanceSnapshot: copyBalances(balanceSnapshot),
	}

	result := b.Miner.Mine(b.Oracle, difficulty, blk.preimageForNonce)
	blk.nonce = result.Nonce
	blk.hash = result.Hash

	return blk
}

// preimageForNonce renders the byte string hashed to evaluate a candidate
// nonce. It is part of the protocol: every field and its order here is
// fixed by the chain's hash-stability invariant.
func (b Block) preimageForNonce(nonce uint64) string {
	var txs string
	for _, tx := range b.transactions {
		txs += tx.Display()
	}
	return strconv.FormatUint(b.index, 10) + b.timestamp + b.previousHash + strconv.FormatUint(nonce, 10) + txs
}

// Preimage returns the byte string that hashes to this block's Hash,
// using the block's own stored nonce. Validate uses this to recompute
// and compare hashes without re-mining.
func (b Block) Preimage() string {
	return b.preimageForNonce(b.nonce)
}

// Index, Timestamp, PreviousHash, Hash, Nonce, Transactions are read-only
// accessors; blocks are never mutated after Build.
func (b Block) Index() uint64             { return b.index }
func (b Block) Timestamp() string         { return b.timestamp }
func (b Block) PreviousHash() string      { return b.previousHash }
func (b Block) Hash() string              { return b.hash }
func (b Block) Nonce() uint64             { return b.nonce }
func (b Block) Transactions() []Transaction {
	return append([]Transaction(nil), b.transactions...)
}

// BalanceSnapshot returns a copy of the balances recorded alongside this
// block: every address involved in one of its transactions, plus every
// address with a nonzero balance, as of this block's commit.
func (b Block) BalanceSnapshot() map[string]float64 {
	return copyBalances(b.balanceSnapshot)
}

// Display renders the block as a human-readable multi-line summary,
// matching the console format the original BC_Block::displayBlock used.
func (b Block) Display() string {
	out := fmt.Sprintf("Index: %d\nTimestamp: %s\nNonce: %d\nPrevious Hash: %s\nHash: %s\nTransactions:\n",
		b.index, b.timestamp, b.nonce, b.previousHash, b.hash)
	for _, tx := range b.transactions {
		out += "  " + tx.Display() + "\n"
	}
	return out
}
