package ledger

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

// Miner searches for a nonce whose block hash has at least Difficulty
// leading hex-zero digits. It fans the search out across a pool of
// goroutines sharing a single nonce cursor, mirroring the std::thread /
// std::atomic<uint64_t> worker pool of the original C++ miner: every
// worker fetches-and-increments the same counter so no nonce range needs
// pre-partitioning and no worker idles while another still has work.
type Miner struct {
	// Workers is the number of goroutines searching concurrently. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int
}

// NewMiner constructs a Miner with the given worker count. A count <= 0
// defers to runtime.GOMAXPROCS(0) at Mine time.
func NewMiner(workers int) Miner {
	return Miner{Workers: workers}
}

// MineResult is the winning nonce and hash found by Mine.
type MineResult struct {
	Nonce uint64
	Hash  string
}

// Mine searches for a nonce such that oracle.HashHex(o, preimage(nonce))
// has at least difficulty leading hex-zero characters. preimage must be
// safe to call concurrently from multiple goroutines; it is typically a
// closure over a block's fixed fields that renders the candidate hash
// pre-image for a given nonce.
//
// A difficulty of zero or less is satisfied immediately by nonce 0,
// matching the specification's "difficulty 0 completes without search"
// edge case.
func (m Miner) Mine(o oracle.Oracle, difficulty int, preimage func(nonce uint64) string) MineResult {
	if difficulty <= 0 {
		h := oracle.HashHex(o, []byte(preimage(0)))
		return MineResult{Nonce: 0, Hash: h}
	}

	workers := m.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		cursor atomic.Uint64
		found  atomic.Bool
		resMu  sync.Mutex
		result MineResult
		wg     sync.WaitGroup
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for !found.Load() {
				nonce := cursor.Add(1) - 1
				hash := oracle.HashHex(o, []byte(preimage(nonce)))
				if !meetsDifficulty(hash, difficulty) {
					continue
				}
				if found.CompareAndSwap(false, true) {
					resMu.Lock()
					result = MineResult{Nonce: nonce, Hash: hash}
					resMu.Unlock()
				}
				return
			}
		}()
	}
	wg.Wait()

	resMu.Lock()
	defer resMu.Unlock()
	return result
}

// meetsDifficulty reports whether hashHex begins with difficulty '0'
// characters.
func meetsDifficulty(hashHex string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if len(hashHex) < difficulty {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hashHex[i] != '0' {
			return false
		}
	}
	return true
}
