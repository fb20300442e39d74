package ledger

import (
	"testing"
	"time"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

func TestBuildProducesHashMeetingDifficulty(t *testing.T) {
	o := oracle.NewRSAGCM()
	b := BlockBuilder{
		Clock:  clock.NewSimulated(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Oracle: o,
		Miner:  NewMiner(4),
	}

	f := Factory{Clock: b.Clock, Oracle: o}
	tx := f.New("alice", "bob", 5, "")

	blk := b.Build(1, []Transaction{tx}, "prevhash", 2, map[string]float64{"bob": 5})

	if !meetsDifficulty(blk.Hash(), 2) {
		t.Fatalf("Hash() %q does not meet difficulty 2", blk.Hash())
	}
}

func TestBlockHashIsStableUnderRecomputation(t *testing.T) {
	o := oracle.NewRSAGCM()
	b := BlockBuilder{
		Clock:  clock.NewSimulated(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		Oracle: o,
		Miner:  NewMiner(2),
	}

	f := Factory{Clock: b.Clock, Oracle: o}
	tx := f.New("alice", "bob", 5, "")

	blk := b.Build(1, []Transaction{tx}, "prevhash", 1, map[string]float64{"bob": 5})

	recomputed := oracle.HashHex(o, []byte(blk.Preimage()))
	if recomputed != blk.Hash() {
		t.Fatalf("recomputed hash %q != stored hash %q", recomputed, blk.Hash())
	}
}

func TestMineDifficultyZeroReturnsNonceZero(t *testing.T) {
	o := oracle.NewRSAGCM()
	m := NewMiner(2)
	result := m.Mine(o, 0, func(nonce uint64) string { return "fixed" })
	if result.Nonce != 0 {
		t.Fatalf("Nonce = %d, want 0", result.Nonce)
	}
}

func TestMineFindsHashMeetingDifficulty(t *testing.T) {
	o := oracle.NewRSAGCM()
	m := NewMiner(4)
	result := m.Mine(o, 1, func(nonce uint64) string {
		return "constant-block-body" + FormatAmount(float64(nonce))
	})
	if !meetsDifficulty(result.Hash, 1) {
		t.Fatalf("Hash %q does not meet difficulty 1", result.Hash)
	}
}
