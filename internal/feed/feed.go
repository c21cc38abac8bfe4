// Package feed supplies the remaining-shoe composition a decision call
// needs, from whichever source a deployment wires in: an in-process
// random shuffle for simulation, or a deterministic, provably-fair stream
// derived from a committed seed for a live table that must prove it
// didn't deal off a stacked shoe.
package feed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// ShoeFeed draws cards from a shrinking shoe and reports what remains.
// Implementations are never required to be safe for concurrent use by
// more than one caller at a time — a feed backs exactly one table.
type ShoeFeed interface {
	Draw() (engine.Rank, error)
	Remaining() engine.Shoe
	Reset(numDecks int)
}

// ErrShoeExhausted is returned by Draw when no cards remain.
var ErrShoeExhausted = fmt.Errorf("feed: shoe exhausted")

// DeterministicFeed draws cards deterministically from a keystream derived by
// repeatedly hashing a committed seed with a monotonic counter — the same
// domain-separated-hash-chain technique a provably-fair shuffle commitment
// uses to let a player verify, after the fact, that the deal matched a
// seed committed to before the hand started. It is not cryptographically
// shuffling a fixed 52/416-card deck order; it draws from the remaining
// rank counts the same way engine.Shoe already models them, weighting each
// draw by how many of that rank remain.
type DeterministicFeed struct {
	seed    []byte
	counter uint64
	shoe    engine.Shoe
	decks   int
}

// NewDeterministicFeed builds a feed whose draws are fully determined by
// seed: the same seed and draw sequence always reproduces the same cards,
// letting an auditor recompute the deal independently.
func NewDeterministicFeed(seed []byte, numDecks int) *DeterministicFeed {
	f := &DeterministicFeed{seed: append([]byte(nil), seed...), decks: numDecks}
	f.Reset(numDecks)
	return f
}

// Reset reshuffles to a fresh numDecks-deck composition and rewinds the
// keystream counter; seed is unchanged, so a Reset immediately after
// construction reproduces the same draw sequence.
func (f *DeterministicFeed) Reset(numDecks int) {
	f.decks = numDecks
	f.shoe = engine.Fresh(numDecks)
	f.counter = 0
}

// Remaining reports the current shoe composition.
func (f *DeterministicFeed) Remaining() engine.Shoe {
	return f.shoe
}

// Draw consumes the next keystream value to pick a weighted rank from the
// remaining shoe and removes it.
func (f *DeterministicFeed) Draw() (engine.Rank, error) {
	total := f.shoe.Sum()
	if total == 0 {
		return 0, ErrShoeExhausted
	}

	pick := f.nextUint64() % uint64(total)
	for r := engine.Rank(0); r < engine.NumRanks; r++ {
		cnt := uint64(f.shoe[r])
		if pick < cnt {
			next, err := f.shoe.Remove(r)
			if err != nil {
				return 0, err
			}
			f.shoe = next
			return r, nil
		}
		pick -= cnt
	}
	return 0, ErrShoeExhausted
}

// nextUint64 derives the next keystream word as SHA-256(seed || counter),
// folded down to 8 bytes, and advances the counter.
func (f *DeterministicFeed) nextUint64() uint64 {
	var ctrBytes [8]byte
	binary.BigEndian.PutUint64(ctrBytes[:], f.counter)
	f.counter++

	h := sha256.New()
	h.Write(f.seed)
	h.Write(ctrBytes[:])
	digest := h.Sum(nil)

	return binary.BigEndian.Uint64(digest[:8])
}
