// Package store holds game session state: the shoe composition and table
// rules a live session is playing under, keyed by an opaque session key.
package store

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// ErrUnknownSession is returned when a session key has no matching state,
// mirroring the reference service's 404 unknown_game_key response.
var ErrUnknownSession = errors.New("unknown_game_key")

// ErrInsufficientCards is returned when counts/apply would drive a slot
// negative (§7 BadCounts, "insufficient cards for required draws").
var ErrInsufficientCards = errors.New("insufficient_cards")

// Session is one live game's shoe state and the rules it started under.
type Session struct {
	Key      string
	NumDecks int
	Rules    engine.Rules
	Counts   engine.Shoe
	Initial  int
}

// Remaining returns the total cards left in the shoe.
func (s *Session) Remaining() int { return s.Counts.Sum() }

// CountsHash returns a stable, sorted digest of the current composition —
// a cheap client-side cache-invalidation signal, grounded in the reference
// service's sha1-of-sorted-counts convention.
func (s *Session) CountsHash() string {
	h := sha1.New()
	for r := engine.Rank(0); r < engine.NumRanks; r++ {
		fmt.Fprintf(h, "%s:%d,", r, s.Counts[r])
	}
	return "sha1:" + hex.EncodeToString(h.Sum(nil))
}

// Store is a concurrency-safe table of live sessions, keyed by session key.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore returns an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Start creates a fresh session over a numDecks-deck shoe under rules,
// returning the new session key.
func (st *Store) Start(numDecks int, rules engine.Rules) *Session {
	counts := engine.Fresh(numDecks)
	s := &Session{
		Key:      "g_" + uuid.NewString(),
		NumDecks: numDecks,
		Rules:    rules,
		Counts:   counts,
		Initial:  counts.Sum(),
	}
	st.mu.Lock()
	st.sessions[s.Key] = s
	st.mu.Unlock()
	return s
}

// End discards a session's state. Ending an already-gone or unknown
// session is not an error — this mirrors the reference service's
// idempotent game/end semantics.
func (st *Store) End(key string) {
	st.mu.Lock()
	delete(st.sessions, key)
	st.mu.Unlock()
}

// Get returns the session for key, or ErrUnknownSession.
func (st *Store) Get(key string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[key]
	if !ok {
		return nil, ErrUnknownSession
	}
	return s, nil
}

// ApplyCards removes the given ranks from a session's shoe atomically: if
// any requested rank is unavailable in the required quantity, no slot is
// mutated and ErrInsufficientCards is returned (§8 S6, counts atomicity).
func (st *Store) ApplyCards(key string, cards []engine.Rank) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[key]
	if !ok {
		return nil, ErrUnknownSession
	}

	need := map[engine.Rank]int{}
	for _, r := range cards {
		need[r]++
	}
	for r, n := range need {
		if have := s.Counts[r]; n > have {
			return nil, fmt.Errorf("%w: %s requested %d, available %d", ErrInsufficientCards, r, n, have)
		}
	}

	next := s.Counts
	for r, n := range need {
		next[r] -= n
	}
	s.Counts = next
	return s, nil
}
