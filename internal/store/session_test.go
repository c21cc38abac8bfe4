package store

import (
	"testing"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// S3 - dealer reveals BJ: applying [9,7,T] then [A] removes exactly one
// card on the hole reveal, and counts stay atomic across both calls.
func TestApplyCardsSequential(t *testing.T) {
	st := NewStore()
	s := st.Start(8, engine.DefaultRules())
	before := s.Remaining()

	if _, err := st.ApplyCards(s.Key, []engine.Rank{engine.Nine, engine.Seven, engine.Ten}); err != nil {
		t.Fatalf("ApplyCards (deal): unexpected error %v", err)
	}
	afterDeal, err := st.Get(s.Key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if afterDeal.Remaining() != before-3 {
		t.Errorf("remaining after dealing 3 cards = %d, want %d", afterDeal.Remaining(), before-3)
	}

	if _, err := st.ApplyCards(s.Key, []engine.Rank{engine.Ace}); err != nil {
		t.Fatalf("ApplyCards (hole reveal): unexpected error %v", err)
	}
	afterHole, err := st.Get(s.Key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if afterHole.Remaining() != before-4 {
		t.Errorf("remaining after hole reveal = %d, want %d (decreased by exactly 1)", afterHole.Remaining(), before-4)
	}
}

// S6 - counts atomicity: an over-large request is rejected and leaves
// counts unchanged.
func TestApplyCardsAtomicRejection(t *testing.T) {
	st := NewStore()
	s := st.Start(1, engine.DefaultRules())
	before := s.Counts

	cards := make([]engine.Rank, 0, 200)
	for i := 0; i < 200; i++ {
		cards = append(cards, engine.Ace)
	}

	if _, err := st.ApplyCards(s.Key, cards); err == nil {
		t.Fatal("ApplyCards requesting 200 Aces from a 1-deck shoe expected an error")
	}

	after, err := st.Get(s.Key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if after.Counts != before {
		t.Error("a rejected ApplyCards call must leave counts unchanged")
	}
}

func TestApplyCardsUnknownSession(t *testing.T) {
	st := NewStore()
	if _, err := st.ApplyCards("nonexistent", []engine.Rank{engine.Ace}); err != ErrUnknownSession {
		t.Errorf("ApplyCards on unknown session = %v, want ErrUnknownSession", err)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	st := NewStore()
	s := st.Start(8, engine.DefaultRules())
	st.End(s.Key)
	st.End(s.Key) // must not panic or error

	if _, err := st.Get(s.Key); err != ErrUnknownSession {
		t.Errorf("Get after End = %v, want ErrUnknownSession", err)
	}
}

func TestCountsHashStableAcrossEquivalentState(t *testing.T) {
	s1 := &Session{Counts: engine.Fresh(8)}
	s2 := &Session{Counts: engine.Fresh(8)}
	if s1.CountsHash() != s2.CountsHash() {
		t.Error("two sessions with identical counts should hash identically")
	}
}
