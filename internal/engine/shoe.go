package engine

import "fmt"

// Shoe is the immutable-by-contract composition of the remaining deck: a
// fixed 10-slot vector of card counts indexed by Rank. Every removal
// returns a fresh value; callers never mutate a Shoe that might be a live
// cache key — Go's array value semantics make that the default, not an
// opt-in.
type Shoe [NumRanks]int

// Fresh returns the starting composition for a d-deck shoe:
// [4d,4d,4d,4d,4d,4d,4d,4d,4d,16d].
func Fresh(decks int) Shoe {
	var s Shoe
	for i := 0; i < NumRanks-1; i++ {
		s[i] = 4 * decks
	}
	s[Ten] = 16 * decks
	return s
}

// NewShoeFromCounts validates a wire-supplied counts vector and returns the
// corresponding Shoe. Negative slots are rejected as ErrBadCounts.
func NewShoeFromCounts(counts [NumRanks]int) (Shoe, error) {
	for i, c := range counts {
		if c < 0 {
			return Shoe{}, fmt.Errorf("%w: slot %d (%s) is negative (%d)", ErrBadCounts, i, Rank(i), c)
		}
	}
	return Shoe(counts), nil
}

// Sum returns the total number of cards remaining.
func (s Shoe) Sum() int {
	total := 0
	for _, c := range s {
		total += c
	}
	return total
}

// Remove returns a new Shoe with one card of rank r taken out. It fails
// with ErrEmptySlot if no such card remains — removing from an empty slot
// is a hard invariant violation, never a silently-wrong EV.
func (s Shoe) Remove(r Rank) (Shoe, error) {
	if s[r] <= 0 {
		return Shoe{}, fmt.Errorf("%w: rank %s", ErrEmptySlot, r)
	}
	s[r]--
	return s, nil
}

// ViewMasked returns a probability-weighting view of s under a peek
// constraint: NotTen zeroes the T slot, NotAce zeroes the A slot, None
// returns s unchanged. The dealer PMF recursion applies this mask only to
// weight the one draw that settles the dealer's hole card; every deeper
// draw recurses with NoConstraint. Real removals always operate on the
// unmasked Shoe, never on this view.
func (s Shoe) ViewMasked(hc PeekConstraint) Shoe {
	switch hc {
	case NotTen:
		s[Ten] = 0
	case NotAce:
		s[Ace] = 0
	}
	return s
}
