package engine

// DealerPMF maps a final dealer total to its probability. Bust is folded
// into the fixed slot index 5; slots 0-4 are totals 17-21. A fixed array
// is used rather than a map: the outcome space is always exactly these six
// values, and a value type is a trivially comparable, copyable cache
// payload.
type DealerPMF [6]float64

const dealerBustSlot = 5

func totalToSlot(total int) int {
	if total > 21 {
		return dealerBustSlot
	}
	return total - 17
}

// P returns the probability mass at an exact dealer total. Totals outside
// 17-21 (and therefore not a real dealer stand state) carry zero mass,
// matching a dict lookup with a 0.0 default in the reference implementation.
func (d DealerPMF) P(total int) float64 {
	if total < 17 || total > 21 {
		return 0
	}
	return d[totalToSlot(total)]
}

func (d DealerPMF) PBust() float64 { return d[dealerBustSlot] }

type dealerKey struct {
	total int
	soft  bool
	deck  Shoe
	h17   bool
	hc    PeekConstraint
}

// DealerPMFGivenStart computes the exact distribution of the dealer's final
// total by recursive enumeration over the remaining deck, memoized by
// (total, soft, deck composition, h17, peek constraint) per §4.C. The peek
// constraint conditions only the very next card drawn from this state — the
// card that settles what the dealer's hole card turned out to be. Once that
// draw is resolved, the constraint is consumed: every deeper draw in the
// recursion runs against the unconstrained deck, matching the reference
// dealer_pmf implementation ("effectively consumed by the first draw only").
func DealerPMFGivenStart(total int, soft bool, deck Shoe, h17 bool, hc PeekConstraint, cache *Cache[dealerKey, DealerPMF]) DealerPMF {
	key := dealerKey{total: total, soft: soft, deck: deck, h17: h17, hc: hc}
	if v, ok := cache.Get(key); ok {
		return v
	}
	v := computeDealerPMF(total, soft, deck, h17, hc, cache)
	cache.Put(key, v)
	return v
}

func computeDealerPMF(total int, soft bool, deck Shoe, h17 bool, hc PeekConstraint, cache *Cache[dealerKey, DealerPMF]) DealerPMF {
	if total >= 17 {
		if total > 21 {
			var pmf DealerPMF
			pmf[dealerBustSlot] = 1.0
			return pmf
		}
		if !(h17 && soft && total == 17) {
			var pmf DealerPMF
			pmf[totalToSlot(total)] = 1.0
			return pmf
		}
	}

	view := deck.ViewMasked(hc)
	remaining := view.Sum()
	if remaining == 0 {
		// The shoe ran out before the dealer reached a standing total. This
		// is a pathological deck (never arises from a real multi-deck
		// shoe) and has no 17-21/bust slot to sit in; fold it into the
		// nearest representable terminal state rather than index out of
		// range, per §7's "gracefully return" policy for EmptyDeck.
		var pmf DealerPMF
		if total < 17 {
			pmf[0] = 1.0
		} else {
			pmf[totalToSlot(total)] = 1.0
		}
		return pmf
	}

	var pmf DealerPMF
	for r := Rank(0); r < NumRanks; r++ {
		cnt := view[r]
		if cnt == 0 {
			continue
		}
		p := float64(cnt) / float64(remaining)
		nextDeck, err := deck.Remove(r)
		if err != nil {
			panic("dealer pmf: view showed available card the real deck does not have: " + err.Error())
		}
		nt, ns := addRank(total, soft, r)
		// The constraint only ever governs the draw being weighted right
		// here; it does not apply to what the dealer draws afterward, so it
		// is not threaded any deeper than this one level of recursion.
		child := DealerPMFGivenStart(nt, ns, nextDeck, h17, NoConstraint, cache)
		for i, cv := range child {
			pmf[i] += p * cv
		}
	}
	return pmf
}

func addRank(total int, soft bool, r Rank) (int, bool) {
	newTotal := total + r.Value()
	newSoft := soft || r == Ace
	if newTotal > 21 && newSoft {
		newTotal -= 10
		newSoft = false
	}
	return newTotal, newSoft
}

// DealerBJProbability returns the probability the dealer holds a natural
// blackjack given upcard up, before any peek conditioning is applied to
// player EVs — derived directly off the unmasked deck's hole-card odds.
func DealerBJProbability(up Rank, deck Shoe) float64 {
	total := deck.Sum()
	if total == 0 {
		return 0
	}
	switch up {
	case Ace:
		return float64(deck[Ten]) / float64(total)
	case Ten:
		return float64(deck[Ace]) / float64(total)
	default:
		return 0
	}
}
