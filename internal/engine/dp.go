package engine

// HandEVs carries the per-stake expected value of each action legal from
// a given hand state. Double is nil when doubling was not offered to this
// call (§4.E): split and surrender are not modeled here, they are
// evaluated at the chooser level against the Stand/Hit/Double result.
type HandEVs struct {
	Stand  float64
	Hit    float64
	Double *float64
}

// Best returns the highest EV among the actions HandEVs actually carries.
func (h HandEVs) Best() float64 {
	best := h.Stand
	if h.Hit > best {
		best = h.Hit
	}
	if h.Double != nil && *h.Double > best {
		best = *h.Double
	}
	return best
}

type dpKey struct {
	total     int
	soft      bool
	up        Rank
	deck      Shoe
	depth     int
	canDouble bool
	hc        PeekConstraint
	h17       bool
}

// Evaluate computes the per-stake Stand/Hit[/Double] EVs for a non-busted
// hand of (total, soft) against dealer upcard up, over the remaining deck,
// at recursion depth depth (§4.E). canDouble gates whether Double is
// populated; it is always false below the top of the recursion, since a
// hand that has already drawn inside the DP can no longer double.
func Evaluate(total int, soft bool, up Rank, deck Shoe, depth int, canDouble bool, rules Rules, hc PeekConstraint, dealerCache *Cache[dealerKey, DealerPMF], dpCache *Cache[dpKey, HandEVs]) HandEVs {
	key := dpKey{total: total, soft: soft, up: up, deck: deck, depth: depth, canDouble: canDouble, hc: hc, h17: rules.H17}
	if v, ok := dpCache.Get(key); ok {
		return v
	}

	standEV := StandEV(total, up, deck, rules, hc, dealerCache)
	hitEV := hitExpectation(total, soft, up, deck, depth, rules, hc, dealerCache, dpCache)

	v := HandEVs{Stand: standEV, Hit: hitEV}
	if canDouble {
		d := doubleEVPerStake(total, soft, up, deck, rules, hc, dealerCache)
		v.Double = &d
	}

	dpCache.Put(key, v)
	return v
}

// hitExpectation is the EV of drawing exactly one more card from this hand
// and then continuing optimally: standing immediately at depth 0 (the
// bounded DP's truncation, §4.E), or recursing one depth further with
// doubling disabled otherwise. A resulting bust is short-circuited to -1
// rather than routed through StandEV, whose win/push accounting assumes a
// player total of 21 or less.
func hitExpectation(total int, soft bool, up Rank, deck Shoe, depth int, rules Rules, hc PeekConstraint, dealerCache *Cache[dealerKey, DealerPMF], dpCache *Cache[dpKey, HandEVs]) float64 {
	remaining := deck.Sum()
	if remaining == 0 {
		return -1
	}

	acc := 0.0
	for r := Rank(0); r < NumRanks; r++ {
		cnt := deck[r]
		if cnt == 0 {
			continue
		}
		p := float64(cnt) / float64(remaining)
		nextDeck, err := deck.Remove(r)
		if err != nil {
			panic("hit expectation: deck slot count inconsistent with availability: " + err.Error())
		}
		nt, ns := addRank(total, soft, r)

		var sub float64
		switch {
		case nt > 21:
			sub = -1
		case depth > 0:
			sub = Evaluate(nt, ns, up, nextDeck, depth-1, false, rules, hc, dealerCache, dpCache).Best()
		default:
			sub = StandEV(nt, up, nextDeck, rules, hc, dealerCache)
		}
		acc += p * sub
	}
	return acc
}
