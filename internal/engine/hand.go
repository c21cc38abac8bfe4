package engine

// HandTotal is a player or dealer partial hand: the running total and
// whether an Ace is still being counted as 11 (soft).
type HandTotal struct {
	Total int
	Soft  bool
}

// Add folds rank r into h, applying the standard soft-ace demotion: a total
// over 21 while soft drops by 10 and clears the soft flag. A total over 21
// while not soft is a bust — callers check Total > 21 to detect it.
func (h HandTotal) Add(r Rank) HandTotal {
	h.Total += r.Value()
	if r == Ace {
		h.Soft = true
	}
	if h.Total > 21 && h.Soft {
		h.Total -= 10
		h.Soft = false
	}
	return h
}

// Bust reports whether h has busted (over 21 with no Ace left to demote).
func (h HandTotal) Bust() bool {
	return h.Total > 21
}

// HandFromCards folds an ordered list of ranks into a starting HandTotal.
func HandFromCards(cards []Rank) HandTotal {
	var h HandTotal
	for _, r := range cards {
		h = h.Add(r)
	}
	return h
}

// DealerStart returns the dealer's partial total/softness contributed by
// the upcard alone — the starting state the dealer PMF recursion begins
// from, per the stand-EV contract (§4.D).
func DealerStart(up Rank) HandTotal {
	return HandTotal{}.Add(up)
}

// IsPair reports whether cards is exactly two cards of equal rank — the
// only shape eligible for a split.
func IsPair(cards []Rank) (Rank, bool) {
	if len(cards) != 2 || cards[0] != cards[1] {
		return 0, false
	}
	return cards[0], true
}
