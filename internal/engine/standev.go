package engine

// StandEV returns the per-stake expected value of standing on a
// non-busted player total against a dealer upcard, under the given
// remaining deck and rules. Callers must never pass a busted playerTotal
// (>21): a busted hand's EV is always exactly -1*wager and is short-
// circuited by callers before reaching here (§4.D note), since the
// win/push bookkeeping below only accounts for 17-21 dealer outcomes.
func StandEV(playerTotal int, up Rank, deck Shoe, rules Rules, hc PeekConstraint, cache *Cache[dealerKey, DealerPMF]) float64 {
	start := DealerStart(up)
	pmf := DealerPMFGivenStart(start.Total, start.Soft, deck, rules.H17, hc, cache)

	win := pmf.PBust()
	for t := 17; t <= 21; t++ {
		if t < playerTotal {
			win += pmf.P(t)
		}
	}
	push := pmf.P(playerTotal)
	lose := 1.0 - win - push

	return win - lose
}
