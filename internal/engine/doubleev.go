package engine

// doubleEVPerStake returns doubling's EV in units of the original stake
// (§9 Open Question: per-stake convention, directly comparable to Stand
// and Hit). Doubling draws exactly one card regardless of dp_depth and
// then must stand, so it always evaluates at one-step depth: the wager
// doubles, so the one-card-then-stand EV is scaled by 2.
func doubleEVPerStake(total int, soft bool, up Rank, deck Shoe, rules Rules, hc PeekConstraint, dealerCache *Cache[dealerKey, DealerPMF]) float64 {
	remaining := deck.Sum()
	if remaining == 0 {
		return -2
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
			panic("double ev: deck slot count inconsistent with availability: " + err.Error())
		}
		nt, _ := addRank(total, soft, r)

		var sub float64
		if nt > 21 {
			sub = -1
		} else {
			sub = StandEV(nt, up, nextDeck, rules, hc, dealerCache)
		}
		acc += p * sub
	}
	return 2.0 * acc
}
