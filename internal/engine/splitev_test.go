package engine

import "testing"

func TestEvaluateSplitRejectsEmptyDeck(t *testing.T) {
	var deck Shoe
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	if _, err := EvaluateSplit(Eight, Six, deck, rules, NoConstraint, dealerCache, dpCache); err == nil {
		t.Fatal("EvaluateSplit against a fully empty deck expected an error")
	}
}

func TestEvaluateSplitAcceptsAPairRankShortOnRemainingCards(t *testing.T) {
	// The pair's own two cards are already out of the shoe before
	// EvaluateSplit is ever called; splitting does not require two more of
	// that rank to still be in the deck, only cards available to deal each
	// child its second card. A deck down to its very last copy of the pair
	// rank must still be accepted.
	var deck Shoe
	deck[Eight] = 1
	deck[Six] = 4
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	if _, err := EvaluateSplit(Eight, Six, deck, rules, NoConstraint, dealerCache, dpCache); err != nil {
		t.Fatalf("EvaluateSplit: unexpected error %v", err)
	}
}

func TestEvaluateSplitEightsAgainstSix(t *testing.T) {
	deck := Fresh(8)
	deck[Eight] -= 2 // the pair itself is already out of the shoe
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	splitEV, err := EvaluateSplit(Eight, Six, deck, rules, NoConstraint, dealerCache, dpCache)
	if err != nil {
		t.Fatalf("EvaluateSplit: unexpected error %v", err)
	}

	evs := Evaluate(16, false, Six, deck, rules.DPDepth, true, rules, NoConstraint, dealerCache, dpCache)
	if splitEV <= evs.Stand || splitEV <= evs.Hit {
		t.Errorf("splitting 8,8 vs 6 should beat both standing (%v) and hitting (%v) on the unsplit 16, got split=%v", evs.Stand, evs.Hit, splitEV)
	}
}

func TestEvaluateSplitAcesOneCardTerminal(t *testing.T) {
	deck := Fresh(8)
	deck[Ace] -= 2
	rules := DefaultRules()
	rules.SplitAcesOne = true
	dealerCache, dpCache := newDealerCache(), newDPCache()

	splitEV, err := EvaluateSplit(Ace, Ten, deck, rules, NoConstraint, dealerCache, dpCache)
	if err != nil {
		t.Fatalf("EvaluateSplit(Ace): unexpected error %v", err)
	}
	if splitEV < -1-1e-9 || splitEV > 1+1e-9 {
		t.Errorf("split-aces EV = %v, want within [-1, 1]", splitEV)
	}
}
