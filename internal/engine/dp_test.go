package engine

import "testing"

func newDPCache() *Cache[dpKey, HandEVs] {
	return NewCache[dpKey, HandEVs](10_000)
}

func TestEvaluateWithoutDoubleLeavesDoubleNil(t *testing.T) {
	deck := Fresh(8)
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	evs := Evaluate(16, false, Ten, deck, rules.DPDepth, false, rules, NoConstraint, dealerCache, dpCache)
	if evs.Double != nil {
		t.Errorf("Evaluate with canDouble=false should leave Double nil, got %v", *evs.Double)
	}
}

func TestEvaluateHitBeatsStandOnBustyTotal(t *testing.T) {
	deck := Fresh(8)
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	evs := Evaluate(12, false, Ten, deck, rules.DPDepth, false, rules, NoConstraint, dealerCache, dpCache)
	if evs.Hit <= evs.Stand {
		t.Errorf("hitting 12 against a dealer 10 should beat standing: hit=%v stand=%v", evs.Hit, evs.Stand)
	}
}

func TestEvaluateDepthZeroTruncatesToHitThenStand(t *testing.T) {
	deck := Fresh(8)
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	direct := hitExpectation(16, false, Ten, deck, 0, rules, NoConstraint, dealerCache, dpCache)

	dealerCache2, dpCache2 := newDealerCache(), newDPCache()
	evs := Evaluate(16, false, Ten, deck, 0, false, rules, NoConstraint, dealerCache2, dpCache2)

	if evs.Hit != direct {
		t.Errorf("Evaluate at depth 0's Hit = %v, want %v (matching a direct one-step hitExpectation call)", evs.Hit, direct)
	}
}

func TestHitExpectationEmptyDeck(t *testing.T) {
	var deck Shoe
	rules := DefaultRules()
	dealerCache, dpCache := newDealerCache(), newDPCache()

	ev := hitExpectation(16, false, Ten, deck, rules.DPDepth, rules, NoConstraint, dealerCache, dpCache)
	if ev != -1 {
		t.Errorf("hitExpectation against an empty deck = %v, want -1", ev)
	}
}
