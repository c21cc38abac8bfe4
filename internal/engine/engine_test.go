package engine

import "testing"

// freshAfterRemoving returns an 8-deck shoe with the given ranks removed,
// matching the "fresh counts after removing {...}" convention the seed
// scenarios describe.
func freshAfterRemoving(t *testing.T, ranks ...Rank) Shoe {
	t.Helper()
	s := Fresh(8)
	for _, r := range ranks {
		var err error
		s, err = s.Remove(r)
		if err != nil {
			t.Fatalf("freshAfterRemoving(%v): %v", ranks, err)
		}
	}
	return s
}

// S1 - 11 vs 6, can_double=true.
func TestDecideS1ElevenVsSixDoubles(t *testing.T) {
	e := NewEngine(DefaultRules())
	deck := freshAfterRemoving(t, Five, Six, Six)

	d, err := e.Decide([]Rank{Five, Six}, Six, deck, Eligibility{CanDouble: true}, DefaultRules())
	if err != nil {
		t.Fatalf("Decide: unexpected error %v", err)
	}
	if d.Action != ActionDouble {
		t.Errorf("S1 action = %v, want double", d.Action)
	}
	if d.EVDouble == nil {
		t.Fatal("S1 expected a non-nil double EV")
	}
	if *d.EVDouble < d.EVStand || *d.EVDouble < d.EVHit {
		t.Errorf("S1 double EV %v should be >= max(stand=%v, hit=%v)", *d.EVDouble, d.EVStand, d.EVHit)
	}
}

// S2 - (A,8) vs A, can_surrender=true, US peek.
func TestDecideS2SoftNineteenVsAceStands(t *testing.T) {
	rules := DefaultRules()
	rules.PeekRule = US
	e := NewEngine(rules)
	deck := freshAfterRemoving(t, Ace, Eight)

	d, err := e.Decide([]Rank{Ace, Eight}, Ace, deck, Eligibility{CanSurrender: true}, rules)
	if err != nil {
		t.Fatalf("Decide: unexpected error %v", err)
	}
	if d.Action != ActionStand {
		t.Errorf("S2 action = %v, want stand", d.Action)
	}
	if d.Conditioning != ConditioningNoDealerBJ {
		t.Errorf("S2 conditioning = %q, want %q", d.Conditioning, ConditioningNoDealerBJ)
	}

	insEV, err := e.Insurance(Ace, deck)
	if err != nil {
		t.Fatalf("Insurance: unexpected error %v", err)
	}
	p := e.DealerBJProbability(Ace, deck)
	wantEV := 1.5*p - 0.5
	if diff := insEV - wantEV; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("S2 insurance EV = %v, want %v", insEV, wantEV)
	}
}

// S4 - 8,8 vs 6 with can_split=true, max_splits=3.
func TestDecideS4EightsVsSixSplits(t *testing.T) {
	rules := DefaultRules()
	rules.MaxSplits = 3
	e := NewEngine(rules)
	deck := freshAfterRemoving(t, Eight, Eight)

	d, err := e.Decide([]Rank{Eight, Eight}, Six, deck, Eligibility{CanDouble: true, CanSplit: true}, rules)
	if err != nil {
		t.Fatalf("Decide: unexpected error %v", err)
	}
	if d.EVSplit == nil {
		t.Fatal("S4 expected a non-nil split EV with can_split=true")
	}
	if *d.EVSplit <= d.EVStand || *d.EVSplit <= d.EVHit {
		t.Errorf("S4 split EV %v should exceed both stand=%v and hit=%v", *d.EVSplit, d.EVStand, d.EVHit)
	}

	d2, err := e.Decide([]Rank{Eight, Eight}, Six, deck, Eligibility{CanDouble: true, CanSplit: false}, rules)
	if err != nil {
		t.Fatalf("Decide (no split): unexpected error %v", err)
	}
	if d2.EVSplit != nil {
		t.Error("S4 with can_split=false expected a nil split EV")
	}
}

// Regression: a deck down to its last copy of the pair rank must still
// report a split EV rather than silently dropping it, since splitting
// only needs cards to deal the children, not two more of the pair rank.
func TestDecideSplitSurvivesShoeDownToLastPairRankCard(t *testing.T) {
	rules := DefaultRules()
	rules.MaxSplits = 3
	e := NewEngine(rules)

	var deck Shoe
	deck[Eight] = 1
	deck[Two] = 10
	deck[Three] = 10
	deck[Four] = 10

	d, err := e.Decide([]Rank{Eight, Eight}, Six, deck, Eligibility{CanDouble: true, CanSplit: true}, rules)
	if err != nil {
		t.Fatalf("Decide: unexpected error %v", err)
	}
	if d.EVSplit == nil {
		t.Fatal("expected a non-nil split EV with only one pair-rank card left in the shoe")
	}
}

// S5 - EU mode, (A,8) vs A.
func TestDecideS5EUModeUnconditioned(t *testing.T) {
	rulesUS := DefaultRules()
	rulesUS.PeekRule = US
	eUS := NewEngine(rulesUS)
	deckUS := freshAfterRemoving(t, Ace, Eight)
	dUS, err := eUS.Decide([]Rank{Ace, Eight}, Ace, deckUS, Eligibility{CanSurrender: true}, rulesUS)
	if err != nil {
		t.Fatalf("Decide (US): unexpected error %v", err)
	}

	rulesEU := DefaultRules()
	rulesEU.PeekRule = EU
	eEU := NewEngine(rulesEU)
	deckEU := freshAfterRemoving(t, Ace, Eight)
	dEU, err := eEU.Decide([]Rank{Ace, Eight}, Ace, deckEU, Eligibility{CanSurrender: true}, rulesEU)
	if err != nil {
		t.Fatalf("Decide (EU): unexpected error %v", err)
	}

	if dEU.Conditioning != ConditioningUnconditioned {
		t.Errorf("S5 conditioning = %q, want %q", dEU.Conditioning, ConditioningUnconditioned)
	}
	if dEU.EVStand == dUS.EVStand {
		t.Errorf("S5 EU stand EV should differ from US stand EV, both = %v", dEU.EVStand)
	}
}

func TestDecideRejectsEmptyHand(t *testing.T) {
	e := NewEngine(DefaultRules())
	if _, err := e.Decide([]Rank{Ten}, Six, Fresh(8), Eligibility{}, DefaultRules()); err == nil {
		t.Fatal("Decide with a single-card hand expected an error")
	}
}

func TestDecideRejectsAlreadyBustedHand(t *testing.T) {
	e := NewEngine(DefaultRules())
	if _, err := e.Decide([]Rank{Ten, Nine, Five}, Six, Fresh(8), Eligibility{}, DefaultRules()); err == nil {
		t.Fatal("Decide on an already-busted hand expected an error")
	}
}

func TestDecideCountsInvarianceUnderRemovalOrder(t *testing.T) {
	e := NewEngine(DefaultRules())
	rules := DefaultRules()

	deckA := freshAfterRemoving(t, Five, Six, Six)
	deckB := freshAfterRemoving(t, Six, Five, Six)

	dA, err := e.Decide([]Rank{Five, Six}, Six, deckA, Eligibility{CanDouble: true}, rules)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	dB, err := e.Decide([]Rank{Five, Six}, Six, deckB, Eligibility{CanDouble: true}, rules)
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}

	if dA.EVStand != dB.EVStand || dA.EVHit != dB.EVHit {
		t.Error("decisions over the same counts removed in a different order should be identical (counts, not sequence, are the input)")
	}
}
