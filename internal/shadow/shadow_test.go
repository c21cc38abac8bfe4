package shadow

import (
	"context"
	"testing"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

func TestCompareAgreesWhenRulesAreIdentical(t *testing.T) {
	rules := engine.DefaultRules()
	runner := NewRunner(nil, 1, rules, rules)

	deck := engine.Fresh(8)
	for _, r := range []engine.Rank{engine.Five, engine.Six, engine.Six} {
		var err error
		deck, err = deck.Remove(r)
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
	}

	result, err := runner.Compare(context.Background(), "g1",
		[]engine.Rank{engine.Five, engine.Six}, engine.Six, deck,
		engine.Eligibility{CanDouble: true}, rules)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.ProductionAction != result.ShadowAction {
		t.Errorf("identical rule sets diverged: production=%s shadow=%s", result.ProductionAction, result.ShadowAction)
	}
	if result.DeltaEVStand != 0 {
		t.Errorf("DeltaEVStand = %v, want 0 for identical configurations", result.DeltaEVStand)
	}
}

func TestCompareCanDivergeUnderDifferentH17(t *testing.T) {
	production := engine.DefaultRules()
	production.H17 = false
	shadowRules := engine.DefaultRules()
	shadowRules.H17 = true

	runner := NewRunner(nil, 1, production, shadowRules)
	deck := engine.Fresh(8)

	result, err := runner.Compare(context.Background(), "g2",
		[]engine.Rank{engine.Eight, engine.Eight}, engine.Six, deck,
		engine.Eligibility{CanSplit: true}, production)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if result.GameKey != "g2" {
		t.Errorf("GameKey = %q, want %q", result.GameKey, "g2")
	}
}

func TestEvaluatorSummarizeAgreementRate(t *testing.T) {
	ev := NewEvaluator()
	results := []Result{
		{ProductionAction: "stand", ShadowAction: "stand"},
		{ProductionAction: "hit", ShadowAction: "hit"},
		{ProductionAction: "double", ShadowAction: "hit"},
	}
	agreement := ev.Summarize(results)
	if agreement.N != 3 {
		t.Fatalf("N = %d, want 3", agreement.N)
	}
	want := 2.0 / 3.0
	if agreement.ExactMatchRate != want {
		t.Errorf("ExactMatchRate = %v, want %v", agreement.ExactMatchRate, want)
	}
}
