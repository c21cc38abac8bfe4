package metrics

import "github.com/rawblock/blackjack-engine/internal/engine"

var actionCode = map[engine.Action]int{
	engine.ActionStand:     0,
	engine.ActionHit:       1,
	engine.ActionDouble:    2,
	engine.ActionSplit:     3,
	engine.ActionSurrender: 4,
}

func encodeActions(actions []engine.Action) []int {
	codes := make([]int, len(actions))
	for i, a := range actions {
		codes[i] = actionCode[a]
	}
	return codes
}

// PolicyAgreement summarizes how closely two policies' action choices
// track each other over the same ordered batch of hands.
type PolicyAgreement struct {
	N         int
	ExactMatchRate float64
	ARI       float64
	VI        float64
}

// ComparePolicies computes agreement stats between a reference policy's
// chosen actions and a candidate's, over the same hands in the same
// order — the shadow runner's input for deciding whether a rule-set or
// cache change shifted behavior materially.
func ComparePolicies(reference, candidate []engine.Action) PolicyAgreement {
	n := len(reference)
	if n != len(candidate) {
		n = 0
		if len(reference) < len(candidate) {
			n = len(reference)
		} else {
			n = len(candidate)
		}
		reference = reference[:n]
		candidate = candidate[:n]
	}

	matches := 0
	for i := range reference {
		if reference[i] == candidate[i] {
			matches++
		}
	}

	agreement := PolicyAgreement{N: n}
	if n > 0 {
		agreement.ExactMatchRate = float64(matches) / float64(n)
	}
	if n >= 2 {
		refCodes, candCodes := encodeActions(reference), encodeActions(candidate)
		agreement.ARI = AdjustedRandIndex(candCodes, refCodes)
		agreement.VI = VariationOfInformation(candCodes, refCodes)
	}
	return agreement
}
