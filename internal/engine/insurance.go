package engine

// InsuranceEV returns the per-original-stake EV of taking the side bet: an
// insurance wager costs half the original stake and pays 2:1 against a
// dealer natural (§4.J), so its expected profit collapses to
// (3*p - 1) / 2 once the half-stake cost is folded in. Break-even sits at
// p = 1/3.
func InsuranceEV(up Rank, deck Shoe) (float64, error) {
	if up != Ace {
		return 0, ErrDealerUpNotAce
	}
	p := DealerBJProbability(up, deck)
	return (3.0*p - 1.0) / 2.0, nil
}

// InsuranceEVPerInsuranceStake restates InsuranceEV in units of the
// insurance wager itself rather than the original stake: exactly double,
// since the insurance wager is always half the original (§8 property 8).
func InsuranceEVPerInsuranceStake(up Rank, deck Shoe) (float64, error) {
	perOriginal, err := InsuranceEV(up, deck)
	if err != nil {
		return 0, err
	}
	return 2.0 * perOriginal, nil
}

// breakEvenInsuranceP is the dealer-BJ probability at which the insurance
// side bet's EV crosses zero: p = 1/3, independent of the deck.
const breakEvenInsuranceP = 1.0 / 3.0

// InsuranceResult is the full insurance call (§4.J, §6 "Core call 2"):
// both EV conventions, the raw dealer-BJ probability driving them, the
// take/decline recommendation, and whether the held hand makes insurance
// equivalent to a guaranteed even-money payout.
type InsuranceResult struct {
	Recommendation      string
	EVPerOriginal       float64
	EVPerInsurance      float64
	PBJ                 float64
	BreakEvenP          float64
	EvenMoneyEquivalent bool
}

// EvaluateInsurance computes the full insurance call for a dealer Ace up:
// the recommendation (take iff p_bj > 1/3), both EV conventions, and the
// even-money flag, which is set when the held two cards are exactly {A,T}
// — taking insurance there locks in a guaranteed 1x payout regardless of
// the dealer's hole card.
func EvaluateInsurance(up Rank, deck Shoe, playerCards []Rank) (InsuranceResult, error) {
	evOriginal, err := InsuranceEV(up, deck)
	if err != nil {
		return InsuranceResult{}, err
	}
	evInsurance, err := InsuranceEVPerInsuranceStake(up, deck)
	if err != nil {
		return InsuranceResult{}, err
	}
	p := DealerBJProbability(up, deck)

	recommendation := "decline"
	if p > breakEvenInsuranceP {
		recommendation = "take"
	}

	return InsuranceResult{
		Recommendation:      recommendation,
		EVPerOriginal:       evOriginal,
		EVPerInsurance:      evInsurance,
		PBJ:                 p,
		BreakEvenP:          breakEvenInsuranceP,
		EvenMoneyEquivalent: isAceTen(playerCards),
	}, nil
}

// isAceTen reports whether cards is exactly a two-card {Ace, Ten} hand,
// in either deal order.
func isAceTen(cards []Rank) bool {
	if len(cards) != 2 {
		return false
	}
	return (cards[0] == Ace && cards[1] == Ten) || (cards[0] == Ten && cards[1] == Ace)
}
