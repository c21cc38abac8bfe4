package engine

// PeekConstraint restricts which ranks the dealer's hole card could have
// been after a US peek has cleared the upcard of an immediate blackjack.
// It conditions only the single draw that settles the hole card; it is
// consumed by that first dealer draw and never re-applied to any later
// draw in the dealer PMF recursion (it is still part of the dealer PMF
// cache key, see dealerKey, since it changes the weighting of that first
// draw).
type PeekConstraint int

const (
	// NoConstraint applies to EU tables and to any US upcard that is
	// neither Ace nor Ten (no peek occurs at all).
	NoConstraint PeekConstraint = iota
	// NotTen applies after a US peek clears a dealer Ace-up with no
	// blackjack: the hole card cannot have been a ten.
	NotTen
	// NotAce applies after a US peek clears a dealer ten-up with no
	// blackjack: the hole card cannot have been an Ace.
	NotAce
)

// PeekRule selects the table's hole-card peek convention.
type PeekRule int

const (
	// US enables the hole-card peek: the dealer resolves blackjack
	// immediately, so player EVs condition on "no dealer blackjack".
	US PeekRule = iota
	// EU withholds the hole card until after player action; no
	// conditioning is applied to player-facing EVs.
	EU
)

func (p PeekRule) String() string {
	if p == US {
		return "US"
	}
	return "EU"
}

// HoleConstraint derives the peek constraint a dealer upcard imposes under
// a table's peek rule.
func HoleConstraint(rule PeekRule, up Rank) PeekConstraint {
	if rule != US {
		return NoConstraint
	}
	switch up {
	case Ace:
		return NotTen
	case Ten:
		return NotAce
	default:
		return NoConstraint
	}
}

// Rules is the full set of table and evaluator knobs a decision is made
// under (§6 "Environment-switchable knobs").
type Rules struct {
	H17          bool    // dealer hits soft 17 if true, stands on all 17s if false
	BJPayout     float64 // e.g. 1.5
	DAS          bool    // double allowed after split
	MaxSplits    int     // cap on re-splits; total hands <= MaxSplits+1
	SplitAcesOne bool    // exactly one card to each split Ace, no further action
	PeekRule     PeekRule

	DPDepth       int // recursion depth for the hit evaluator
	DPDepthDouble int // separate double-context depth read by doubleDepth; the double evaluator draws one card and does not consult it

	DoubleMargin float64 // >= 0; conservative bias against doubling
	TieEps       float64 // numeric tolerance for action ties

	CacheCapacityDealer int
	CacheCapacityDP     int
}

// DefaultRules mirrors a standard 8-deck US-peek H17 table, matching the
// scenario seeds in spec §8.
func DefaultRules() Rules {
	return Rules{
		H17:                 true,
		BJPayout:            1.5,
		DAS:                 true,
		MaxSplits:            3,
		SplitAcesOne:        true,
		PeekRule:            US,
		DPDepth:             3,
		DPDepthDouble:       3,
		DoubleMargin:        0,
		TieEps:              1e-9,
		CacheCapacityDealer: 200_000,
		CacheCapacityDP:     300_000,
	}
}

// doubleDepth returns the configured double-context depth, falling back to
// DPDepth when DPDepthDouble is unset.
func (r Rules) doubleDepth() int {
	if r.DPDepthDouble > 0 {
		return r.DPDepthDouble
	}
	return r.DPDepth
}

// Eligibility carries the caller-asserted action gates for a single
// decision request. The engine never infers these beyond the structural
// "is this hand a splittable pair" check — gating policy (bankroll, table
// rules about resplitting aces, etc.) lives with the caller.
type Eligibility struct {
	CanDouble    bool
	CanSplit     bool
	CanSurrender bool
}

// Action is one of the five labels the chooser may emit.
type Action string

const (
	ActionStand     Action = "stand"
	ActionHit       Action = "hit"
	ActionDouble    Action = "double"
	ActionSplit     Action = "split"
	ActionSurrender Action = "surrender"
)

// Conditioning describes whether the reported EVs condition on the absence
// of a dealer blackjack (US peek, upcard A/T) or not.
const (
	ConditioningNoDealerBJ    = "no-dealer-BJ"
	ConditioningUnconditioned = "unconditioned"
)

func conditioningFor(rule PeekRule, up Rank) string {
	if rule == US && (up == Ace || up == Ten) {
		return ConditioningNoDealerBJ
	}
	return ConditioningUnconditioned
}
