package engine

import "fmt"

// surrenderEV is the fixed per-stake cost of late surrender: half the
// original wager is forfeited, independent of hand composition.
const surrenderEV = -0.5

// Engine wraps the two memoization caches a decision pass reuses across
// calls: the dealer PMF cache and the DP cache (§4.I). An Engine is safe
// for concurrent use; every exported method only ever reads the deck
// values it's given, never mutates caller state.
type Engine struct {
	dealerCache *Cache[dealerKey, DealerPMF]
	dpCache     *Cache[dpKey, HandEVs]
}

// NewEngine builds an Engine whose caches are sized per rules' configured
// capacities (falling back to DefaultRules' capacities when unset).
func NewEngine(rules Rules) *Engine {
	dealerCap := rules.CacheCapacityDealer
	if dealerCap <= 0 {
		dealerCap = DefaultRules().CacheCapacityDealer
	}
	dpCap := rules.CacheCapacityDP
	if dpCap <= 0 {
		dpCap = DefaultRules().CacheCapacityDP
	}
	return &Engine{
		dealerCache: NewCache[dealerKey, DealerPMF](dealerCap),
		dpCache:     NewCache[dpKey, HandEVs](dpCap),
	}
}

// WarmDealerPMF pre-populates the dealer PMF cache for a single
// (upcard, peek constraint) pair against deck, without returning the
// result to a caller. It exists so a bulk precompute pass (CPU or GPU) can
// warm the cache ahead of live decision traffic using the same cache the
// engine's own decisions will hit.
func (e *Engine) WarmDealerPMF(up Rank, deck Shoe, rules Rules, hc PeekConstraint) {
	start := DealerStart(up)
	DealerPMFGivenStart(start.Total, start.Soft, deck, rules.H17, hc, e.dealerCache)
}

// ClearCaches drops all memoized dealer PMF and DP state. Call this when
// the shoe is reshuffled to a fresh composition the caches have never
// seen productively before, to bound memory rather than for correctness.
func (e *Engine) ClearCaches() {
	e.dealerCache.Clear()
	e.dpCache.Clear()
}

// Decide is the primary external call (§6): given the player's cards, the
// dealer upcard, the remaining shoe composition, which actions the caller
// currently allows, and the table rules, compute every legal action's
// per-stake EV and choose the best by the §4.H override chain.
func (e *Engine) Decide(cards []Rank, up Rank, deck Shoe, elig Eligibility, rules Rules) (Decision, error) {
	if len(cards) < 2 {
		return Decision{}, ErrEmptyHand
	}
	hand := HandFromCards(cards)
	if hand.Bust() {
		return Decision{}, fmt.Errorf("%w: player hand already totals %d", ErrEmptyHand, hand.Total)
	}

	hc := HoleConstraint(rules.PeekRule, up)
	conditioning := conditioningFor(rules.PeekRule, up)

	canDouble := elig.CanDouble && len(cards) == 2
	evs := Evaluate(hand.Total, hand.Soft, up, deck, rules.DPDepth, canDouble, rules, hc, e.dealerCache, e.dpCache)

	d := Decision{
		EVStand:      evs.Stand,
		EVHit:        evs.Hit,
		EVDouble:     evs.Double,
		Conditioning: conditioning,
		DealerBJProb: DealerBJProbability(up, deck),
	}

	if elig.CanSplit {
		if pairRank, ok := IsPair(cards); ok && rules.MaxSplits > 0 {
			splitEV, err := EvaluateSplit(pairRank, up, deck, rules, hc, e.dealerCache, e.dpCache)
			if err == nil {
				d.EVSplit = &splitEV
			}
		}
	}

	if elig.CanSurrender {
		s := surrenderEV
		d.EVSurrender = &s
	}

	d.Action = chooseAction(d.EVStand, d.EVHit, d.EVDouble, d.EVSplit, d.EVSurrender, rules)
	return d, nil
}

// Insurance exposes the insurance side-bet EV as an external call.
func (e *Engine) Insurance(up Rank, deck Shoe) (float64, error) {
	return InsuranceEV(up, deck)
}

// EvaluateInsurance exposes the full insurance call (§4.J, §6 "Core call
// 2"): recommendation, both EV conventions, and the even-money flag.
func (e *Engine) EvaluateInsurance(up Rank, deck Shoe, playerCards []Rank) (InsuranceResult, error) {
	return EvaluateInsurance(up, deck, playerCards)
}

// DealerBJProbability exposes the dealer-natural probability as an
// external call, independent of any decision pass.
func (e *Engine) DealerBJProbability(up Rank, deck Shoe) float64 {
	return DealerBJProbability(up, deck)
}
