package simulate

import (
	"context"
	"fmt"

	"github.com/rawblock/blackjack-engine/internal/engine"
	"github.com/rawblock/blackjack-engine/internal/feed"
	"github.com/rawblock/blackjack-engine/internal/shadow"
)

// Config controls a simulated run: the table rules the engine decides
// under, how many decks the shoe starts with, and when the shoe reshuffles
// (§4.N, grounded in the reference simulator's penetration handling).
type Config struct {
	Rules           engine.Rules
	NumDecks        int
	PenetrationStop float64 // reshuffle once remaining/initial falls below this
	Hands           int

	// FastSplitGate runs the basic-strategy split table (§4.O) instead of
	// the engine's full split-EV recursion to decide whether to split a
	// pair. The reference simulator does this to keep large-scale runs
	// cheap; the engine's exact split EV is still what a live decision
	// call reports, this only controls what the simulator itself acts on.
	FastSplitGate bool

	// ShadowRules, when non-nil, runs the opening decision of every dealt
	// hand where neither the dealer nor the player holds a blackjack
	// through a shadow.Runner alongside the production rules, the same
	// comparison a live table's shadow evaluation performs — letting a
	// simulation also double as a drift check between two rule
	// configurations instead of just one.
	ShadowRules *engine.Rules
}

// DefaultConfig mirrors a standard 8-deck table with 75% penetration.
func DefaultConfig() Config {
	return Config{
		Rules:           engine.DefaultRules(),
		NumDecks:        8,
		PenetrationStop: 0.25,
		Hands:           10_000,
		FastSplitGate:   true,
	}
}

// HandTrace records one played hand's decisions and realized outcome, the
// Go analogue of the reference simulator's per-hand trace line.
type HandTrace struct {
	DealerUp        engine.Rank
	FirstAction     engine.Action
	EVStand         float64
	EVHit           float64
	EVDouble        *float64
	StakeUnits      float64
	RealizedUnits   float64
	StandShadowUnit float64 // not assigned by Simulator; always zero in traces it produces
	InsuranceBet    float64
	InsuranceWon    bool
}

// Stats aggregates a run the way the reference aggregator summarizes
// run.csv: per-action hand counts, average realized units, and the share
// of hands that lost.
type Stats struct {
	HandsPlayed     int
	TotalWagered    float64
	TotalRealized   float64
	ByAction        map[engine.Action]*actionStats
	InsuranceBets   float64
	InsuranceProfit float64
}

type actionStats struct {
	N             int
	StakeUnits    float64
	RealizedUnits float64
	Negative      int
}

func newStats() *Stats {
	return &Stats{ByAction: make(map[engine.Action]*actionStats)}
}

func (s *Stats) record(t HandTrace) {
	s.HandsPlayed++
	s.TotalWagered += t.StakeUnits
	s.TotalRealized += t.RealizedUnits

	a, ok := s.ByAction[t.FirstAction]
	if !ok {
		a = &actionStats{}
		s.ByAction[t.FirstAction] = a
	}
	a.N++
	a.StakeUnits += t.StakeUnits
	a.RealizedUnits += t.RealizedUnits
	if t.RealizedUnits < 0 {
		a.Negative++
	}

	s.InsuranceBets += t.InsuranceBet
	if t.InsuranceBet > 0 {
		if t.InsuranceWon {
			s.InsuranceProfit += 2.0 * t.InsuranceBet
		} else {
			s.InsuranceProfit -= t.InsuranceBet
		}
	}
}

// Simulator plays hands against the engine's decisions, drawing cards from
// a feed.ShoeFeed and reshuffling it at the configured penetration (§4.N).
// It exists to validate, after the fact, that the engine's predicted EVs
// track realized outcomes over many hands — not to serve decisions itself.
type Simulator struct {
	cfg          Config
	eng          *engine.Engine
	feed         feed.ShoeFeed
	initN        int
	traces       []HandTrace
	shadowRunner *shadow.Runner
	shadowLog    []shadow.Result
}

// NewSimulator builds a Simulator that draws cards from src, a freshly
// reset feed per cfg.NumDecks. Passing a feed.DeterministicFeed instead of
// a feed.RandomFeed makes a run reproducible from a committed seed, the
// same provably-fair guarantee the feed package exists to offer a live
// table.
func NewSimulator(cfg Config, eng *engine.Engine, src feed.ShoeFeed) *Simulator {
	src.Reset(cfg.NumDecks)
	s := &Simulator{
		cfg:   cfg,
		eng:   eng,
		feed:  src,
		initN: src.Remaining().Sum(),
	}
	if cfg.ShadowRules != nil {
		s.shadowRunner = shadow.NewRunner(nil, 0, cfg.Rules, *cfg.ShadowRules)
	}
	return s
}

// ShadowResults returns every opening-decision production-vs-shadow
// comparison recorded during Run, empty when Config.ShadowRules was nil.
func (s *Simulator) ShadowResults() []shadow.Result {
	return s.shadowLog
}

// Run plays cfg.Hands hands and returns the aggregated stats plus every
// hand's trace, reshuffling the shoe whenever penetration is exhausted.
func (s *Simulator) Run() (*Stats, []HandTrace) {
	stats := newStats()
	for i := 0; i < s.cfg.Hands; i++ {
		if float64(s.feed.Remaining().Sum())/float64(s.initN) < s.cfg.PenetrationStop {
			s.feed.Reset(s.cfg.NumDecks)
			s.eng.ClearCaches()
		}
		trace := s.playHand(i)
		stats.record(trace)
		s.traces = append(s.traces, trace)
	}
	return stats, s.traces
}

// draw removes one card from the feed and returns it; it panics only if
// called against an empty shoe, which Run's penetration check prevents in
// practice.
func (s *Simulator) draw() engine.Rank {
	r, err := s.feed.Draw()
	if err != nil {
		panic(fmt.Sprintf("simulate: draw against an exhausted feed: %v", err))
	}
	return r
}

// playHand deals one round, resolves insurance if offered, runs the
// engine's decision loop to completion (including any splits), and
// settles every resulting hand against the revealed dealer total. index
// is this hand's position in the run, used only to label shadow
// comparisons.
func (s *Simulator) playHand(index int) HandTrace {
	playerCards := []engine.Rank{s.draw(), s.draw()}
	up := s.draw()
	hole := s.draw() // dealt face down; only resolved into the shoe accounting at showdown

	trace := HandTrace{DealerUp: up}

	if up == engine.Ace {
		p, _ := s.eng.Insurance(up, s.feed.Remaining())
		if p > 0 {
			trace.InsuranceBet = 0.5
			trace.InsuranceWon = hole == engine.Ten
		}
	}

	dealerBust, dealerTotal := false, 0
	dealerHasBJ := hole == engine.Ten && up == engine.Ace || hole == engine.Ace && up == engine.Ten

	playerHandBJ := engine.HandFromCards(playerCards).Total == 21

	if s.shadowRunner != nil && !dealerHasBJ && !playerHandBJ {
		elig := engine.Eligibility{CanDouble: true, CanSurrender: true}
		if _, isPair := engine.IsPair(playerCards); isPair {
			elig.CanSplit = s.cfg.Rules.MaxSplits > 0
		}
		gameKey := fmt.Sprintf("sim-hand-%d", index)
		if res, err := s.shadowRunner.Compare(context.Background(), gameKey, playerCards, up, s.feed.Remaining(), elig, s.cfg.Rules); err == nil {
			s.shadowLog = append(s.shadowLog, *res)
		}
	}

	var outcomes []handOutcome
	if dealerHasBJ {
		outcomes = []handOutcome{{cards: playerCards, stake: 1, realized: bjSettlement(playerHandBJ)}}
	} else if playerHandBJ {
		outcomes = []handOutcome{{cards: playerCards, stake: 1, realized: s.cfg.Rules.BJPayout}}
	} else {
		outcomes = s.playOutHands(playerCards, up, 0)
		dealerTotal, dealerBust = s.resolveDealer(up, hole)
		for i := range outcomes {
			if outcomes[i].settled {
				continue
			}
			outcomes[i].realized = settleAgainstDealer(outcomes[i], dealerTotal, dealerBust)
		}
	}

	var totalStake, totalRealized float64
	for _, o := range outcomes {
		totalStake += o.stake
		totalRealized += o.realized
	}
	trace.StakeUnits = totalStake
	trace.RealizedUnits = totalRealized
	if len(outcomes) > 0 {
		trace.FirstAction = outcomes[0].firstAction
		trace.EVStand = outcomes[0].evStand
		trace.EVHit = outcomes[0].evHit
		trace.EVDouble = outcomes[0].evDouble
	}
	return trace
}

// bjSettlement resolves a dealer-blackjack showdown: push if the player
// also has one, a full loss of the original stake otherwise.
func bjSettlement(playerHasBJ bool) float64 {
	if playerHasBJ {
		return 0
	}
	return -1
}

type handOutcome struct {
	cards       []engine.Rank
	stake       float64
	realized    float64
	settled     bool // true once a bust has already fixed the outcome
	firstAction engine.Action
	evStand     float64
	evHit       float64
	evDouble    *float64
}

// playOutHands runs the engine's decision loop against a single hand,
// recursing once per split child with splitDepth+1. A pair is offered a
// further split while splitDepth < Rules.MaxSplits; the engine's own split
// EV for that offer still never models re-splitting.
func (s *Simulator) playOutHands(cards []engine.Rank, up engine.Rank, splitDepth int) []handOutcome {
	elig := engine.Eligibility{
		CanDouble:    len(cards) == 2,
		CanSplit:     splitDepth < s.cfg.Rules.MaxSplits,
		CanSurrender: len(cards) == 2 && splitDepth == 0,
	}
	if _, isPair := engine.IsPair(cards); !isPair {
		elig.CanSplit = false
	}

	decision, err := s.eng.Decide(cards, up, s.feed.Remaining(), elig, s.cfg.Rules)
	if err != nil {
		return []handOutcome{{cards: cards, stake: 1, realized: -1, settled: true}}
	}

	out := handOutcome{firstAction: decision.Action, evStand: decision.EVStand, evHit: decision.EVHit, evDouble: decision.EVDouble}

	actualAction := decision.Action
	if s.cfg.FastSplitGate && elig.CanSplit {
		if pairRank, ok := engine.IsPair(cards); ok && shouldSplitBasicStrategy(pairRank, up, splitDepth+1, s.cfg.Rules.MaxSplits) {
			actualAction = engine.ActionSplit
		} else if actualAction == engine.ActionSplit {
			// The engine's exact split EV favored splitting but the fast
			// gate doesn't: fall back to the best of the decision's
			// non-split actions (stand/hit/double/surrender).
			actualAction = fallbackWithoutSplit(decision)
		}
	}

	if actualAction == engine.ActionSplit {
		pairRank, _ := engine.IsPair(cards)
		left := s.draw()
		leftHand := []engine.Rank{pairRank, left}
		right := s.draw()
		rightHand := []engine.Rank{pairRank, right}

		if pairRank == engine.Ace && s.cfg.Rules.SplitAcesOne {
			return []handOutcome{
				s.settleTerminalTwoCard(leftHand, up),
				s.settleTerminalTwoCard(rightHand, up),
			}
		}

		var results []handOutcome
		results = append(results, s.playOutHands(leftHand, up, splitDepth+1)...)
		results = append(results, s.playOutHands(rightHand, up, splitDepth+1)...)
		return results
	}

	if actualAction == engine.ActionSurrender {
		out.stake = 1
		out.realized = -0.5
		out.settled = true
		return []handOutcome{out}
	}

	total, stake := engine.HandFromCards(cards), 1.0
	curCards := append([]engine.Rank(nil), cards...)

	if actualAction == engine.ActionDouble {
		stake = 2
		curCards = append(curCards, s.draw())
		total = engine.HandFromCards(curCards)
		if total.Bust() {
			out.stake = stake
			out.realized = -stake
			out.settled = true
			return []handOutcome{out}
		}
		out.stake = stake
		return []handOutcome{out}
	}

	for actualAction == engine.ActionHit {
		curCards = append(curCards, s.draw())
		total = engine.HandFromCards(curCards)
		if total.Bust() {
			out.stake = stake
			out.realized = -stake
			out.settled = true
			return []handOutcome{out}
		}
		decision, err = s.eng.Decide(curCards, up, s.feed.Remaining(), engine.Eligibility{}, s.cfg.Rules)
		if err != nil {
			break
		}
		actualAction = decision.Action
	}

	out.stake = stake
	return []handOutcome{out}
}

// fallbackWithoutSplit returns the best of a decision's non-split actions,
// used when the fast split gate declines a split the engine's exact split
// EV would otherwise have chosen.
func fallbackWithoutSplit(d engine.Decision) engine.Action {
	best := d.EVStand
	action := engine.ActionStand
	if d.EVHit > best {
		best = d.EVHit
		action = engine.ActionHit
	}
	if d.EVDouble != nil && *d.EVDouble > best {
		best = *d.EVDouble
		action = engine.ActionDouble
	}
	if d.EVSurrender != nil && *d.EVSurrender > best {
		action = engine.ActionSurrender
	}
	return action
}

// settleTerminalTwoCard resolves a split-ace child that receives exactly
// one card and no further action, per Rules.SplitAcesOne.
func (s *Simulator) settleTerminalTwoCard(cards []engine.Rank, up engine.Rank) handOutcome {
	hand := engine.HandFromCards(cards)
	if hand.Bust() {
		return handOutcome{cards: cards, stake: 1, realized: -1, settled: true}
	}
	return handOutcome{cards: cards, stake: 1}
}

// resolveDealer plays the dealer's hand to completion against the actual
// shoe, starting from the known upcard and hole card, and returns the
// final total (undefined when bust is true).
func (s *Simulator) resolveDealer(up, hole engine.Rank) (total int, bust bool) {
	hand := engine.HandFromCards([]engine.Rank{up, hole})
	for {
		if hand.Bust() {
			return 0, true
		}
		if hand.Total >= 17 && !(s.cfg.Rules.H17 && hand.Soft && hand.Total == 17) {
			return hand.Total, false
		}
		hand = hand.Add(s.draw())
	}
}

// settleAgainstDealer resolves a non-busted, non-blackjack hand's
// win/push/lose against the dealer's final outcome.
func settleAgainstDealer(o handOutcome, dealerTotal int, dealerBust bool) float64 {
	playerTotal := engine.HandFromCards(o.cards).Total
	switch {
	case dealerBust:
		return o.stake
	case playerTotal > dealerTotal:
		return o.stake
	case playerTotal == dealerTotal:
		return 0
	default:
		return -o.stake
	}
}
