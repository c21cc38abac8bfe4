// Package simulate runs exact-composition blackjack hands end to end
// against the decision engine, for after-the-fact verification that the
// engine's predicted EVs track realized results (§4.N).
package simulate

import "github.com/rawblock/blackjack-engine/internal/engine"

// shouldSplitBasicStrategy applies a fixed basic-strategy split table to
// decide whether a pair splits, independent of the engine's exact split
// EV (§4.O): when Config.FastSplitGate is set, the simulator acts on this
// table's answer instead of the engine's split choice (Decide still
// computes the split EV), mirroring the reference simulator's
// get_basic_split_decision.
func shouldSplitBasicStrategy(pairRank, up engine.Rank, totalHandsInPlay, maxSplits int) bool {
	if totalHandsInPlay-1 >= maxSplits {
		return false
	}
	switch pairRank {
	case engine.Ace, engine.Eight:
		return true
	case engine.Nine:
		return up != engine.Seven && up != engine.Ten && up != engine.Ace
	case engine.Seven:
		return up <= engine.Seven
	case engine.Six:
		return up <= engine.Six
	case engine.Two, engine.Three:
		return up <= engine.Seven
	default:
		return false
	}
}
