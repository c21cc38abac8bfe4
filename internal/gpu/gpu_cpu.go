//go:build !gpu

package gpu

import (
	"log"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// PrecomputeDealerPMFs is the CPU fallback used when the binary is built
// without the 'gpu' tag: it warms the dealer PMF cache sequentially
// instead of dispatching the bulk recursion to a GPU kernel. Correctness
// is identical either way — this only changes how fast a fresh shoe's
// cache gets warm.
func PrecomputeDealerPMFs(eng *engine.Engine, deck engine.Shoe, rules engine.Rules) (int, error) {
	log.Println("[gpu] built without CUDA support, precomputing dealer PMFs on CPU")
	computed := 0
	for up := engine.Rank(0); up < engine.NumRanks; up++ {
		for _, hc := range []engine.PeekConstraint{engine.NoConstraint, engine.NotTen, engine.NotAce} {
			eng.WarmDealerPMF(up, deck, rules, hc)
			computed++
		}
	}
	return computed, ErrGPUUnavailable
}
