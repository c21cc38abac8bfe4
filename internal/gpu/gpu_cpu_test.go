//go:build !gpu

package gpu

import (
	"testing"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

func TestPrecomputeDealerPMFsWarmsEveryUpcard(t *testing.T) {
	rules := engine.DefaultRules()
	eng := engine.NewEngine(rules)
	deck := engine.Fresh(8)

	n, err := PrecomputeDealerPMFs(eng, deck, rules)
	if err != ErrGPUUnavailable {
		t.Errorf("PrecomputeDealerPMFs err = %v, want ErrGPUUnavailable", err)
	}
	want := int(engine.NumRanks) * 3
	if n != want {
		t.Errorf("PrecomputeDealerPMFs computed = %d, want %d", n, want)
	}
}
