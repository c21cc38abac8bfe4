package shadow

import (
	"github.com/rawblock/blackjack-engine/internal/engine"
	"github.com/rawblock/blackjack-engine/internal/metrics"
)

// Evaluator reduces a batch of Results into structural agreement metrics
// (ARI, VI) over the production/shadow action sequences, delegating the
// actual computation to the metrics package rather than approximating it.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Summarize computes agreement metrics across every comparison in results,
// in the order they were recorded.
func (e *Evaluator) Summarize(results []Result) metrics.PolicyAgreement {
	production := make([]engine.Action, len(results))
	shadowSeq := make([]engine.Action, len(results))
	for i, r := range results {
		production[i] = engine.Action(r.ProductionAction)
		shadowSeq[i] = engine.Action(r.ShadowAction)
	}
	return metrics.ComparePolicies(production, shadowSeq)
}
