package simulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// WriteTraceCSV writes one row per hand trace, the Go analogue of the
// reference simulator's doubles.log -> doubles.csv extraction: each row
// carries the EVs the engine offered alongside what actually happened.
func WriteTraceCSV(w io.Writer, traces []HandTrace) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"dealer_up", "action", "ev_stand", "ev_hit", "ev_double", "stake_units", "realized_units", "ins_bet"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, t := range traces {
		evDouble := ""
		if t.EVDouble != nil {
			evDouble = fmt.Sprintf("%.6f", *t.EVDouble)
		}
		row := []string{
			t.DealerUp.String(),
			string(t.FirstAction),
			fmt.Sprintf("%.6f", t.EVStand),
			fmt.Sprintf("%.6f", t.EVHit),
			evDouble,
			fmt.Sprintf("%.4f", t.StakeUnits),
			fmt.Sprintf("%.4f", t.RealizedUnits),
			fmt.Sprintf("%.4f", t.InsuranceBet),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// Summary is one action's aggregated line in a run report, matching the
// reference aggregator's per-action table (n, avg units, negative%).
type Summary struct {
	Action          string
	N               int
	AvgStakeUnits   float64
	AvgRealizedUnit float64
	NegativePct     float64
}

// Summarize reduces Stats into a sorted, printable per-action report.
func Summarize(s *Stats) []Summary {
	out := make([]Summary, 0, len(s.ByAction))
	for action, a := range s.ByAction {
		if a.N == 0 {
			continue
		}
		out = append(out, Summary{
			Action:          string(action),
			N:               a.N,
			AvgStakeUnits:   a.StakeUnits / float64(a.N),
			AvgRealizedUnit: a.RealizedUnits / float64(a.N),
			NegativePct:     100 * float64(a.Negative) / float64(a.N),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// WriteSummary prints the per-action report in the reference aggregator's
// column layout, plus the overall wagered/realized totals.
func WriteSummary(w io.Writer, s *Stats) error {
	summaries := Summarize(s)
	if _, err := fmt.Fprintf(w, "%-10s %8s %12s %12s %10s\n", "action", "n", "avg_stake", "avg_units", "neg_pct"); err != nil {
		return err
	}
	for _, row := range summaries {
		if _, err := fmt.Fprintf(w, "%-10s %8d %12.4f %12.4f %9.1f%%\n",
			row.Action, row.N, row.AvgStakeUnits, row.AvgRealizedUnit, row.NegativePct); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nhands=%d wagered=%.2f realized=%.2f insurance_bets=%.2f insurance_pnl=%.2f\n",
		s.HandsPlayed, s.TotalWagered, s.TotalRealized, s.InsuranceBets, s.InsuranceProfit)
	return err
}
