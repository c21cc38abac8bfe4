package shadow

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rawblock/blackjack-engine/internal/engine"
)

// Runner compares a production decision against a shadow (candidate) rule
// configuration for the same hand, optionally persisting every comparison.
// A candidate configuration never affects what a player is told; it only
// runs alongside production to measure what it would have chosen.
type Runner struct {
	pool          *pgxpool.Pool
	snapshotID    int64
	productionEng *engine.Engine
	shadowEng     *engine.Engine
	shadowRules   engine.Rules
}

// Result captures one hand's production-vs-shadow comparison.
type Result struct {
	GameKey          string    `json:"gameKey"`
	ProductionAction string    `json:"productionAction"`
	ShadowAction     string    `json:"shadowAction"`
	DeltaEVStand     float64   `json:"deltaEvStand"`
	SnapshotID       int64     `json:"snapshotId"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewRunner builds a Runner that evaluates every hand against both
// productionRules (the live table's rules) and shadowRules (a candidate
// configuration under evaluation). pool may be nil, in which case
// comparisons are logged but not persisted.
func NewRunner(pool *pgxpool.Pool, snapshotID int64, productionRules, shadowRules engine.Rules) *Runner {
	return &Runner{
		pool:          pool,
		snapshotID:    snapshotID,
		productionEng: engine.NewEngine(productionRules),
		shadowEng:     engine.NewEngine(shadowRules),
		shadowRules:   shadowRules,
	}
}

// Compare runs the same hand through both engines and reports (and, if a
// pool is configured, persists) the divergence.
func (r *Runner) Compare(ctx context.Context, gameKey string, cards []engine.Rank, up engine.Rank, deck engine.Shoe, elig engine.Eligibility, productionRules engine.Rules) (*Result, error) {
	prod, err := r.productionEng.Decide(cards, up, deck, elig, productionRules)
	if err != nil {
		return nil, err
	}
	shadowDecision, err := r.shadowEng.Decide(cards, up, deck, elig, r.shadowRules)
	if err != nil {
		return nil, err
	}

	result := &Result{
		GameKey:          gameKey,
		ProductionAction: string(prod.Action),
		ShadowAction:     string(shadowDecision.Action),
		DeltaEVStand:     shadowDecision.EVStand - prod.EVStand,
		SnapshotID:       r.snapshotID,
		CreatedAt:        time.Now(),
	}

	if result.ProductionAction != result.ShadowAction {
		log.Printf("[shadow] DIVERGENCE game=%s production=%s shadow=%s delta_ev_stand=%.6f",
			gameKey, result.ProductionAction, result.ShadowAction, result.DeltaEVStand)
	}

	if r.pool != nil {
		if err := r.persist(ctx, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// persist writes the shadow comparison to the database.
func (r *Runner) persist(ctx context.Context, result *Result) error {
	sql := `INSERT INTO shadow_decisions
		(game_key, production_action, shadow_action, delta_ev_stand, snapshot_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, sql,
		result.GameKey,
		result.ProductionAction,
		result.ShadowAction,
		result.DeltaEVStand,
		result.SnapshotID,
		result.CreatedAt,
	)
	return err
}

// DriftReport computes the divergence rate between shadow and production
// over every comparison recorded for this runner's snapshot.
func (r *Runner) DriftReport(ctx context.Context) (totalRuns int, divergences int, avgDeltaEVStand float64, err error) {
	sql := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE production_action != shadow_action) AS divergences,
		COALESCE(AVG(delta_ev_stand), 0) AS avg_delta
	FROM shadow_decisions WHERE snapshot_id = $1`

	row := r.pool.QueryRow(ctx, sql, r.snapshotID)
	err = row.Scan(&totalRuns, &divergences, &avgDeltaEVStand)
	return
}
