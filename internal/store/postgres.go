package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditStore persists a durable decision audit trail to PostgreSQL: every
// Decide call's inputs and chosen action, for after-the-fact review of a
// session's play. It is optional — a Store works standalone in memory;
// an AuditStore is a side channel a caller may also write to.
type AuditStore struct {
	pool *pgxpool.Pool
}

// ConnectAudit opens a pgx pool against connStr and verifies connectivity.
func ConnectAudit(ctx context.Context, connStr string) (*AuditStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping failed: %w", err)
	}
	log.Println("connected to PostgreSQL for decision audit")
	return &AuditStore{pool: pool}, nil
}

// Close releases the pool.
func (a *AuditStore) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// InitSchema loads and executes the audit schema. The file path matches
// where a deployment is expected to ship schema.sql alongside the binary.
func (a *AuditStore) InitSchema(ctx context.Context) error {
	path := os.Getenv("AUDIT_SCHEMA_PATH")
	if path == "" {
		path = "internal/store/schema.sql"
	}
	schemaBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := a.pool.Exec(ctx, string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema migrations: %w", err)
	}
	log.Println("decision audit schema initialized")
	return nil
}

// RecordDecision appends one decision event to the audit log.
func (a *AuditStore) RecordDecision(ctx context.Context, sessionKey string, dealerUp string, handCards string, action string, evStand, evHit float64, countsHash string) error {
	const q = `
		INSERT INTO decision_audit (session_key, dealer_up, hand_cards, action, ev_stand, ev_hit, counts_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := a.pool.Exec(ctx, q, sessionKey, dealerUp, handCards, action, evStand, evHit, countsHash)
	if err != nil {
		return fmt.Errorf("failed to insert decision_audit row: %w", err)
	}
	return nil
}

// RecentForSession returns the most recent audited decisions for a
// session, newest first, bounded by limit.
func (a *AuditStore) RecentForSession(ctx context.Context, sessionKey string, limit int) ([]DecisionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	const q = `
		SELECT dealer_up, hand_cards, action, ev_stand, ev_hit, counts_hash, recorded_at
		FROM decision_audit
		WHERE session_key = $1
		ORDER BY recorded_at DESC
		LIMIT $2;
	`
	rows, err := a.pool.Query(ctx, q, sessionKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query decision_audit: %w", err)
	}
	defer rows.Close()

	var records []DecisionRecord
	for rows.Next() {
		var rec DecisionRecord
		if err := rows.Scan(&rec.DealerUp, &rec.HandCards, &rec.Action, &rec.EVStand, &rec.EVHit, &rec.CountsHash, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision_audit row: %w", err)
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []DecisionRecord{}
	}
	return records, nil
}

// DecisionRecord is one row of the audit log.
type DecisionRecord struct {
	DealerUp   string
	HandCards  string
	Action     string
	EVStand    float64
	EVHit      float64
	CountsHash string
	RecordedAt time.Time
}
