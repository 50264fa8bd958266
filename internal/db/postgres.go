// Package db holds the PostgreSQL-backed audit trail: an append-only log
// of score update events, kept purely for historical analytics. Nothing
// in the leaderboard core reads from it — the in-memory board is never
// rehydrated from this table, so the no-crash-recovery guarantee of the
// core leaderboard state stays intact even though this package exists.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/IWhitebird/go-leader-board/config"
	"github.com/IWhitebird/go-leader-board/internal/audit"
)

// AuditRepository persists score_events rows to PostgreSQL.
type AuditRepository struct {
	db *sql.DB
}

// CreatePool opens a connection pool to the configured PostgreSQL
// database and verifies connectivity.
func CreatePool(cfg *config.AppConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
	)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// NewAuditRepository creates the score_events table if needed and returns
// a repository bound to it.
func NewAuditRepository(conn *sql.DB) (*AuditRepository, error) {
	const schema = `
CREATE TABLE IF NOT EXISTS score_events (
    id BIGSERIAL PRIMARY KEY,
    customer_id BIGINT NOT NULL,
    delta NUMERIC NOT NULL,
    new_score NUMERIC NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating score_events table: %w", err)
	}
	return &AuditRepository{db: conn}, nil
}

// SaveBatch appends a batch of score-update events to the audit trail.
func (r *AuditRepository) SaveBatch(ctx context.Context, events []audit.ScoreUpdatedEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO score_events (customer_id, delta, new_score, recorded_at)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err = stmt.ExecContext(ctx, ev.CustomerID, ev.Delta, ev.NewScore, ev.RecordedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}
