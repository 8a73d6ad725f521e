// Package store persists completed analysis runs to PostgreSQL. Persistence
// is optional; the orchestrator runs fine without a store attached.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

// DBPool abstracts the pgxpool.Pool so tests can substitute pgxmock.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store provides a PostgreSQL implementation of the RunStore interface.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

var _ schemas.RunStore = (*Store)(nil)

// New creates a new store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// SaveRun writes the run header, the full envelope as JSONB, and one row per
// scored interaction inside a single transaction.
func (s *Store) SaveRun(ctx context.Context, envelope *schemas.ResultEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit returns ErrTxClosed; that is
		// expected, everything else deserves a log line.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	const insertRun = `
		INSERT INTO analysis_runs (run_id, created_at, envelope)
		VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insertRun, envelope.RunID, envelope.CreatedAt, payload); err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}

	const insertInteraction = `
		INSERT INTO risk_interactions (run_id, risk1_id, risk2_id, interaction_score, interaction_type)
		VALUES ($1, $2, $3, $4, $5)`
	for _, in := range envelope.Interactions {
		if _, err := tx.Exec(ctx, insertInteraction, envelope.RunID, in.Risk1ID, in.Risk2ID, in.Score, string(in.Type)); err != nil {
			return fmt.Errorf("failed to insert interaction (%d, %d): %w", in.Risk1ID, in.Risk2ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info("Analysis run persisted",
		zap.String("run_id", envelope.RunID),
		zap.Int("interactions", len(envelope.Interactions)),
	)
	return nil
}
