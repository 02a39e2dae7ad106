package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hpsapps/daily/internal/models"
)

// PostgresSnapshotRepository persists the whole application state as a
// single JSON blob in one row, keyed by the well-known snapshot key. Every
// save is a full overwrite, so a failed write can never corrupt the
// previously stored state.
type PostgresSnapshotRepository struct {
	db  *sqlx.DB
	key string
}

// NewPostgresSnapshotRepository constructs a PostgresSnapshotRepository.
func NewPostgresSnapshotRepository(db *sqlx.DB, key string) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db, key: key}
}

// EnsureSchema creates the snapshot table when missing.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS app_snapshots (
		snapshot_key TEXT PRIMARY KEY,
		state JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Save overwrites the stored snapshot.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, state models.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state snapshot: %w", err)
	}

	const query = `INSERT INTO app_snapshots (snapshot_key, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (snapshot_key)
		DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, r.key, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("save state snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or (nil, nil) when none exists.
func (r *PostgresSnapshotRepository) Load(ctx context.Context) (*models.AppState, error) {
	const query = `SELECT state FROM app_snapshots WHERE snapshot_key = $1`
	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, r.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load state snapshot: %w", err)
	}

	var state models.AppState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state snapshot: %w", err)
	}
	return &state, nil
}
