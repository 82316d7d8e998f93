package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// snapshotKey is the row holding the serialized user table
const snapshotKey = "data"

// StateRepo keeps the user table as a single key-value row
type StateRepo struct {
	db *sql.DB
}

// NewStateRepo creates a new state repository
func NewStateRepo(db *sql.DB) *StateRepo {
	return &StateRepo{db: db}
}

// Name returns the backend name for logs
func (r *StateRepo) Name() string {
	return "postgres"
}

// Read returns the stored snapshot
func (r *StateRepo) Read(ctx context.Context) (string, bool, error) {
	var data string
	query := `SELECT data FROM state_snapshots WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, snapshotKey).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		// Nothing saved yet
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return data, true, nil
}

// Write overwrites the stored snapshot
func (r *StateRepo) Write(ctx context.Context, data string) error {
	query := `
		INSERT INTO state_snapshots (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, snapshotKey, data)
	return err
}
