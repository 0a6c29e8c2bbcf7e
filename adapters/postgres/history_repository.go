package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gradstat/domain/core"
	"gradstat/ports"
)

// historyRepository implements the HistoryRepository interface
type historyRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new analysis history repository
func NewHistoryRepository(db *sqlx.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

const historySchema = `
CREATE TABLE IF NOT EXISTS analysis_history (
	id TEXT PRIMARY KEY,
	request_id TEXT NOT NULL,
	dataset_name TEXT NOT NULL,
	content_key TEXT NOT NULL,
	intent TEXT NOT NULL DEFAULT '',
	n_rows INTEGER NOT NULL,
	n_columns INTEGER NOT NULL,
	profile JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_analysis_history_content_key ON analysis_history (content_key);
CREATE INDEX IF NOT EXISTS idx_analysis_history_created_at ON analysis_history (created_at DESC);
`

// EnsureSchema creates the history table when it does not exist yet
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("failed to ensure history schema: %w", err)
	}
	return nil
}

// Save inserts an analysis record
func (r *historyRepository) Save(ctx context.Context, record *ports.AnalysisRecord) error {
	query := `INSERT INTO analysis_history (
		id, request_id, dataset_name, content_key, intent, n_rows, n_columns, profile, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.RequestID, record.DatasetName, record.ContentKey,
		record.Intent, record.NRows, record.NColumns, record.Profile, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}
	return nil
}

// Recent returns the newest analysis records, most recent first
func (r *historyRepository) Recent(ctx context.Context, limit int) ([]ports.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, request_id, dataset_name, content_key, intent, n_rows, n_columns, profile, created_at
		FROM analysis_history ORDER BY created_at DESC LIMIT $1`

	var records []ports.AnalysisRecord
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	return records, nil
}

// ByContentKey returns every analysis of one dataset fingerprint
func (r *historyRepository) ByContentKey(ctx context.Context, key core.ContentKey) ([]ports.AnalysisRecord, error) {
	query := `SELECT id, request_id, dataset_name, content_key, intent, n_rows, n_columns, profile, created_at
		FROM analysis_history WHERE content_key = $1 ORDER BY created_at DESC`

	var records []ports.AnalysisRecord
	if err := r.db.SelectContext(ctx, &records, query, key); err != nil {
		return nil, fmt.Errorf("failed to query analysis records: %w", err)
	}
	return records, nil
}
