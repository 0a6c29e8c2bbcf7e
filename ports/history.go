package ports

import (
	"context"
	"time"

	"gradstat/domain/core"
)

// AnalysisRecord is one persisted analysis request: which dataset was
// profiled, what question was asked, and what came back.
type AnalysisRecord struct {
	ID          core.ID         `db:"id" json:"id"`
	RequestID   core.RequestID  `db:"request_id" json:"request_id"`
	DatasetName string          `db:"dataset_name" json:"dataset_name"`
	ContentKey  core.ContentKey `db:"content_key" json:"content_key"`
	Intent      string          `db:"intent" json:"intent,omitempty"`
	NRows       int             `db:"n_rows" json:"n_rows"`
	NColumns    int             `db:"n_columns" json:"n_columns"`
	Profile     []byte          `db:"profile" json:"profile,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// HistoryRepository persists analysis records. Implementations must be safe
// for concurrent use; history is best-effort and callers tolerate a nil
// repository.
type HistoryRepository interface {
	Save(ctx context.Context, record *AnalysisRecord) error
	Recent(ctx context.Context, limit int) ([]AnalysisRecord, error)
	ByContentKey(ctx context.Context, key core.ContentKey) ([]AnalysisRecord, error)
}
