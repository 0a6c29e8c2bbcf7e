package ports

import (
	"context"

	"gradstat/domain/core"
)

// Cache stores computed dataset profiles keyed by content fingerprint so
// repeated analysis of the same upload skips the detector pass.
type Cache interface {
	Get(ctx context.Context, key core.ContentKey) (interface{}, bool)
	Set(ctx context.Context, key core.ContentKey, value interface{})
	Clear(ctx context.Context) int
	Stats(ctx context.Context) CacheStats
}

// CacheStats is the operational snapshot exposed on the ops endpoints.
type CacheStats struct {
	Entries     int     `json:"entries"`
	MaxEntries  int     `json:"max_entries"`
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	Evictions   int64   `json:"evictions"`
	Expirations int64   `json:"expirations"`
	TTLSeconds  int     `json:"ttl_seconds"`
}
