// Package detect implements the structural pattern detectors: each scans the
// whole dataset for one signal (pairing, grouping, outcome type, survival
// columns, PCA/clustering suitability) and reports an answer with a
// confidence level and diagnostics. Detectors are independent pure functions
// and must survive dataset degeneracy by degrading to nil answers at low
// confidence instead of failing.
package detect

import "gradstat/internal/classify"

// Options tunes the detectors; it mirrors the classifier options plus the
// fixed seed shared by every sampled computation.
type Options struct {
	Classify classify.Options
}

// DefaultOptions mirror the service defaults.
func DefaultOptions() Options {
	return Options{Classify: classify.DefaultOptions()}
}
