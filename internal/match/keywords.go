// Package match holds the column-name keyword tables used by the heuristic
// detectors. Keeping them as enumerable tables (rather than inline string
// checks) makes the matching rules independently testable and extensible.
package match

import "strings"

// Table is an ordered list of lowercase keywords matched by substring,
// case-insensitively, against column names.
type Table []string

// Matches reports whether any keyword occurs in name.
func (t Table) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range t {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AnyOf reports whether any of the names matches the table.
func (t Table) AnyOf(names []string) bool {
	for _, n := range names {
		if t.Matches(n) {
			return true
		}
	}
	return false
}

// Filter returns the names that match the table, preserving order.
func (t Table) Filter(names []string) []string {
	var out []string
	for _, n := range names {
		if t.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// First returns the first matching name, or "" if none match.
func (t Table) First(names []string) string {
	for _, n := range names {
		if t.Matches(n) {
			return n
		}
	}
	return ""
}

var (
	// Identifier marks subject/identifier columns. Used by the pairing
	// detector and the classifier's identifier-like type.
	Identifier = Table{"id", "subject", "patient"}

	// TimeVisit marks repeated-measure/time columns for pairing detection.
	TimeVisit = Table{"time", "visit", "period", "pre", "post"}

	// Outcome marks likely outcome/dependent variables.
	Outcome = Table{"outcome", "result", "score", "value", "target", "y", "dependent"}

	// SurvivalTime marks time-to-event columns.
	SurvivalTime = Table{"time", "duration", "days", "months", "years", "survival", "followup", "follow_up"}

	// SurvivalEvent marks event/censoring indicator columns.
	SurvivalEvent = Table{"event", "status", "censored", "death", "died", "outcome", "occurred"}

	// NonPredictor marks numeric columns excluded from predictor counting.
	NonPredictor = Table{"id", "index", "row", "number"}
)
