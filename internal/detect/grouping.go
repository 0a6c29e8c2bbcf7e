package detect

import (
	"fmt"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
)

// Grouping answers nGroups: among text columns with 2-10 distinct values,
// the first by declaration order is taken as the grouping variable and its
// level count is the answer. Only text-storage columns are candidates; a
// numeric 0/1 indicator is an event flag, not a grouping variable. When no
// suitable column exists the answer is nil at low confidence; the aggregator
// owns the explicit default-to-2 fallback so callers can tell a real
// detection from a convenience default.
func Grouping(ds *dataset.Dataset, opts Options) advisor.Detection {
	var categorical []string
	bestColumn := ""
	nGroups := 0
	var levels []string

	for _, col := range ds.TextColumns() {
		categorical = append(categorical, col.Name)
		if bestColumn != "" {
			continue
		}
		if n := col.UniqueCount(); n >= 2 && n <= 10 {
			bestColumn = col.Name
			nGroups = n
			levels = col.UniqueValues()
		}
	}

	if bestColumn == "" {
		explanation := "No suitable grouping variable found (need 2-10 groups)."
		if len(categorical) == 0 {
			explanation = "No categorical columns found."
		}
		return advisor.Detection{
			Answer:      nil,
			Confidence:  advisor.ConfidenceLow,
			Explanation: explanation,
			Details:     map[string]interface{}{"categorical_columns": categorical},
		}
	}

	return advisor.Detection{
		Answer:      nGroups,
		Confidence:  advisor.ConfidenceHigh,
		Explanation: fmt.Sprintf("Detected %d groups in column '%s'", nGroups, bestColumn),
		Details: map[string]interface{}{
			"column":              bestColumn,
			"groups":              levels,
			"categorical_columns": categorical,
		},
	}
}
