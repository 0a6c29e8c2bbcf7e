package detect

import (
	"fmt"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/classify"
	"gradstat/internal/match"
)

// Outcome answers outcomeType. Selection follows a documented priority: the
// first column whose name carries an outcome keyword, else the last column
// by declaration order (an explicit fallback, noted in the details, not a
// guess dressed as certainty). Classification of the selected column is
// considered reliable, so confidence is high whenever a column is found.
func Outcome(ds *dataset.Dataset, opts Options) advisor.Detection {
	cols := ds.Columns()
	if len(cols) == 0 {
		return advisor.Failed("dataset has no columns")
	}

	names := ds.ColumnNames()
	selected := match.Outcome.First(names)
	selectionRule := "keyword"
	if selected == "" {
		selected = cols[len(cols)-1].Name
		selectionRule = "last_column"
	}

	col, _ := ds.Column(selected)
	profile := classify.Classify(col, opts.Classify)

	details := map[string]interface{}{
		"column":         selected,
		"selection_rule": selectionRule,
	}

	switch profile.SemanticType {
	case advisor.TypeContinuous:
		details["type"] = "continuous"
		return advisor.Detection{
			Answer:      "continuous",
			Confidence:  advisor.ConfidenceHigh,
			Explanation: fmt.Sprintf("Detected continuous outcome variable: '%s'", selected),
			Details:     details,
		}
	case advisor.TypeBinary:
		details["type"] = "binary"
		details["categories"] = col.UniqueValues()
		return advisor.Detection{
			Answer:      "binary",
			Confidence:  advisor.ConfidenceHigh,
			Explanation: fmt.Sprintf("Detected binary outcome variable: '%s' (2 categories)", selected),
			Details:     details,
		}
	default:
		details["type"] = "categorical"
		details["n_categories"] = profile.UniqueCount
		return advisor.Detection{
			Answer:      "categorical",
			Confidence:  advisor.ConfidenceHigh,
			Explanation: fmt.Sprintf("Detected categorical outcome variable: '%s' (%d categories)", selected, profile.UniqueCount),
			Details:     details,
		}
	}
}
