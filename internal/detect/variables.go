package detect

import (
	"fmt"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/match"
)

// VariableTypes answers var1Type/var2Type for the find-relationships intent
// from the mix of numeric and textual columns present.
func VariableTypes(ds *dataset.Dataset) advisor.Detection {
	var numericNames, categoricalNames []string
	for _, col := range ds.Columns() {
		if col.Kind == dataset.KindNumeric {
			numericNames = append(numericNames, col.Name)
		} else {
			categoricalNames = append(categoricalNames, col.Name)
		}
	}

	details := map[string]interface{}{
		"numeric_columns":     numericNames,
		"categorical_columns": categoricalNames,
	}

	nNumeric, nCategorical := len(numericNames), len(categoricalNames)

	switch {
	case nNumeric >= 2:
		return advisor.Detection{
			Answer:      map[string]string{"var1Type": "continuous", "var2Type": "continuous"},
			Confidence:  advisor.ConfidenceHigh,
			Explanation: fmt.Sprintf("Found %d numeric variables - likely continuous-continuous relationship", nNumeric),
			Details:     details,
		}
	case nNumeric >= 1 && nCategorical >= 1:
		return advisor.Detection{
			Answer:      map[string]string{"var1Type": "continuous", "var2Type": "categorical"},
			Confidence:  advisor.ConfidenceHigh,
			Explanation: fmt.Sprintf("Found %d numeric and %d categorical variables", nNumeric, nCategorical),
			Details:     details,
		}
	case nCategorical >= 2:
		return advisor.Detection{
			Answer:      map[string]string{"var1Type": "categorical", "var2Type": "categorical"},
			Confidence:  advisor.ConfidenceHigh,
			Explanation: fmt.Sprintf("Found %d categorical variables", nCategorical),
			Details:     details,
		}
	default:
		return advisor.Detection{
			Answer:      nil,
			Confidence:  advisor.ConfidenceLow,
			Explanation: "Unable to determine variable types",
			Details:     map[string]interface{}{},
		}
	}
}

// Predictors answers nPredictors: numeric columns minus likely bookkeeping
// columns (id/index/row/number). Two means "multiple" to the resolver.
func Predictors(ds *dataset.Dataset) advisor.Detection {
	var predictors []string
	for _, col := range ds.NumericColumns() {
		if match.NonPredictor.Matches(col.Name) {
			continue
		}
		predictors = append(predictors, col.Name)
	}

	details := map[string]interface{}{"predictor_columns": predictors}

	if len(predictors) <= 1 {
		return advisor.Detection{
			Answer:      1,
			Confidence:  advisor.ConfidenceMedium,
			Explanation: fmt.Sprintf("Found %d potential predictor variable(s)", len(predictors)),
			Details:     details,
		}
	}
	return advisor.Detection{
		Answer:      2, // 2 means "multiple"
		Confidence:  advisor.ConfidenceHigh,
		Explanation: fmt.Sprintf("Found %d potential predictor variables", len(predictors)),
		Details:     details,
	}
}
