package detect

import (
	"fmt"
	"strings"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/classify"
)

// Normality answers isNormal for the whole dataset: every numeric column
// with at least 3 observations gets an approximate normality test, and the
// overall answer follows the fraction of columns that pass.
func Normality(ds *dataset.Dataset, opts Options) advisor.Detection {
	numeric := ds.NumericColumns()
	if len(numeric) == 0 {
		types := make(map[string]interface{}, len(ds.Columns()))
		for _, col := range ds.Columns() {
			types[col.Name] = string(col.Kind)
		}
		return advisor.Detection{
			Answer:      nil,
			Confidence:  advisor.ConfidenceLow,
			Explanation: "No numeric columns found in your data, so normality cannot be assessed.",
			Details:     map[string]interface{}{"column_types": types, "n_rows": ds.Rows()},
		}
	}

	perColumn := make(map[string]interface{}, len(numeric))
	normalCount, validCount := 0, 0
	var failures []string

	for _, col := range numeric {
		clean := col.CleanFloats()
		if len(clean) < 3 {
			msg := fmt.Sprintf("insufficient data: only %d observations", len(clean))
			perColumn[col.Name] = map[string]interface{}{"is_normal": nil, "error": msg, "n": len(clean)}
			failures = append(failures, col.Name+": "+msg)
			continue
		}
		res, err := classify.TestNormality(clean, opts.Classify.SampleCap, opts.Classify.Seed)
		if err != nil {
			perColumn[col.Name] = map[string]interface{}{"is_normal": nil, "error": err.Error(), "n": len(clean)}
			failures = append(failures, col.Name+": "+err.Error())
			continue
		}
		isNormal := res.PValue > 0.05
		perColumn[col.Name] = map[string]interface{}{
			"is_normal":   isNormal,
			"p_value":     res.PValue,
			"test":        "skew-kurtosis approximation",
			"n":           len(clean),
			"approximate": res.Approximate,
		}
		validCount++
		if isNormal {
			normalCount++
		}
	}

	if validCount == 0 {
		return advisor.Detection{
			Answer:      nil,
			Confidence:  advisor.ConfidenceLow,
			Explanation: "Unable to test normality (insufficient data or errors). " + strings.Join(failures, "; "),
			Details:     perColumn,
		}
	}

	normalPct := float64(normalCount) / float64(validCount) * 100

	var answer bool
	var confidence advisor.Confidence
	var explanation string
	switch {
	case normalPct >= 70:
		answer = true
		confidence = advisor.ConfidenceMedium
		if normalPct >= 80 {
			confidence = advisor.ConfidenceHigh
		}
		explanation = fmt.Sprintf("%d/%d variables (%.0f%%) are normally distributed (p > 0.05). Your data appears normal.",
			normalCount, validCount, normalPct)
	case normalPct <= 30:
		answer = false
		confidence = advisor.ConfidenceMedium
		if normalPct <= 20 {
			confidence = advisor.ConfidenceHigh
		}
		explanation = fmt.Sprintf("Only %d/%d variables (%.0f%%) are normally distributed. Consider non-parametric tests.",
			normalCount, validCount, normalPct)
	default:
		answer = false
		confidence = advisor.ConfidenceMedium
		explanation = fmt.Sprintf("Mixed results: %d/%d variables (%.0f%%) are normal. Consider non-parametric tests to be safe.",
			normalCount, validCount, normalPct)
	}

	return advisor.Detection{
		Answer:      answer,
		Confidence:  confidence,
		Explanation: explanation,
		Details:     perColumn,
	}
}
