package detect

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
)

// PCA judges dimension-reduction suitability: requires at least 3 numeric
// columns, suggests a component count from the variable count, flags when
// standardization is needed (variance disparity biases unscaled PCA), and
// labels the mean absolute pairwise correlation strength.
func PCA(ds *dataset.Dataset) *advisor.PCAProfile {
	profile := &advisor.PCAProfile{
		CorrelationStrength: advisor.ConfidenceLow,
		Confidence: map[string]advisor.Confidence{
			"n_components": advisor.ConfidenceLow,
			"scaling":      advisor.ConfidenceLow,
		},
		Details: map[string]interface{}{},
	}

	numeric := ds.NumericColumns()
	nVars := len(numeric)
	profile.NNumericVars = nVars

	if nVars < 3 {
		profile.Details["warning"] = "Need at least 3 numeric variables for PCA"
		return profile
	}

	suggested := int(math.Max(2, math.Min(math.Round(math.Sqrt(float64(nVars))), float64(nVars/2))))
	profile.SuggestedComponents = &suggested
	profile.Confidence["n_components"] = advisor.ConfidenceMedium
	if nVars >= 5 {
		profile.Confidence["n_components"] = advisor.ConfidenceHigh
	}

	// Complete cases across the numeric columns only; other columns'
	// missingness does not affect this detector.
	rows := ds.CompleteRows(numeric)
	if len(rows) == 0 {
		profile.Details["warning"] = "No complete rows across numeric columns"
		return profile
	}

	matrix := make([][]float64, nVars)
	for j, col := range numeric {
		matrix[j] = make([]float64, len(rows))
		for i, r := range rows {
			matrix[j][i] = col.Floats[r]
		}
	}

	// Scaling rule: largest-to-smallest column variance above 10x means
	// standardization is needed before PCA.
	minVar, maxVar := math.Inf(1), math.Inf(-1)
	for _, column := range matrix {
		v, err := stats.SampleVariance(column)
		if err != nil {
			continue
		}
		minVar = math.Min(minVar, v)
		maxVar = math.Max(maxVar, v)
	}
	if minVar > 0 && !math.IsInf(maxVar, -1) {
		ratio := maxVar / minVar
		profile.ScalingNeeded = ratio > 10
		profile.Confidence["scaling"] = advisor.ConfidenceHigh
		profile.Details["variance_ratio"] = ratio
	}

	// Mean absolute pairwise correlation over the upper triangle;
	// undefined pairs (zero-variance columns) are skipped.
	sum, count := 0.0, 0
	for a := 0; a < nVars; a++ {
		for b := a + 1; b < nVars; b++ {
			r := stat.Correlation(matrix[a], matrix[b], nil)
			if math.IsNaN(r) {
				continue
			}
			sum += math.Abs(r)
			count++
		}
	}
	if count > 0 {
		avg := sum / float64(count)
		switch {
		case avg > 0.5:
			profile.CorrelationStrength = advisor.ConfidenceHigh
		case avg > 0.3:
			profile.CorrelationStrength = advisor.ConfidenceMedium
		default:
			profile.CorrelationStrength = advisor.ConfidenceLow
		}
		profile.Details["avg_correlation"] = avg
	}

	return profile
}
