package detect

import (
	"math"

	"github.com/montanaflynn/stats"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
)

// Clustering judges find-groups suitability: requires at least 2 numeric
// columns and 10 complete rows, applies the same 10x variance-ratio scaling
// rule as PCA, measures the outlier fraction with the per-dimension IQR rule
// on standardized data, picks an algorithm (dbscan when outlier-heavy,
// hierarchical for small data, k-means otherwise) and suggests k via a
// simplified elbow over the k-means inertia curve.
func Clustering(ds *dataset.Dataset, opts Options) *advisor.ClusteringProfile {
	profile := &advisor.ClusteringProfile{
		SuggestedAlgorithm: "kmeans",
		Confidence: map[string]advisor.Confidence{
			"n_clusters": advisor.ConfidenceLow,
			"algorithm":  advisor.ConfidenceMedium,
		},
		Details: map[string]interface{}{},
	}

	numeric := ds.NumericColumns()
	nVars := len(numeric)
	profile.NNumericVars = nVars

	if nVars < 2 {
		profile.Details["warning"] = "Need at least 2 numeric variables for clustering"
		return profile
	}

	rows := ds.CompleteRows(numeric)
	nSamples := len(rows)
	if nSamples < 10 {
		profile.Details["warning"] = "Need at least 10 observations for clustering"
		return profile
	}

	// Column-major copy of the complete cases.
	byVar := make([][]float64, nVars)
	for j, col := range numeric {
		byVar[j] = make([]float64, nSamples)
		for i, r := range rows {
			byVar[j][i] = col.Floats[r]
		}
	}

	minVar, maxVar := math.Inf(1), math.Inf(-1)
	for _, column := range byVar {
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
		profile.Details["variance_ratio"] = ratio
	}

	scaled := standardize(byVar)

	// IQR outlier rule per dimension: a row is an outlier if any of its
	// standardized values falls outside [Q1-1.5*IQR, Q3+1.5*IQR].
	outlier := make([]bool, nSamples)
	for _, column := range scaled {
		q1, err1 := stats.Percentile(column, 25)
		q3, err2 := stats.Percentile(column, 75)
		if err1 != nil || err2 != nil {
			continue
		}
		iqr := q3 - q1
		lo, hi := q1-1.5*iqr, q3+1.5*iqr
		for i, v := range column {
			if v < lo || v > hi {
				outlier[i] = true
			}
		}
	}
	outlierCount := 0
	for _, o := range outlier {
		if o {
			outlierCount++
		}
	}
	outlierPct := float64(outlierCount) / float64(nSamples) * 100
	profile.HasOutliers = outlierPct > 5
	profile.Details["outlier_pct"] = outlierPct

	switch {
	case profile.HasOutliers:
		profile.SuggestedAlgorithm = "dbscan"
		profile.Confidence["algorithm"] = advisor.ConfidenceMedium
	case nSamples < 1000:
		profile.SuggestedAlgorithm = "hierarchical"
		profile.Confidence["algorithm"] = advisor.ConfidenceMedium
	default:
		profile.SuggestedAlgorithm = "kmeans"
		profile.Confidence["algorithm"] = advisor.ConfidenceHigh
	}

	if profile.SuggestedAlgorithm == "dbscan" {
		// dbscan needs no k; reporting that is itself a confident answer.
		profile.SuggestedK = nil
		profile.Confidence["n_clusters"] = advisor.ConfidenceHigh
		return profile
	}

	// Simplified elbow: inertia for k in [2, min(11, n/10)), elbow at the
	// k maximizing the discrete second derivative of the curve.
	points := rowMajor(scaled, nSamples)
	var ks []int
	for k := 2; k < minInt(11, nSamples/10); k++ {
		ks = append(ks, k)
	}
	inertias := make([]float64, len(ks))
	for i, k := range ks {
		inertias[i] = kmeansInertia(points, k, opts.Classify.Seed)
	}

	if len(inertias) >= 3 {
		bestIdx, bestDeriv := 1, math.Inf(-1)
		for i := 1; i < len(inertias)-1; i++ {
			secondDeriv := inertias[i-1] - 2*inertias[i] + inertias[i+1]
			if secondDeriv > bestDeriv {
				bestDeriv = secondDeriv
				bestIdx = i
			}
		}
		k := ks[bestIdx]
		profile.SuggestedK = &k
		profile.Confidence["n_clusters"] = advisor.ConfidenceMedium
		profile.Details["inertia_curve"] = inertias
	} else {
		k := 3 // too few candidate values for an elbow
		profile.SuggestedK = &k
		profile.Confidence["n_clusters"] = advisor.ConfidenceLow
	}

	return profile
}

// standardize z-scores each dimension; zero-variance dimensions become all
// zeros rather than NaN.
func standardize(byVar [][]float64) [][]float64 {
	out := make([][]float64, len(byVar))
	for j, column := range byVar {
		mean, _ := stats.Mean(column)
		sd, _ := stats.StandardDeviation(column)
		out[j] = make([]float64, len(column))
		if sd == 0 {
			continue
		}
		for i, v := range column {
			out[j][i] = (v - mean) / sd
		}
	}
	return out
}

func rowMajor(byVar [][]float64, nSamples int) [][]float64 {
	points := make([][]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		points[i] = make([]float64, len(byVar))
		for j := range byVar {
			points[i][j] = byVar[j][i]
		}
	}
	return points
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
