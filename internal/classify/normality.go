package classify

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// NormalityResult holds the outcome of an approximate normality test.
type NormalityResult struct {
	PValue float64
	N      int
	// Approximate is true when the column exceeded the sample cap and a
	// seeded subsample was tested instead of the full column.
	Approximate bool
}

// TestNormality runs an approximate normality test on data: a combined
// skewness/kurtosis statistic mapped through a chi-squared distribution.
// Samples larger than cap are reduced to a seeded random subsample, so the
// p-value for huge columns is approximate, not exact. Requires at least 3
// observations; degenerate input (zero variance) is an error, never a panic.
func TestNormality(data []float64, cap int, seed int64) (NormalityResult, error) {
	res := NormalityResult{N: len(data)}
	if len(data) < 3 {
		return res, fmt.Errorf("insufficient data: only %d observations", len(data))
	}

	sample := data
	if cap > 0 && len(data) > cap {
		sample = subsample(data, cap, seed)
		res.Approximate = true
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return res, err
	}
	stdDev, err := stats.StandardDeviation(sample)
	if err != nil {
		return res, err
	}
	if stdDev == 0 {
		return res, fmt.Errorf("degenerate column: zero variance")
	}

	skewness := sampleSkewness(sample, mean, stdDev)
	kurtosis := sampleKurtosis(sample, mean, stdDev)

	// Combined skewness/excess-kurtosis statistic against a chi-squared
	// reference with 2 degrees of freedom.
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	res.PValue = 1 - chiDist.CDF(testStat*testStat)

	if math.IsNaN(res.PValue) {
		return res, fmt.Errorf("normality statistic undefined")
	}
	return res, nil
}

// subsample picks n values using a seeded shuffle so repeated runs on the
// same dataset are reproducible.
func subsample(data []float64, n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(len(data))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = data[idx[i]]
	}
	return out
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient of skewness.
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return 0
	}
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}
	skew := sum / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skew * correction
}

// sampleKurtosis computes bias-corrected sample kurtosis (not excess).
func sampleKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 {
		return 3
	}
	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}
	kurtosis := sum / n
	excess := kurtosis - 3
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		excess = excess*correction + 6/(n+1)
	}
	return excess + 3
}
