package classify

import (
	"math"
	"math/rand"
	"testing"
)

func normalSample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()*5 + 100
	}
	return out
}

func exponentialSample(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.ExpFloat64()
	}
	return out
}

func TestNormalityAcceptsGaussianData(t *testing.T) {
	res, err := TestNormality(normalSample(500, 1), 5000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PValue <= 0.05 {
		t.Errorf("p = %.4f, want > 0.05 for gaussian data", res.PValue)
	}
	if res.Approximate {
		t.Error("500 observations under a 5000 cap should not be approximate")
	}
}

func TestNormalityRejectsSkewedData(t *testing.T) {
	res, err := TestNormality(exponentialSample(500, 1), 5000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PValue > 0.05 {
		t.Errorf("p = %.4f, want <= 0.05 for exponential data", res.PValue)
	}
}

func TestNormalityInsufficientData(t *testing.T) {
	if _, err := TestNormality([]float64{1, 2}, 5000, 42); err == nil {
		t.Error("expected error for fewer than 3 observations")
	}
}

func TestNormalityZeroVariance(t *testing.T) {
	if _, err := TestNormality([]float64{7, 7, 7, 7}, 5000, 42); err == nil {
		t.Error("expected error for zero-variance data")
	}
}

func TestNormalitySubsamplingIsDeterministic(t *testing.T) {
	data := normalSample(20000, 3)

	first, err := TestNormality(data, 5000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := TestNormality(data, 5000, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Approximate || !second.Approximate {
		t.Error("capped runs should be flagged approximate")
	}
	if first.PValue != second.PValue {
		t.Errorf("same seed produced different p-values: %v vs %v", first.PValue, second.PValue)
	}
	if math.IsNaN(first.PValue) {
		t.Error("p-value should be finite")
	}
}
