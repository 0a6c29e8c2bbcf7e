package detect

import (
	"math/rand"

	"gradstat/domain/dataset"
)

// Shared dataset builders for the detector tests.

func gaussian(n int, mean, sd float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()*sd + mean
	}
	return out
}

func skewed(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.ExpFloat64()
	}
	return out
}

func repeatText(values []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = values[i%len(values)]
	}
	return out
}

func clinicalDataset(n int) *dataset.Dataset {
	events := make([]float64, n)
	for i := range events {
		if i%3 == 0 {
			events[i] = 0
		} else {
			events[i] = 1
		}
	}
	return dataset.New("trial.csv", []*dataset.Column{
		dataset.NumericColumn("time_to_event", gaussian(n, 200, 40, 1)),
		dataset.NumericColumn("death_occurred", events),
		dataset.NumericColumn("age", gaussian(n, 60, 8, 2)),
		dataset.TextColumn("treatment", repeatText([]string{"drug", "placebo"}, n), nil),
	})
}
