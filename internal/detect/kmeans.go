package detect

import (
	"math"
	"math/rand"
)

// kmeansInertia runs Lloyd's algorithm with a few seeded restarts and
// returns the best within-cluster sum of squares. Only the inertia curve is
// needed for the elbow heuristic, not cluster assignments.
func kmeansInertia(points [][]float64, k int, seed int64) float64 {
	const (
		restarts = 5
		maxIter  = 50
	)
	if k <= 0 || len(points) == 0 {
		return 0
	}
	if k >= len(points) {
		return 0
	}

	best := math.Inf(1)
	for r := 0; r < restarts; r++ {
		rng := rand.New(rand.NewSource(seed + int64(k)*31 + int64(r)))
		inertia := lloyd(points, k, maxIter, rng)
		if inertia < best {
			best = inertia
		}
	}
	return best
}

func lloyd(points [][]float64, k, maxIter int, rng *rand.Rand) float64 {
	dims := len(points[0])

	// Initialize centroids on distinct random points.
	perm := rng.Perm(len(points))
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), points[perm[i]]...)
	}

	assign := make([]int, len(points))
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, p := range points {
			nearest, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				d := squaredDistance(p, centroid)
				if d < bestDist {
					bestDist = d
					nearest = c
				}
			}
			if assign[i] != nearest {
				assign[i] = nearest
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := assign[i]
			counts[c]++
			for d, v := range p {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Empty cluster: reseed on a random point.
				centroids[c] = append([]float64(nil), points[rng.Intn(len(points))]...)
				continue
			}
			for d := range centroids[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	inertia := 0.0
	for i, p := range points {
		inertia += squaredDistance(p, centroids[assign[i]])
	}
	return inertia
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
