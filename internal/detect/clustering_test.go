package detect

import (
	"reflect"
	"testing"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
)

func TestClusteringTooFewVariables(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("x", gaussian(50, 0, 1, 1)),
	})

	profile := Clustering(ds, DefaultOptions())
	if _, ok := profile.Details["warning"]; !ok {
		t.Error("expected a warning detail below 2 numeric variables")
	}
	if profile.SuggestedK != nil {
		t.Errorf("SuggestedK = %v, want nil", *profile.SuggestedK)
	}
}

func TestClusteringTooFewRows(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("x", gaussian(5, 0, 1, 1)),
		dataset.NumericColumn("y", gaussian(5, 0, 1, 2)),
	})

	profile := Clustering(ds, DefaultOptions())
	if _, ok := profile.Details["warning"]; !ok {
		t.Error("expected a warning detail below 10 observations")
	}
}

func TestClusteringOutliersSuggestDBSCAN(t *testing.T) {
	// Tight cloud with a tenth of the points flung far out.
	x := gaussian(100, 0, 1, 1)
	y := gaussian(100, 0, 1, 2)
	for i := 0; i < 10; i++ {
		x[i*10] += 50
		y[i*10] -= 50
	}
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("x", x),
		dataset.NumericColumn("y", y),
	})

	profile := Clustering(ds, DefaultOptions())
	if !profile.HasOutliers {
		t.Fatal("HasOutliers = false, want true")
	}
	if profile.SuggestedAlgorithm != "dbscan" {
		t.Errorf("SuggestedAlgorithm = %q, want dbscan", profile.SuggestedAlgorithm)
	}
	if profile.SuggestedK != nil {
		t.Errorf("SuggestedK = %v, want nil for dbscan", *profile.SuggestedK)
	}
	if profile.Confidence["n_clusters"] != advisor.ConfidenceHigh {
		t.Errorf("n_clusters confidence = %s, want high (dbscan needs no k)", profile.Confidence["n_clusters"])
	}
}

func TestClusteringSmallCleanDataPrefersHierarchical(t *testing.T) {
	// Two well-separated blobs, no outliers relative to either dimension's
	// overall spread.
	x := append(gaussian(100, -5, 1, 1), gaussian(100, 5, 1, 2)...)
	y := append(gaussian(100, -5, 1, 3), gaussian(100, 5, 1, 4)...)
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("x", x),
		dataset.NumericColumn("y", y),
	})

	profile := Clustering(ds, DefaultOptions())
	if profile.HasOutliers {
		t.Fatalf("HasOutliers = true (%.1f%%), fixture should be clean", profile.Details["outlier_pct"])
	}
	if profile.SuggestedAlgorithm != "hierarchical" {
		t.Errorf("SuggestedAlgorithm = %q, want hierarchical under 1000 rows", profile.SuggestedAlgorithm)
	}
	if profile.SuggestedK == nil {
		t.Fatal("SuggestedK = nil, want a value from the elbow")
	}
	if k := *profile.SuggestedK; k < 2 || k > 10 {
		t.Errorf("SuggestedK = %d, want within [2,10]", k)
	}
}

func TestClusteringDeterministicWithFixedSeed(t *testing.T) {
	x := append(gaussian(150, -3, 1, 5), gaussian(150, 3, 1, 6)...)
	y := append(gaussian(150, -3, 1, 7), gaussian(150, 3, 1, 8)...)
	build := func() *dataset.Dataset {
		return dataset.New("t", []*dataset.Column{
			dataset.NumericColumn("x", append([]float64(nil), x...)),
			dataset.NumericColumn("y", append([]float64(nil), y...)),
		})
	}

	first := Clustering(build(), DefaultOptions())
	second := Clustering(build(), DefaultOptions())
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated runs on the same data disagree")
	}
}
