package advisor

import (
	"context"
	"math/rand"
	"reflect"
	"testing"

	domain "gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/detect"
)

func trialDataset(n int) *dataset.Dataset {
	rng := rand.New(rand.NewSource(1))
	times := make([]float64, n)
	ages := make([]float64, n)
	events := make([]float64, n)
	groups := make([]string, n)
	for i := 0; i < n; i++ {
		times[i] = rng.NormFloat64()*40 + 200
		ages[i] = rng.NormFloat64()*8 + 60
		events[i] = float64(i % 2)
		if i%2 == 0 {
			groups[i] = "drug"
		} else {
			groups[i] = "placebo"
		}
	}
	return dataset.New("trial.csv", []*dataset.Column{
		dataset.NumericColumn("time_to_event", times),
		dataset.NumericColumn("death_occurred", events),
		dataset.NumericColumn("age", ages),
		dataset.TextColumn("treatment", groups, nil),
	})
}

var questionKeys = []string{
	"isNormal", "nGroups", "isPaired", "outcomeType", "varTypes",
	"nPredictors", "hasGroups_survival", "hasCovariates",
	"nComponents", "scaling_pca", "nClusters", "algorithm",
}

func TestProfileAnswersEveryQuestion(t *testing.T) {
	agg := NewAggregator(detect.DefaultOptions(), nil)
	profile := agg.Profile(context.Background(), trialDataset(90))

	for _, key := range questionKeys {
		if _, ok := profile.Confidence[key]; !ok {
			t.Errorf("confidence missing question key %q", key)
		}
	}
	if profile.Summary.TotalQuestions != len(profile.Confidence) {
		t.Errorf("summary counts %d questions, confidence map has %d",
			profile.Summary.TotalQuestions, len(profile.Confidence))
	}
	if profile.Summary.ConfidenceRate == "" {
		t.Error("summary has no confidence rate")
	}

	if profile.NGroups == nil || *profile.NGroups != 2 {
		t.Errorf("NGroups = %v, want 2 from the treatment column", profile.NGroups)
	}
	if col := profile.Details["nGroups"]["column"]; col != "treatment" {
		t.Errorf("nGroups column = %v, want treatment, not the event flag", col)
	}
	if profile.Survival == nil || profile.Survival.TimeColumn != "time_to_event" {
		t.Errorf("survival profile = %+v, want time_to_event detected", profile.Survival)
	}
}

func TestProfileIsDeterministic(t *testing.T) {
	agg := NewAggregator(detect.DefaultOptions(), nil)

	first := agg.Profile(context.Background(), trialDataset(90))
	second := agg.Profile(context.Background(), trialDataset(90))
	if !reflect.DeepEqual(first, second) {
		t.Error("profiling the same dataset twice disagrees")
	}
}

func TestProfileGroupFallbackWithoutCategoricalColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := make([]float64, 40)
	b := make([]float64, 40)
	for i := range a {
		a[i] = rng.NormFloat64()
		b[i] = rng.NormFloat64()
	}
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("a", a),
		dataset.NumericColumn("b", b),
	})

	agg := NewAggregator(detect.DefaultOptions(), nil)
	profile := agg.Profile(context.Background(), ds)

	if profile.NGroups == nil || *profile.NGroups != 2 {
		t.Fatalf("NGroups = %v, want the default of 2", profile.NGroups)
	}
	if profile.Confidence["nGroups"] != domain.ConfidenceLow {
		t.Errorf("nGroups confidence = %s, want low for a fallback", profile.Confidence["nGroups"])
	}
	if fallback, _ := profile.Details["nGroups"]["fallback"].(bool); !fallback {
		t.Errorf("details = %v, want fallback marker", profile.Details["nGroups"])
	}
}

func TestProfileSummaryRecommendation(t *testing.T) {
	agg := NewAggregator(detect.DefaultOptions(), nil)
	profile := agg.Profile(context.Background(), trialDataset(90))

	if profile.Summary.HighConfidence == profile.Summary.TotalQuestions {
		if profile.Summary.Recommendation != "All answers have high confidence" {
			t.Errorf("recommendation = %q", profile.Summary.Recommendation)
		}
	} else if profile.Summary.Recommendation != "Review low-confidence answers" {
		t.Errorf("recommendation = %q", profile.Summary.Recommendation)
	}
}
