package advisor

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"

	domain "gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal"
	"gradstat/internal/detect"
)

// detectorParallelism caps how many detectors run at once; the clustering and
// normality detectors both burn CPU on larger datasets.
const detectorParallelism = 4

// Aggregator runs every structural detector against a dataset and assembles
// one DatasetProfile answering all wizard questions at once. Detectors run
// concurrently and independently; a panicking detector degrades to a nil
// answer at low confidence instead of taking the profile down with it.
type Aggregator struct {
	opts   detect.Options
	logger *internal.Logger
}

func NewAggregator(opts detect.Options, logger *internal.Logger) *Aggregator {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Aggregator{opts: opts, logger: logger.Named("aggregator")}
}

// Profile answers every wizard question for the dataset. The same dataset
// always yields the same profile; all sampled computations share a fixed seed.
func (a *Aggregator) Profile(ctx context.Context, ds *dataset.Dataset) *domain.DatasetProfile {
	var (
		normality  domain.Detection
		grouping   domain.Detection
		pairing    domain.Detection
		outcome    domain.Detection
		varTypes   domain.Detection
		predictors domain.Detection
		survival   *domain.SurvivalProfile
		pca        *domain.PCAProfile
		clustering *domain.ClusteringProfile
	)

	tasks := []struct {
		name string
		run  func()
	}{
		{"isNormal", func() { normality = detect.Normality(ds, a.opts) }},
		{"nGroups", func() { grouping = detect.Grouping(ds, a.opts) }},
		{"isPaired", func() { pairing = detect.Pairing(ds) }},
		{"outcomeType", func() { outcome = detect.Outcome(ds, a.opts) }},
		{"varTypes", func() { varTypes = detect.VariableTypes(ds) }},
		{"nPredictors", func() { predictors = detect.Predictors(ds) }},
		{"survival", func() { survival = detect.Survival(ds, a.opts) }},
		{"pca", func() { pca = detect.PCA(ds) }},
		{"clustering", func() { clustering = detect.Clustering(ds, a.opts) }},
	}

	failed := make([]error, len(tasks))
	sem := semaphore.NewWeighted(detectorParallelism)
	var wg sync.WaitGroup
	for i, task := range tasks {
		if err := sem.Acquire(ctx, 1); err != nil {
			failed[i] = err
			continue
		}
		wg.Add(1)
		go func(i int, name string, run func()) {
			defer wg.Done()
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					failed[i] = fmt.Errorf("detector %s panicked: %v", name, r)
				}
			}()
			run()
		}(i, task.name, task.run)
	}
	wg.Wait()

	for i, err := range failed {
		if err == nil {
			continue
		}
		a.logger.Error("detection failed: %v", err)
		deg := domain.Failed(err.Error())
		switch tasks[i].name {
		case "isNormal":
			normality = deg
		case "nGroups":
			grouping = deg
		case "isPaired":
			pairing = deg
		case "outcomeType":
			outcome = deg
		case "varTypes":
			varTypes = deg
		case "nPredictors":
			predictors = deg
		case "survival":
			survival = nil
		case "pca":
			pca = nil
		case "clustering":
			clustering = nil
		}
	}

	profile := &domain.DatasetProfile{
		Confidence: make(map[string]domain.Confidence),
		Details:    make(map[string]map[string]interface{}),
	}

	if b, ok := normality.Answer.(bool); ok {
		profile.IsNormal = &b
	}
	profile.Confidence["isNormal"] = normality.Confidence
	profile.Details["isNormal"] = normality.Details

	a.applyGrouping(profile, grouping)

	if b, ok := pairing.Answer.(bool); ok {
		profile.IsPaired = &b
	}
	profile.Confidence["isPaired"] = pairing.Confidence
	profile.Details["isPaired"] = pairing.Details

	if s, ok := outcome.Answer.(string); ok {
		profile.OutcomeType = s
	}
	profile.Confidence["outcomeType"] = outcome.Confidence
	profile.Details["outcomeType"] = outcome.Details

	if m, ok := varTypes.Answer.(map[string]string); ok {
		profile.Var1Type = m["var1Type"]
		profile.Var2Type = m["var2Type"]
	}
	profile.Confidence["varTypes"] = varTypes.Confidence
	profile.Details["varTypes"] = varTypes.Details

	if n, ok := predictors.Answer.(int); ok {
		profile.NPredictors = &n
	}
	profile.Confidence["nPredictors"] = predictors.Confidence
	profile.Details["nPredictors"] = predictors.Details

	if survival != nil {
		profile.Survival = survival
		profile.Confidence["hasGroups_survival"] = confidenceOrLow(survival.Confidence, "has_groups")
		profile.Confidence["hasCovariates"] = confidenceOrLow(survival.Confidence, "has_covariates")
		profile.Details["survival"] = survival.Details
	} else {
		profile.Confidence["hasGroups_survival"] = domain.ConfidenceLow
		profile.Confidence["hasCovariates"] = domain.ConfidenceLow
	}

	if pca != nil {
		profile.PCA = pca
		profile.Confidence["nComponents"] = confidenceOrLow(pca.Confidence, "n_components")
		profile.Confidence["scaling_pca"] = confidenceOrLow(pca.Confidence, "scaling")
		profile.Details["pca"] = pca.Details
	} else {
		profile.Confidence["nComponents"] = domain.ConfidenceLow
		profile.Confidence["scaling_pca"] = domain.ConfidenceLow
	}

	if clustering != nil {
		profile.Clustering = clustering
		profile.Confidence["nClusters"] = confidenceOrLow(clustering.Confidence, "n_clusters")
		profile.Confidence["algorithm"] = confidenceOrLow(clustering.Confidence, "algorithm")
		profile.Details["clustering"] = clustering.Details
	} else {
		profile.Confidence["nClusters"] = domain.ConfidenceLow
		profile.Confidence["algorithm"] = domain.ConfidenceLow
	}

	profile.Summary = summarize(profile.Confidence)
	a.logger.Debug("profiled dataset: %d/%d questions at high confidence",
		profile.Summary.HighConfidence, profile.Summary.TotalQuestions)
	return profile
}

// applyGrouping records the group-count detection, defaulting to 2 groups
// when the dataset has no categorical columns at all. The default carries a
// fallback marker so callers can tell a real detection from a convenience
// answer.
func (a *Aggregator) applyGrouping(profile *domain.DatasetProfile, grouping domain.Detection) {
	if n, ok := grouping.Answer.(int); ok {
		profile.NGroups = &n
		profile.Confidence["nGroups"] = grouping.Confidence
		profile.Details["nGroups"] = grouping.Details
		return
	}

	noCategorical := false
	if cats, ok := grouping.Details["categorical_columns"].([]string); ok {
		noCategorical = len(cats) == 0
	}
	if noCategorical {
		two := 2
		profile.NGroups = &two
		profile.Confidence["nGroups"] = domain.ConfidenceLow
		profile.Details["nGroups"] = map[string]interface{}{
			"categorical_columns": []string{},
			"fallback":            true,
			"note":                "No groups detected, using default of 2 - please verify this is correct for your analysis.",
		}
		return
	}

	profile.Confidence["nGroups"] = grouping.Confidence
	profile.Details["nGroups"] = grouping.Details
}

func summarize(confidence map[string]domain.Confidence) domain.Summary {
	total := len(confidence)
	high := 0
	for _, c := range confidence {
		if c == domain.ConfidenceHigh {
			high++
		}
	}
	recommendation := "All answers have high confidence"
	if high < total {
		recommendation = "Review low-confidence answers"
	}
	rate := "0%"
	if total > 0 {
		rate = fmt.Sprintf("%.0f%%", float64(high)/float64(total)*100)
	}
	return domain.Summary{
		TotalQuestions: total,
		HighConfidence: high,
		ConfidenceRate: rate,
		Recommendation: recommendation,
	}
}

func confidenceOrLow(m map[string]domain.Confidence, key string) domain.Confidence {
	if c, ok := m[key]; ok && c != "" {
		return c
	}
	return domain.ConfidenceLow
}
