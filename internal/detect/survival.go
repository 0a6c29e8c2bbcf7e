package detect

import (
	"sort"

	"github.com/montanaflynn/stats"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/match"
)

// Survival identifies the time-to-event and event-indicator columns plus
// grouping/covariate availability for survival analysis. Candidates are
// scored high on keyword match and medium on shape alone; the event column
// must be strictly 0/1-coded (numeric, boolean, or the string forms "0"/"1"
// - anything uncoercible is simply not a candidate, never a crash).
func Survival(ds *dataset.Dataset, opts Options) *advisor.SurvivalProfile {
	profile := &advisor.SurvivalProfile{
		CovariateColumns: []string{},
		Confidence: map[string]advisor.Confidence{
			"time_column":    advisor.ConfidenceLow,
			"event_column":   advisor.ConfidenceLow,
			"has_groups":     advisor.ConfidenceLow,
			"has_covariates": advisor.ConfidenceLow,
		},
		Details: map[string]interface{}{},
	}

	numeric := ds.NumericColumns()

	// Time column: keyword match scores high; any non-negative numeric
	// column with a positive maximum scores medium. Keyword matches win
	// ties, then higher mean among the rest.
	type candidate struct {
		name string
		high bool
		mean float64
	}
	var timeCandidates []candidate
	for _, col := range numeric {
		clean := col.CleanFloats()
		if len(clean) == 0 {
			continue
		}
		mean, _ := stats.Mean(clean)
		if match.SurvivalTime.Matches(col.Name) {
			timeCandidates = append(timeCandidates, candidate{col.Name, true, mean})
			continue
		}
		min, _ := stats.Min(clean)
		max, _ := stats.Max(clean)
		if min >= 0 && max > 0 {
			timeCandidates = append(timeCandidates, candidate{col.Name, false, mean})
		}
	}
	if len(timeCandidates) > 0 {
		sort.SliceStable(timeCandidates, func(i, j int) bool {
			if timeCandidates[i].high != timeCandidates[j].high {
				return timeCandidates[i].high
			}
			return timeCandidates[i].mean > timeCandidates[j].mean
		})
		profile.TimeColumn = timeCandidates[0].name
		profile.Confidence["time_column"] = advisor.ConfidenceMedium
		if timeCandidates[0].high {
			profile.Confidence["time_column"] = advisor.ConfidenceHigh
		}
		names := make([]string, len(timeCandidates))
		for i, c := range timeCandidates {
			names[i] = c.name
		}
		profile.Details["time_column_candidates"] = names
	}

	// Event column: strictly binary 0/1-style columns only.
	var eventCandidates []candidate
	for _, col := range ds.Columns() {
		if !col.IsZeroOneCoded() {
			continue
		}
		eventCandidates = append(eventCandidates, candidate{
			name: col.Name,
			high: match.SurvivalEvent.Matches(col.Name),
		})
	}
	if len(eventCandidates) > 0 {
		sort.SliceStable(eventCandidates, func(i, j int) bool {
			return eventCandidates[i].high && !eventCandidates[j].high
		})
		profile.EventColumn = eventCandidates[0].name
		profile.Confidence["event_column"] = advisor.ConfidenceMedium
		if eventCandidates[0].high {
			profile.Confidence["event_column"] = advisor.ConfidenceHigh
		}
		names := make([]string, len(eventCandidates))
		for i, c := range eventCandidates {
			names[i] = c.name
		}
		profile.Details["event_column_candidates"] = names

		if eventCol, ok := ds.Column(profile.EventColumn); ok && ds.Rows() > 0 {
			censored := eventCol.CountEqualZero()
			profile.Details["censoring_pct"] = float64(censored) / float64(ds.Rows()) * 100
		}
	}

	// Group column: textual columns with 2-5 levels.
	var groupCandidates []string
	for _, col := range ds.TextColumns() {
		if n := col.UniqueCount(); n >= 2 && n <= 5 {
			groupCandidates = append(groupCandidates, col.Name)
		}
	}
	if len(groupCandidates) > 0 {
		profile.HasGroups = true
		profile.GroupColumn = groupCandidates[0]
		profile.Confidence["has_groups"] = advisor.ConfidenceMedium
		if len(groupCandidates) == 1 {
			profile.Confidence["has_groups"] = advisor.ConfidenceHigh
		}
		profile.Details["group_column_candidates"] = groupCandidates
	} else {
		profile.Confidence["has_groups"] = advisor.ConfidenceMedium
	}

	// Covariates: remaining numeric columns after time/event exclusion.
	for _, col := range numeric {
		if col.Name == profile.TimeColumn || col.Name == profile.EventColumn {
			continue
		}
		profile.CovariateColumns = append(profile.CovariateColumns, col.Name)
	}
	profile.HasCovariates = len(profile.CovariateColumns) > 0
	profile.Confidence["has_covariates"] = advisor.ConfidenceHigh
	profile.Details["n_covariates"] = len(profile.CovariateColumns)

	return profile
}
