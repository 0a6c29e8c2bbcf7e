package advisor

import (
	domain "gradstat/domain/advisor"
	apperrors "gradstat/internal/errors"
)

// Resolve maps a research question and the answers gathered for it to a
// ranked list of test recommendations. Parametric tests are preferred while
// normality is plausible (answered yes or not sure); a firm "no" flips the
// ranking to the nonparametric alternative. Unknown intents are an error,
// unresolvable answer combinations return an empty list.
func Resolve(intent domain.Intent, answers domain.Answers) ([]domain.TestRecommendation, error) {
	var recs []domain.TestRecommendation
	switch intent {
	case domain.IntentCompareGroups:
		recs = forGroupComparison(answers)
	case domain.IntentFindRelationships:
		recs = forRelationships(answers)
	case domain.IntentPredictOutcome:
		recs = forPrediction(answers)
	case domain.IntentDescribeData:
		recs = mustLookup("descriptive", domain.ConfidenceHigh)
	case domain.IntentSurvivalAnalysis:
		recs = forSurvival(answers)
	case domain.IntentReduceDimensions:
		recs = mustLookup("pca", domain.ConfidenceHigh)
	case domain.IntentFindGroups:
		recs = mustLookup("clustering", domain.ConfidenceHigh)
	default:
		return nil, apperrors.UnknownIntent(string(intent))
	}
	for i := range recs {
		fillPlaceholders(recs[i].GradstatOptions, answers)
	}
	if recs == nil {
		recs = []domain.TestRecommendation{}
	}
	return recs, nil
}

func forGroupComparison(a domain.Answers) []domain.TestRecommendation {
	parametric := a.IsNormal != domain.NormalNo

	var recs []domain.TestRecommendation
	switch {
	case a.NGroups == 2 && a.OutcomeType == "continuous":
		if a.IsPaired {
			if parametric {
				recs = append(recs, mustLookup("paired_ttest", domain.ConfidenceHigh)...)
				recs = append(recs, mustLookup("wilcoxon", domain.ConfidenceMedium)...)
			} else {
				recs = append(recs, mustLookup("wilcoxon", domain.ConfidenceHigh)...)
			}
		} else {
			if parametric {
				recs = append(recs, mustLookup("independent_ttest", domain.ConfidenceHigh)...)
				recs = append(recs, mustLookup("mann_whitney", domain.ConfidenceMedium)...)
			} else {
				recs = append(recs, mustLookup("mann_whitney", domain.ConfidenceHigh)...)
			}
		}
	case a.NGroups >= 3 && a.OutcomeType == "continuous":
		if parametric {
			recs = append(recs, mustLookup("anova", domain.ConfidenceHigh)...)
			recs = append(recs, mustLookup("kruskal_wallis", domain.ConfidenceMedium)...)
		} else {
			recs = append(recs, mustLookup("kruskal_wallis", domain.ConfidenceHigh)...)
		}
	case a.OutcomeType == "categorical":
		recs = append(recs, mustLookup("chi_square", domain.ConfidenceHigh)...)
	}
	return recs
}

func forRelationships(a domain.Answers) []domain.TestRecommendation {
	nPredictors := a.NPredictors
	if nPredictors == 0 {
		nPredictors = 1
	}
	relType := a.RelationshipType
	if relType == "" {
		relType = domain.RelationshipAssociation
	}
	parametric := a.IsNormal != domain.NormalNo

	var recs []domain.TestRecommendation
	switch {
	case a.Var1Type == "continuous" && a.Var2Type == "continuous":
		if relType == domain.RelationshipAssociation || nPredictors == 1 {
			if parametric {
				recs = append(recs, mustLookup("pearson_correlation", domain.ConfidenceHigh)...)
				recs = append(recs, mustLookup("spearman_correlation", domain.ConfidenceMedium)...)
			} else {
				recs = append(recs, mustLookup("spearman_correlation", domain.ConfidenceHigh)...)
				recs = append(recs, mustLookup("kendall_correlation", domain.ConfidenceMedium)...)
				recs = append(recs, mustLookup("pearson_correlation", domain.ConfidenceLow)...)
			}
		}
		// Regression is offered alongside correlation so prediction stays
		// one click away.
		if nPredictors == 1 {
			recs = append(recs, mustLookup("simple_regression", domain.ConfidenceHigh)...)
		} else {
			recs = append(recs, mustLookup("multiple_regression", domain.ConfidenceHigh)...)
		}
	case (a.Var1Type == "continuous" && a.Var2Type == "categorical") ||
		(a.Var1Type == "categorical" && a.Var2Type == "continuous"):
		recs = append(recs, mustLookup("anova", domain.ConfidenceHigh)...)
	case a.Var1Type == "categorical" && a.Var2Type == "categorical":
		recs = append(recs, mustLookup("chi_square", domain.ConfidenceHigh)...)
		recs = append(recs, mustLookup("fisher_exact", domain.ConfidenceMedium)...)
	}
	return recs
}

func forPrediction(a domain.Answers) []domain.TestRecommendation {
	nPredictors := a.NPredictors
	if nPredictors == 0 {
		nPredictors = 1
	}

	var recs []domain.TestRecommendation
	switch a.OutcomeType {
	case "continuous":
		if nPredictors == 1 {
			recs = append(recs, mustLookup("simple_regression", domain.ConfidenceHigh)...)
		} else {
			recs = append(recs, mustLookup("multiple_regression", domain.ConfidenceHigh)...)
		}
	case "binary":
		recs = append(recs, mustLookup("logistic_regression", domain.ConfidenceHigh)...)
	}
	return recs
}

func forSurvival(a domain.Answers) []domain.TestRecommendation {
	var timeCol, eventCol, groupCol string
	var covariates []string
	if a.Survival != nil {
		timeCol = a.Survival.TimeColumn
		eventCol = a.Survival.EventColumn
		groupCol = a.Survival.GroupColumn
		covariates = a.Survival.CovariateColumns
	}

	recs := mustLookup("kaplan_meier", domain.ConfidenceHigh)
	if timeCol != "" && eventCol != "" {
		recs[0].GradstatOptions["durationColumn"] = timeCol
		recs[0].GradstatOptions["eventColumn"] = eventCol
	}

	if a.HasGroups {
		test := mustLookup("logrank_test", domain.ConfidenceHigh)
		if timeCol != "" && eventCol != "" && groupCol != "" {
			test[0].GradstatOptions["durationColumn"] = timeCol
			test[0].GradstatOptions["eventColumn"] = eventCol
			test[0].GradstatOptions["groupColumn"] = groupCol
		}
		recs = append(recs, test...)
	}

	if a.HasCovariates {
		test := mustLookup("cox_regression", domain.ConfidenceHigh)
		if timeCol != "" && eventCol != "" {
			test[0].GradstatOptions["durationColumn"] = timeCol
			test[0].GradstatOptions["eventColumn"] = eventCol
			if len(covariates) > 0 {
				test[0].GradstatOptions["covariates"] = append([]string(nil), covariates...)
			}
		}
		recs = append(recs, test...)
	}
	return recs
}

// fillPlaceholders substitutes detected column names for template tokens.
// Tokens with no detection evidence stay literal so the caller can see what
// is still missing.
func fillPlaceholders(options map[string]interface{}, a domain.Answers) {
	substitutions := map[string]string{}
	if a.OutcomeColumn != "" {
		substitutions["<outcome>"] = a.OutcomeColumn
	}
	if a.GroupColumn != "" {
		substitutions["<group>"] = a.GroupColumn
	}
	if a.Survival != nil {
		if a.Survival.TimeColumn != "" {
			substitutions["<time>"] = a.Survival.TimeColumn
		}
		if a.Survival.EventColumn != "" {
			substitutions["<event>"] = a.Survival.EventColumn
		}
	}
	if len(substitutions) == 0 {
		return
	}
	for key, value := range options {
		if s, ok := value.(string); ok {
			if repl, ok := substitutions[s]; ok {
				options[key] = repl
			}
		}
	}
}

// mustLookup wraps Lookup for keys that are compile-time constants; a miss
// means the catalog itself is broken.
func mustLookup(key string, confidence domain.Confidence) []domain.TestRecommendation {
	rec, ok := Lookup(key, confidence)
	if !ok {
		panic("unknown catalog key: " + key)
	}
	return []domain.TestRecommendation{rec}
}
