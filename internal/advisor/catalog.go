package advisor

import (
	"fmt"
	"sort"

	domain "gradstat/domain/advisor"
)

// catalogEntry is one test in the static knowledge base. Loaded once at
// process start, immutable afterwards; the only operation is key lookup.
type catalogEntry struct {
	TestName        string
	AnalysisType    string
	PlainEnglish    string
	WhenToUse       []string
	Example         string
	Assumptions     []string
	SampleSizeMin   int
	Interpretation  string
	GradstatOptions map[string]interface{}
}

// Lookup returns a ready-to-rank recommendation for a catalog key with the
// given confidence, or false when the key is unknown. The options template is
// deep-copied so callers can resolve placeholders without mutating the
// catalog.
func Lookup(key string, confidence domain.Confidence) (domain.TestRecommendation, bool) {
	entry, ok := catalog[key]
	if !ok {
		return domain.TestRecommendation{}, false
	}
	rec := domain.TestRecommendation{
		Key:             key,
		TestName:        entry.TestName,
		AnalysisType:    entry.AnalysisType,
		Confidence:      confidence,
		PlainEnglish:    entry.PlainEnglish,
		WhenToUse:       append([]string(nil), entry.WhenToUse...),
		Example:         entry.Example,
		Assumptions:     append([]string(nil), entry.Assumptions...),
		SampleSizeMin:   entry.SampleSizeMin,
		Interpretation:  entry.Interpretation,
		GradstatOptions: copyOptions(entry.GradstatOptions),
	}
	if entry.SampleSizeMin > 1 {
		rec.SampleSizeWarning = fmt.Sprintf("Minimum recommended sample size: %d", entry.SampleSizeMin)
	}
	return rec, true
}

// CatalogKeys returns every test key, sorted.
func CatalogKeys() []string {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyOptions(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if list, ok := v.([]string); ok {
			dst[k] = append([]string(nil), list...)
			continue
		}
		dst[k] = v
	}
	return dst
}

var catalog = map[string]catalogEntry{
	"independent_ttest": {
		TestName:     "Independent t-test",
		AnalysisType: "group-comparison",
		PlainEnglish: "Compare average scores between two separate groups",
		WhenToUse: []string{
			"You have 2 independent groups (different people)",
			"Measuring something continuous (like height, test scores)",
			"Data is roughly normally distributed",
		},
		Example:        "Compare exam scores between students who studied vs. didn't study",
		Assumptions:    []string{"Independence", "Normality", "Equal variance"},
		SampleSizeMin:  30,
		Interpretation: "If p < 0.05, the groups are significantly different",
		GradstatOptions: map[string]interface{}{
			"analysisType": "group-comparison",
			"dependentVar": "<outcome>",
			"groupVar":     "<group>",
		},
	},
	"anova": {
		TestName:     "One-way ANOVA",
		AnalysisType: "group-comparison",
		PlainEnglish: "Compare average scores across 3 or more groups",
		WhenToUse: []string{
			"You have 3+ independent groups",
			"Continuous outcome variable",
			"Want to know if ANY groups differ",
		},
		Example:        "Compare test scores across 3 teaching methods",
		Assumptions:    []string{"Independence", "Normality in each group", "Equal variances"},
		SampleSizeMin:  30,
		Interpretation: "If p < 0.05, at least one group differs (use Tukey test to find which)",
		GradstatOptions: map[string]interface{}{
			"analysisType": "group-comparison",
			"dependentVar": "<outcome>",
			"groupVar":     "<group>",
		},
	},
	"mann_whitney": {
		TestName:     "Mann-Whitney U test",
		AnalysisType: "nonparametric",
		PlainEnglish: "Compare rankings between two groups (when data is not normal)",
		WhenToUse: []string{
			"You have 2 independent groups",
			"Data is NOT normally distributed",
			"Or data is ordinal (ranks, ratings)",
		},
		Example:        "Compare satisfaction ratings (1-5 scale) between two products",
		Assumptions:    []string{"Independence", "Ordinal or continuous data"},
		SampleSizeMin:  20,
		Interpretation: "If p < 0.05, the groups have different distributions",
		GradstatOptions: map[string]interface{}{
			"analysisType": "nonparametric",
			"dependentVar": "<outcome>",
			"groupVar":     "<group>",
			"testType":     "mann-whitney",
		},
	},
	"wilcoxon": {
		TestName:     "Wilcoxon Signed-Rank test",
		AnalysisType: "nonparametric",
		PlainEnglish: "Compare paired measurements when data is not normal",
		WhenToUse: []string{
			"Paired/matched observations",
			"Data is NOT normally distributed",
			"Or ordinal data",
		},
		Example:        "Compare pain ratings before/after treatment (1-10 scale)",
		Assumptions:    []string{"Paired observations", "Symmetric distribution"},
		SampleSizeMin:  15,
		Interpretation: "If p < 0.05, there is a significant change",
		GradstatOptions: map[string]interface{}{
			"analysisType": "nonparametric",
			"dependentVar": "<outcome>",
			"groupVar":     "<time>",
			"testType":     "wilcoxon",
		},
	},
	"kruskal_wallis": {
		TestName:     "Kruskal-Wallis test",
		AnalysisType: "nonparametric",
		PlainEnglish: "Compare rankings across 3+ groups (when data is not normal)",
		WhenToUse: []string{
			"You have 3+ independent groups",
			"Data is NOT normally distributed",
			"Or ordinal data",
		},
		Example:        "Compare customer satisfaction (1-5) across 4 stores",
		Assumptions:    []string{"Independence", "Ordinal or continuous data"},
		SampleSizeMin:  25,
		Interpretation: "If p < 0.05, at least one group differs",
		GradstatOptions: map[string]interface{}{
			"analysisType": "nonparametric",
			"dependentVar": "<outcome>",
			"groupVar":     "<group>",
			"testType":     "kruskal-wallis",
		},
	},
	"chi_square": {
		TestName:     "Chi-Square test",
		AnalysisType: "categorical",
		PlainEnglish: "Test if two categorical variables are related",
		WhenToUse: []string{
			"Both variables are categorical",
			"Want to test independence/association",
			"Have frequency counts",
		},
		Example:        "Is smoking related to lung disease? (Yes/No vs Disease/Healthy)",
		Assumptions:    []string{"Independence", "Expected frequency >= 5 in each cell"},
		SampleSizeMin:  50,
		Interpretation: "If p < 0.05, the variables are associated",
		GradstatOptions: map[string]interface{}{
			"analysisType": "categorical",
			"var1":         "<variable_1>",
			"var2":         "<variable_2>",
		},
	},
	"simple_regression": {
		TestName:     "Simple Linear Regression",
		AnalysisType: "regression",
		PlainEnglish: "Predict one variable from another and quantify the relationship",
		WhenToUse: []string{
			"Want to predict continuous outcome",
			"Have one continuous predictor",
			"Linear relationship expected",
		},
		Example:        "Predict salary from years of experience",
		Assumptions:    []string{"Linear relationship", "Independence", "Normal residuals", "Constant variance"},
		SampleSizeMin:  30,
		Interpretation: "R-squared shows % variance explained. If p < 0.05, relationship is significant",
		GradstatOptions: map[string]interface{}{
			"analysisType":   "regression",
			"dependentVar":   "<outcome>",
			"independentVar": "<predictor>",
		},
	},
	"pearson_correlation": {
		TestName:     "Pearson Correlation",
		AnalysisType: "correlation",
		PlainEnglish: "Measure the strength and direction of linear relationship between two variables",
		WhenToUse: []string{
			"Want to measure association (not prediction)",
			"Both variables are continuous",
			"Linear relationship expected",
			"Data is roughly normally distributed",
		},
		Example:        "Measure relationship between study hours and exam scores",
		Assumptions:    []string{"Linear relationship", "Normality", "Independence", "No extreme outliers"},
		SampleSizeMin:  30,
		Interpretation: "r = correlation coefficient (-1 to +1). |r| > 0.5 is strong. If p < 0.05, correlation is significant",
		GradstatOptions: map[string]interface{}{
			"analysisType":      "correlation",
			"correlationMethod": "pearson",
			"variables":         []string{"<variable_1>", "<variable_2>"},
		},
	},
	"spearman_correlation": {
		TestName:     "Spearman Correlation",
		AnalysisType: "correlation",
		PlainEnglish: "Measure monotonic relationship between variables (works with non-normal data)",
		WhenToUse: []string{
			"Want to measure association",
			"Data is NOT normally distributed",
			"Relationship is monotonic but not necessarily linear",
			"Or have ordinal data (rankings)",
		},
		Example:        "Measure relationship between income rank and happiness rating",
		Assumptions:    []string{"Monotonic relationship", "Independence", "Ordinal or continuous data"},
		SampleSizeMin:  20,
		Interpretation: "rho = correlation coefficient. Robust to outliers. If p < 0.05, correlation is significant",
		GradstatOptions: map[string]interface{}{
			"analysisType":      "correlation",
			"correlationMethod": "spearman",
			"variables":         []string{"<variable_1>", "<variable_2>"},
		},
	},
	"kendall_correlation": {
		TestName:     "Kendall's Tau",
		AnalysisType: "correlation",
		PlainEnglish: "Conservative measure of association for ordinal data or small samples",
		WhenToUse: []string{
			"Small sample size (n < 30)",
			"Ordinal data (rankings)",
			"Want more conservative estimate",
			"Many tied values in data",
		},
		Example:        "Measure agreement between two judges' rankings",
		Assumptions:    []string{"Monotonic relationship", "Independence", "Ordinal or continuous data"},
		SampleSizeMin:  10,
		Interpretation: "tau = correlation coefficient. More conservative than Spearman. If p < 0.05, correlation is significant",
		GradstatOptions: map[string]interface{}{
			"analysisType":      "correlation",
			"correlationMethod": "kendall",
			"variables":         []string{"<variable_1>", "<variable_2>"},
		},
	},
	"multiple_regression": {
		TestName:     "Multiple Linear Regression",
		AnalysisType: "regression",
		PlainEnglish: "Predict outcome from multiple predictors simultaneously",
		WhenToUse: []string{
			"Want to predict continuous outcome",
			"Have multiple predictors",
			"Want to control for confounders",
		},
		Example:        "Predict house price from size, location, and age",
		Assumptions:    []string{"Linear relationships", "No multicollinearity", "Normal residuals"},
		SampleSizeMin:  100,
		Interpretation: "Each coefficient shows effect while holding others constant",
		GradstatOptions: map[string]interface{}{
			"analysisType":    "regression",
			"dependentVar":    "<outcome>",
			"independentVars": []string{"<predictor_1>", "<predictor_2>"},
		},
	},
	"logistic_regression": {
		TestName:     "Logistic Regression",
		AnalysisType: "logistic-regression",
		PlainEnglish: "Predict probability of yes/no outcome from predictors",
		WhenToUse: []string{
			"Outcome is binary (yes/no, success/fail)",
			"Want to predict probability",
			"Have continuous or categorical predictors",
		},
		Example:        "Predict disease risk (yes/no) from age, BMI, smoking",
		Assumptions:    []string{"Binary outcome", "Independence", "No extreme multicollinearity"},
		SampleSizeMin:  100,
		Interpretation: "Odds ratios show effect on odds. AUC shows prediction accuracy",
		GradstatOptions: map[string]interface{}{
			"analysisType": "logistic-regression",
			"targetColumn": "<outcome>",
			"predictors":   []string{"<predictor_1>", "<predictor_2>"},
		},
	},
	"kaplan_meier": {
		TestName:     "Kaplan-Meier Survival Analysis",
		AnalysisType: "survival",
		PlainEnglish: "Analyze time until an event occurs (survival, failure, etc.)",
		WhenToUse: []string{
			"Measuring time to event",
			"Have censored data (some events not observed)",
			"Want survival curves",
		},
		Example:        "Time until patient recovery, with some still in treatment",
		Assumptions:    []string{"Censoring is non-informative", "Independent survival times"},
		SampleSizeMin:  50,
		Interpretation: "Survival curve shows probability over time. Median = time when 50% have event",
		GradstatOptions: map[string]interface{}{
			"analysisType":   "survival",
			"durationColumn": "<time>",
			"eventColumn":    "<event>",
		},
	},
	"logrank_test": {
		TestName:     "Log-Rank Test",
		AnalysisType: "survival",
		PlainEnglish: "Compare survival curves between groups",
		WhenToUse: []string{
			"Have survival data",
			"Want to compare 2+ groups",
			"Censored observations present",
		},
		Example:        "Compare survival between treatment and control groups",
		Assumptions:    []string{"Proportional hazards", "Non-informative censoring"},
		SampleSizeMin:  50,
		Interpretation: "If p < 0.05, survival differs between groups",
		GradstatOptions: map[string]interface{}{
			"analysisType":   "survival",
			"durationColumn": "<time>",
			"eventColumn":    "<event>",
			"groupColumn":    "<group>",
		},
	},
	"cox_regression": {
		TestName:     "Cox Proportional Hazards Regression",
		AnalysisType: "survival",
		PlainEnglish: "Model survival time with multiple predictors",
		WhenToUse: []string{
			"Have survival data",
			"Want to adjust for multiple factors",
			"Estimate hazard ratios",
		},
		Example:        "Model survival from age, stage, treatment simultaneously",
		Assumptions:    []string{"Proportional hazards", "Linear with log-hazard", "No multicollinearity"},
		SampleSizeMin:  100,
		Interpretation: "Hazard ratio > 1 = increased risk, < 1 = decreased risk",
		GradstatOptions: map[string]interface{}{
			"analysisType":   "survival",
			"durationColumn": "<time>",
			"eventColumn":    "<event>",
			"covariates":     []string{"<covariate_1>", "<covariate_2>"},
		},
	},
	"paired_ttest": {
		TestName:     "Paired t-test",
		AnalysisType: "group-comparison",
		PlainEnglish: "Compare measurements from the same people at two different times",
		WhenToUse: []string{
			"Same people measured twice (before/after)",
			"Matched pairs of people",
			"Continuous outcome variable",
		},
		Example:        "Compare blood pressure before and after medication in same patients",
		Assumptions:    []string{"Paired observations", "Differences are normally distributed"},
		SampleSizeMin:  20,
		Interpretation: "If p < 0.05, there is a significant change",
		GradstatOptions: map[string]interface{}{
			"analysisType": "group-comparison",
			"dependentVar": "<outcome>",
			"groupVar":     "<time>",
		},
	},
	"descriptive": {
		TestName:     "Descriptive Statistics",
		AnalysisType: "descriptive",
		PlainEnglish: "Summarize and describe your data",
		WhenToUse: []string{
			"Want to understand data characteristics",
			"First step in any analysis",
			"Presenting sample characteristics",
		},
		Example:        "Report mean age, gender distribution, score ranges",
		Assumptions:    []string{},
		SampleSizeMin:  1,
		Interpretation: "Mean/median show center, SD shows spread, min/max show range",
		GradstatOptions: map[string]interface{}{
			"analysisType": "descriptive",
		},
	},
	"fisher_exact": {
		TestName:     "Fisher's Exact Test",
		AnalysisType: "categorical",
		PlainEnglish: "Test association between two categorical variables (small samples)",
		WhenToUse: []string{
			"Both variables are categorical",
			"Small sample size (n < 50)",
			"Expected frequencies < 5 in any cell",
		},
		Example:        "Is treatment effective? (10 treated, 8 control; success/failure)",
		Assumptions:    []string{"Independence", "Exact test - no minimum sample size"},
		SampleSizeMin:  10,
		Interpretation: "If p < 0.05, the variables are associated. More reliable than Chi-square for small samples",
		GradstatOptions: map[string]interface{}{
			"analysisType": "categorical",
			"var1":         "<variable_1>",
			"var2":         "<variable_2>",
			"testType":     "fisher",
		},
	},
	"pca": {
		TestName:     "Principal Component Analysis (PCA)",
		AnalysisType: "pca",
		PlainEnglish: "Reduce many variables into fewer meaningful components",
		WhenToUse: []string{
			"Have many correlated variables",
			"Want to reduce dimensionality",
			"Looking for underlying patterns",
			"Data visualization in 2D/3D",
		},
		Example:        "Reduce 20 survey questions into 3-4 key themes",
		Assumptions:    []string{"Linear relationships", "Variables are continuous", "Sufficient correlation between variables"},
		SampleSizeMin:  100,
		Interpretation: "Components explain variance. First few components capture most information",
		GradstatOptions: map[string]interface{}{
			"analysisType": "pca",
			"nComponents":  3,
		},
	},
	"clustering": {
		TestName:     "K-Means Clustering",
		AnalysisType: "clustering",
		PlainEnglish: "Group similar observations together",
		WhenToUse: []string{
			"Want to find natural groups in data",
			"Customer segmentation",
			"Pattern discovery",
			"No predefined categories",
		},
		Example:        "Group customers into segments based on purchasing behavior",
		Assumptions:    []string{"Variables are continuous", "Clusters are roughly spherical", "Similar cluster sizes"},
		SampleSizeMin:  50,
		Interpretation: "Each observation assigned to a cluster. Silhouette score shows cluster quality",
		GradstatOptions: map[string]interface{}{
			"analysisType": "clustering",
			"nClusters":    3,
			"method":       "kmeans",
		},
	},
}
