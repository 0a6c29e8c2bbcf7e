// Package advisor holds the value types shared by the column classifier, the
// structural pattern detectors, the answer aggregator and the test
// recommendation resolver.
package advisor

// Confidence is the coarse trust tag attached to every heuristic answer.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SemanticType is the inferred meaning of a column, as opposed to its raw
// storage kind.
type SemanticType string

const (
	TypeContinuous  SemanticType = "continuous"
	TypeCategorical SemanticType = "categorical"
	TypeBinary      SemanticType = "binary"
	TypeIdentifier  SemanticType = "identifier"
	TypeDateLike    SemanticType = "date"
)

// ColumnProfile is the classifier's immutable per-column verdict.
type ColumnProfile struct {
	Name            string       `json:"name"`
	SemanticType    SemanticType `json:"semantic_type"`
	UniqueCount     int          `json:"unique_count"`
	MissingFraction float64      `json:"missing_fraction"`
	SampleSize      int          `json:"n"`

	// NormalityP is only computed for continuous columns with at least 3
	// non-missing observations. IsNormal derives from p > 0.05 and is nil
	// whenever the test could not run; Error carries the reason.
	NormalityP *float64 `json:"p_value,omitempty"`
	IsNormal   *bool    `json:"is_normal,omitempty"`
	NormalityN int      `json:"normality_n,omitempty"`
	Approx     bool     `json:"approximate,omitempty"`
	Error      string   `json:"error,omitempty"`

	// EventEligible marks strictly 0/1-coded binary columns, the only
	// form accepted as a survival event indicator.
	EventEligible bool `json:"event_eligible,omitempty"`
}

// Detection is the common result shape of every structural pattern detector:
// the detected answer (nil when undetectable), a confidence level, a
// human-readable rationale and a diagnostics map.
type Detection struct {
	Answer      interface{}            `json:"answer"`
	Confidence  Confidence             `json:"confidence"`
	Explanation string                 `json:"explanation"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// Failed builds the degraded-detection result: nil answer, low confidence,
// and the failure reason in both the rationale and details.error.
func Failed(reason string) Detection {
	return Detection{
		Answer:      nil,
		Confidence:  ConfidenceLow,
		Explanation: reason,
		Details:     map[string]interface{}{"error": reason},
	}
}

// SurvivalProfile carries the survival-analysis sub-answers.
type SurvivalProfile struct {
	TimeColumn       string                 `json:"time_column,omitempty"`
	EventColumn      string                 `json:"event_column,omitempty"`
	HasGroups        bool                   `json:"has_groups"`
	GroupColumn      string                 `json:"group_column,omitempty"`
	HasCovariates    bool                   `json:"has_covariates"`
	CovariateColumns []string               `json:"covariate_columns"`
	Confidence       map[string]Confidence  `json:"confidence"`
	Details          map[string]interface{} `json:"details,omitempty"`
}

// PCAProfile carries the dimension-reduction sub-answers.
type PCAProfile struct {
	NNumericVars        int                    `json:"n_numeric_vars"`
	SuggestedComponents *int                   `json:"suggested_components"`
	ScalingNeeded       bool                   `json:"scaling_needed"`
	CorrelationStrength Confidence             `json:"correlation_strength"`
	Confidence          map[string]Confidence  `json:"confidence"`
	Details             map[string]interface{} `json:"details,omitempty"`
}

// ClusteringProfile carries the find-groups sub-answers.
type ClusteringProfile struct {
	NNumericVars       int                    `json:"n_numeric_vars"`
	SuggestedK         *int                   `json:"suggested_k"`
	SuggestedAlgorithm string                 `json:"suggested_algorithm"`
	ScalingNeeded      bool                   `json:"scaling_needed"`
	HasOutliers        bool                   `json:"has_outliers"`
	Confidence         map[string]Confidence  `json:"confidence"`
	Details            map[string]interface{} `json:"details,omitempty"`
}

// Summary is the aggregator's confidence roll-up.
type Summary struct {
	TotalQuestions int    `json:"total_questions"`
	HighConfidence int    `json:"high_confidence"`
	ConfidenceRate string `json:"confidence_rate"`
	Recommendation string `json:"recommendation"`
}

// DatasetProfile answers every wizard question for one dataset. It is built
// once per analysis request and never mutated after being returned. Every
// question key present in the value set has a matching entry in Confidence;
// detection failures degrade to nil answers at low confidence rather than
// surfacing as errors.
type DatasetProfile struct {
	IsNormal    *bool  `json:"isNormal"`
	NGroups     *int   `json:"nGroups"`
	IsPaired    *bool  `json:"isPaired"`
	OutcomeType string `json:"outcomeType,omitempty"`
	Var1Type    string `json:"var1Type,omitempty"`
	Var2Type    string `json:"var2Type,omitempty"`
	NPredictors *int   `json:"nPredictors"`

	Survival   *SurvivalProfile   `json:"survival,omitempty"`
	PCA        *PCAProfile        `json:"pca,omitempty"`
	Clustering *ClusteringProfile `json:"clustering,omitempty"`

	Confidence map[string]Confidence             `json:"confidence"`
	Details    map[string]map[string]interface{} `json:"details"`
	Summary    Summary                           `json:"summary"`
}

// Intent is the user's declared research question category.
type Intent string

const (
	IntentCompareGroups     Intent = "compare_groups"
	IntentFindRelationships Intent = "find_relationships"
	IntentPredictOutcome    Intent = "predict_outcome"
	IntentDescribeData      Intent = "describe_data"
	IntentSurvivalAnalysis  Intent = "survival_analysis"
	IntentReduceDimensions  Intent = "reduce_dimensions"
	IntentFindGroups        Intent = "find_groups"
)

// KnownIntents lists every valid research question category.
func KnownIntents() []Intent {
	return []Intent{
		IntentCompareGroups,
		IntentFindRelationships,
		IntentPredictOutcome,
		IntentDescribeData,
		IntentSurvivalAnalysis,
		IntentReduceDimensions,
		IntentFindGroups,
	}
}

// NormalityAnswer is the tri-state wizard answer for "is your data normal".
type NormalityAnswer string

const (
	NormalYes     NormalityAnswer = "yes"
	NormalNo      NormalityAnswer = "no"
	NormalNotSure NormalityAnswer = "not_sure"
)

// RelationshipType distinguishes association from prediction intent inside
// the find-relationships question.
type RelationshipType string

const (
	RelationshipAssociation RelationshipType = "association"
	RelationshipPrediction  RelationshipType = "prediction"
)

// Answers is the resolver context: either explicit wizard answers or values
// derived from a DatasetProfile.
type Answers struct {
	NGroups          int              `json:"nGroups,omitempty"`
	OutcomeType      string           `json:"outcomeType,omitempty"`
	IsNormal         NormalityAnswer  `json:"isNormal,omitempty"`
	IsPaired         bool             `json:"isPaired,omitempty"`
	Var1Type         string           `json:"var1Type,omitempty"`
	Var2Type         string           `json:"var2Type,omitempty"`
	NPredictors      int              `json:"nPredictors,omitempty"`
	RelationshipType RelationshipType `json:"relationshipType,omitempty"`
	HasGroups        bool             `json:"hasGroups,omitempty"`
	HasCovariates    bool             `json:"hasCovariates,omitempty"`

	// Detected column names, used to resolve parameter template
	// placeholders. Only detection evidence fills these; the resolver
	// never guesses.
	OutcomeColumn string           `json:"outcomeColumn,omitempty"`
	GroupColumn   string           `json:"groupColumn,omitempty"`
	Survival      *SurvivalProfile `json:"survivalData,omitempty"`
}

// AnswersFromProfile derives resolver answers from an auto-detected profile.
func AnswersFromProfile(p *DatasetProfile) Answers {
	a := Answers{NPredictors: 1, RelationshipType: RelationshipAssociation}
	if p == nil {
		a.IsNormal = NormalNotSure
		return a
	}
	switch {
	case p.IsNormal == nil:
		a.IsNormal = NormalNotSure
	case *p.IsNormal:
		a.IsNormal = NormalYes
	default:
		a.IsNormal = NormalNo
	}
	if p.NGroups != nil {
		a.NGroups = *p.NGroups
	}
	if p.IsPaired != nil {
		a.IsPaired = *p.IsPaired
	}
	a.OutcomeType = p.OutcomeType
	a.Var1Type = p.Var1Type
	a.Var2Type = p.Var2Type
	if p.NPredictors != nil {
		a.NPredictors = *p.NPredictors
	}
	if det, ok := p.Details["outcomeType"]; ok {
		if col, ok := det["column"].(string); ok {
			a.OutcomeColumn = col
		}
	}
	if det, ok := p.Details["nGroups"]; ok {
		if col, ok := det["column"].(string); ok {
			a.GroupColumn = col
		}
	}
	if p.Survival != nil {
		a.Survival = p.Survival
		a.HasGroups = p.Survival.HasGroups
		a.HasCovariates = p.Survival.HasCovariates
	}
	return a
}

// TestRecommendation is one ranked entry handed to the execution layer. The
// GradstatOptions template maps execution-layer option names to literal
// values or placeholder tokens (<outcome>, <group>, ...) that the resolver
// fills in from detected columns; unresolved tokens are returned as literals
// for the caller to complete.
type TestRecommendation struct {
	Key               string                 `json:"key"`
	TestName          string                 `json:"test_name"`
	AnalysisType      string                 `json:"analysis_type"`
	Confidence        Confidence             `json:"confidence"`
	PlainEnglish      string                 `json:"plain_english"`
	WhenToUse         []string               `json:"when_to_use"`
	Example           string                 `json:"example,omitempty"`
	Assumptions       []string               `json:"assumptions"`
	SampleSizeMin     int                    `json:"sample_size_min"`
	SampleSizeWarning string                 `json:"sample_size_warning,omitempty"`
	Interpretation    string                 `json:"interpretation,omitempty"`
	GradstatOptions   map[string]interface{} `json:"gradstat_options"`
}
