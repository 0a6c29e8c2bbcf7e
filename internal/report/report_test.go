package report

import (
	"strings"
	"testing"

	domain "gradstat/domain/advisor"
)

func sampleProfile() *domain.DatasetProfile {
	yes := true
	two := 2
	return &domain.DatasetProfile{
		IsNormal:    &yes,
		NGroups:     &two,
		OutcomeType: "continuous",
		Confidence: map[string]domain.Confidence{
			"isNormal": domain.ConfidenceHigh,
			"nGroups":  domain.ConfidenceHigh,
		},
		Summary: domain.Summary{
			TotalQuestions: 12,
			HighConfidence: 8,
			ConfidenceRate: "67%",
			Recommendation: "Review low-confidence answers",
		},
	}
}

func sampleRecs(t *testing.T) []domain.TestRecommendation {
	t.Helper()
	return []domain.TestRecommendation{
		{
			Key:               "independent_ttest",
			TestName:          "Independent t-test",
			AnalysisType:      "group-comparison",
			Confidence:        domain.ConfidenceHigh,
			PlainEnglish:      "Compare average scores between two separate groups",
			WhenToUse:         []string{"You have 2 independent groups"},
			Assumptions:       []string{"Independence", "Normality"},
			SampleSizeMin:     30,
			SampleSizeWarning: "Minimum recommended sample size: 30",
			GradstatOptions: map[string]interface{}{
				"analysisType": "group-comparison",
				"dependentVar": "exam_score",
			},
		},
	}
}

func TestMarkdownStructure(t *testing.T) {
	md := Markdown("grades.csv", sampleProfile(), sampleRecs(t))

	for _, want := range []string{
		"# Analysis Guide: grades.csv",
		"## Detected Characteristics",
		"| Question | Answer | Confidence |",
		"## Recommended Tests",
		"Independent t-test",
		"Minimum recommended sample size: 30",
		"dependentVar",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q", want)
		}
	}
}

func TestMarkdownOmitsAbsentSections(t *testing.T) {
	md := Markdown("grades.csv", sampleProfile(), sampleRecs(t))
	for _, absent := range []string{"Survival", "Dimension Reduction", "Clustering"} {
		if strings.Contains(md, absent) {
			t.Errorf("markdown mentions %q without that sub-profile", absent)
		}
	}
}

func TestMarkdownIncludesSurvivalSection(t *testing.T) {
	profile := sampleProfile()
	profile.Survival = &domain.SurvivalProfile{
		TimeColumn:  "time_to_event",
		EventColumn: "death_occurred",
		HasGroups:   true,
		GroupColumn: "treatment",
		Confidence:  map[string]domain.Confidence{"time_column": domain.ConfidenceHigh},
	}

	md := Markdown("trial.csv", profile, nil)
	if !strings.Contains(md, "time_to_event") || !strings.Contains(md, "treatment") {
		t.Errorf("survival columns missing from report:\n%s", md)
	}
}

func TestMarkdownWithNoRecommendations(t *testing.T) {
	md := Markdown("grades.csv", sampleProfile(), nil)
	if !strings.Contains(md, "# Analysis Guide: grades.csv") {
		t.Error("report header missing")
	}
	if strings.Contains(md, "Independent t-test") {
		t.Error("phantom recommendation in report")
	}
}

func TestHTMLRendersHeadings(t *testing.T) {
	html := string(HTML("grades.csv", sampleProfile(), sampleRecs(t)))
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Analysis Guide: grades.csv") {
		t.Errorf("HTML missing rendered heading:\n%s", html)
	}
	if !strings.Contains(html, "<table") {
		t.Error("HTML missing the characteristics table")
	}
}
