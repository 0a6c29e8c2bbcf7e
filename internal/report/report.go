// Package report renders a dataset profile and its test recommendations as a
// human-readable markdown document, with an HTML variant for the browser.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	domain "gradstat/domain/advisor"
)

// Markdown builds the analysis report. Sections with no detected content are
// omitted rather than rendered empty.
func Markdown(datasetName string, profile *domain.DatasetProfile, recs []domain.TestRecommendation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis Guide: %s\n\n", datasetName)

	if profile != nil {
		writeProfileSection(&b, profile)
	}
	if len(recs) > 0 {
		writeRecommendationSection(&b, recs)
	}
	return b.String()
}

// HTML renders the markdown report to a standalone HTML fragment.
func HTML(datasetName string, profile *domain.DatasetProfile, recs []domain.TestRecommendation) []byte {
	md := Markdown(datasetName, profile, recs)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

func writeProfileSection(b *strings.Builder, p *domain.DatasetProfile) {
	b.WriteString("## Detected Characteristics\n\n")
	b.WriteString("| Question | Answer | Confidence |\n")
	b.WriteString("|---|---|---|\n")

	writeRow(b, "Normally distributed", boolAnswer(p.IsNormal), p.Confidence["isNormal"])
	writeRow(b, "Number of groups", intAnswer(p.NGroups), p.Confidence["nGroups"])
	writeRow(b, "Paired measurements", boolAnswer(p.IsPaired), p.Confidence["isPaired"])
	writeRow(b, "Outcome type", stringAnswer(p.OutcomeType), p.Confidence["outcomeType"])
	writeRow(b, "Variable types", varTypesAnswer(p), p.Confidence["varTypes"])
	writeRow(b, "Predictors", predictorsAnswer(p.NPredictors), p.Confidence["nPredictors"])
	b.WriteString("\n")

	if p.Survival != nil && p.Survival.TimeColumn != "" && p.Survival.EventColumn != "" {
		b.WriteString("## Survival Analysis\n\n")
		fmt.Fprintf(b, "- Time column: `%s`\n", p.Survival.TimeColumn)
		fmt.Fprintf(b, "- Event column: `%s`\n", p.Survival.EventColumn)
		if p.Survival.HasGroups {
			fmt.Fprintf(b, "- Group column: `%s`\n", p.Survival.GroupColumn)
		}
		if p.Survival.HasCovariates {
			fmt.Fprintf(b, "- Covariates: %s\n", codeList(p.Survival.CovariateColumns))
		}
		b.WriteString("\n")
	}

	if p.PCA != nil && p.PCA.SuggestedComponents != nil {
		b.WriteString("## Dimension Reduction\n\n")
		fmt.Fprintf(b, "- Numeric variables: %d\n", p.PCA.NNumericVars)
		fmt.Fprintf(b, "- Suggested components: %d\n", *p.PCA.SuggestedComponents)
		fmt.Fprintf(b, "- Scaling needed: %t\n", p.PCA.ScalingNeeded)
		fmt.Fprintf(b, "- Correlation strength: %s\n\n", p.PCA.CorrelationStrength)
	}

	if p.Clustering != nil && p.Clustering.SuggestedAlgorithm != "" {
		b.WriteString("## Clustering\n\n")
		fmt.Fprintf(b, "- Suggested algorithm: %s\n", p.Clustering.SuggestedAlgorithm)
		if p.Clustering.SuggestedK != nil {
			fmt.Fprintf(b, "- Suggested clusters: %d\n", *p.Clustering.SuggestedK)
		}
		fmt.Fprintf(b, "- Outliers present: %t\n\n", p.Clustering.HasOutliers)
	}

	fmt.Fprintf(b, "**Confidence summary:** %d of %d questions answered at high confidence (%s). %s\n\n",
		p.Summary.HighConfidence, p.Summary.TotalQuestions, p.Summary.ConfidenceRate, p.Summary.Recommendation)
}

func writeRecommendationSection(b *strings.Builder, recs []domain.TestRecommendation) {
	b.WriteString("## Recommended Tests\n\n")
	for i, rec := range recs {
		fmt.Fprintf(b, "### %d. %s (%s confidence)\n\n", i+1, rec.TestName, rec.Confidence)
		fmt.Fprintf(b, "%s\n\n", rec.PlainEnglish)
		if len(rec.WhenToUse) > 0 {
			b.WriteString("**When to use:**\n\n")
			for _, w := range rec.WhenToUse {
				fmt.Fprintf(b, "- %s\n", w)
			}
			b.WriteString("\n")
		}
		if rec.Example != "" {
			fmt.Fprintf(b, "**Example:** %s\n\n", rec.Example)
		}
		if len(rec.Assumptions) > 0 {
			fmt.Fprintf(b, "**Assumptions:** %s\n\n", strings.Join(rec.Assumptions, "; "))
		}
		if rec.SampleSizeWarning != "" {
			fmt.Fprintf(b, "> %s\n\n", rec.SampleSizeWarning)
		}
		if rec.Interpretation != "" {
			fmt.Fprintf(b, "**Interpretation:** %s\n\n", rec.Interpretation)
		}
		if len(rec.GradstatOptions) > 0 {
			b.WriteString("**Analysis options:**\n\n```\n")
			keys := make([]string, 0, len(rec.GradstatOptions))
			for k := range rec.GradstatOptions {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(b, "%s: %v\n", k, rec.GradstatOptions[k])
			}
			b.WriteString("```\n\n")
		}
	}
}

func writeRow(b *strings.Builder, question, answer string, confidence domain.Confidence) {
	if confidence == "" {
		confidence = domain.ConfidenceLow
	}
	fmt.Fprintf(b, "| %s | %s | %s |\n", question, answer, confidence)
}

func boolAnswer(v *bool) string {
	if v == nil {
		return "unknown"
	}
	if *v {
		return "yes"
	}
	return "no"
}

func intAnswer(v *int) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *v)
}

func stringAnswer(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func varTypesAnswer(p *domain.DatasetProfile) string {
	if p.Var1Type == "" || p.Var2Type == "" {
		return "unknown"
	}
	return p.Var1Type + " / " + p.Var2Type
}

func predictorsAnswer(v *int) string {
	if v == nil {
		return "unknown"
	}
	if *v >= 2 {
		return "multiple"
	}
	return "one"
}

func codeList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	return strings.Join(quoted, ", ")
}
