// Package classify assigns each dataset column a semantic type plus summary
// statistics. Every detector downstream composes these profiles instead of
// re-probing raw storage types.
package classify

import (
	"time"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/match"
)

// Options tunes the classifier.
type Options struct {
	// SampleCap bounds the normality-test sample; 0 means no cap.
	SampleCap int
	// MaxCategories is the distinct-value ceiling for the categorical type.
	MaxCategories int
	// Seed fixes the subsampling RNG for reproducible profiles.
	Seed int64
}

// DefaultOptions mirror the service defaults.
func DefaultOptions() Options {
	return Options{SampleCap: 5000, MaxCategories: 10, Seed: 42}
}

// dateLayouts are tried, in order, when probing text columns for date-like
// content.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02-Jan-2006",
}

// Classify inspects a single column and returns its immutable profile.
// It never returns an error and never panics: any internal failure (for
// example a degenerate column breaking the normality test) is recorded in
// the profile's Error field with IsNormal left nil.
func Classify(col *dataset.Column, opts Options) advisor.ColumnProfile {
	if opts.MaxCategories <= 0 {
		opts.MaxCategories = 10
	}

	profile := advisor.ColumnProfile{
		Name:            col.Name,
		UniqueCount:     col.UniqueCount(),
		MissingFraction: col.MissingFraction(),
		SampleSize:      col.NonMissing(),
	}

	switch {
	case profile.UniqueCount == 2:
		// Exactly two distinct non-missing values is binary regardless
		// of storage kind; only 0/1-style coding is event-eligible.
		profile.SemanticType = advisor.TypeBinary
		profile.EventEligible = col.IsZeroOneCoded()
	case isIdentifier(col, profile):
		profile.SemanticType = advisor.TypeIdentifier
	case col.Kind == dataset.KindNumeric:
		profile.SemanticType = advisor.TypeContinuous
		attachNormality(col, opts, &profile)
	case isDateLike(col):
		profile.SemanticType = advisor.TypeDateLike
	default:
		profile.SemanticType = advisor.TypeCategorical
		if profile.UniqueCount > opts.MaxCategories {
			// High-cardinality text: still reported as categorical
			// but never a grouping candidate (2-10 level rule).
			if profile.SampleSize > 0 && profile.UniqueCount == profile.SampleSize {
				profile.SemanticType = advisor.TypeIdentifier
			}
		}
	}

	return profile
}

// attachNormality computes the approximate normality p-value for continuous
// columns with at least 3 observations.
func attachNormality(col *dataset.Column, opts Options, profile *advisor.ColumnProfile) {
	clean := col.CleanFloats()
	if len(clean) < 3 {
		profile.Error = "insufficient data for normality test"
		return
	}
	res, err := TestNormality(clean, opts.SampleCap, opts.Seed)
	profile.NormalityN = res.N
	if err != nil {
		profile.Error = err.Error()
		return
	}
	p := res.PValue
	normal := p > 0.05
	profile.NormalityP = &p
	profile.IsNormal = &normal
	profile.Approx = res.Approximate
}

// isIdentifier flags columns that name themselves as identifiers and are
// unique per observation.
func isIdentifier(col *dataset.Column, profile advisor.ColumnProfile) bool {
	if !match.Identifier.Matches(col.Name) {
		return false
	}
	return profile.SampleSize > 0 && profile.UniqueCount == profile.SampleSize
}

// isDateLike probes up to 20 values of a text column against known date
// layouts; 80% parse success marks the column date-like.
func isDateLike(col *dataset.Column) bool {
	probed, parsed := 0, 0
	for i := 0; i < col.Len() && probed < 20; i++ {
		if col.IsMissing(i) {
			continue
		}
		probed++
		cell := col.CellString(i)
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, cell); err == nil {
				parsed++
				break
			}
		}
	}
	return probed > 0 && float64(parsed)/float64(probed) >= 0.8
}

// ProfileAll classifies every column of a dataset in declaration order.
func ProfileAll(ds *dataset.Dataset, opts Options) []advisor.ColumnProfile {
	profiles := make([]advisor.ColumnProfile, 0, len(ds.Columns()))
	for _, col := range ds.Columns() {
		profiles = append(profiles, Classify(col, opts))
	}
	return profiles
}
