package detect

import (
	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
	"gradstat/internal/match"
)

// Pairing answers isPaired by name heuristics: an identifier-like column
// (id/subject/patient) combined with either a time/visit-like column or
// duplicate identifier values implies repeated measures. Evidence here is
// inherently indirect, so confidence never exceeds medium — including the
// "not paired" answer, where absence of evidence is not proof of absence.
func Pairing(ds *dataset.Dataset) advisor.Detection {
	names := ds.ColumnNames()

	hasIDColumn := match.Identifier.AnyOf(names)
	hasTimeColumn := match.TimeVisit.AnyOf(names)

	// Duplicates are checked on the first identifier-like column only
	// (by declaration order), matching the documented tie-break.
	hasDuplicates := false
	idColumn := match.Identifier.First(names)
	if idColumn != "" {
		if col, ok := ds.Column(idColumn); ok {
			hasDuplicates = col.HasDuplicates()
		}
	}

	details := map[string]interface{}{
		"has_id":   hasIDColumn,
		"has_time": hasTimeColumn,
	}
	if idColumn != "" {
		details["id_column"] = idColumn
		details["has_duplicates"] = hasDuplicates
	}

	if hasIDColumn && (hasTimeColumn || hasDuplicates) {
		return advisor.Detection{
			Answer:      true,
			Confidence:  advisor.ConfidenceMedium,
			Explanation: "Detected ID and time/repeated columns - data appears to be paired or repeated measures.",
			Details:     details,
		}
	}

	return advisor.Detection{
		Answer:      false,
		Confidence:  advisor.ConfidenceMedium,
		Explanation: "No clear paired structure detected - assuming independent groups. Name-based evidence is indirect; verify if your design is paired.",
		Details:     details,
	}
}
