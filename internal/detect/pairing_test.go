package detect

import (
	"testing"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
)

func TestPairingDetectsIDPlusTimeColumn(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("subject_id", []float64{1, 2, 3, 4}),
		dataset.TextColumn("visit", repeatText([]string{"baseline", "followup"}, 4), nil),
		dataset.NumericColumn("score", gaussian(4, 10, 2, 1)),
	})

	det := Pairing(ds)
	if answer, ok := det.Answer.(bool); !ok || !answer {
		t.Fatalf("answer = %v, want true", det.Answer)
	}
	if det.Confidence != advisor.ConfidenceMedium {
		t.Errorf("confidence = %s, name evidence is never high", det.Confidence)
	}
}

func TestPairingDetectsRepeatedIDs(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("patient_id", []float64{1, 1, 2, 2, 3, 3}),
		dataset.NumericColumn("score", gaussian(6, 10, 2, 1)),
	})

	det := Pairing(ds)
	if answer, ok := det.Answer.(bool); !ok || !answer {
		t.Fatalf("answer = %v, want true for duplicated ids", det.Answer)
	}
	if det.Details["has_duplicates"] != true {
		t.Error("details should record the duplicate-id evidence")
	}
}

func TestPairingIndependentGroups(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("age", gaussian(10, 40, 5, 1)),
		dataset.TextColumn("group", repeatText([]string{"a", "b"}, 10), nil),
	})

	det := Pairing(ds)
	if answer, ok := det.Answer.(bool); !ok || answer {
		t.Fatalf("answer = %v, want false", det.Answer)
	}
	// Absence of evidence is also reported at medium, never high.
	if det.Confidence != advisor.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium", det.Confidence)
	}
}

func TestPairingUniqueIDsAloneAreNotPaired(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("id", []float64{1, 2, 3, 4, 5}),
		dataset.NumericColumn("score", gaussian(5, 10, 2, 1)),
	})

	det := Pairing(ds)
	if answer, ok := det.Answer.(bool); !ok || answer {
		t.Fatalf("answer = %v, want false: unique ids, no time column", det.Answer)
	}
}
