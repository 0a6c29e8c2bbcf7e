package detect

import (
	"testing"

	"gradstat/domain/advisor"
	"gradstat/domain/dataset"
)

func TestVariableTypesBothContinuous(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("height", gaussian(20, 170, 10, 1)),
		dataset.NumericColumn("weight", gaussian(20, 70, 8, 2)),
	})

	det := VariableTypes(ds)
	answer, ok := det.Answer.(map[string]string)
	if !ok {
		t.Fatalf("answer type = %T, want map[string]string", det.Answer)
	}
	if answer["var1Type"] != "continuous" || answer["var2Type"] != "continuous" {
		t.Errorf("answer = %v, want continuous/continuous", answer)
	}
	if det.Confidence != advisor.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", det.Confidence)
	}
}

func TestVariableTypesMixed(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("height", gaussian(20, 170, 10, 1)),
		dataset.TextColumn("sex", repeatText([]string{"f", "m"}, 20), nil),
	})

	det := VariableTypes(ds)
	answer := det.Answer.(map[string]string)
	if answer["var1Type"] != "continuous" || answer["var2Type"] != "categorical" {
		t.Errorf("answer = %v, want continuous/categorical", answer)
	}
}

func TestVariableTypesBothCategorical(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.TextColumn("smoker", repeatText([]string{"yes", "no"}, 20), nil),
		dataset.TextColumn("disease", repeatText([]string{"present", "absent"}, 20), nil),
	})

	det := VariableTypes(ds)
	answer := det.Answer.(map[string]string)
	if answer["var1Type"] != "categorical" || answer["var2Type"] != "categorical" {
		t.Errorf("answer = %v, want categorical/categorical", answer)
	}
}

func TestVariableTypesSingleColumn(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("x", gaussian(20, 0, 1, 1)),
	})

	det := VariableTypes(ds)
	if det.Answer != nil {
		t.Errorf("answer = %v, want nil for a single column", det.Answer)
	}
	if det.Confidence != advisor.ConfidenceLow {
		t.Errorf("confidence = %s, want low", det.Confidence)
	}
}

func TestPredictorsExcludesBookkeepingColumns(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("row_number", []float64{1, 2, 3, 4}),
		dataset.NumericColumn("patient_id", []float64{10, 11, 12, 13}),
		dataset.NumericColumn("age", gaussian(4, 40, 5, 1)),
		dataset.NumericColumn("bmi", gaussian(4, 25, 3, 2)),
	})

	det := Predictors(ds)
	if n, ok := det.Answer.(int); !ok || n != 2 {
		t.Fatalf("answer = %v, want 2 (meaning multiple)", det.Answer)
	}
	cols := det.Details["predictor_columns"].([]string)
	if len(cols) != 2 || cols[0] != "age" || cols[1] != "bmi" {
		t.Errorf("predictor_columns = %v, want [age bmi]", cols)
	}
}

func TestPredictorsSingleCandidate(t *testing.T) {
	ds := dataset.New("t", []*dataset.Column{
		dataset.NumericColumn("id", []float64{1, 2, 3}),
		dataset.NumericColumn("age", gaussian(3, 40, 5, 1)),
	})

	det := Predictors(ds)
	if n, ok := det.Answer.(int); !ok || n != 1 {
		t.Fatalf("answer = %v, want 1", det.Answer)
	}
	if det.Confidence != advisor.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium", det.Confidence)
	}
}
