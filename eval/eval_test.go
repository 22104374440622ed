package eval

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestPooledAggregation(t *testing.T) {
	foldA := Result{TP: 3, FP: 1, FN: 2}
	foldB := Result{TP: 5, FP: 0, FN: 1}
	total := new(FMeasure)
	total.Add(foldA)
	total.Add(foldB)

	if total.TP != 8 || total.FP != 1 || total.FN != 3 {
		t.Fatalf("Expected summed counts TP=8 FP=1 FN=3, got %+v", total.Result)
	}
	precision := 8.0 / 9.0
	recall := 8.0 / 11.0
	f := 2 * precision * recall / (precision + recall)
	if !almostEqual(total.Precision(), precision) {
		t.Errorf("Expected precision %v, got %v", precision, total.Precision())
	}
	if !almostEqual(total.Recall(), recall) {
		t.Errorf("Expected recall %v, got %v", recall, total.Recall())
	}
	if !almostEqual(total.F1(), f) {
		t.Errorf("Expected F %v, got %v", f, total.F1())
	}
	averaged := (foldA.F1() + foldB.F1()) / 2
	if almostEqual(total.F1(), averaged) {
		t.Error("Pooled F should differ from the average of per fold F scores")
	}
}

func TestZeroCounts(t *testing.T) {
	r := Result{}
	if r.Precision() != 0 || r.Recall() != 0 || r.F1() != 0 {
		t.Errorf("Expected zeros for empty result, got %v %v %v", r.Precision(), r.Recall(), r.F1())
	}
}

func TestExactMatch(t *testing.T) {
	total := new(FMeasure)
	total.Add(Result{TP: 2})
	total.Add(Result{TP: 1, FN: 1})
	if total.Exact != 1 || total.Population != 2 {
		t.Errorf("Expected 1 exact of 2, got %d of %d", total.Exact, total.Population)
	}
	if total.ExactMatch() != 0.5 {
		t.Errorf("Expected exact match 0.5, got %v", total.ExactMatch())
	}
}

func TestMerge(t *testing.T) {
	a := &FMeasure{Result: Result{TP: 3, FP: 1, FN: 2}, Exact: 1, Population: 4}
	b := &FMeasure{Result: Result{TP: 5, FN: 1}, Exact: 2, Population: 3}
	a.Merge(b)
	if a.TP != 8 || a.FP != 1 || a.FN != 3 || a.Exact != 3 || a.Population != 7 {
		t.Errorf("Unexpected merged result %+v", a)
	}
}

func TestFMeasureString(t *testing.T) {
	total := &FMeasure{Result: Result{TP: 1, FP: 1, FN: 1}}
	expected := "Precision: 0.5\nRecall: 0.5\nF-Measure: 0.5"
	if total.String() != expected {
		t.Errorf("Expected %q, got %q", expected, total.String())
	}
}
