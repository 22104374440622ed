package eval

import "fmt"

func Precision(truePositives, testPositives int) float64 {
	if testPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(testPositives)
}

func Recall(truePositives, conditionPositives int) float64 {
	if conditionPositives == 0 {
		return 0
	}
	return float64(truePositives) / float64(conditionPositives)
}

func F1(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2.0 * (precision * recall) / (precision + recall)
}

// Result holds the confusion counts of one evaluated instance (or fold).
type Result struct {
	TP, FP, FN int
}

func (r *Result) Correct() int {
	return r.TP
}

func (r *Result) Incorrect() int {
	return r.FP + r.FN
}

// TestPositives is the number of predicted items.
func (r *Result) TestPositives() int {
	return r.TP + r.FP
}

// ConditionPositives is the number of gold items.
func (r *Result) ConditionPositives() int {
	return r.TP + r.FN
}

func (r *Result) Precision() float64 {
	return Precision(r.TP, r.TestPositives())
}

func (r *Result) Recall() float64 {
	return Recall(r.TP, r.ConditionPositives())
}

func (r *Result) F1() float64 {
	return F1(r.Precision(), r.Recall())
}

// FMeasure pools confusion counts. Precision, recall and F are always
// computed from the summed counts, never averaged over the added results.
type FMeasure struct {
	Result
	Exact, Population int
}

func (t *FMeasure) Add(r Result) {
	t.TP += r.TP
	t.FP += r.FP
	t.FN += r.FN
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
}

// Merge pools the counts of other into t.
func (t *FMeasure) Merge(other *FMeasure) {
	t.TP += other.TP
	t.FP += other.FP
	t.FN += other.FN
	t.Exact += other.Exact
	t.Population += other.Population
}

func (t *FMeasure) ExactMatch() float64 {
	if t.Population == 0 {
		return 0
	}
	return float64(t.Exact) / float64(t.Population)
}

func (t *FMeasure) String() string {
	return fmt.Sprintf("Precision: %v\nRecall: %v\nF-Measure: %v", t.Precision(), t.Recall(), t.F1())
}
