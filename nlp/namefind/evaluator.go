package namefind

import (
	"seqlab/eval"
	nlp "seqlab/nlp/types"
)

// EvaluationMonitor observes every evaluated sample.
type EvaluationMonitor interface {
	CorrectlyClassified(reference, predicted *nlp.NameSample)
	Misclassified(reference, predicted *nlp.NameSample)
}

// Evaluator compares a name finder's output to reference samples and pools the
// counts.
type Evaluator struct {
	finder   *NameFinder
	monitors []EvaluationMonitor
	fmeasure eval.FMeasure
}

func NewEvaluator(finder *NameFinder, monitors ...EvaluationMonitor) *Evaluator {
	return &Evaluator{finder: finder, monitors: monitors}
}

// EvaluateSample tags reference's tokens and returns the prediction.
func (e *Evaluator) EvaluateSample(reference *nlp.NameSample) *nlp.NameSample {
	if reference.ClearAdaptiveData {
		e.finder.ClearAdaptiveData()
	}
	predicted := &nlp.NameSample{
		Tokens:            reference.Tokens,
		Names:             e.finder.Find(reference.Tokens),
		ClearAdaptiveData: reference.ClearAdaptiveData,
	}
	result := Compare(reference.Names, predicted.Names)
	e.fmeasure.Add(result)
	for _, m := range e.monitors {
		if result.Incorrect() == 0 {
			m.CorrectlyClassified(reference, predicted)
		} else {
			m.Misclassified(reference, predicted)
		}
	}
	return predicted
}

func (e *Evaluator) Evaluate(samples []*nlp.NameSample) {
	for _, sample := range samples {
		e.EvaluateSample(sample)
	}
}

func (e *Evaluator) FMeasure() *eval.FMeasure {
	return &e.fmeasure
}

// Compare counts exact span matches, type included.
func Compare(reference, predicted []nlp.Span) eval.Result {
	gold := make(map[nlp.Span]int, len(reference))
	for _, s := range reference {
		gold[s]++
	}
	var r eval.Result
	for _, s := range predicted {
		if gold[s] > 0 {
			gold[s]--
			r.TP++
		} else {
			r.FP++
		}
	}
	r.FN = len(reference) - r.TP
	return r
}
