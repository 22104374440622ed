package search

import (
	"encoding/gob"
	"math"
)

func init() {
	gob.Register(&Beam{})
	gob.Register(&Deterministic{})
}

var AllOut bool = false

// ProbabilityModel scores every outcome for a context of predicates.
type ProbabilityModel interface {
	Eval(context []string) []float64
	NumOutcomes() int
	Outcome(i int) string
	// Index returns -1 for an unknown outcome
	Index(outcome string) int
}

// ContextGenerator produces the predicates for position i given the outcomes
// decided so far.
type ContextGenerator interface {
	Context(i int, sequence []string, priorDecisions []string) []string
}

type SequenceValidator interface {
	ValidSequence(i int, sequence []string, priorOutcomes []string, outcome string) bool
}

// SequenceClassifier is a ready to run sequence decoder.
type SequenceClassifier interface {
	BestSequence(sequence []string, cg ContextGenerator, v SequenceValidator) *Sequence
	BestSequences(num int, sequence []string, cg ContextGenerator, v SequenceValidator) []*Sequence
	Outcomes() []string
}

type AcceptAll struct{}

func (AcceptAll) ValidSequence(int, []string, []string, string) bool {
	return true
}

// Sequence is a (partial) decoding: one outcome per position, the
// probability of each and the sum of their logs.
type Sequence struct {
	Outcomes []string
	Probs    []float64
	Score    float64
}

func (s *Sequence) Extend(outcome string, prob float64) *Sequence {
	n := len(s.Outcomes)
	outcomes := make([]string, n+1)
	copy(outcomes, s.Outcomes)
	outcomes[n] = outcome
	probs := make([]float64, n+1)
	copy(probs, s.Probs)
	probs[n] = prob
	return &Sequence{outcomes, probs, s.Score + math.Log(prob)}
}

func (s *Sequence) Len() int {
	return len(s.Outcomes)
}

func modelOutcomes(m ProbabilityModel) []string {
	if m == nil {
		return nil
	}
	retval := make([]string, m.NumOutcomes())
	for i := range retval {
		retval[i] = m.Outcome(i)
	}
	return retval
}
