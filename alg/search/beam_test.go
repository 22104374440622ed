package search

import (
	"math"
	"testing"
)

// pairModel prefers A at the first position, but B followed by A is the best
// complete sequence.
type pairModel struct{}

func (pairModel) Eval(context []string) []float64 {
	switch context[0] {
	case "prev=A":
		return []float64{0.5, 0.5}
	case "prev=B":
		return []float64{0.9, 0.1}
	default:
		return []float64{0.6, 0.4}
	}
}

func (pairModel) NumOutcomes() int { return 2 }

func (pairModel) Outcome(i int) string { return []string{"A", "B"}[i] }

func (pairModel) Index(outcome string) int {
	switch outcome {
	case "A":
		return 0
	case "B":
		return 1
	}
	return -1
}

type prevContext struct{}

func (prevContext) Context(i int, sequence []string, prior []string) []string {
	if i == 0 {
		return []string{"start"}
	}
	return []string{"prev=" + prior[i-1]}
}

type noBAtStart struct{}

func (noBAtStart) ValidSequence(i int, sequence []string, prior []string, outcome string) bool {
	return i > 0 || outcome != "B"
}

func outcomesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBeamFindsBestSequence(t *testing.T) {
	beam := NewBeam(2, pairModel{})
	best := beam.BestSequence([]string{"x", "y"}, prevContext{}, nil)
	if best == nil {
		t.Fatal("Expected a sequence")
	}
	if !outcomesEqual(best.Outcomes, []string{"B", "A"}) {
		t.Errorf("Expected [B A], got %v", best.Outcomes)
	}
	if math.Abs(best.Score-math.Log(0.36)) > 1e-9 {
		t.Errorf("Expected score log(0.36), got %v", best.Score)
	}
}

func TestBeamWidthOneIsGreedy(t *testing.T) {
	beam := &Beam{Size: 1, Model: pairModel{}}
	best := beam.BestSequence([]string{"x", "y"}, prevContext{}, nil)
	if !outcomesEqual(best.Outcomes, []string{"A", "A"}) {
		t.Errorf("Expected [A A], got %v", best.Outcomes)
	}
}

func TestBeamValidator(t *testing.T) {
	beam := NewBeam(3, pairModel{})
	best := beam.BestSequence([]string{"x", "y"}, prevContext{}, noBAtStart{})
	if best.Outcomes[0] != "A" {
		t.Errorf("Expected validator to exclude B at start, got %v", best.Outcomes)
	}
}

func TestBeamBestSequencesOrder(t *testing.T) {
	beam := NewBeam(4, pairModel{})
	seqs := beam.BestSequences(3, []string{"x", "y"}, prevContext{}, nil)
	if len(seqs) != 3 {
		t.Fatalf("Expected 3 sequences, got %d", len(seqs))
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i].Score > seqs[i-1].Score {
			t.Errorf("Sequences not sorted by score at %d", i)
		}
	}
}

func TestNewBeamDefaultSize(t *testing.T) {
	if b := NewBeam(0, pairModel{}); b.Size != DEFAULT_BEAM_SIZE {
		t.Errorf("Expected default size %d, got %d", DEFAULT_BEAM_SIZE, b.Size)
	}
}

func TestAgendaKeepsBest(t *testing.T) {
	a := NewAgenda(2)
	a.Add(&Sequence{Score: -3})
	a.Add(&Sequence{Score: -1})
	a.Add(&Sequence{Score: -2})
	best := a.Best(5)
	if len(best) != 2 {
		t.Fatalf("Expected 2 kept sequences, got %d", len(best))
	}
	if best[0].Score != -1 || best[1].Score != -2 {
		t.Errorf("Expected scores [-1 -2], got [%v %v]", best[0].Score, best[1].Score)
	}
}
