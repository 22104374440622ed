package perceptron

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"seqlab/util/errs"
)

var toyEvents = []Event{
	{"person", []string{"w=john", "cap"}},
	{"other", []string{"w=went", "lower"}},
	{"person", []string{"w=mary", "cap"}},
	{"other", []string{"w=home", "lower"}},
	{"other", []string{"w=The", "cap", "first"}},
}

func TestTrivialStrategy(t *testing.T) {
	m := NewModel([]string{"a", "b"}, []string{"x"})
	s := new(TrivialStrategy)
	s.Init(m, 10)
	s.Add(m, 0, 1, 2)
	s.Tick(m)
	if s.Finalize(m) != m {
		t.Error("Should return trivial value")
	}
	if m.Weight("x", "b") != 2 {
		t.Errorf("Expected weight 2, got %v", m.Weight("x", "b"))
	}
}

func TestAveragedStrategy(t *testing.T) {
	m := NewModel([]string{"a", "b"}, []string{"x"})
	s := new(AveragedStrategy)
	s.Init(m, 4)
	// update by 4 at the first of four ticks
	s.Add(m, 0, 0, 4)
	s.Tick(m)
	s.Tick(m)
	s.Tick(m)
	s.Tick(m)
	avg := s.Finalize(m)
	if got := avg.Weight("x", "a"); math.Abs(got-3.2) > 1e-9 {
		t.Errorf("Got averaged value %v expected %v", got, 3.2)
	}
	if m.Weight("x", "a") != 4 {
		t.Error("Finalize should not change the running weights")
	}
}

func TestTrainSeparable(t *testing.T) {
	trainer := &Trainer{Iterations: 20, Cutoff: 0, Updater: new(TrivialStrategy)}
	model, err := trainer.Train(toyEvents)
	if err != nil {
		t.Fatal(err.Error())
	}
	for _, e := range toyEvents {
		probs := model.Eval(e.Context)
		best := 0
		for o := range probs {
			if probs[o] > probs[best] {
				best = o
			}
		}
		if model.Outcome(best) != e.Outcome {
			t.Errorf("Expected %s for %v, got %s", e.Outcome, e.Context, model.Outcome(best))
		}
	}
}

func TestTrainCutoff(t *testing.T) {
	trainer := &Trainer{Iterations: 1, Cutoff: 2}
	model, err := trainer.Train(toyEvents)
	if err != nil {
		t.Fatal(err.Error())
	}
	// only cap and lower occur twice or more
	if model.NumPredicates() != 2 {
		t.Errorf("Expected 2 predicates, got %d", model.NumPredicates())
	}
}

func TestTrainErrors(t *testing.T) {
	trainer := &Trainer{Iterations: 1}
	if _, err := trainer.Train(nil); err != ErrNoEvents {
		t.Errorf("Expected ErrNoEvents, got %v", err)
	}
	if _, err := trainer.Train([]Event{{"a", []string{"x"}}}); err != ErrNoOutcomes {
		t.Errorf("Expected ErrNoOutcomes, got %v", err)
	}
}

func TestEvalDistribution(t *testing.T) {
	m := NewModel([]string{"a", "b", "c"}, []string{"x", "y"})
	m.SetWeight("x", "a", 2)
	m.SetWeight("y", "b", 1)
	probs := m.Eval([]string{"x", "y", "unknown"})
	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("Expected probabilities to sum to 1, got %v", sum)
	}
	if !(probs[0] > probs[1] && probs[1] > probs[2]) {
		t.Errorf("Expected a > b > c, got %v", probs)
	}
	if m.Index("c") != 2 || m.Index("zzz") != -1 {
		t.Error("Unexpected outcome index")
	}
}

func TestModelRoundTrip(t *testing.T) {
	trainer := &Trainer{Iterations: 5}
	model, err := trainer.Train(toyEvents)
	if err != nil {
		t.Fatal(err.Error())
	}
	var first, second bytes.Buffer
	if err := WriteModel(&first, model); err != nil {
		t.Fatal(err.Error())
	}
	if err := WriteModel(&second, model); err != nil {
		t.Fatal(err.Error())
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Expected byte identical serializations")
	}
	read, err := ReadModel(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err.Error())
	}
	ctx := []string{"w=john", "cap"}
	a, b := model.Eval(ctx), read.Eval(ctx)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Expected identical probabilities, got %v and %v", a, b)
		}
	}
}

func TestReadParams(t *testing.T) {
	params, err := ReadParams(strings.NewReader("Iterations=10\nCutoff=0\nAveraged=false\nThreads=4\n"))
	if err != nil {
		t.Fatal(err.Error())
	}
	if params.Iterations != 10 || params.Cutoff != 0 || params.Averaged {
		t.Errorf("Unexpected params %+v", params)
	}
	if _, ok := params.Trainer().Updater.(*TrivialStrategy); !ok {
		t.Error("Expected trivial updater for non averaged params")
	}
	if _, err := ReadParams(strings.NewReader("Algorithm=MAXENT\n")); !errs.IsConfiguration(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
	if _, err := ReadParams(strings.NewReader("Iterations=many\n")); !errs.IsConfiguration(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
}
