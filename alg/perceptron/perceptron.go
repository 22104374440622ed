package perceptron

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrNoEvents   = errors.New("training data contains no events")
	ErrNoOutcomes = errors.New("training data needs at least two outcomes")
)

type StopCondition func(curIt, numIt, generations int, model *Model) bool

func DefaultStopCondition(iteration, iterations, generations int, model *Model) bool {
	return iteration < iterations
}

// Trainer is a multiclass linear perceptron over events.
type Trainer struct {
	Iterations int
	// predicates seen fewer than Cutoff times are dropped
	Cutoff   int
	Updater  UpdateStrategy
	Log      bool
	Continue StopCondition
}

type indexedEvent struct {
	outcome    int
	predicates []int
}

func (t *Trainer) Train(events []Event) (*Model, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	if t.Continue == nil {
		t.Continue = DefaultStopCondition
	}
	if t.Updater == nil {
		t.Updater = new(AveragedStrategy)
	}
	model, indexed := t.index(events)
	if model.NumOutcomes() < 2 {
		return nil, ErrNoOutcomes
	}
	return t.train(model, indexed), nil
}

func (t *Trainer) index(events []Event) (*Model, []indexedEvent) {
	counts := make(map[string]int)
	var (
		outcomes   []string
		predicates []string
		seen       = make(map[string]bool)
	)
	for _, e := range events {
		if !seen[e.Outcome] {
			seen[e.Outcome] = true
			outcomes = append(outcomes, e.Outcome)
		}
		for _, pred := range e.Context {
			counts[pred]++
			if counts[pred] == t.Cutoff || (t.Cutoff <= 1 && counts[pred] == 1) {
				predicates = append(predicates, pred)
			}
		}
	}
	model := NewModel(outcomes, predicates)
	indexed := make([]indexedEvent, len(events))
	for i, e := range events {
		indexed[i].outcome = model.Index(e.Outcome)
		for _, pred := range e.Context {
			if p, exists := model.predicates.IndexOf(pred); exists {
				indexed[i].predicates = append(indexed[i].predicates, p)
			}
		}
	}
	return model, indexed
}

func (t *Trainer) train(model *Model, events []indexedEvent) *Model {
	var generations int
	prevPrefix := log.Prefix()
	defer log.SetPrefix(prevPrefix)
	t.Updater.Init(model, t.Iterations)
	scores := make([]float64, model.NumOutcomes())
	for i := 0; t.Continue(i, t.Iterations, generations, model); i++ {
		log.SetPrefix("IT #" + fmt.Sprintf("%v ", i) + prevPrefix)
		correct := 0
		for _, e := range events {
			for o := range scores {
				scores[o] = 0
			}
			for _, p := range e.predicates {
				for o, w := range model.weights[p] {
					scores[o] += w
				}
			}
			predicted := 0
			for o, s := range scores {
				if s > scores[predicted] {
					predicted = o
				}
			}
			if predicted != e.outcome {
				for _, p := range e.predicates {
					t.Updater.Add(model, p, e.outcome, 1)
					t.Updater.Add(model, p, predicted, -1)
				}
			} else {
				correct++
			}
			t.Updater.Tick(model)
			generations++
		}
		if t.Log {
			log.Printf("%d of %d events correct (%.4f)", correct, len(events), float64(correct)/float64(len(events)))
		}
		if correct == len(events) {
			if t.Log {
				log.Println("Training data separated, stopping")
			}
			break
		}
	}
	return t.Updater.Finalize(model)
}
