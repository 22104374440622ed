package perceptron

// Event is a single training instance: the outcome observed with a context.
type Event struct {
	Outcome string
	Context []string
}

type UpdateStrategy interface {
	Init(m *Model, iterations int)
	Add(m *Model, predicate, outcome int, amount float64)
	// Tick marks the end of one training instance
	Tick(m *Model)
	Finalize(m *Model) *Model
}

type TrivialStrategy struct{}

var _ UpdateStrategy = &TrivialStrategy{}

func (s *TrivialStrategy) Init(m *Model, iterations int) {}

func (s *TrivialStrategy) Add(m *Model, predicate, outcome int, amount float64) {
	m.weights[predicate][outcome] += amount
}

func (s *TrivialStrategy) Tick(m *Model) {}

func (s *TrivialStrategy) Finalize(m *Model) *Model {
	return m
}

// AveragedStrategy returns the average of the weights over all ticks. The
// running sum is kept lazily: every update is recorded once, scaled by the
// tick it happened at.
type AveragedStrategy struct {
	scaled [][]float64
	c      float64
}

var _ UpdateStrategy = &AveragedStrategy{}

func (s *AveragedStrategy) Init(m *Model, iterations int) {
	s.scaled = make([][]float64, len(m.weights))
	for i, row := range m.weights {
		s.scaled[i] = make([]float64, len(row))
	}
	s.c = 1
}

func (s *AveragedStrategy) Add(m *Model, predicate, outcome int, amount float64) {
	m.weights[predicate][outcome] += amount
	s.scaled[predicate][outcome] += s.c * amount
}

func (s *AveragedStrategy) Tick(m *Model) {
	s.c++
}

func (s *AveragedStrategy) Finalize(m *Model) *Model {
	avg := &Model{outcomes: m.outcomes, predicates: m.predicates}
	avg.weights = make([][]float64, len(m.weights))
	for p, row := range m.weights {
		avg.weights[p] = make([]float64, len(row))
		for o, w := range row {
			avg.weights[p][o] = w - s.scaled[p][o]/s.c
		}
	}
	return avg
}
