package perceptron

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"seqlab/alg/search"
	"seqlab/util"
)

func init() {
	gob.Register(&Model{})
}

// Model is a linear model over string predicates. Eval normalizes the summed
// predicate weights of a context into a distribution over outcomes.
type Model struct {
	outcomes   *util.EnumSet
	predicates *util.EnumSet
	weights    [][]float64 // [predicate][outcome]
}

var _ search.ProbabilityModel = &Model{}

func NewModel(outcomes, predicates []string) *Model {
	m := &Model{
		outcomes:   util.NewStringEnumSet(outcomes),
		predicates: util.NewStringEnumSet(predicates),
	}
	m.weights = make([][]float64, m.predicates.Len())
	for i := range m.weights {
		m.weights[i] = make([]float64, m.outcomes.Len())
	}
	return m
}

func (m *Model) scores(context []string) []float64 {
	scores := make([]float64, m.outcomes.Len())
	for _, pred := range context {
		if p, exists := m.predicates.IndexOf(pred); exists {
			for o, w := range m.weights[p] {
				scores[o] += w
			}
		}
	}
	return scores
}

func (m *Model) Eval(context []string) []float64 {
	scores := m.scores(context)
	if len(scores) == 0 {
		return scores
	}
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
	return scores
}

func (m *Model) NumOutcomes() int {
	return m.outcomes.Len()
}

func (m *Model) Outcome(i int) string {
	return m.outcomes.ValueOf(i).(string)
}

func (m *Model) Index(outcome string) int {
	if i, exists := m.outcomes.IndexOf(outcome); exists {
		return i
	}
	return -1
}

func (m *Model) Outcomes() []string {
	return m.outcomes.Strings()
}

func (m *Model) NumPredicates() int {
	return m.predicates.Len()
}

// Weight returns 0 for unknown predicates or outcomes.
func (m *Model) Weight(predicate, outcome string) float64 {
	p, pExists := m.predicates.IndexOf(predicate)
	o := m.Index(outcome)
	if !pExists || o < 0 {
		return 0
	}
	return m.weights[p][o]
}

// SetWeight panics on unknown predicates or outcomes.
func (m *Model) SetWeight(predicate, outcome string, w float64) {
	p, pExists := m.predicates.IndexOf(predicate)
	o := m.Index(outcome)
	if !pExists || o < 0 {
		panic(fmt.Sprintf("Unknown predicate/outcome %s/%s", predicate, outcome))
	}
	m.weights[p][o] = w
}

// ModelSerialized is the on-disk layout of a Model. All fields are slices so
// the encoding is byte-stable.
type ModelSerialized struct {
	Outcomes   []string
	Predicates []string
	Weights    [][]float64
}

func (m *Model) Serialize() *ModelSerialized {
	return &ModelSerialized{m.outcomes.Strings(), m.predicates.Strings(), m.weights}
}

func (m *Model) Deserialize(data *ModelSerialized) error {
	if len(data.Weights) != len(data.Predicates) {
		return fmt.Errorf("model has %d weight rows for %d predicates", len(data.Weights), len(data.Predicates))
	}
	for i, row := range data.Weights {
		if len(row) != len(data.Outcomes) {
			return fmt.Errorf("predicate %d has %d weights for %d outcomes", i, len(row), len(data.Outcomes))
		}
	}
	m.outcomes = util.NewStringEnumSet(data.Outcomes)
	m.predicates = util.NewStringEnumSet(data.Predicates)
	if m.outcomes.Len() != len(data.Outcomes) || m.predicates.Len() != len(data.Predicates) {
		return fmt.Errorf("model has duplicate outcomes or predicates")
	}
	m.weights = data.Weights
	return nil
}

func (m *Model) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.Serialize()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Model) GobDecode(data []byte) error {
	serialized := new(ModelSerialized)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(serialized); err != nil {
		return err
	}
	return m.Deserialize(serialized)
}
