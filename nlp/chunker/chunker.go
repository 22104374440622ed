package chunker

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"seqlab/alg/perceptron"
	"seqlab/alg/search"
	"seqlab/nlp/model"
	nlp "seqlab/nlp/types"
)

var AllOut bool = false

const (
	BEGIN_PREFIX  = "B-"
	INSIDE_PREFIX = "I-"
	OUTSIDE       = "O"
)

// contextGenerator looks at a two token window of words and POS tags around
// the current token, and the previous chunk tags.
type contextGenerator struct {
	tags []string
}

func (c contextGenerator) Context(i int, tokens, prior []string) []string {
	at := func(seq []string, j int) string {
		if j < 0 {
			return "bos"
		}
		if j >= len(seq) {
			return "eos"
		}
		return seq[j]
	}
	features := []string{"def"}
	for d := -2; d <= 2; d++ {
		features = append(features,
			fmt.Sprintf("w%d=%s", d, strings.ToLower(at(tokens, i+d))),
			fmt.Sprintf("t%d=%s", d, at(c.tags, i+d)))
	}
	features = append(features, "t0,t1="+at(c.tags, i)+","+at(c.tags, i+1))
	prev := "bos"
	if i > 0 && i <= len(prior) {
		prev = prior[i-1]
	}
	features = append(features, "p="+prev, "p,t0="+prev+","+at(c.tags, i))
	return features
}

// validator allows I-X only after B-X or I-X.
type validator struct{}

func (validator) ValidSequence(i int, sequence, prior []string, outcome string) bool {
	if !strings.HasPrefix(outcome, INSIDE_PREFIX) {
		return true
	}
	if i == 0 || len(prior) == 0 {
		return false
	}
	prev := prior[len(prior)-1]
	if !strings.HasPrefix(prev, BEGIN_PREFIX) && !strings.HasPrefix(prev, INSIDE_PREFIX) {
		return false
	}
	return prev[2:] == outcome[2:]
}

// Chunker tags POS tagged tokens with B-X, I-X and O. A Chunker is safe for
// concurrent use.
type Chunker struct {
	decoder search.SequenceClassifier
}

func NewChunker(m *Model) (*Chunker, error) {
	decoder, err := m.DecodingModel()
	if err != nil {
		return nil, err
	}
	return &Chunker{decoder}, nil
}

func (c *Chunker) Chunk(tokens, tags []string) ([]string, error) {
	if len(tokens) != len(tags) {
		return nil, fmt.Errorf("got %d tokens and %d tags", len(tokens), len(tags))
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	seq := c.decoder.BestSequence(tokens, contextGenerator{tags}, validator{})
	if seq == nil {
		return nil, fmt.Errorf("no valid chunk sequence for %v", tokens)
	}
	return seq.Outcomes, nil
}

// ChunkAsSpans returns the phrases of Chunk as typed token spans.
func (c *Chunker) ChunkAsSpans(tokens, tags []string) ([]nlp.Span, error) {
	preds, err := c.Chunk(tokens, tags)
	if err != nil {
		return nil, err
	}
	return nlp.PhrasesAsSpans(preds), nil
}

func Events(samples []*nlp.ChunkSample) []perceptron.Event {
	var events []perceptron.Event
	for _, s := range samples {
		cg := contextGenerator{s.Tags}
		for i, pred := range s.Preds {
			events = append(events, perceptron.Event{Outcome: pred, Context: cg.Context(i, s.Tokens, s.Preds)})
		}
	}
	return events
}

func Train(language string, samples []*nlp.ChunkSample, params *perceptron.Params) (*Model, error) {
	if params == nil {
		params = perceptron.DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	trainer := params.Trainer()
	trainer.Log = AllOut
	m, err := trainer.Train(Events(samples))
	if err != nil {
		return nil, err
	}
	if AllOut {
		log.Println("Trained chunker with", m.NumOutcomes(), "outcomes and", m.NumPredicates(), "predicates")
	}
	return NewModel(language, model.ModelArtifact{Model: m}, DEFAULT_BEAM_SIZE, map[string]string{
		model.TRAINING_UUID_KEY: uuid.NewString(),
	})
}
