package namefind

import (
	"log"

	"github.com/google/uuid"

	"seqlab/alg/perceptron"
	"seqlab/nlp/codec"
	"seqlab/nlp/model"
	nlp "seqlab/nlp/types"
)

var AllOut bool = false

// TrainFunc produces a validated model from training samples.
type TrainFunc func(language, entityType string, samples []*nlp.NameSample, params *perceptron.Params, factory *Factory) (*Model, error)

var _ TrainFunc = Train

// Train fits a perceptron over the samples. Names without a type (or with the
// default type) are relabeled entityType when it is set.
func Train(language, entityType string, samples []*nlp.NameSample, params *perceptron.Params, factory *Factory) (*Model, error) {
	if params == nil {
		params = perceptron.DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	cg, err := factory.ContextGenerator()
	if err != nil {
		return nil, descriptorError(err)
	}
	events := Events(samples, entityType, factory.Codec(), cg)
	trainer := params.Trainer()
	trainer.Log = AllOut
	if AllOut {
		log.Println("Training on", len(samples), "samples,", len(events), "events")
	}
	m, err := trainer.Train(events)
	if err != nil {
		return nil, err
	}
	return NewModel(language, model.ModelArtifact{Model: m}, DEFAULT_BEAM_SIZE, factory, map[string]string{
		model.TRAINING_UUID_KEY: uuid.NewString(),
	})
}

// Events turns samples into one training event per token.
func Events(samples []*nlp.NameSample, entityType string, c codec.SequenceCodec, cg *ContextGenerator) []perceptron.Event {
	var events []perceptron.Event
	for _, sample := range samples {
		if sample.ClearAdaptiveData {
			cg.ClearAdaptiveData()
		}
		names := make([]nlp.Span, len(sample.Names))
		for i, name := range sample.Names {
			if entityType != "" && (name.Type == "" || name.Type == nlp.DEFAULT_TYPE) {
				name.Type = entityType
			}
			names[i] = name
		}
		outcomes := c.Encode(names, len(sample.Tokens))
		for i, o := range outcomes {
			events = append(events, perceptron.Event{Outcome: o, Context: cg.Context(i, sample.Tokens, outcomes)})
		}
		cg.UpdateAdaptiveData(sample.Tokens, outcomes)
	}
	return events
}
