package namefind

import (
	"seqlab/alg/search"
	"seqlab/nlp/codec"
	nlp "seqlab/nlp/types"
)

// NameFinder tags names in tokenized sentences. It keeps adaptive data between
// calls and is not safe for concurrent use; create one per goroutine from a
// shared Model.
type NameFinder struct {
	decoder    search.SequenceClassifier
	contextGen *ContextGenerator
	codec      codec.SequenceCodec
	probs      []float64
}

func NewNameFinder(m *Model) (*NameFinder, error) {
	decoder, err := m.DecodingModel()
	if err != nil {
		return nil, err
	}
	cg, err := m.Factory().ContextGenerator()
	if err != nil {
		return nil, err
	}
	return &NameFinder{decoder: decoder, contextGen: cg, codec: m.Factory().Codec()}, nil
}

// Find returns the names of tokens, sorted by position.
func (f *NameFinder) Find(tokens []string) []nlp.Span {
	f.probs = nil
	if len(tokens) == 0 {
		return nil
	}
	seq := f.decoder.BestSequence(tokens, f.contextGen, f.codec.Validator())
	if seq == nil {
		return nil
	}
	f.contextGen.UpdateAdaptiveData(tokens, seq.Outcomes)
	f.probs = seq.Probs
	return f.codec.Decode(seq.Outcomes)
}

// Probs returns the outcome probabilities of the last Find.
func (f *NameFinder) Probs() []float64 {
	return f.probs
}

// ClearAdaptiveData forgets the previous sentences; call it between documents.
func (f *NameFinder) ClearAdaptiveData() {
	f.contextGen.ClearAdaptiveData()
}
