package codec

import (
	"seqlab/alg/search"
	nlp "seqlab/nlp/types"
)

// BioCodec tags the first token of a name <type>-start, the following tokens
// <type>-cont and everything else other.
type BioCodec struct{}

var _ SequenceCodec = BioCodec{}

func (BioCodec) ID() string {
	return BioCodecID
}

func (BioCodec) Encode(names []nlp.Span, length int) []string {
	outcomes := make([]string, length)
	for i := range outcomes {
		outcomes[i] = OTHER
	}
	for _, name := range names {
		outcomes[name.Start] = outcome(name.Type, START)
		for i := name.Start + 1; i < name.End; i++ {
			outcomes[i] = outcome(name.Type, CONTINUE)
		}
	}
	return outcomes
}

func (BioCodec) Decode(outcomes []string) []nlp.Span {
	var (
		spans     []nlp.Span
		start     = -1
		startType string
	)
	for i, o := range outcomes {
		nameType, tag := splitOutcome(o)
		switch {
		case tag == START:
			if start >= 0 {
				spans = append(spans, nlp.Span{Start: start, End: i, Type: startType})
			}
			start, startType = i, nameType
		case tag == CONTINUE && start >= 0 && nameType == startType:
		default:
			if start >= 0 {
				spans = append(spans, nlp.Span{Start: start, End: i, Type: startType})
			}
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, nlp.Span{Start: start, End: len(outcomes), Type: startType})
	}
	return spans
}

func (BioCodec) Validator() search.SequenceValidator {
	return bioValidator{}
}

// AreOutcomesCompatible requires a start outcome for every cont outcome.
func (BioCodec) AreOutcomesCompatible(outcomes []string) bool {
	set := outcomeSet(outcomes)
	for _, o := range outcomes {
		nameType, tag := splitOutcome(o)
		if tag == CONTINUE && !set[nameType+TYPE_SEPARATOR+START] {
			return false
		}
	}
	return true
}

type bioValidator struct{}

func (bioValidator) ValidSequence(i int, sequence []string, prior []string, o string) bool {
	nameType, tag := splitOutcome(o)
	if tag != CONTINUE {
		return true
	}
	if i == 0 || len(prior) == 0 {
		return false
	}
	prevType, prevTag := splitOutcome(prior[len(prior)-1])
	return (prevTag == START || prevTag == CONTINUE) && prevType == nameType
}
