package codec

import (
	"seqlab/alg/search"
	nlp "seqlab/nlp/types"
)

// BilouCodec tags single token names <type>-unit and longer names
// <type>-start, <type>-cont..., <type>-last.
type BilouCodec struct{}

var _ SequenceCodec = BilouCodec{}

func (BilouCodec) ID() string {
	return BilouCodecID
}

func (BilouCodec) Encode(names []nlp.Span, length int) []string {
	outcomes := make([]string, length)
	for i := range outcomes {
		outcomes[i] = OTHER
	}
	for _, name := range names {
		if name.Length() == 1 {
			outcomes[name.Start] = outcome(name.Type, UNIT)
			continue
		}
		outcomes[name.Start] = outcome(name.Type, START)
		for i := name.Start + 1; i < name.End-1; i++ {
			outcomes[i] = outcome(name.Type, CONTINUE)
		}
		outcomes[name.End-1] = outcome(name.Type, LAST)
	}
	return outcomes
}

func (BilouCodec) Decode(outcomes []string) []nlp.Span {
	var (
		spans     []nlp.Span
		start     = -1
		startType string
	)
	for i, o := range outcomes {
		nameType, tag := splitOutcome(o)
		switch tag {
		case START:
			start, startType = i, nameType
		case CONTINUE:
			if start >= 0 && nameType != startType {
				start = -1
			}
		case LAST:
			if start >= 0 && nameType == startType {
				spans = append(spans, nlp.Span{Start: start, End: i + 1, Type: startType})
			}
			start = -1
		case UNIT:
			spans = append(spans, nlp.Span{Start: i, End: i + 1, Type: nameType})
			start = -1
		default:
			start = -1
		}
	}
	return spans
}

func (BilouCodec) Validator() search.SequenceValidator {
	return bilouValidator{}
}

// AreOutcomesCompatible requires start and last for every type that has any
// multi token outcome.
func (BilouCodec) AreOutcomesCompatible(outcomes []string) bool {
	set := outcomeSet(outcomes)
	for _, o := range outcomes {
		nameType, tag := splitOutcome(o)
		switch tag {
		case START, CONTINUE, LAST:
			if !set[nameType+TYPE_SEPARATOR+START] || !set[nameType+TYPE_SEPARATOR+LAST] {
				return false
			}
		}
	}
	return true
}

type bilouValidator struct{}

func (bilouValidator) ValidSequence(i int, sequence []string, prior []string, o string) bool {
	nameType, tag := splitOutcome(o)
	var prevType, prevTag string
	if len(prior) > 0 {
		prevType, prevTag = splitOutcome(prior[len(prior)-1])
	}
	open := prevTag == START || prevTag == CONTINUE
	switch tag {
	case START:
		// a name that starts on the last token can never be closed
		return !open && i < len(sequence)-1
	case CONTINUE:
		return open && prevType == nameType && i < len(sequence)-1
	case LAST:
		return open && prevType == nameType
	default:
		return !open
	}
}
