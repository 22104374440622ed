package types

import "unicode"

// Tokenizer turns text into tokens, either as strings or as character spans
// into the original text.
type Tokenizer interface {
	Tokenize(s string) []string
	TokenizePos(s string) []Span
}

// WhitespaceTokenizer splits on unicode white space.
type WhitespaceTokenizer struct{}

var _ Tokenizer = WhitespaceTokenizer{}

func (WhitespaceTokenizer) Tokenize(s string) []string {
	spans := WhitespaceTokenizer{}.TokenizePos(s)
	retval := make([]string, len(spans))
	for i, span := range spans {
		retval[i] = span.CoveredText(s)
	}
	return retval
}

func (WhitespaceTokenizer) TokenizePos(s string) []Span {
	var (
		spans []Span
		start = -1
	)
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(s)})
	}
	return spans
}
