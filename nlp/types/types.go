package types

import (
	"fmt"
	"sort"
	"strings"

	"seqlab/util"
)

// Span is a half open [Start, End) range of token (or character) offsets,
// optionally labeled with a type.
type Span struct {
	Start, End int
	Type       string
}

func (s Span) Length() int {
	return s.End - s.Start
}

func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) Intersects(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

func (s Span) CoveredText(text string) string {
	return text[s.Start:s.End]
}

func (s Span) String() string {
	if s.Type == "" {
		return fmt.Sprintf("[%d..%d)", s.Start, s.End)
	}
	return fmt.Sprintf("[%d..%d) %s", s.Start, s.End, s.Type)
}

// BySpan orders spans by start, then end, then type.
type BySpan []Span

func (b BySpan) Len() int      { return len(b) }
func (b BySpan) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b BySpan) Less(i, j int) bool {
	if b[i].Start != b[j].Start {
		return b[i].Start < b[j].Start
	}
	if b[i].End != b[j].End {
		return b[i].End < b[j].End
	}
	return b[i].Type < b[j].Type
}

// SpansToStrings returns the tokens covered by each span, joined by a space.
func SpansToStrings(spans []Span, tokens []string) []string {
	retval := make([]string, len(spans))
	for i, s := range spans {
		retval[i] = strings.Join(tokens[s.Start:s.End], " ")
	}
	return retval
}

const (
	START_TAG_PREFIX = "<START"
	START_TAG        = "<START>"
	END_TAG          = "<END>"
	DEFAULT_TYPE     = "default"
)

// NameSample is a tokenized sentence with its annotated names. Names are token
// spans sorted by start offset and may not overlap.
type NameSample struct {
	Tokens            []string
	Names             []Span
	ClearAdaptiveData bool
}

var _ util.Equaler = &NameSample{}

func NewNameSample(tokens []string, names []Span, clearAdaptiveData bool) (*NameSample, error) {
	sorted := make([]Span, len(names))
	copy(sorted, names)
	sort.Sort(BySpan(sorted))
	for i, name := range sorted {
		if name.Start < 0 || name.End > len(tokens) || name.Start >= name.End {
			return nil, fmt.Errorf("name %v out of bounds for %d tokens", name, len(tokens))
		}
		if i > 0 && sorted[i-1].Intersects(name) {
			return nil, fmt.Errorf("names %v and %v overlap", sorted[i-1], name)
		}
	}
	return &NameSample{tokens, sorted, clearAdaptiveData}, nil
}

func (n *NameSample) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*NameSample)
	if !ok || other == nil {
		return false
	}
	if len(n.Tokens) != len(other.Tokens) || len(n.Names) != len(other.Names) {
		return false
	}
	for i, tok := range n.Tokens {
		if other.Tokens[i] != tok {
			return false
		}
	}
	for i, name := range n.Names {
		if other.Names[i] != name {
			return false
		}
	}
	return true
}

// String renders the sample in the <START:type> ... <END> training format.
func (n *NameSample) String() string {
	var (
		b       strings.Builder
		nameIdx int
	)
	for i, tok := range n.Tokens {
		if nameIdx < len(n.Names) && n.Names[nameIdx].Start == i {
			if n.Names[nameIdx].Type == "" || n.Names[nameIdx].Type == DEFAULT_TYPE {
				b.WriteString(START_TAG + " ")
			} else {
				b.WriteString(START_TAG_PREFIX + ":" + n.Names[nameIdx].Type + "> ")
			}
		}
		b.WriteString(tok)
		b.WriteByte(' ')
		if nameIdx < len(n.Names) && n.Names[nameIdx].End == i+1 {
			b.WriteString(END_TAG + " ")
			nameIdx++
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ChunkSample is a POS tagged sentence with its chunk tags (B-X, I-X, O).
type ChunkSample struct {
	Tokens, Tags, Preds []string
}

func NewChunkSample(tokens, tags, preds []string) (*ChunkSample, error) {
	if len(tokens) != len(tags) || len(tokens) != len(preds) {
		return nil, fmt.Errorf("tokens, tags and preds must have equal length (%d, %d, %d)",
			len(tokens), len(tags), len(preds))
	}
	return &ChunkSample{tokens, tags, preds}, nil
}

// PhrasesAsSpans converts chunk tags to typed token spans.
func PhrasesAsSpans(preds []string) []Span {
	var (
		spans     []Span
		start     = -1
		startType string
	)
	for i, pred := range preds {
		switch {
		case strings.HasPrefix(pred, "B-"):
			if start >= 0 {
				spans = append(spans, Span{start, i, startType})
			}
			start, startType = i, pred[2:]
		case strings.HasPrefix(pred, "I-") && start >= 0 && pred[2:] == startType:
		case strings.HasPrefix(pred, "I-"):
			if start >= 0 {
				spans = append(spans, Span{start, i, startType})
			}
			start, startType = i, pred[2:]
		default:
			if start >= 0 {
				spans = append(spans, Span{start, i, startType})
			}
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, Span{start, len(preds), startType})
	}
	return spans
}
