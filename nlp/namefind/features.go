package namefind

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v2"

	"seqlab/alg/search"
	"seqlab/util/conf"
	"seqlab/util/errs"
)

const (
	TOKEN_GENERATOR        = "token"
	TOKEN_CLASS_GENERATOR  = "tokenclass"
	BIGRAM_GENERATOR       = "bigram"
	SENTENCE_GENERATOR     = "sentence"
	PREV_OUTCOME_GENERATOR = "prevoutcome"
	PREV_MAP_GENERATOR     = "prevmap"
	DICTIONARY_GENERATOR   = "dictionary"

	BIAS_FEATURE = "def"
)

// DEFAULT_DESCRIPTOR is used when no feature generator descriptor is given.
const DEFAULT_DESCRIPTOR = `generators:
  - type: token
    prev: 2
    next: 2
  - type: tokenclass
    prev: 2
    next: 2
  - type: bigram
  - type: sentence
  - type: prevoutcome
  - type: prevmap
`

type GeneratorConfig struct {
	Type     string `yaml:"type"`
	Prev     int    `yaml:"prev"`
	Next     int    `yaml:"next"`
	Resource string `yaml:"resource"`
}

type Descriptor struct {
	Generators []GeneratorConfig `yaml:"generators"`
}

func ParseDescriptor(data []byte) (*Descriptor, error) {
	d := new(Descriptor)
	if err := yaml.UnmarshalStrict(data, d); err != nil {
		return nil, err
	}
	if len(d.Generators) == 0 {
		return nil, fmt.Errorf("descriptor defines no generators")
	}
	return d, nil
}

// FeatureGenerator appends the features of token i.
type FeatureGenerator interface {
	Features(features []string, i int, tokens, prior []string) []string
}

// AdaptiveGenerator remembers decisions across the sentences of a document.
type AdaptiveGenerator interface {
	Update(tokens, outcomes []string)
	Clear()
}

// ContextGenerator is the name finder's search.ContextGenerator. It holds
// adaptive data and must not be shared between decoders.
type ContextGenerator struct {
	generators []FeatureGenerator
}

var _ search.ContextGenerator = &ContextGenerator{}

// NewContextGenerator builds the generators a descriptor lists. Dictionary
// generators look their resource up by name.
func NewContextGenerator(d *Descriptor, resources map[string][]byte) (*ContextGenerator, error) {
	cg := new(ContextGenerator)
	for i, g := range d.Generators {
		if g.Prev < 0 || g.Next < 0 {
			return nil, fmt.Errorf("generator %d: negative window", i)
		}
		var gen FeatureGenerator
		switch g.Type {
		case TOKEN_GENERATOR:
			gen = &windowGenerator{"w", g.Prev, g.Next, strings.ToLower}
		case TOKEN_CLASS_GENERATOR:
			gen = &windowGenerator{"wc", g.Prev, g.Next, TokenClass}
		case BIGRAM_GENERATOR:
			gen = bigramGenerator{}
		case SENTENCE_GENERATOR:
			gen = sentenceGenerator{}
		case PREV_OUTCOME_GENERATOR:
			gen = prevOutcomeGenerator{}
		case PREV_MAP_GENERATOR:
			gen = &prevMapGenerator{previous: make(map[string]string)}
		case DICTIONARY_GENERATOR:
			data, exists := resources[g.Resource]
			if !exists {
				return nil, fmt.Errorf("generator %d: missing resource %q", i, g.Resource)
			}
			dict, err := newDictionaryGenerator(g.Resource, data)
			if err != nil {
				return nil, err
			}
			gen = dict
		default:
			return nil, fmt.Errorf("generator %d: unknown type %q", i, g.Type)
		}
		cg.generators = append(cg.generators, gen)
	}
	return cg, nil
}

func (c *ContextGenerator) Context(i int, tokens, prior []string) []string {
	features := []string{BIAS_FEATURE}
	for _, g := range c.generators {
		features = g.Features(features, i, tokens, prior)
	}
	return features
}

// UpdateAdaptiveData records the outcomes of a tagged sentence.
func (c *ContextGenerator) UpdateAdaptiveData(tokens, outcomes []string) {
	for _, g := range c.generators {
		if a, ok := g.(AdaptiveGenerator); ok {
			a.Update(tokens, outcomes)
		}
	}
}

func (c *ContextGenerator) ClearAdaptiveData() {
	for _, g := range c.generators {
		if a, ok := g.(AdaptiveGenerator); ok {
			a.Clear()
		}
	}
}

type windowGenerator struct {
	name       string
	prev, next int
	transform  func(string) string
}

func (g *windowGenerator) Features(features []string, i int, tokens, prior []string) []string {
	features = append(features, g.name+"="+g.transform(tokens[i]))
	for d := 1; d <= g.prev && i-d >= 0; d++ {
		features = append(features, fmt.Sprintf("p%d%s=%s", d, g.name, g.transform(tokens[i-d])))
	}
	for d := 1; d <= g.next && i+d < len(tokens); d++ {
		features = append(features, fmt.Sprintf("n%d%s=%s", d, g.name, g.transform(tokens[i+d])))
	}
	return features
}

type bigramGenerator struct{}

func (bigramGenerator) Features(features []string, i int, tokens, prior []string) []string {
	w := strings.ToLower(tokens[i])
	if i > 0 {
		features = append(features, "pw,w="+strings.ToLower(tokens[i-1])+","+w)
	}
	if i+1 < len(tokens) {
		features = append(features, "w,nw="+w+","+strings.ToLower(tokens[i+1]))
	}
	return features
}

type sentenceGenerator struct{}

func (sentenceGenerator) Features(features []string, i int, tokens, prior []string) []string {
	if i == 0 {
		features = append(features, "S=begin")
	}
	if i == len(tokens)-1 {
		features = append(features, "S=end")
	}
	return features
}

type prevOutcomeGenerator struct{}

func (prevOutcomeGenerator) Features(features []string, i int, tokens, prior []string) []string {
	if i == 0 || len(prior) < i {
		return append(features, "po=S")
	}
	return append(features, "po="+prior[i-1])
}

// prevMapGenerator adds the outcome a token last received in the document.
type prevMapGenerator struct {
	previous map[string]string
}

func (g *prevMapGenerator) Features(features []string, i int, tokens, prior []string) []string {
	if o, exists := g.previous[tokens[i]]; exists {
		features = append(features, "pd="+o)
	}
	return features
}

func (g *prevMapGenerator) Update(tokens, outcomes []string) {
	for i, tok := range tokens {
		if i < len(outcomes) {
			g.previous[tok] = outcomes[i]
		}
	}
}

func (g *prevMapGenerator) Clear() {
	g.previous = make(map[string]string)
}

// dictionaryGenerator marks tokens covered by a dictionary entry. Entries are
// white space separated token sequences, one per line.
type dictionaryGenerator struct {
	name    string
	entries map[string][][]string
}

func newDictionaryGenerator(name string, data []byte) (*dictionaryGenerator, error) {
	c, err := conf.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	g := &dictionaryGenerator{name, make(map[string][][]string)}
	for _, line := range c.Values {
		entry := strings.Fields(line)
		if len(entry) == 0 {
			continue
		}
		g.entries[entry[0]] = append(g.entries[entry[0]], entry)
	}
	return g, nil
}

func (g *dictionaryGenerator) Features(features []string, i int, tokens, prior []string) []string {
	for start := i; start >= 0; start-- {
		for _, entry := range g.entries[tokens[start]] {
			end := start + len(entry)
			if end <= i || end > len(tokens) || !tokensMatch(tokens[start:end], entry) {
				continue
			}
			if start == i {
				return append(features, g.name+"=start")
			}
			return append(features, g.name+"=cont")
		}
	}
	return features
}

func tokensMatch(tokens, entry []string) bool {
	for i := range entry {
		if tokens[i] != entry[i] {
			return false
		}
	}
	return true
}

// TokenClass maps a token to a coarse shape class.
func TokenClass(token string) string {
	var letters, digits, upper, lower, other int
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsUpper(r):
			upper++
			letters++
		case unicode.IsLower(r):
			lower++
			letters++
		case unicode.IsLetter(r):
			letters++
		default:
			other++
		}
	}
	switch {
	case len(token) == 0:
		return "other"
	case digits > 0 && letters == 0 && other == 0:
		switch digits {
		case 2:
			return "2d"
		case 4:
			return "4d"
		}
		return "num"
	case digits > 0 && letters > 0 && other == 0:
		return "an"
	case digits > 0 && strings.Contains(token, "-"):
		return "dd"
	case digits > 0 && strings.Contains(token, "/"):
		return "ds"
	case digits > 0 && strings.Contains(token, ","):
		return "dc"
	case digits > 0 && strings.Contains(token, "."):
		return "dp"
	case letters > 0 && lower == letters && other == 0:
		return "lc"
	case upper == 1 && letters == 1 && other == 0:
		return "sc"
	case letters > 0 && upper == letters && other == 0:
		return "ac"
	case letters > 0 && unicode.IsUpper([]rune(token)[0]):
		return "ic"
	}
	return "other"
}

// ResourceNames returns the sorted keys of resources.
func ResourceNames(resources map[string][]byte) []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func descriptorError(err error) error {
	return errs.WrapConfiguration(err, "feature generator descriptor")
}
