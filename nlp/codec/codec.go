// Package codec maps token level name spans to per token outcomes and back.
package codec

import (
	"sort"
	"strings"
	"sync"

	"seqlab/alg/search"
	nlp "seqlab/nlp/types"
	"seqlab/util/errs"
)

const (
	START    = "start"
	CONTINUE = "cont"
	LAST     = "last"
	UNIT     = "unit"
	OTHER    = "other"

	TYPE_SEPARATOR = "-"
)

const (
	BioCodecID   = "nlp/codec.BioCodec"
	BilouCodecID = "nlp/codec.BilouCodec"
)

type SequenceCodec interface {
	ID() string
	Encode(names []nlp.Span, length int) []string
	Decode(outcomes []string) []nlp.Span
	Validator() search.SequenceValidator
	AreOutcomesCompatible(outcomes []string) bool
}

// splitOutcome splits "person-start" into ("person", "start"); OTHER has no type.
func splitOutcome(outcome string) (string, string) {
	i := strings.LastIndex(outcome, TYPE_SEPARATOR)
	if i < 0 {
		return "", outcome
	}
	return outcome[:i], outcome[i+1:]
}

func outcome(nameType, suffix string) string {
	if nameType == "" {
		nameType = nlp.DEFAULT_TYPE
	}
	return nameType + TYPE_SEPARATOR + suffix
}

func outcomeSet(outcomes []string) map[string]bool {
	set := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		set[o] = true
	}
	return set
}

type Constructor func() SequenceCodec

// Registry resolves codec names to codecs. The aliases "BIO" and "BILOU" are
// fixed; any other name is looked up as a registered identifier.
type Registry struct {
	mu           sync.RWMutex
	aliases      map[string]string
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	r := &Registry{
		aliases: map[string]string{
			"BIO":   BioCodecID,
			"BILOU": BilouCodecID,
		},
		constructors: make(map[string]Constructor),
	}
	r.Register(BioCodecID, func() SequenceCodec { return BioCodec{} })
	r.Register(BilouCodecID, func() SequenceCodec { return BilouCodec{} })
	return r
}

var Default = NewRegistry()

func (r *Registry) Register(id string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[id] = c
}

// Identifier resolves an alias; other names pass through unchanged. The empty
// name selects BIO.
func (r *Registry) Identifier(name string) string {
	if name == "" {
		return BioCodecID
	}
	if id, exists := r.aliases[name]; exists {
		return id
	}
	return name
}

func (r *Registry) Resolve(name string) (SequenceCodec, error) {
	id := r.Identifier(name)
	r.mu.RLock()
	c, exists := r.constructors[id]
	r.mu.RUnlock()
	if !exists {
		return nil, errs.NewConfigurationError("unknown sequence codec %q", name)
	}
	return c(), nil
}

// Identifiers lists the registered identifiers, sorted.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.constructors))
	for id := range r.constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func Resolve(name string) (SequenceCodec, error) {
	return Default.Resolve(name)
}

func Register(id string, c Constructor) {
	Default.Register(id, c)
}
