// Package namefind trains, packages, runs and cross validates the token name
// finder.
package namefind

import (
	"io"
	"strings"

	nlp "seqlab/nlp/types"
)

// SampleStream yields name samples until Read returns io.EOF. Close releases
// the underlying source.
type SampleStream interface {
	Read() (*nlp.NameSample, error)
	io.Closer
}

// SliceStream serves samples from memory.
type SliceStream struct {
	Samples []*nlp.NameSample
	pos     int
	Closed  int
}

var _ SampleStream = &SliceStream{}

func (s *SliceStream) Read() (*nlp.NameSample, error) {
	if s.pos >= len(s.Samples) {
		return nil, io.EOF
	}
	s.pos++
	return s.Samples[s.pos-1], nil
}

func (s *SliceStream) Reset() {
	s.pos = 0
}

func (s *SliceStream) Close() error {
	s.Closed++
	return nil
}

// TypeFilter drops every name whose type is not in a fixed set.
type TypeFilter struct {
	source SampleStream
	types  map[string]bool
}

var _ SampleStream = &TypeFilter{}

func NewTypeFilter(types []string, source SampleStream) *TypeFilter {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return &TypeFilter{source, set}
}

// ParseTypes splits a comma separated type list, dropping empty entries.
func ParseTypes(list string) []string {
	var types []string
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func (f *TypeFilter) Read() (*nlp.NameSample, error) {
	sample, err := f.source.Read()
	if err != nil {
		return nil, err
	}
	names := make([]nlp.Span, 0, len(sample.Names))
	for _, name := range sample.Names {
		if f.types[name.Type] {
			names = append(names, name)
		}
	}
	return &nlp.NameSample{Tokens: sample.Tokens, Names: names, ClearAdaptiveData: sample.ClearAdaptiveData}, nil
}

func (f *TypeFilter) Close() error {
	return f.source.Close()
}
