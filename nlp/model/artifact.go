package model

import (
	"bytes"
	"encoding/gob"
	"io"

	"seqlab/alg/search"
	"seqlab/util/errs"
)

type Kind int

const (
	KindRaw Kind = iota
	KindProbabilityModel
	KindSequenceClassifier
)

func (k Kind) String() string {
	switch k {
	case KindProbabilityModel:
		return "probability-model"
	case KindSequenceClassifier:
		return "sequence-classifier"
	case KindRaw:
		return "raw"
	}
	return "unknown"
}

// Artifact is one of ModelArtifact, ClassifierArtifact or RawArtifact.
type Artifact interface {
	Kind() Kind
	isArtifact()
}

// ModelArtifact is a probability model that still needs a search strategy.
type ModelArtifact struct {
	Model search.ProbabilityModel
}

// ClassifierArtifact is a compiled decoder carrying its own search strategy.
type ClassifierArtifact struct {
	Classifier search.SequenceClassifier
}

// RawArtifact is opaque bytes such as a feature generator descriptor.
type RawArtifact struct {
	Data []byte
}

func (ModelArtifact) Kind() Kind      { return KindProbabilityModel }
func (ClassifierArtifact) Kind() Kind { return KindSequenceClassifier }
func (RawArtifact) Kind() Kind        { return KindRaw }

func (ModelArtifact) isArtifact()      {}
func (ClassifierArtifact) isArtifact() {}
func (RawArtifact) isArtifact()        {}

// artifactCodec (de)serializes one kind of artifact. The kind's tag is stored
// with each archive entry and selects the codec on load.
type artifactCodec struct {
	encode func(io.Writer, Artifact) error
	decode func(io.Reader) (Artifact, error)
}

var artifactCodecs = map[Kind]artifactCodec{
	KindProbabilityModel: {
		encode: func(w io.Writer, a Artifact) error {
			m := a.(ModelArtifact).Model
			return gob.NewEncoder(w).Encode(&m)
		},
		decode: func(r io.Reader) (Artifact, error) {
			var m search.ProbabilityModel
			if err := gob.NewDecoder(r).Decode(&m); err != nil {
				return nil, err
			}
			return ModelArtifact{m}, nil
		},
	},
	KindSequenceClassifier: {
		encode: func(w io.Writer, a Artifact) error {
			c := a.(ClassifierArtifact).Classifier
			return gob.NewEncoder(w).Encode(&c)
		},
		decode: func(r io.Reader) (Artifact, error) {
			var c search.SequenceClassifier
			if err := gob.NewDecoder(r).Decode(&c); err != nil {
				return nil, err
			}
			return ClassifierArtifact{c}, nil
		},
	},
	KindRaw: {
		encode: func(w io.Writer, a Artifact) error {
			_, err := w.Write(a.(RawArtifact).Data)
			return err
		},
		decode: func(r io.Reader) (Artifact, error) {
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(r); err != nil {
				return nil, err
			}
			return RawArtifact{buf.Bytes()}, nil
		},
	},
}

func kindForTag(tag string) (Kind, bool) {
	for k := range artifactCodecs {
		if k.String() == tag {
			return k, true
		}
	}
	return 0, false
}

func encodeArtifact(w io.Writer, name string, a Artifact) error {
	if a == nil {
		return errs.NewFormatError("artifact %s is nil", name)
	}
	c, exists := artifactCodecs[a.Kind()]
	if !exists {
		return errs.NewFormatError("no codec for artifact %s of kind %v", name, a.Kind())
	}
	return c.encode(w, a)
}

func decodeArtifact(r io.Reader, name, tag string) (Artifact, error) {
	kind, exists := kindForTag(tag)
	if !exists {
		return nil, errs.NewFormatError("artifact %s has unknown type tag %q", name, tag)
	}
	a, err := artifactCodecs[kind].decode(r)
	if err != nil {
		return nil, errs.WrapFormat(err, "decoding artifact %s", name)
	}
	return a, nil
}

// detach returns a deep copy of a that shares no memory with it. Model and
// classifier artifacts are copied through their archive codec.
func detach(a Artifact) (Artifact, error) {
	switch v := a.(type) {
	case nil:
		return nil, nil
	case RawArtifact:
		return RawArtifact{append([]byte(nil), v.Data...)}, nil
	case ModelArtifact:
		if v.Model == nil {
			return v, nil
		}
	case ClassifierArtifact:
		if v.Classifier == nil {
			return v, nil
		}
	}
	c := artifactCodecs[a.Kind()]
	var buf bytes.Buffer
	if err := c.encode(&buf, a); err != nil {
		return nil, err
	}
	return c.decode(&buf)
}
