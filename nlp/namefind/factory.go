package namefind

import (
	"strings"

	"seqlab/nlp/codec"
	"seqlab/nlp/model"
	"seqlab/util/errs"
)

const (
	FACTORY_NAME       = "nlp/namefind.Factory"
	SEQUENCE_CODEC_KEY = "sequence-codec"
	GENERATOR_ENTRY    = "generator.featuregen"
	RESOURCE_SUFFIX    = ".res"
)

func init() {
	model.RegisterFactory(FACTORY_NAME, factoryFromBundle)
}

// Factory carries the name finder's sequence codec, feature generator
// descriptor and resources into and out of a bundle.
type Factory struct {
	codec      codec.SequenceCodec
	descriptor []byte
	resources  map[string][]byte
}

var _ model.Factory = &Factory{}

// NewFactory resolves codecName ("BIO", "BILOU" or a registered identifier)
// and checks the descriptor. A nil descriptor selects DEFAULT_DESCRIPTOR.
func NewFactory(codecName string, descriptor []byte, resources map[string][]byte) (*Factory, error) {
	c, err := codec.Resolve(codecName)
	if err != nil {
		return nil, err
	}
	if descriptor == nil {
		descriptor = []byte(DEFAULT_DESCRIPTOR)
	}
	f := &Factory{c, clone(descriptor), make(map[string][]byte, len(resources))}
	for name, data := range resources {
		if name == "" || strings.ContainsAny(name, "/\\") {
			return nil, errs.NewConfigurationError("invalid resource name %q", name)
		}
		f.resources[name] = clone(data)
	}
	if _, err := f.ContextGenerator(); err != nil {
		return nil, descriptorError(err)
	}
	return f, nil
}

func factoryFromBundle(b *model.Bundle) (model.Factory, error) {
	codecName, _ := b.Get(SEQUENCE_CODEC_KEY)
	c, err := codec.Resolve(codecName)
	if err != nil {
		return nil, err
	}
	f := &Factory{codec: c, resources: make(map[string][]byte)}
	for _, name := range b.ArtifactNames() {
		a, _ := b.Artifact(name)
		switch {
		case name == GENERATOR_ENTRY:
			raw, ok := a.(model.RawArtifact)
			if !ok {
				return nil, errs.NewFormatError("%s must be raw, got %v", name, a.Kind())
			}
			f.descriptor = raw.Data
		case strings.HasSuffix(name, RESOURCE_SUFFIX):
			raw, ok := a.(model.RawArtifact)
			if !ok {
				return nil, errs.NewFormatError("%s must be raw, got %v", name, a.Kind())
			}
			f.resources[strings.TrimSuffix(name, RESOURCE_SUFFIX)] = raw.Data
		}
	}
	if f.descriptor == nil {
		f.descriptor = []byte(DEFAULT_DESCRIPTOR)
	}
	return f, nil
}

func (f *Factory) Name() string {
	return FACTORY_NAME
}

func (f *Factory) Codec() codec.SequenceCodec {
	return f.codec
}

func (f *Factory) Descriptor() []byte {
	return clone(f.descriptor)
}

func (f *Factory) Manifest() map[string]string {
	return map[string]string{SEQUENCE_CODEC_KEY: f.codec.ID()}
}

func (f *Factory) Artifacts() map[string]model.Artifact {
	artifacts := map[string]model.Artifact{GENERATOR_ENTRY: model.RawArtifact{Data: clone(f.descriptor)}}
	for name, data := range f.resources {
		artifacts[name+RESOURCE_SUFFIX] = model.RawArtifact{Data: clone(data)}
	}
	return artifacts
}

func clone(data []byte) []byte {
	return append([]byte(nil), data...)
}

// ContextGenerator builds a fresh context generator; each decoder needs its
// own because of adaptive data.
func (f *Factory) ContextGenerator() (*ContextGenerator, error) {
	d, err := ParseDescriptor(f.descriptor)
	if err != nil {
		return nil, err
	}
	return NewContextGenerator(d, f.resources)
}

// Validate requires a decodable entry whose outcomes the codec understands.
func (f *Factory) Validate(b *model.Bundle) error {
	var outcomes []string
	switch entry := b.Entry().(type) {
	case model.ModelArtifact:
		if entry.Model == nil {
			return errs.NewFormatError("name finder model is incomplete")
		}
		for i := 0; i < entry.Model.NumOutcomes(); i++ {
			outcomes = append(outcomes, entry.Model.Outcome(i))
		}
	case model.ClassifierArtifact:
		if entry.Classifier == nil {
			return errs.NewFormatError("name finder model is incomplete")
		}
		outcomes = entry.Classifier.Outcomes()
	default:
		return errs.NewFormatError("name finder model is incomplete: %v entry", b.Entry().Kind())
	}
	if !f.codec.AreOutcomesCompatible(outcomes) {
		return errs.NewFormatError("model outcomes %v are not compatible with %s", outcomes, f.codec.ID())
	}
	if _, err := f.ContextGenerator(); err != nil {
		return errs.WrapFormat(err, "feature generator descriptor")
	}
	return nil
}
