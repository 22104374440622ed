// Package chunker packages, trains and runs the phrase chunker.
package chunker

import (
	"io"
	"os"

	"seqlab/alg/search"
	"seqlab/nlp/model"
	"seqlab/util/errs"
)

const (
	COMPONENT_NAME    = "ChunkerME"
	MODEL_ENTRY       = "chunker.model"
	FACTORY_NAME      = "nlp/chunker.Factory"
	DEFAULT_BEAM_SIZE = 10
)

var Spec = model.Spec{Component: COMPONENT_NAME, Entry: MODEL_ENTRY, DefaultFactory: FACTORY_NAME}

func init() {
	model.RegisterFactory(FACTORY_NAME, func(*model.Bundle) (model.Factory, error) {
		return Factory{}, nil
	})
}

// Factory adds no artifacts; it only checks the chunker entry.
type Factory struct{}

var _ model.Factory = Factory{}

func (Factory) Name() string                         { return FACTORY_NAME }
func (Factory) Manifest() map[string]string          { return nil }
func (Factory) Artifacts() map[string]model.Artifact { return nil }

// Validate also accepts a compiled classifier entry, not only a probability
// model, so prebuilt decoders can be packaged as chunkers.
func (Factory) Validate(b *model.Bundle) error {
	switch entry := b.Entry().(type) {
	case model.ModelArtifact:
		if entry.Model != nil {
			return nil
		}
	case model.ClassifierArtifact:
		if entry.Classifier != nil {
			return nil
		}
	}
	return errs.NewFormatError("chunker model is incomplete")
}

type Model struct {
	bundle *model.Bundle
}

// NewModel packages a chunker entry. A beamSize of 0 writes DEFAULT_BEAM_SIZE;
// it only applies to probability model entries.
func NewModel(language string, entry model.Artifact, beamSize int, extra map[string]string) (*Model, error) {
	if beamSize == 0 {
		beamSize = DEFAULT_BEAM_SIZE
	}
	b, err := model.New(Spec, model.Config{
		Language: language,
		BeamSize: beamSize,
		Factory:  Factory{},
		Manifest: extra,
	}, entry)
	if err != nil {
		return nil, err
	}
	return &Model{b}, nil
}

func LoadModel(reader io.Reader) (*Model, error) {
	b, err := model.Load(reader, Spec)
	if err != nil {
		return nil, err
	}
	return &Model{b}, nil
}

func LoadModelFile(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadModel(file)
}

func (m *Model) Bundle() *model.Bundle {
	return m.bundle
}

func (m *Model) DecodingModel() (search.SequenceClassifier, error) {
	return m.bundle.DecodingModel()
}

func (m *Model) Serialize(writer io.Writer) error {
	return m.bundle.Serialize(writer)
}

// WriteFile serializes the model to filename, replacing it.
func (m *Model) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := m.Serialize(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
