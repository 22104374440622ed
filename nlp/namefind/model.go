package namefind

import (
	"io"
	"os"

	"seqlab/alg/search"
	"seqlab/nlp/model"
	"seqlab/util/errs"
)

const (
	COMPONENT_NAME    = "NameFinderME"
	MODEL_ENTRY       = "nameFinder.model"
	DEFAULT_BEAM_SIZE = 3
)

var Spec = model.Spec{Component: COMPONENT_NAME, Entry: MODEL_ENTRY, DefaultFactory: FACTORY_NAME}

// Model is a validated name finder bundle.
type Model struct {
	bundle  *model.Bundle
	factory *Factory
}

// NewModel packages a trained entry. extra holds additional manifest
// entries such as the training id.
func NewModel(language string, entry model.Artifact, beamSize int, factory *Factory, extra map[string]string) (*Model, error) {
	b, err := model.New(Spec, model.Config{
		Language: language,
		BeamSize: beamSize,
		Factory:  factory,
		Manifest: extra,
	}, entry)
	if err != nil {
		return nil, err
	}
	return &Model{b, factory}, nil
}

func LoadModel(reader io.Reader) (*Model, error) {
	b, err := model.Load(reader, Spec)
	if err != nil {
		return nil, err
	}
	factory, ok := b.Factory().(*Factory)
	if !ok {
		return nil, errs.NewFormatError("name finder bundle built by factory %s", b.Factory().Name())
	}
	return &Model{b, factory}, nil
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

func (m *Model) Factory() *Factory {
	return m.factory
}

func (m *Model) Language() string {
	return m.bundle.Language()
}

func (m *Model) DecodingModel() (search.SequenceClassifier, error) {
	return m.bundle.DecodingModel()
}

func (m *Model) Serialize(writer io.Writer) error {
	return m.bundle.Serialize(writer)
}

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
