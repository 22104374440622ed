package perceptron

import (
	"encoding/gob"
	"io"
	"os"
)

// WriteModel writes m as a raw model, the input format of model packaging.
func WriteModel(writer io.Writer, m *Model) error {
	return gob.NewEncoder(writer).Encode(m)
}

func ReadModel(reader io.Reader) (*Model, error) {
	m := new(Model)
	if err := gob.NewDecoder(reader).Decode(m); err != nil {
		return nil, err
	}
	return m, nil
}

func WriteModelFile(filename string, m *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteModel(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func ReadModelFile(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadModel(file)
}
