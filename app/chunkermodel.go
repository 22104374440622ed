package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"seqlab/alg/perceptron"
	"seqlab/nlp/chunker"
	"seqlab/nlp/model"
)

const CHUNKER_MODEL_USAGE = "Usage: chunkermodel -lang code packageName modelName"

// PackageChunkerModel wraps a raw perceptron model file into a chunker bundle.
// args are the marker "-lang", a language code, the output package and the
// raw model file.
func PackageChunkerModel(args []string, stderr io.Writer) error {
	if len(args) != 4 {
		fmt.Fprintln(stderr, CHUNKER_MODEL_USAGE)
		return usageError()
	}
	language, packageName, modelName := args[1], args[2], args[3]

	raw, err := perceptron.ReadModelFile(modelName)
	if err != nil {
		return err
	}
	m, err := chunker.NewModel(language, model.ModelArtifact{Model: raw}, chunker.DEFAULT_BEAM_SIZE, nil)
	if err != nil {
		return err
	}
	if err := m.WriteFile(packageName); err != nil {
		return err
	}
	log.Println("Wrote", packageName)
	return nil
}

func ChunkerModel(cmd *commander.Command, args []string) error {
	return PackageChunkerModel(args, os.Stderr)
}

func ChunkerModelCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ChunkerModel,
		UsageLine: "chunkermodel -lang code packageName modelName",
		Short:     "package a raw chunker model file into a chunker model bundle",
		Long: `
package a raw chunker model file into a chunker model bundle

	$ ./seqlab chunkermodel -lang en en-chunker.bin chunker.gob

`,
		Flag:        *flag.NewFlagSet("chunkermodel", flag.ExitOnError),
		CustomFlags: true,
	}
	return cmd
}
