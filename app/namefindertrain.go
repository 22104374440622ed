package app

import (
	"io"
	"log"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"seqlab/nlp/namefind"
	nlp "seqlab/nlp/types"
	"seqlab/util/errs"
)

// RunNameFinderTrain trains on the whole data file and writes the bundle to
// modelFile.
func RunNameFinderTrain() error {
	params, err := LoadParams(paramsFile)
	if err != nil {
		return err
	}
	factory, err := NameFinderFactory()
	if err != nil {
		return err
	}
	stream, err := OpenSamples(dataFile, nameTypes)
	if err != nil {
		return err
	}
	samples, err := readSamples(stream)
	if err != nil {
		return err
	}
	log.Println("Training on", len(samples), "samples")
	m, err := namefind.Train(lang, entityType, samples, params, factory)
	if err != nil {
		return err
	}
	if err := m.WriteFile(modelFile); err != nil {
		return err
	}
	logModelHash(modelFile)
	return nil
}

func readSamples(stream namefind.SampleStream) ([]*nlp.NameSample, error) {
	var samples []*nlp.NameSample
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			log.Println("Failed closing samples:", cerr)
		}
	}()
	for {
		sample, err := stream.Read()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, errs.WrapIO(namefind.READ_ERROR, err)
		}
		samples = append(samples, sample)
	}
}

func NameFinderTrain(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"lang", "data", "model"}); err != nil {
		return err
	}
	if !VerifyExists(dataFile) {
		return usageError()
	}
	NameFinderConfigOut()
	log.Printf("Output:  \t%s", modelFile)
	return RunNameFinderTrain()
}

func NameFinderTrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       NameFinderTrain,
		UsageLine: "namefindertrain -lang code -data file -model file [options]",
		Short:     "train a name finder model bundle",
		Long: `
train a name finder model bundle

	$ ./seqlab namefindertrain -lang en -data en-ner.train -model en-ner.bin [options]

`,
		Flag: *flag.NewFlagSet("namefindertrain", flag.ExitOnError),
	}
	addNameFinderFlags(cmd)
	cmd.Flag.StringVar(&modelFile, "model", "", "output model bundle")
	return cmd
}
