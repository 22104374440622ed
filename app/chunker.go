package app

import (
	"io"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"seqlab/nlp/chunker"
	"seqlab/nlp/format/conll"
	"seqlab/util"
)

var (
	conllFile, outConll string
)

// RunChunkerTrain trains a chunker on a CoNLL-2000 file and writes the bundle.
func RunChunkerTrain() error {
	params, err := LoadParams(paramsFile)
	if err != nil {
		return err
	}
	sents, err := conll.ReadFile(conllFile)
	if err != nil {
		return err
	}
	log.Println("Training on", len(sents), "sentences")
	m, err := chunker.Train(lang, conll.Conll2SampleCorpus(sents), params)
	if err != nil {
		return err
	}
	if err := m.WriteFile(modelFile); err != nil {
		return err
	}
	logModelHash(modelFile)
	return nil
}

// TagChunks replaces the chunk column of CoNLL-2000 input with the chunker's
// predictions.
func TagChunks(m *chunker.Model, in io.Reader, out io.Writer) error {
	c, err := chunker.NewChunker(m)
	if err != nil {
		return err
	}
	sents, err := conll.Read(in)
	if err != nil {
		return err
	}
	for _, sent := range sents {
		sample := conll.Conll2Sample(sent)
		if sample.Preds, err = c.Chunk(sample.Tokens, sample.Tags); err != nil {
			return err
		}
		copy(sent, conll.Sample2Conll(sample))
	}
	return conll.Write(out, sents)
}

func logModelHash(filename string) {
	hash, err := util.HashFile(filename)
	if err != nil {
		log.Println("Failed hashing", filename, err)
		return
	}
	log.Printf("Model %s sha256 %s", filename, hash)
}

func ChunkerTrain(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"lang", "conll", "model"}); err != nil {
		return err
	}
	if !VerifyExists(conllFile) {
		return usageError()
	}
	log.Println("Configuration")
	log.Printf("Language:\t%s", lang)
	log.Printf("Params:  \t%s", paramsFile)
	log.Printf("CoNLL:   \t%s", conllFile)
	log.Printf("Output:  \t%s", modelFile)
	log.Println()
	return RunChunkerTrain()
}

func ChunkerTrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ChunkerTrain,
		UsageLine: "chunkertrain -lang code -conll file -model file [options]",
		Short:     "train a chunker model bundle from CoNLL-2000 data",
		Long: `
train a chunker model bundle from CoNLL-2000 data

	$ ./seqlab chunkertrain -lang en -conll train.txt -model en-chunker.bin [-params file]

`,
		Flag: *flag.NewFlagSet("chunkertrain", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&lang, "lang", "", "language code")
	cmd.Flag.StringVar(&conllFile, "conll", "", "CoNLL-2000 training file")
	cmd.Flag.StringVar(&paramsFile, "params", "", "training parameters file")
	cmd.Flag.StringVar(&modelFile, "model", "", "output model bundle")
	return cmd
}

func Chunker(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"model", "conll", "out"}); err != nil {
		return err
	}
	m, err := chunker.LoadModelFile(modelFile)
	if err != nil {
		return err
	}
	logModelHash(modelFile)
	in, err := os.Open(conllFile)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(outConll)
	if err != nil {
		return err
	}
	if err := TagChunks(m, in, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func ChunkerCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Chunker,
		UsageLine: "chunker -model file -conll file -out file",
		Short:     "chunk POS tagged CoNLL-2000 data",
		Long: `
chunk POS tagged CoNLL-2000 data; the input chunk column is replaced

	$ ./seqlab chunker -model en-chunker.bin -conll test.txt -out chunked.txt

`,
		Flag: *flag.NewFlagSet("chunker", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "model", "", "model bundle")
	cmd.Flag.StringVar(&conllFile, "conll", "", "CoNLL-2000 input file")
	cmd.Flag.StringVar(&outConll, "out", "", "output file")
	return cmd
}
