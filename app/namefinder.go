package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"seqlab/nlp/namefind"
	nlp "seqlab/nlp/types"
)

// TagNames reads one sentence per line and writes it back with its names
// marked. An empty line starts a new document.
func TagNames(m *namefind.Model, in io.Reader, out io.Writer) error {
	finder, err := namefind.NewNameFinder(m)
	if err != nil {
		return err
	}
	tokenizer := nlp.WhitespaceTokenizer{}
	scanner := bufio.NewScanner(in)
	writer := bufio.NewWriter(out)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			finder.ClearAdaptiveData()
			fmt.Fprintln(writer)
			continue
		}
		tokens := tokenizer.Tokenize(line)
		sample := &nlp.NameSample{Tokens: tokens, Names: finder.Find(tokens)}
		fmt.Fprintln(writer, sample)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writer.Flush()
}

func NameFinder(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"model"}); err != nil {
		return err
	}
	m, err := namefind.LoadModelFile(modelFile)
	if err != nil {
		return err
	}
	logModelHash(modelFile)
	return TagNames(m, os.Stdin, os.Stdout)
}

func NameFinderCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       NameFinder,
		UsageLine: "namefinder -model file < sentences",
		Short:     "tag names in white space tokenized sentences read from stdin",
		Long: `
tag names in white space tokenized sentences read from stdin

	$ ./seqlab namefinder -model en-ner.bin < sentences.txt

`,
		Flag: *flag.NewFlagSet("namefinder", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "model", "", "model bundle")
	return cmd
}
