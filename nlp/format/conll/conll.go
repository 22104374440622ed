package conll

// Package conll reads and writes CoNLL-2000 chunking files
// one token per line: FORM POSTAG CHUNK, separated by a space
// sentences end with an empty line

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "seqlab/nlp/types"
)

const (
	FIELD_SEPARATOR = " "
	NUM_FIELDS      = 3
)

// A Row is a single parsed row of a chunking data set
type Row struct {
	Form   string
	PosTag string
	Chunk  string
}

func (r Row) String() string {
	return strings.Join([]string{r.Form, r.PosTag, r.Chunk}, FIELD_SEPARATOR)
}

// A Sentence is the rows of one sentence in order
type Sentence []Row

func ParseRow(line string) (Row, error) {
	var row Row
	record := strings.Fields(line)
	if len(record) != NUM_FIELDS {
		return row, fmt.Errorf("expected %d fields, got %d in %q", NUM_FIELDS, len(record), line)
	}
	row.Form, row.PosTag, row.Chunk = record[0], record[1], record[2]
	return row, nil
}

func Read(reader io.Reader) ([]Sentence, error) {
	var (
		sentences   []Sentence
		currentSent Sentence
		i           int
	)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		i++
		line := strings.TrimRight(scanner.Text(), "\r")
		// an empty line ends the current sentence
		if strings.TrimSpace(line) == "" {
			if len(currentSent) > 0 {
				sentences = append(sentences, currentSent)
				currentSent = nil
			}
			continue
		}
		row, err := ParseRow(line)
		if err != nil {
			return nil, errors.New(fmt.Sprintf("Error processing line %d at sentence %d: %s", i, len(sentences), err.Error()))
		}
		currentSent = append(currentSent, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(currentSent) > 0 {
		sentences = append(sentences, currentSent)
	}
	return sentences, nil
}

func ReadFile(filename string) ([]Sentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

func Write(writer io.Writer, sents []Sentence) error {
	w := bufio.NewWriter(writer)
	for _, sent := range sents {
		for _, row := range sent {
			w.WriteString(row.String())
			w.WriteByte('\n')
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

func WriteFile(filename string, sents []Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(file, sents); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func Conll2Sample(sent Sentence) *nlp.ChunkSample {
	sample := &nlp.ChunkSample{
		Tokens: make([]string, len(sent)),
		Tags:   make([]string, len(sent)),
		Preds:  make([]string, len(sent)),
	}
	for i, row := range sent {
		sample.Tokens[i], sample.Tags[i], sample.Preds[i] = row.Form, row.PosTag, row.Chunk
	}
	return sample
}

func Conll2SampleCorpus(corpus []Sentence) []*nlp.ChunkSample {
	samples := make([]*nlp.ChunkSample, len(corpus))
	for i, sent := range corpus {
		samples[i] = Conll2Sample(sent)
	}
	return samples
}

func Sample2Conll(sample *nlp.ChunkSample) Sentence {
	sent := make(Sentence, len(sample.Tokens))
	for i := range sent {
		sent[i] = Row{sample.Tokens[i], sample.Tags[i], sample.Preds[i]}
	}
	return sent
}
