package namesample

// Package namesample reads name finder training data
// one sentence per line, white space tokenized, names marked as
// <START:type> token token <END>; <START> marks a name of the default type
// an empty line ends a document, the next sample clears adaptive data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	nlp "seqlab/nlp/types"
	"seqlab/util/errs"
)

// Reader streams name samples from an underlying reader. Close closes the
// underlying reader when it is an io.Closer.
type Reader struct {
	source    io.Reader
	scanner   *bufio.Scanner
	tokenizer nlp.Tokenizer
	line      int
	clear     bool
}

func NewReader(reader io.Reader) *Reader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Reader{source: reader, scanner: scanner, tokenizer: nlp.WhitespaceTokenizer{}}
}

func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return NewReader(file), nil
}

// Read returns the next sample, or io.EOF after the last one.
func (r *Reader) Read() (*nlp.NameSample, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			r.clear = true
			continue
		}
		sample, err := Parse(line, r.tokenizer, r.clear)
		if err != nil {
			return nil, errs.NewFormatError("line %d: %v", r.line, err)
		}
		r.clear = false
		return sample, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (r *Reader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Parse reads a single annotated sentence.
func Parse(line string, tokenizer nlp.Tokenizer, clearAdaptiveData bool) (*nlp.NameSample, error) {
	var (
		tokens    []string
		names     []nlp.Span
		start     = -1
		startType string
	)
	for _, part := range tokenizer.Tokenize(line) {
		switch {
		case strings.HasPrefix(part, nlp.START_TAG_PREFIX) && strings.HasSuffix(part, ">"):
			if start >= 0 {
				return nil, fmt.Errorf("nested name at token %d", len(tokens))
			}
			start = len(tokens)
			startType = nlp.DEFAULT_TYPE
			if part != nlp.START_TAG {
				typ := strings.TrimSuffix(strings.TrimPrefix(part, nlp.START_TAG_PREFIX+":"), ">")
				if !strings.HasPrefix(part, nlp.START_TAG_PREFIX+":") || typ == "" {
					return nil, fmt.Errorf("malformed start tag %q", part)
				}
				startType = typ
			}
		case part == nlp.END_TAG:
			if start < 0 {
				return nil, fmt.Errorf("end tag without start tag at token %d", len(tokens))
			}
			if start == len(tokens) {
				return nil, fmt.Errorf("empty name at token %d", start)
			}
			names = append(names, nlp.Span{Start: start, End: len(tokens), Type: startType})
			start = -1
		default:
			tokens = append(tokens, part)
		}
	}
	if start >= 0 {
		return nil, fmt.Errorf("missing end tag for name at token %d", start)
	}
	return nlp.NewNameSample(tokens, names, clearAdaptiveData)
}
