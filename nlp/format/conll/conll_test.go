package conll

import (
	"bytes"
	"strings"
	"testing"
)

const data = `Confidence NN B-NP
in IN B-PP
the DT B-NP
pound NN I-NP
. . O

He PRP B-NP
left VBD B-VP
`

func TestParseRow(t *testing.T) {
	parsed, err := ParseRow("Confidence NN B-NP")
	if err != nil {
		t.Error(err.Error())
	}
	if parsed.Form != "Confidence" {
		t.Errorf("Expected FORM value Confidence, got %s", parsed.Form)
	}
	if parsed.PosTag != "NN" {
		t.Errorf("Expected POSTAG value NN, got %s", parsed.PosTag)
	}
	if parsed.Chunk != "B-NP" {
		t.Errorf("Expected CHUNK value B-NP, got %s", parsed.Chunk)
	}
	if _, err := ParseRow("Confidence NN"); err == nil {
		t.Errorf("Expected error for a missing field")
	}
}

func TestRead(t *testing.T) {
	sents, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(sents) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sents))
	}
	if len(sents[0]) != 5 || len(sents[1]) != 2 {
		t.Errorf("Expected 5 and 2 rows, got %d and %d", len(sents[0]), len(sents[1]))
	}
	sample := Conll2Sample(sents[0])
	if sample.Tokens[3] != "pound" || sample.Tags[3] != "NN" || sample.Preds[3] != "I-NP" {
		t.Errorf("Unexpected sample row %s %s %s", sample.Tokens[3], sample.Tags[3], sample.Preds[3])
	}
	var buf bytes.Buffer
	if err := Write(&buf, []Sentence{Sample2Conll(sample), sents[1]}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != data+"\n" {
		t.Errorf("Expected %q, got %q", data+"\n", buf.String())
	}
}

func TestReadError(t *testing.T) {
	if _, err := Read(strings.NewReader("a NN B-NP\nbroken\n")); err == nil {
		t.Errorf("Expected error for a broken row")
	}
}
