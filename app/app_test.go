package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqlab/alg/perceptron"
	"seqlab/nlp/chunker"
	"seqlab/nlp/model"
	"seqlab/nlp/namefind"
)

const corpus = `<START:person> John <END> lives here .
<START:person> John <END> lives here .
<START:person> Mary <END> works here .
<START:person> Mary <END> works here .
We met <START:person> Anna <END> today .
We met <START:person> Anna <END> today .
Nothing to see here .
Nothing to see here .
<START:person> Peter Smith <END> arrived .
<START:person> Peter Smith <END> arrived .
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestExitCode(t *testing.T) {
	if code := ExitCode(nil); code != 0 {
		t.Errorf("Expected 0, got %d", code)
	}
	if code := ExitCode(usageError()); code != USAGE_EXIT {
		t.Errorf("Expected %d, got %d", USAGE_EXIT, code)
	}
	if code := ExitCode(errors.New("boom")); code != FATAL_EXIT {
		t.Errorf("Expected %d, got %d", FATAL_EXIT, code)
	}
}

func TestReportError(t *testing.T) {
	var stderr bytes.Buffer
	if code := ReportError(&stderr, errors.New("boom")); code != FATAL_EXIT {
		t.Errorf("Expected %d, got %d", FATAL_EXIT, code)
	}
	if stderr.String() != "**err**: boom\n" {
		t.Errorf("Expected **err** line, got %q", stderr.String())
	}
	stderr.Reset()
	if code := ReportError(&stderr, usageError()); code != USAGE_EXIT || stderr.Len() != 0 {
		t.Errorf("Expected silent exit %d, got %d with %q", USAGE_EXIT, code, stderr.String())
	}
}

func TestPackageChunkerModelUsage(t *testing.T) {
	var stderr bytes.Buffer
	err := PackageChunkerModel([]string{"-lang", "en"}, &stderr)
	if code := ExitCode(err); code != 1 {
		t.Errorf("Expected exit status 1, got %d (%v)", code, err)
	}
	if stderr.String() != CHUNKER_MODEL_USAGE+"\n" {
		t.Errorf("Expected one usage line, got %q", stderr.String())
	}
}

func TestPackageChunkerModel(t *testing.T) {
	dir := t.TempDir()
	raw := perceptron.NewModel([]string{"B-NP", "I-NP", "O"}, []string{"def"})
	raw.SetWeight("def", "O", 1)
	rawFile := filepath.Join(dir, "chunker.gob")
	if err := perceptron.WriteModelFile(rawFile, raw); err != nil {
		t.Fatal(err)
	}
	packageFile := filepath.Join(dir, "en-chunker.bin")
	var stderr bytes.Buffer
	if err := PackageChunkerModel([]string{"-lang", "en", packageFile, rawFile}, &stderr); err != nil {
		t.Fatalf("Failed packaging: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}
	m, err := chunker.LoadModelFile(packageFile)
	if err != nil {
		t.Fatalf("Failed loading package: %v", err)
	}
	if m.Bundle().Language() != "en" {
		t.Errorf("Expected language en, got %s", m.Bundle().Language())
	}
	if v, _ := m.Bundle().Get(model.BEAM_SIZE_KEY); v != "10" {
		t.Errorf("Expected beam-size 10, got %q", v)
	}

	err = PackageChunkerModel([]string{"-lang", "en", packageFile, filepath.Join(dir, "missing.gob")}, &stderr)
	if code := ExitCode(err); code != FATAL_EXIT {
		t.Errorf("Expected exit status %d, got %d (%v)", FATAL_EXIT, code, err)
	}
}

func setNameFinderFlags(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	lang, entityType, sequenceCodec, nameTypes, resourcesDir = "en", "", "BIO", "", ""
	dataFile = writeFile(t, dir, "en-ner.train", corpus)
	paramsFile = writeFile(t, dir, "params.txt", "Iterations=50\nCutoff=0\nAveraged=false\n")
	featureGenFile = writeFile(t, dir, "features.yaml", "generators:\n  - type: token\n  - type: prevoutcome\n")
	modelFile = filepath.Join(dir, "en-ner.bin")
	folds, misclassified, detailedF = 5, false, false
	return dir
}

func TestRunNameFinderCV(t *testing.T) {
	setNameFinderFlags(t)
	var stdout, stderr bytes.Buffer
	if err := RunNameFinderCV(&stdout, &stderr); err != nil {
		t.Fatalf("Failed cross validating: %v", err)
	}
	expected := "done\n\nPrecision: 1\nRecall: 1\nF-Measure: 1\n"
	if stdout.String() != expected {
		t.Errorf("Expected %q, got %q", expected, stdout.String())
	}
}

func TestRunNameFinderCVDetailed(t *testing.T) {
	setNameFinderFlags(t)
	detailedF, misclassified = true, true
	var stdout, stderr bytes.Buffer
	if err := RunNameFinderCV(&stdout, &stderr); err != nil {
		t.Fatalf("Failed cross validating: %v", err)
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "done\n\nEvaluated 10 samples with 8 entities") || !strings.Contains(out, "person") {
		t.Errorf("Expected the detailed report, got %q", out)
	}
	if strings.Contains(out, "F-Measure: ") {
		t.Errorf("Expected no pooled summary with the detailed report, got %q", out)
	}
}

func TestRunNameFinderCVErrors(t *testing.T) {
	setNameFinderFlags(t)
	sequenceCodec = "custom-id"
	var stdout, stderr bytes.Buffer
	if err := RunNameFinderCV(&stdout, &stderr); ExitCode(err) != FATAL_EXIT || err == nil {
		t.Errorf("Expected fatal error for an unknown codec, got %v", err)
	}
	setNameFinderFlags(t)
	folds = 20
	if err := RunNameFinderCV(&stdout, &stderr); err == nil {
		t.Errorf("Expected error for more folds than samples")
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no output on failure, got %q", stdout.String())
	}
}

func TestTrainAndTag(t *testing.T) {
	setNameFinderFlags(t)
	if err := RunNameFinderTrain(); err != nil {
		t.Fatalf("Failed training: %v", err)
	}
	m, err := namefind.LoadModelFile(modelFile)
	if err != nil {
		t.Fatalf("Failed loading: %v", err)
	}
	var out bytes.Buffer
	if err := TagNames(m, strings.NewReader("Peter Smith arrived .\n\nNothing to see here .\n"), &out); err != nil {
		t.Fatal(err)
	}
	expected := "<START:person> Peter Smith <END> arrived .\n\nNothing to see here .\n"
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
}

func TestLoadResources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "people.txt", "John\nMary\n")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	resources, err := LoadResources(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(resources) != 1 || string(resources["people"]) != "John\nMary\n" {
		t.Errorf("Expected the people resource only, got %v", resources)
	}
	writeFile(t, dir, "people.lst", "x\n")
	if _, err := LoadResources(dir); err == nil {
		t.Errorf("Expected error for duplicate resource names")
	}
}

const chunkCorpus = `He PRP B-NP
reckons VBZ B-VP
the DT B-NP
current JJ I-NP
account NN I-NP
deficit NN I-NP
will MD B-VP
narrow VB I-VP
. . O

The DT B-NP
cat NN I-NP
sat VBD B-VP
on IN B-PP
the DT B-NP
mat NN I-NP
. . O
`

func TestChunkerTrainAndTag(t *testing.T) {
	dir := t.TempDir()
	lang = "en"
	conllFile = writeFile(t, dir, "train.txt", chunkCorpus)
	paramsFile = writeFile(t, dir, "params.txt", "Iterations=100\nCutoff=0\nAveraged=false\n")
	modelFile = filepath.Join(dir, "en-chunker.bin")
	if err := RunChunkerTrain(); err != nil {
		t.Fatalf("Failed training: %v", err)
	}
	m, err := chunker.LoadModelFile(modelFile)
	if err != nil {
		t.Fatalf("Failed loading: %v", err)
	}
	// chunk column is replaced, so blank it out first
	in := strings.NewReplacer(" B-NP", " O", " I-NP", " O", " B-VP", " O", " I-VP", " O", " B-PP", " O").Replace(chunkCorpus)
	var out bytes.Buffer
	if err := TagChunks(m, strings.NewReader(in), &out); err != nil {
		t.Fatal(err)
	}
	expected := chunkCorpus + "\n"
	if out.String() != expected {
		t.Errorf("Expected %q, got %q", expected, out.String())
	}
}
