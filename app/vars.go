package app

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonuts/commander"

	"seqlab/alg/perceptron"
	"seqlab/nlp/format/namesample"
	"seqlab/nlp/namefind"
)

var (
	// shared name finder options
	lang, entityType string
	paramsFile       string
	featureGenFile   string
	resourcesDir     string
	sequenceCodec    string
	dataFile         string
	nameTypes        string
	modelFile        string
	folds            int
	misclassified    bool
	detailedF        bool
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

// VerifyFlags reports the first unset required flag and returns a usage error.
func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f == nil || f.Value.String() == "" {
			log.Printf("Required flag %s not set", flag)
			fmt.Fprintf(os.Stderr, "Usage: %s\n", cmd.UsageLine)
			return usageError()
		}
	}
	return nil
}

// LoadParams reads the training parameters file, or returns the defaults when
// filename is empty.
func LoadParams(filename string) (*perceptron.Params, error) {
	if filename == "" {
		return perceptron.DefaultParams(), nil
	}
	return perceptron.ReadParamsFile(filename)
}

// LoadDescriptor reads a feature generator descriptor; empty selects the
// default descriptor.
func LoadDescriptor(filename string) ([]byte, error) {
	if filename == "" {
		return nil, nil
	}
	return os.ReadFile(filename)
}

// LoadResources reads every regular file of dir, keyed by file name without
// extension.
func LoadResources(dir string) (map[string][]byte, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	resources := make(map[string][]byte)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, exists := resources[name]; exists {
			return nil, fmt.Errorf("duplicate resource %s in %s", name, dir)
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		resources[name] = data
	}
	return resources, nil
}

// NameFinderFactory builds the factory the shared options describe.
func NameFinderFactory() (*namefind.Factory, error) {
	descriptor, err := LoadDescriptor(featureGenFile)
	if err != nil {
		return nil, err
	}
	resources, err := LoadResources(resourcesDir)
	if err != nil {
		return nil, err
	}
	return namefind.NewFactory(sequenceCodec, descriptor, resources)
}

// OpenSamples opens a name sample file, keeping only nameTypes when set.
func OpenSamples(filename, types string) (namefind.SampleStream, error) {
	reader, err := namesample.Open(filename)
	if err != nil {
		return nil, err
	}
	if types == "" {
		return reader, nil
	}
	return namefind.NewTypeFilter(namefind.ParseTypes(types), reader), nil
}

func NameFinderConfigOut() {
	log.Println("Configuration")
	log.Printf("Language:\t%s", lang)
	log.Printf("Type:    \t%s", entityType)
	log.Printf("Codec:   \t%s", sequenceCodec)
	log.Printf("Params:  \t%s", paramsFile)
	log.Printf("Features:\t%s", featureGenFile)
	log.Printf("Resources:\t%s", resourcesDir)
	log.Printf("Name types:\t%s", nameTypes)
	log.Println()
	log.Printf("Data:    \t%s", dataFile)
	log.Println()
}
