package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"seqlab/nlp/namefind"
)

const DEFAULT_FOLDS = 10

func NameFinderCVConfigOut() {
	NameFinderConfigOut()
	log.Printf("Folds:   \t%d", folds)
	log.Printf("Misclassified:\t%v", misclassified)
	log.Printf("Detailed F:\t%v", detailedF)
	log.Println()
}

// RunNameFinderCV cross validates a name finder with the current flags and
// prints the pooled F-measure, or the per type report with -detailedF.
func RunNameFinderCV(stdout, stderr io.Writer) error {
	params, err := LoadParams(paramsFile)
	if err != nil {
		return err
	}
	factory, err := NameFinderFactory()
	if err != nil {
		return err
	}
	var (
		monitors []namefind.EvaluationMonitor
		detailed *namefind.DetailedFMeasureListener
	)
	if misclassified {
		monitors = append(monitors, &namefind.MisclassifiedListener{Writer: stderr})
	}
	if detailedF {
		detailed = namefind.NewDetailedFMeasureListener()
		monitors = append(monitors, detailed)
	}
	cv, err := namefind.NewCrossValidator(namefind.CrossValidatorConfig{
		Language:   lang,
		EntityType: entityType,
		Params:     params,
		Factory:    factory,
		Monitors:   monitors,
	})
	if err != nil {
		return err
	}
	samples, err := OpenSamples(dataFile, nameTypes)
	if err != nil {
		return err
	}
	if err := cv.Evaluate(samples, folds); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "done")
	fmt.Fprintln(stdout)
	if detailed != nil {
		fmt.Fprint(stdout, detailed.Report())
	} else {
		fmt.Fprintln(stdout, cv.FMeasure())
	}
	return nil
}

func NameFinderCV(cmd *commander.Command, args []string) error {
	if err := VerifyFlags(cmd, []string{"lang", "data"}); err != nil {
		return err
	}
	if !VerifyExists(dataFile) {
		return usageError()
	}
	NameFinderCVConfigOut()
	return RunNameFinderCV(os.Stdout, os.Stderr)
}

func NameFinderCVCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       NameFinderCV,
		UsageLine: "namefindercv -lang code -data file [options]",
		Short:     "k-fold cross validation of the name finder",
		Long: `
k-fold cross validation of the name finder

	$ ./seqlab namefindercv -lang en -data en-ner.train -folds 10 [options]

Samples are assigned to folds round robin; counts are pooled over all folds.
`,
		Flag: *flag.NewFlagSet("namefindercv", flag.ExitOnError),
	}
	addNameFinderFlags(cmd)
	cmd.Flag.IntVar(&folds, "folds", DEFAULT_FOLDS, "number of folds")
	cmd.Flag.BoolVar(&misclassified, "misclassified", false, "write misclassified samples to stderr")
	cmd.Flag.BoolVar(&detailedF, "detailedF", false, "print the per type F-measure report")
	return cmd
}

func addNameFinderFlags(cmd *commander.Command) {
	cmd.Flag.StringVar(&lang, "lang", "", "language code")
	cmd.Flag.StringVar(&entityType, "type", "", "type of untyped training names")
	cmd.Flag.StringVar(&paramsFile, "params", "", "training parameters file")
	cmd.Flag.StringVar(&featureGenFile, "featuregen", "", "feature generator descriptor (YAML)")
	cmd.Flag.StringVar(&resourcesDir, "resources", "", "directory of feature generator resources")
	cmd.Flag.StringVar(&sequenceCodec, "sequenceCodec", "", "sequence codec: BIO, BILOU or a registered identifier")
	cmd.Flag.StringVar(&dataFile, "data", "", "name sample data file")
	cmd.Flag.StringVar(&nameTypes, "nameTypes", "", "comma separated name types to keep")
}
