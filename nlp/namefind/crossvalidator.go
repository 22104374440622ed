package namefind

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"seqlab/alg/perceptron"
	"seqlab/eval"
	nlp "seqlab/nlp/types"
	"seqlab/util/errs"
)

const READ_ERROR = "IO error while reading training data or indexing data"

type CrossValidatorConfig struct {
	Language string
	// EntityType relabels untyped training names, empty keeps them
	EntityType string
	// Params defaults to perceptron.DefaultParams()
	Params   *perceptron.Params
	Factory  *Factory
	Monitors []EvaluationMonitor
	// Train defaults to Train
	Train TrainFunc
}

// CrossValidator runs k-fold cross validation and pools the counts of every
// fold into one FMeasure.
type CrossValidator struct {
	cfg      CrossValidatorConfig
	fmeasure eval.FMeasure
	closeErr error
}

func NewCrossValidator(cfg CrossValidatorConfig) (*CrossValidator, error) {
	if cfg.Language == "" {
		return nil, errs.NewConfigurationError("missing language")
	}
	if cfg.Factory == nil {
		return nil, errs.NewConfigurationError("missing name finder factory")
	}
	if cfg.Params == nil {
		cfg.Params = perceptron.DefaultParams()
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Train == nil {
		cfg.Train = Train
	}
	return &CrossValidator{cfg: cfg}, nil
}

// Evaluate reads samples, then trains on all folds but f and tests on fold f
// for every f. Sample i belongs to fold i mod folds. samples is closed exactly
// once; a close failure is logged and kept in CloseError. Training and
// decoding errors end the run unchanged, and FMeasure only reflects complete
// runs.
func (cv *CrossValidator) Evaluate(samples SampleStream, folds int) error {
	defer func() {
		if err := samples.Close(); err != nil {
			cv.closeErr = err
			log.Println("Failed closing samples:", err)
		}
	}()
	all, err := readAll(samples)
	if err != nil {
		return errs.WrapIO(READ_ERROR, err)
	}
	partitioner, err := eval.NewPartitioner(len(all), folds)
	if err != nil {
		return err
	}
	runID := uuid.New()
	log.Println("Cross validation run", runID, "over", len(all), "samples in", folds, "folds")
	prevPrefix := log.Prefix()
	defer log.SetPrefix(prevPrefix)

	var pooled eval.FMeasure
	for f := 0; f < folds; f++ {
		log.SetPrefix(fmt.Sprintf("FOLD #%d ", f) + prevPrefix)
		trainIdx, testIdx := partitioner.Fold(f)
		model, err := cv.cfg.Train(cv.cfg.Language, cv.cfg.EntityType, pick(all, trainIdx), cv.cfg.Params, cv.cfg.Factory)
		if err != nil {
			return err
		}
		finder, err := NewNameFinder(model)
		if err != nil {
			return err
		}
		evaluator := NewEvaluator(finder, cv.cfg.Monitors...)
		evaluator.Evaluate(pick(all, testIdx))
		if AllOut {
			log.Printf("Trained on %d, tested on %d: F %.4f", len(trainIdx), len(testIdx), evaluator.FMeasure().F1())
		}
		pooled.Merge(evaluator.FMeasure())
	}
	cv.fmeasure = pooled
	return nil
}

func (cv *CrossValidator) FMeasure() *eval.FMeasure {
	return &cv.fmeasure
}

// CloseError is the error returned by the last Close of the sample stream.
func (cv *CrossValidator) CloseError() error {
	return cv.closeErr
}

func readAll(samples SampleStream) ([]*nlp.NameSample, error) {
	var all []*nlp.NameSample
	for {
		sample, err := samples.Read()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, sample)
	}
}

func pick(samples []*nlp.NameSample, indices []int) []*nlp.NameSample {
	retval := make([]*nlp.NameSample, len(indices))
	for i, idx := range indices {
		retval[i] = samples[idx]
	}
	return retval
}
