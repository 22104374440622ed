package perceptron

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"seqlab/util/conf"
	"seqlab/util/errs"
)

const (
	ALGORITHM_PARAM  = "Algorithm"
	ITERATIONS_PARAM = "Iterations"
	CUTOFF_PARAM     = "Cutoff"
	AVERAGED_PARAM   = "Averaged"

	PERCEPTRON_ALGORITHM = "PERCEPTRON"
)

// Params holds the training hyperparameters.
type Params struct {
	Algorithm  string
	Iterations int
	Cutoff     int
	Averaged   bool
}

func DefaultParams() *Params {
	return &Params{
		Algorithm:  PERCEPTRON_ALGORITHM,
		Iterations: 100,
		Cutoff:     5,
		Averaged:   true,
	}
}

// ReadParams reads key=value training parameters over the defaults. Unknown
// keys are logged and ignored.
func ReadParams(reader io.Reader) (*Params, error) {
	props, err := conf.ReadProperties(reader)
	if err != nil {
		return nil, errs.WrapConfiguration(err, "training parameters")
	}
	params := DefaultParams()
	for _, prop := range props {
		switch prop.Key {
		case ALGORITHM_PARAM:
			params.Algorithm = strings.ToUpper(prop.Value)
		case ITERATIONS_PARAM:
			params.Iterations, err = strconv.Atoi(prop.Value)
		case CUTOFF_PARAM:
			params.Cutoff, err = strconv.Atoi(prop.Value)
		case AVERAGED_PARAM:
			params.Averaged, err = strconv.ParseBool(prop.Value)
		default:
			log.Println("Ignoring unknown training parameter", prop.Key)
		}
		if err != nil {
			return nil, errs.WrapConfiguration(err, "training parameter %s", prop.Key)
		}
	}
	return params, params.Validate()
}

func ReadParamsFile(filename string) (*Params, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errs.WrapConfiguration(err, "training parameters file %s", filename)
	}
	defer file.Close()

	return ReadParams(file)
}

func (p *Params) Validate() error {
	if p.Algorithm != PERCEPTRON_ALGORITHM {
		return errs.NewConfigurationError("unsupported training algorithm %q", p.Algorithm)
	}
	if p.Iterations < 1 {
		return errs.NewConfigurationError("iterations must be positive, got %d", p.Iterations)
	}
	if p.Cutoff < 0 {
		return errs.NewConfigurationError("cutoff must not be negative, got %d", p.Cutoff)
	}
	return nil
}

func (p *Params) Trainer() *Trainer {
	t := &Trainer{Iterations: p.Iterations, Cutoff: p.Cutoff}
	if p.Averaged {
		t.Updater = new(AveragedStrategy)
	} else {
		t.Updater = new(TrivialStrategy)
	}
	return t
}
