package model

import (
	"strconv"

	"seqlab/alg/search"
	"seqlab/util/errs"
)

// ResolveDecodingModel turns a stored artifact into a decoder:
//   - a probability model is wrapped in a beam search of BeamSize(m)
//   - a compiled classifier is returned as is; beam-size does not apply to it
//   - anything else is an incomplete model
func ResolveDecodingModel(a Artifact, m *Manifest) (search.SequenceClassifier, error) {
	switch artifact := a.(type) {
	case ModelArtifact:
		if artifact.Model == nil {
			return nil, errs.NewFormatError("model incomplete: empty probability model")
		}
		return search.NewBeam(BeamSize(m), artifact.Model), nil
	case ClassifierArtifact:
		if artifact.Classifier == nil {
			return nil, errs.NewFormatError("model incomplete: empty sequence classifier")
		}
		return artifact.Classifier, nil
	case nil:
		return nil, errs.NewFormatError("model incomplete: no model artifact")
	default:
		return nil, errs.NewFormatError("model incomplete: %v artifact cannot decode", a.Kind())
	}
}

// BeamSize reads beam-size from m. A missing, malformed or non positive value
// yields the default width.
func BeamSize(m *Manifest) int {
	if m == nil {
		return search.DEFAULT_BEAM_SIZE
	}
	v, exists := m.Get(BEAM_SIZE_KEY)
	if !exists {
		return search.DEFAULT_BEAM_SIZE
	}
	size, err := strconv.Atoi(v)
	if err != nil || size < 1 {
		return search.DEFAULT_BEAM_SIZE
	}
	return size
}
