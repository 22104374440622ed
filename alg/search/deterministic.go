package search

// Deterministic greedily picks the most probable valid outcome at every
// position. It carries its own model, so a stored Deterministic is a complete
// decoder.
type Deterministic struct {
	Model ProbabilityModel
}

var _ SequenceClassifier = &Deterministic{}

func (d *Deterministic) Outcomes() []string {
	return modelOutcomes(d.Model)
}

func (d *Deterministic) BestSequence(sequence []string, cg ContextGenerator, v SequenceValidator) *Sequence {
	if d.Model == nil {
		panic("Set a Model")
	}
	if v == nil {
		v = AcceptAll{}
	}
	seq := &Sequence{}
	for i := range sequence {
		scores := d.Model.Eval(cg.Context(i, sequence, seq.Outcomes))
		best := -1
		for o, score := range scores {
			if best >= 0 && score <= scores[best] {
				continue
			}
			if v.ValidSequence(i, sequence, seq.Outcomes, d.Model.Outcome(o)) {
				best = o
			}
		}
		if best < 0 {
			return nil
		}
		seq = seq.Extend(d.Model.Outcome(best), scores[best])
	}
	return seq
}

func (d *Deterministic) BestSequences(num int, sequence []string, cg ContextGenerator, v SequenceValidator) []*Sequence {
	if num < 1 {
		return nil
	}
	if best := d.BestSequence(sequence, cg, v); best != nil {
		return []*Sequence{best}
	}
	return nil
}
