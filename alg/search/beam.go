package search

import (
	"container/heap"
	"log"
	"sort"

	"seqlab/util"
)

const (
	DEFAULT_BEAM_SIZE = 3
)

// Beam decodes with a beam search over a ProbabilityModel, keeping the Size
// best partial sequences at every position. Cost per sequence is
// Size * len(sequence) * NumOutcomes model evaluations.
type Beam struct {
	Size  int
	Model ProbabilityModel
}

var _ SequenceClassifier = &Beam{}

func NewBeam(size int, model ProbabilityModel) *Beam {
	if size <= 0 {
		size = DEFAULT_BEAM_SIZE
	}
	return &Beam{Size: size, Model: model}
}

func (b *Beam) Name() string {
	return "Beam Search"
}

func (b *Beam) Outcomes() []string {
	return modelOutcomes(b.Model)
}

func (b *Beam) BestSequence(sequence []string, cg ContextGenerator, v SequenceValidator) *Sequence {
	best := b.BestSequences(1, sequence, cg, v)
	if len(best) == 0 {
		return nil
	}
	return best[0]
}

func (b *Beam) BestSequences(num int, sequence []string, cg ContextGenerator, v SequenceValidator) []*Sequence {
	if b.Model == nil {
		panic("Set a Model")
	}
	if v == nil {
		v = AcceptAll{}
	}
	size := b.Size
	if size <= 0 {
		size = DEFAULT_BEAM_SIZE
	}
	prev := NewAgenda(size)
	prev.Add(&Sequence{})
	for i := range sequence {
		next := NewAgenda(size)
		for _, top := range prev.Best(size) {
			scores := b.Model.Eval(cg.Context(i, sequence, top.Outcomes))
			threshold := kthBest(scores, size)
			for o, score := range scores {
				if score < threshold {
					continue
				}
				outcome := b.Model.Outcome(o)
				if v.ValidSequence(i, sequence, top.Outcomes, outcome) {
					next.Add(top.Extend(outcome, score))
				}
			}
			// nothing in the top scores was valid, fall back to every valid outcome
			if next.Len() == 0 {
				for o, score := range scores {
					outcome := b.Model.Outcome(o)
					if v.ValidSequence(i, sequence, top.Outcomes, outcome) {
						next.Add(top.Extend(outcome, score))
					}
				}
			}
		}
		if AllOut {
			log.Println("Beam position", i, "agenda", next.Len())
		}
		prev = next
	}
	return prev.Best(num)
}

func kthBest(scores []float64, k int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return sorted[util.Min(k, len(sorted))-1]
}

// Agenda is a bounded min-heap keeping the best Size sequences added to it.
type Agenda struct {
	Size  int
	Seqs  []*Sequence
	added int
	order []int
}

var _ heap.Interface = &Agenda{}

func NewAgenda(size int) *Agenda {
	return &Agenda{Size: size, Seqs: make([]*Sequence, 0, size), order: make([]int, 0, size)}
}

func (a *Agenda) Len() int { return len(a.Seqs) }

// Less orders by score; among equal scores the later addition is smaller so
// earlier additions survive pruning.
func (a *Agenda) Less(i, j int) bool {
	if a.Seqs[i].Score != a.Seqs[j].Score {
		return a.Seqs[i].Score < a.Seqs[j].Score
	}
	return a.order[i] > a.order[j]
}

func (a *Agenda) Swap(i, j int) {
	a.Seqs[i], a.Seqs[j] = a.Seqs[j], a.Seqs[i]
	a.order[i], a.order[j] = a.order[j], a.order[i]
}

func (a *Agenda) Push(x interface{}) {
	a.Seqs = append(a.Seqs, x.(*Sequence))
	a.order = append(a.order, a.added)
	a.added++
}

func (a *Agenda) Pop() interface{} {
	n := len(a.Seqs) - 1
	s := a.Seqs[n]
	a.Seqs = a.Seqs[:n]
	a.order = a.order[:n]
	return s
}

func (a *Agenda) Add(s *Sequence) {
	if len(a.Seqs) < a.Size {
		heap.Push(a, s)
		return
	}
	if a.Seqs[0].Score < s.Score {
		heap.Pop(a)
		heap.Push(a, s)
	}
}

// Best returns up to n sequences, best first.
func (a *Agenda) Best(n int) []*Sequence {
	idx := util.RangeInt(len(a.Seqs))
	sort.SliceStable(idx, func(i, j int) bool {
		x, y := idx[i], idx[j]
		if a.Seqs[x].Score != a.Seqs[y].Score {
			return a.Seqs[x].Score > a.Seqs[y].Score
		}
		return a.order[x] < a.order[y]
	})
	retval := make([]*Sequence, 0, util.Min(n, len(idx)))
	for _, i := range idx[:util.Min(n, len(idx))] {
		retval = append(retval, a.Seqs[i])
	}
	return retval
}
