package eval

import "seqlab/util/errs"

// Partitioner assigns sample i of n to fold i mod k, so every fold draws
// evenly from the whole corpus regardless of its ordering.
type Partitioner struct {
	N, K int
}

func NewPartitioner(n, k int) (*Partitioner, error) {
	if k < 2 {
		return nil, errs.NewConfigurationError("number of folds must be at least 2, got %d", k)
	}
	if n < k {
		return nil, errs.NewConfigurationError("%d samples are not enough for %d folds", n, k)
	}
	return &Partitioner{n, k}, nil
}

// Fold returns the training and held out sample indices of fold f.
func (p *Partitioner) Fold(f int) (train, test []int) {
	if f < 0 || f >= p.K {
		panic("Fold out of range")
	}
	train = make([]int, 0, p.N-p.N/p.K)
	test = make([]int, 0, p.N/p.K+1)
	for i := 0; i < p.N; i++ {
		if i%p.K == f {
			test = append(test, i)
		} else {
			train = append(train, i)
		}
	}
	return
}
