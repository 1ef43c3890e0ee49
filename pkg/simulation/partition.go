package simulation

import (
	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

// Range is a half-open span [Start, End) of outer body indices.
type Range struct {
	Start, End int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Partition splits [0, n) into p contiguous ranges of n/p indices each; the
// last range takes the remainder. With p > n the leading ranges are empty.
func Partition(n, p int) []Range {
	if p < 1 {
		p = 1
	}
	chunk := n / p
	ranges := make([]Range, p)
	for w := 0; w < p; w++ {
		start := w * chunk
		end := (w + 1) * chunk
		if w == p-1 {
			end = n
		}
		ranges[w] = Range{Start: start, End: end}
	}
	return ranges
}

// ForceKernel yields the pair of accelerations two bodies impart on each
// other. Implementations must be safe for concurrent use.
type ForceKernel interface {
	Pair(bi, bj *physics.Body) (ai, aj physics.Vec2)
}

// AccumulateRange adds the contribution of every pair (i, j) with i in r and
// j > i into acc. Over a partition of [0, n) this visits each unordered pair
// exactly once.
func AccumulateRange(bodies []physics.Body, r Range, k ForceKernel, acc physics.AccelField) {
	n := len(bodies)
	for i := r.Start; i < r.End; i++ {
		for j := i + 1; j < n; j++ {
			ai, aj := k.Pair(&bodies[i], &bodies[j])
			acc.Add(i, ai)
			acc.Add(j, aj)
		}
	}
}

// Accelerations is the serial path: one range over all bodies.
func Accelerations(bodies []physics.Body, k ForceKernel) physics.AccelField {
	acc := physics.NewAccelField(len(bodies))
	AccumulateRange(bodies, Range{0, len(bodies)}, k, acc)
	return acc
}

// pairsIn counts the unordered pairs a range contributes: the sum of
// n-1-i over i in r.
func pairsIn(r Range, n int) int64 {
	return int64(r.Len()) * int64(2*n-1-r.Start-r.End) / 2
}
