package algorithms

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// SDOption configures ShortestDistance, ShortestDistanceToFinal and
// PushWeights.
type SDOption func(*sdConfig)

type sdConfig struct {
	delta float64
}

// WithDelta overrides the quantization delta used to detect
// convergence.
func WithDelta(delta float64) SDOption {
	return func(c *sdConfig) { c.delta = delta }
}

func newSdConfig(opts []SDOption) sdConfig {
	c := sdConfig{delta: semiring.DefaultQuantizeDelta}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// ShortestDistance computes, for every state, the ⊕-sum over all paths
// from f's start to that state of the path's ⊗-product weight,
// single-source. Implements Mohri's
// generalized single-source shortest-distance algorithm: a worklist of
// "recently relaxed" states, each popped state's accumulated residual
// pushed across its outgoing transitions, self-loops folded in via
// Closure(). Converges for any semiring whose relevant weights are
// either Idempotent (exact in one pass per state) or admit Closure on
// cycles; non-convergence on a non-star semiring with a true cycle
// surfaces as the worklist never draining, which callers should guard
// against with a bound if the input's acyclicity isn't already known.
func ShortestDistance(f fst.Fst, opts ...SDOption) ([]semiring.Weight, error) {
	cfg := newSdConfig(opts)
	n := f.NumStates()
	start, ok := f.Start()
	if !ok {
		return make([]semiring.Weight, n), nil
	}
	one := oneFrom(f)
	zero := zeroFrom(f)
	d := make([]semiring.Weight, n)
	r := make([]semiring.Weight, n)
	for i := range d {
		d[i] = zero
		r[i] = zero
	}
	d[start] = one
	r[start] = one
	queue := []fst.StateId{start}
	inQueue := make([]bool, n)
	inQueue[start] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		inQueue[cur] = false
		rr := r[cur]
		r[cur] = zero

		selfLoop := zero
		for _, tr := range f.GetTrs(cur) {
			if tr.NextState == cur {
				selfLoop = selfLoop.Plus(tr.Weight)
			}
		}
		if selfLoop.Hash() != zero.Hash() {
			star, isStar := selfLoop.(semiring.StarSemiring)
			if isStar {
				closure := star.Closure()
				rr = rr.Times(closure)
				d[cur] = d[cur].Times(closure)
			}
		}

		for _, tr := range f.GetTrs(cur) {
			if tr.NextState == cur {
				continue
			}
			delta := rr.Times(tr.Weight)
			next := d[tr.NextState].Plus(delta)
			if next.ApproxEqual(d[tr.NextState], cfg.delta) {
				continue
			}
			d[tr.NextState] = next
			r[tr.NextState] = r[tr.NextState].Plus(delta)
			if !inQueue[tr.NextState] {
				queue = append(queue, tr.NextState)
				inQueue[tr.NextState] = true
			}
		}
	}
	return d, nil
}

// ShortestDistanceToFinal computes, for every state, the ⊕-sum over all
// paths from that state to any final state of the path weight times the
// final weight — the distance weight pushing's ReweightToInitial mode
// needs. Computed as the single-source distance on Reverse(f),
// un-reversed per weight since Weight.Reverse() is an involution.
func ShortestDistanceToFinal(f fst.Fst, opts ...SDOption) ([]semiring.Weight, error) {
	rev, err := Reverse(f)
	if err != nil {
		return nil, err
	}
	d, err := ShortestDistance(rev, opts...)
	if err != nil {
		return nil, err
	}
	n := f.NumStates()
	out := make([]semiring.Weight, n)
	for s := 0; s < n; s++ {
		out[s] = d[s].Reverse()
	}
	return out, nil
}

// AllPairsShortestDistance computes the ⊕-sum over all paths between
// every ordered pair of states using a Floyd-Warshall style closure.
// Requires a StarSemiring for the diagonal closure step.
func AllPairsShortestDistance(f fst.Fst) ([][]semiring.Weight, error) {
	n := f.NumStates()
	one := oneFrom(f)
	zero := zeroFrom(f)
	d := make([][]semiring.Weight, n)
	for i := range d {
		d[i] = make([]semiring.Weight, n)
		for j := range d[i] {
			if i == j {
				d[i][j] = one
			} else {
				d[i][j] = zero
			}
		}
	}
	for s := 0; s < n; s++ {
		for _, tr := range f.GetTrs(fst.StateId(s)) {
			t := int(tr.NextState)
			d[s][t] = d[s][t].Plus(tr.Weight)
		}
	}
	for k := 0; k < n; k++ {
		star, isStar := d[k][k].(semiring.StarSemiring)
		if !isStar {
			return nil, ErrNotStarSemiring
		}
		kk := star.Closure()
		d[k][k] = kk
		for j := 0; j < n; j++ {
			if j != k {
				d[k][j] = kk.Times(d[k][j])
			}
		}
		for i := 0; i < n; i++ {
			if i == k || d[i][k].Hash() == zero.Hash() {
				continue
			}
			for j := 0; j < n; j++ {
				if j == k || d[k][j].Hash() == zero.Hash() {
					continue
				}
				d[i][j] = d[i][j].Plus(d[i][k].Times(d[k][j]))
			}
			d[i][k] = d[i][k].Times(kk)
		}
	}
	return d, nil
}
