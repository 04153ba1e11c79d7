package algorithms

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// RmEpsilon removes epsilon transitions from f, returning a new Fst
// transductionally equivalent to it. For
// each state s, the epsilon-only closure reachable from s is collapsed:
// every non-epsilon transition (and final weight) found at the far end of
// an epsilon path is copied back to s, scaled by that path's ⊕-summed
// weight. Epsilon self-loops are folded in via the semiring's Closure
// (StarSemiring); a non-StarSemiring weight on a self-loop is an error.
func RmEpsilon(f fst.Fst) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	n := f.NumStates()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if s, ok := f.Start(); ok {
		if err := out.SetStart(s); err != nil {
			return nil, err
		}
	}

	one := oneFrom(f)
	zero := zeroFrom(f)
	if one == nil {
		return out, nil // no weights observed anywhere: empty Fst
	}

	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		closure, err := epsilonClosure(f, sid, one, zero)
		if err != nil {
			return nil, err
		}
		var final semiring.Weight = zero
		for t, w := range closure {
			if fw, ok := f.FinalWeight(t); ok {
				final = final.Plus(w.Times(fw))
			}
			for _, tr := range f.GetTrs(t) {
				if tr.IsEpsilon() {
					continue
				}
				if err := out.AddTr(sid, fst.Tr{
					Ilabel:    tr.Ilabel,
					Olabel:    tr.Olabel,
					Weight:    w.Times(tr.Weight),
					NextState: tr.NextState,
				}); err != nil {
					return nil, err
				}
			}
		}
		if final.Hash() != zero.Hash() {
			if err := out.SetFinal(sid, final); err != nil {
				return nil, err
			}
		}
	}
	out.SetProperties((out.Properties() &^ (fst.IEpsilons | fst.OEpsilons)) | fst.NoIEpsilons | fst.NoOEpsilons)
	return out, nil
}

// epsilonClosure computes, for every state t reachable from s via
// epsilon/epsilon transitions only, the ⊕-sum of weights of all epsilon
// paths s->t (including t==s with weight one). Implements Mohri's
// generalized single-source shortest-distance restricted to the
// epsilon subgraph, folding self-loops in via Closure() as they're
// popped off the queue.
func epsilonClosure(f fst.Fst, s fst.StateId, one, zero semiring.Weight) (map[fst.StateId]semiring.Weight, error) {
	d := map[fst.StateId]semiring.Weight{s: one}
	r := map[fst.StateId]semiring.Weight{s: one}
	queue := []fst.StateId{s}
	inQueue := map[fst.StateId]bool{s: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		inQueue[cur] = false
		rr := r[cur]
		r[cur] = zero

		selfLoop := zero
		for _, tr := range f.GetTrs(cur) {
			if tr.IsEpsilon() && tr.NextState == cur {
				selfLoop = selfLoop.Plus(tr.Weight)
			}
		}
		if selfLoop.Hash() != zero.Hash() {
			star, ok := selfLoop.(semiring.StarSemiring)
			if !ok {
				return nil, ErrNotStarSemiring
			}
			closure := star.Closure()
			if !closure.Member() {
				return nil, ErrEpsilonCycleDiverges
			}
			rr = rr.Times(closure)
			d[cur] = d[cur].Times(closure)
		}

		for _, tr := range f.GetTrs(cur) {
			if !tr.IsEpsilon() || tr.NextState == cur {
				continue
			}
			delta := rr.Times(tr.Weight)
			prev, had := d[tr.NextState]
			if !had {
				prev = zero
			}
			next := prev.Plus(delta)
			if had && next.ApproxEqual(prev, semiring.DefaultQuantizeDelta) {
				continue
			}
			d[tr.NextState] = next
			if prevR, ok := r[tr.NextState]; ok {
				r[tr.NextState] = prevR.Plus(delta)
			} else {
				r[tr.NextState] = delta
			}
			if !inQueue[tr.NextState] {
				queue = append(queue, tr.NextState)
				inQueue[tr.NextState] = true
			}
		}
	}
	return d, nil
}
