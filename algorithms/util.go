package algorithms

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// oneFrom extracts a representative Weight.One() from f by probing any
// weight reachable in it (a final weight or a transition weight). The
// read-only Fst interface has no bare "semiring of this Fst" accessor, so
// callers that need a bald One()/Zero() for a new final weight or
// transition borrow it from whatever weight the Fst already carries.
func oneFrom(f fst.Fst) semiring.Weight {
	for s := 0; s < f.NumStates(); s++ {
		sid := fst.StateId(s)
		if w, ok := f.FinalWeight(sid); ok {
			return w.One()
		}
		if trs := f.GetTrs(sid); len(trs) > 0 {
			return trs[0].Weight.One()
		}
	}
	return nil
}

// zeroFrom is oneFrom's Zero() counterpart.
func zeroFrom(f fst.Fst) semiring.Weight {
	if w := oneFrom(f); w != nil {
		return w.Zero()
	}
	return nil
}

// finalStateIds lists every state in f with a final weight set.
func finalStateIds(f fst.Fst) []fst.StateId {
	var out []fst.StateId
	for s := 0; s < f.NumStates(); s++ {
		if _, ok := f.FinalWeight(fst.StateId(s)); ok {
			out = append(out, fst.StateId(s))
		}
	}
	return out
}
