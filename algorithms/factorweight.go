package algorithms

import (
	"strconv"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// FactorIterator splits a weight into a retained "factor" and a moved
// "tail" repeatedly, such that the factors ⊗-multiplied back together
// (in order) reconstruct the original weight.
type FactorIterator interface {
	// Done reports that w has nothing left to factor out (typically
	// w.Hash() == w.One().Hash() or w.Zero().Hash()).
	Done(w semiring.Weight) bool
	// Next splits w into one factor and the remaining tail.
	Next(w semiring.Weight) (factor, tail semiring.Weight)
}

// FactorWeightMode selects which weights FactorWeight processes.
type FactorWeightMode uint8

const (
	FactorArcWeights FactorWeightMode = 1 << iota
	FactorFinalWeights
)

// FactorWeight splits the targeted weights of f (transitions and/or
// final weights per mode) using it, introducing one auxiliary state per
// undischarged tail so each original weight becomes a chain of epsilon
// transitions carrying one factor each.
// Determinize does not call it: its Gallic-weight path unwraps the
// Gallic weights itself (unwrapGallicAcceptor).
func FactorWeight(f fst.Fst, it FactorIterator, mode FactorWeightMode) (*fst.VectorFst, error) {
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
	aux := map[string]fst.StateId{}
	auxState := func(target fst.StateId, tail semiring.Weight) fst.StateId {
		key := tailKey(target, tail)
		if id, ok := aux[key]; ok {
			return id
		}
		id := out.AddState()
		aux[key] = id
		return id
	}

	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range f.GetTrs(sid) {
			if mode&FactorArcWeights == 0 || it.Done(tr.Weight) {
				if err := out.AddTr(sid, tr); err != nil {
					return nil, err
				}
				continue
			}
			if err := emitChain(out, it, sid, tr.Ilabel, tr.Olabel, tr.Weight, tr.NextState, auxState); err != nil {
				return nil, err
			}
		}
		if w, ok := f.FinalWeight(sid); ok {
			if mode&FactorFinalWeights == 0 || it.Done(w) {
				if err := out.SetFinal(sid, w); err != nil {
					return nil, err
				}
				continue
			}
			superfinal := auxState(fst.NoStateId, w.One())
			if err := out.SetFinal(superfinal, w.One()); err != nil {
				return nil, err
			}
			if err := emitChain(out, it, sid, fst.EpsLabel, fst.EpsLabel, w, superfinal, auxState); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// emitChain peels w via it one factor at a time starting at from,
// emitting one transition per factor (first carries ilabel/olabel, the
// rest epsilon/epsilon), until the tail is Done, at which point the
// final factor targets dst directly.
func emitChain(out *fst.VectorFst, it FactorIterator, from fst.StateId, ilabel, olabel fst.Label, w semiring.Weight, dst fst.StateId, auxState func(fst.StateId, semiring.Weight) fst.StateId) error {
	cur := w
	curI, curO := ilabel, olabel
	fromState := from
	for {
		factor, tail := it.Next(cur)
		if it.Done(tail) {
			return out.AddTr(fromState, fst.Tr{Ilabel: curI, Olabel: curO, Weight: factor, NextState: dst})
		}
		mid := auxState(dst, tail)
		if err := out.AddTr(fromState, fst.Tr{Ilabel: curI, Olabel: curO, Weight: factor, NextState: mid}); err != nil {
			return err
		}
		fromState = mid
		curI, curO = fst.EpsLabel, fst.EpsLabel
		cur = tail
	}
}

func tailKey(target fst.StateId, tail semiring.Weight) string {
	return tail.Hash() + "->" + strconv.FormatInt(int64(target), 10)
}
