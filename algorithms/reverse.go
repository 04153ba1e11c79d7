package algorithms

import (
	"github.com/wstrand/gofst/fst"
)

// Reverse builds a new Fst transducing the reverse of every path in f:
// a new start state feeds every original final
// state via an epsilon weighted by that state's final weight reversed;
// every original transition is flipped and its weight reversed; the
// original start becomes final with weight One.
func Reverse(f fst.Fst) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	n := f.NumStates()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	newStart := out.AddState()
	if err := out.SetStart(newStart); err != nil {
		return nil, err
	}

	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range f.GetTrs(sid) {
			rev := fst.Tr{Ilabel: tr.Ilabel, Olabel: tr.Olabel, Weight: tr.Weight.Reverse(), NextState: sid}
			if err := out.AddTr(tr.NextState, rev); err != nil {
				return nil, err
			}
		}
		if w, ok := f.FinalWeight(sid); ok {
			if err := out.AddTr(newStart, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: w.Reverse(), NextState: sid}); err != nil {
				return nil, err
			}
		}
	}

	if origStart, ok := f.Start(); ok {
		if err := out.SetFinal(origStart, oneFrom(f)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
