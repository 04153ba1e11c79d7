package algorithms

import "github.com/wstrand/gofst/fst"

// AddSuperFinalState returns f unchanged if it already has exactly one
// final state weighted One; otherwise it adds a new state final with
// weight One, routes every previously-final state to it via an epsilon
// carrying that state's former final weight, and clears their finality.
// Returns the (possibly pre-existing) super-final state id.
func AddSuperFinalState(f *fst.VectorFst) (fst.StateId, error) {
	finals := finalStateIds(f)
	one := oneFrom(f)
	if len(finals) == 1 {
		if w, _ := f.FinalWeight(finals[0]); one != nil && w.Hash() == one.Hash() {
			return finals[0], nil
		}
	}
	super := f.AddState()
	if err := f.SetFinal(super, one); err != nil {
		return fst.NoStateId, err
	}
	for _, s := range finals {
		w, _ := f.FinalWeight(s)
		if err := f.AddTr(s, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: w, NextState: super}); err != nil {
			return fst.NoStateId, err
		}
		if err := f.SetFinal(s, nil); err != nil {
			return fst.NoStateId, err
		}
	}
	return super, nil
}
