package algorithms

import "github.com/wstrand/gofst/fst"

// Concat appends b's states to a (renumbered by a's original size) and
// wires every formerly-final state of a to b's start via an epsilon
// carrying that state's final weight, clearing that state's finality.
// a is mutated in place; b is read-only.
func Concat(a *fst.VectorFst, b fst.Fst) error {
	aFinals := finalStateIds(a)
	remap, err := appendStates(a, b)
	if err != nil {
		return err
	}
	bStart, hasBStart := b.Start()
	for _, s := range aFinals {
		w, _ := a.FinalWeight(s)
		if err := a.SetFinal(s, nil); err != nil {
			return err
		}
		if hasBStart {
			if err := a.AddTr(s, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: w, NextState: remap(bStart)}); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendStates copies every state, transition and final weight of src
// into dst, returning a function mapping src's StateIds to their new
// position in dst. Shared by Concat and Union.
func appendStates(dst *fst.VectorFst, src fst.Fst) (func(fst.StateId) fst.StateId, error) {
	base := fst.StateId(dst.NumStates())
	n := src.NumStates()
	for i := 0; i < n; i++ {
		dst.AddState()
	}
	remap := func(s fst.StateId) fst.StateId { return base + s }
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range src.GetTrs(sid) {
			tr.NextState = remap(tr.NextState)
			if err := dst.AddTr(remap(sid), tr); err != nil {
				return nil, err
			}
		}
		if w, ok := src.FinalWeight(sid); ok {
			if err := dst.SetFinal(remap(sid), w); err != nil {
				return nil, err
			}
		}
	}
	return remap, nil
}
