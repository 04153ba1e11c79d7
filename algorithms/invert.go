package algorithms

import "github.com/wstrand/gofst/fst"

// Invert swaps ilabel and olabel on every transition, in place.
// Acceptor-ness is unaffected; the input-side and output-side property
// bits (label sortedness, epsilons, determinism) trade places.
func Invert(f *fst.VectorFst) error {
	n := f.NumStates()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		if len(trs) == 0 {
			continue
		}
		for i := range trs {
			trs[i].Ilabel, trs[i].Olabel = trs[i].Olabel, trs[i].Ilabel
		}
		if err := f.ReplaceTrs(sid, trs); err != nil {
			return err
		}
	}
	props := f.Properties()
	iSorted := props&fst.ILabelSorted != 0
	oSorted := props&fst.OLabelSorted != 0
	props &^= fst.ILabelSorted | fst.NotILabelSorted | fst.OLabelSorted | fst.NotOLabelSorted
	if oSorted {
		props |= fst.ILabelSorted
	}
	if iSorted {
		props |= fst.OLabelSorted
	}
	for _, p := range [][2]fst.Properties{
		{fst.IEpsilons, fst.OEpsilons}, {fst.NoIEpsilons, fst.NoOEpsilons},
		{fst.IDeterministic, fst.ODeterministic}, {fst.NotIDeterministic, fst.NotODeterministic},
	} {
		hasI, hasO := props&p[0] != 0, props&p[1] != 0
		props &^= p[0] | p[1]
		if hasO {
			props |= p[0]
		}
		if hasI {
			props |= p[1]
		}
	}
	f.SetProperties(props)
	return nil
}
