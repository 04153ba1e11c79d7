package algorithms

import "github.com/wstrand/gofst/fst"

// TrSortInput / TrSortOutput sort every state's outgoing transitions by
// ilabel or olabel, the two standard comparators.
func TrSortInput(f *fst.VectorFst) { f.SortTrs(fst.ILess, true) }

func TrSortOutput(f *fst.VectorFst) { f.SortTrs(fst.OLess, false) }
