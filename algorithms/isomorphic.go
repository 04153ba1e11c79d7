package algorithms

import (
	"sort"

	"github.com/wstrand/gofst/fst"
)

// Isomorphic reports whether a and b are isomorphic: there exists a
// state bijection pairing their start states, under which every paired
// state's final weight matches exactly and its transition multiset
// matches exactly after sorting by (ilabel, olabel, weight, nextstate).
// A queue-based pairing walk; fails fast on the first mismatch, on a
// state already paired to a different
// counterpart, or on an ambiguous pairing (two transitions leaving the
// same state that agree on (ilabel, olabel, weight) but lead to
// different states, making the correspondence ambiguous).
func Isomorphic(a, b fst.Fst) bool {
	if a.NumStates() != b.NumStates() {
		return false
	}
	aStart, aOk := a.Start()
	bStart, bOk := b.Start()
	if aOk != bOk {
		return false
	}
	if !aOk {
		return a.NumStates() == 0 && b.NumStates() == 0
	}

	pairA := map[fst.StateId]fst.StateId{aStart: bStart}
	pairB := map[fst.StateId]fst.StateId{bStart: aStart}
	queue := []fst.StateId{aStart}

	for len(queue) > 0 {
		sa := queue[0]
		queue = queue[1:]
		sb := pairA[sa]

		wa, okA := a.FinalWeight(sa)
		wb, okB := b.FinalWeight(sb)
		if okA != okB {
			return false
		}
		if okA && wa.Hash() != wb.Hash() {
			return false
		}

		trsA := sortedTrs(a.GetTrs(sa))
		trsB := sortedTrs(b.GetTrs(sb))
		if len(trsA) != len(trsB) {
			return false
		}
		if !isomorphicSortUnambiguous(trsA) || !isomorphicSortUnambiguous(trsB) {
			return false
		}
		for i := range trsA {
			ta, tb := trsA[i], trsB[i]
			if ta.Ilabel != tb.Ilabel || ta.Olabel != tb.Olabel || ta.Weight.Hash() != tb.Weight.Hash() {
				return false
			}
			if existing, ok := pairA[ta.NextState]; ok {
				if existing != tb.NextState {
					return false
				}
			} else if existing, ok := pairB[tb.NextState]; ok {
				if existing != ta.NextState {
					return false
				}
			} else {
				pairA[ta.NextState] = tb.NextState
				pairB[tb.NextState] = ta.NextState
				queue = append(queue, ta.NextState)
			}
		}
	}
	return true
}

func sortedTrs(trs []fst.Tr) []fst.Tr {
	out := make([]fst.Tr, len(trs))
	copy(out, trs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ilabel != out[j].Ilabel {
			return out[i].Ilabel < out[j].Ilabel
		}
		if out[i].Olabel != out[j].Olabel {
			return out[i].Olabel < out[j].Olabel
		}
		if hi, hj := out[i].Weight.Hash(), out[j].Weight.Hash(); hi != hj {
			return hi < hj
		}
		return out[i].NextState < out[j].NextState
	})
	return out
}

// isomorphicSortUnambiguous reports that no two adjacent transitions in
// the sorted order share (ilabel, olabel, weight) while landing on
// different states — such a tie makes "which physical transition
// corresponds to which" ambiguous and Isomorphic refuses to guess.
func isomorphicSortUnambiguous(sorted []fst.Tr) bool {
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if a.Ilabel == b.Ilabel && a.Olabel == b.Olabel && a.Weight.Hash() == b.Weight.Hash() && a.NextState != b.NextState {
			return false
		}
	}
	return true
}
