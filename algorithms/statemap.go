package algorithms

import (
	"fmt"

	"github.com/wstrand/gofst/fst"
)

// StateMapper rewrites one state's outgoing transitions at a time, given
// the chance to see (and reorder, merge, or drop) the whole list per
// call. Unlike TrMapper it can change the transition count.
type StateMapper interface {
	MapState(trs []fst.Tr) []fst.Tr
}

// ApplyStateMap runs mapper over every state of f in place.
func ApplyStateMap(f *fst.VectorFst, mapper StateMapper) error {
	n := f.NumStates()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		mapped := mapper.MapState(trs)
		if err := f.ReplaceTrs(sid, mapped); err != nil {
			return err
		}
	}
	return nil
}

// SumMapper ⊕-sums parallel transitions (same ilabel, olabel, nextstate)
// out of each state into one.
type SumMapper struct{}

func (SumMapper) MapState(trs []fst.Tr) []fst.Tr {
	type key struct {
		i, o fst.Label
		n    fst.StateId
	}
	order := make([]key, 0, len(trs))
	sums := make(map[key]fst.Tr, len(trs))
	for _, tr := range trs {
		k := key{tr.Ilabel, tr.Olabel, tr.NextState}
		if existing, ok := sums[k]; ok {
			existing.Weight = existing.Weight.Plus(tr.Weight)
			sums[k] = existing
		} else {
			sums[k] = tr
			order = append(order, k)
		}
	}
	out := make([]fst.Tr, len(order))
	for i, k := range order {
		out[i] = sums[k]
	}
	return out
}

// UniqueMapper drops transitions that are exact duplicates (same ilabel,
// olabel, weight hash, nextstate) of one already kept.
type UniqueMapper struct{}

func (UniqueMapper) MapState(trs []fst.Tr) []fst.Tr {
	seen := make(map[string]bool, len(trs))
	out := make([]fst.Tr, 0, len(trs))
	for _, tr := range trs {
		k := trKey(tr)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, tr)
	}
	return out
}

func trKey(tr fst.Tr) string {
	return fmt.Sprintf("%d/%d/%s/%d", tr.Ilabel, tr.Olabel, tr.Weight.Hash(), tr.NextState)
}
