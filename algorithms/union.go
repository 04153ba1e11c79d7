package algorithms

import "github.com/wstrand/gofst/fst"

// Union appends b's states to a and makes the result accept the union of
// the two languages. If a's start is acyclic (no
// transition re-enters it — checked via whether the start participates
// in a cycle of more than itself, approximated here as "has no incoming
// transition from any state including itself"), a direct epsilon from
// a's start to b's start suffices; otherwise a fresh start state with
// epsilons into both old starts is introduced so b's acceptance is not
// tangled into a's cycle.
func Union(a *fst.VectorFst, b fst.Fst) error {
	aStart, hasAStart := a.Start()
	aStartAcyclic := hasAStart && !startHasIncoming(a, aStart)

	remap, err := appendStates(a, b)
	if err != nil {
		return err
	}
	bStart, hasBStart := b.Start()
	if !hasBStart {
		return nil
	}
	newBStart := remap(bStart)
	one := oneFrom(a)
	if one == nil {
		one = oneFrom(b)
	}

	if !hasAStart {
		return a.SetStart(newBStart)
	}
	if aStartAcyclic {
		return a.AddTr(aStart, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: one, NextState: newBStart})
	}
	newStart := a.AddState()
	if err := a.AddTr(newStart, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: one, NextState: aStart}); err != nil {
		return err
	}
	if err := a.AddTr(newStart, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: one, NextState: newBStart}); err != nil {
		return err
	}
	return a.SetStart(newStart)
}

// startHasIncoming reports whether any transition in f (including a
// self-loop) targets start.
func startHasIncoming(f fst.Fst, start fst.StateId) bool {
	for s := 0; s < f.NumStates(); s++ {
		for _, tr := range f.GetTrs(fst.StateId(s)) {
			if tr.NextState == start {
				return true
			}
		}
	}
	return false
}
