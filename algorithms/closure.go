package algorithms

import "github.com/wstrand/gofst/fst"

// ClosureMode selects plus-closure (one or more repetitions) or
// star-closure (zero or more).
type ClosureMode int

const (
	ClosurePlus ClosureMode = iota
	ClosureStar
)

// Closure applies plus- or star-closure to f in place. If f transduces x
// to y with weight a, the closure transduces x to y with weight a, xx to
// yy with weight a ⊗ a, and so on: every final state keeps its finality
// and final weight, and additionally gains an epsilon back-edge to the
// start weighted One, so a path may either stop there or loop for
// another repetition. ClosureStar additionally introduces a new start
// state that is final (weight One) and epsilon-feeds the old start, so
// the empty string is accepted too.
func Closure(f *fst.VectorFst, mode ClosureMode) error {
	start, hasStart := f.Start()
	if !hasStart {
		return nil
	}
	one := oneFrom(f)
	if one == nil {
		return nil // no weight anywhere to mint One from: nothing to close
	}
	for _, s := range finalStateIds(f) {
		if err := f.AddTr(s, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: one, NextState: start}); err != nil {
			return err
		}
	}
	if mode == ClosureStar {
		newStart := f.AddState()
		if err := f.SetFinal(newStart, one); err != nil {
			return err
		}
		if err := f.AddTr(newStart, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: one, NextState: start}); err != nil {
			return err
		}
		if err := f.SetStart(newStart); err != nil {
			return err
		}
	}
	return nil
}
