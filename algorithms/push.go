package algorithms

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// ReweightDirection selects which endpoint weight pushing normalizes
// transitions toward.
type ReweightDirection int

const (
	// ReweightToInitial pushes weight toward the start: for every
	// state other than the start with a non-Zero potential, the
	// outgoing transitions plus final weight ⊕-sum to One; the
	// start's sum to d(start).
	ReweightToInitial ReweightDirection = iota
	// ReweightToFinal is the symmetric push toward the final states,
	// using the forward shortest distance as the potential.
	ReweightToFinal
)

// PushWeights reweights f in place using per-state potentials d:
//
//	ReweightToInitial: d(s) is the shortest distance from s to the final
//	set; each transition s ->(i,o,w) t becomes d(s)^-1 ⊗ w ⊗ d(t), each
//	final weight f(s) becomes d(s)^-1 ⊗ f(s). The telescoped product
//	then under-counts every path by d(start), so d(start) is multiplied
//	back into the start state's outgoing transitions and final weight,
//	leaving the total weight of every path unchanged. If the start state
//	has incoming transitions, a new start state is added first, with one
//	epsilon transition of weight d(start) into the old start, so that a
//	path re-entering the old start is not charged d(start) again.
//
//	ReweightToFinal: d(s) is the shortest distance from the start to s;
//	transitions become d(s) ⊗ w ⊗ d(t)^-1 and final weights d(s) ⊗ f(s);
//	d(start) is One so no correction is needed.
//
// States with a Zero potential lie on no successful path in the chosen
// direction; their weights are left untouched rather than divided by
// Zero. Requires a weakly divisible semiring.
func PushWeights(f *fst.VectorFst, dir ReweightDirection, opts ...SDOption) error {
	var d []semiring.Weight
	var err error
	if dir == ReweightToInitial {
		d, err = ShortestDistanceToFinal(f, opts...)
	} else {
		d, err = ShortestDistance(f, opts...)
	}
	if err != nil {
		return err
	}
	zero := zeroFrom(f)
	if zero == nil {
		return nil
	}
	start, hasStart := f.Start()
	if dir == ReweightToInitial && hasStart && d[start].Hash() != zero.Hash() && startHasIncoming(f, start) {
		newStart := f.AddState()
		if err := f.AddTr(newStart, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: d[start], NextState: start}); err != nil {
			return err
		}
		if err := f.SetStart(newStart); err != nil {
			return err
		}
		hasStart = false
	}

	n := len(d)
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		if d[s].Hash() == zero.Hash() {
			continue
		}
		atStart := hasStart && sid == start
		trs := f.GetTrs(sid)
		for i := range trs {
			t := int(trs[i].NextState)
			if d[t].Hash() == zero.Hash() {
				continue
			}
			var nw semiring.Weight
			if dir == ReweightToInitial {
				nw, err = divide(trs[i].Weight.Times(d[t]), d[s], semiring.DivideLeft)
				if err != nil {
					return err
				}
				if atStart {
					nw = d[s].Times(nw)
				}
			} else {
				nw, err = divide(d[s].Times(trs[i].Weight), d[t], semiring.DivideRight)
				if err != nil {
					return err
				}
			}
			trs[i].Weight = nw
		}
		if len(trs) > 0 {
			if err := f.ReplaceTrs(sid, trs); err != nil {
				return err
			}
		}
		if fw, ok := f.FinalWeight(sid); ok {
			var nf semiring.Weight
			if dir == ReweightToInitial {
				nf, err = divide(fw, d[s], semiring.DivideLeft)
				if err != nil {
					return err
				}
				if atStart {
					nf = d[s].Times(nf)
				}
			} else {
				nf = d[s].Times(fw)
			}
			if err := f.SetFinal(sid, nf); err != nil {
				return err
			}
		}
	}
	return nil
}

// divide computes num / denom via Divisible.Divide; the receiver is the
// numerator, matching how the concrete semirings implement it.
func divide(num, denom semiring.Weight, side semiring.DivideSide) (semiring.Weight, error) {
	d, ok := num.(semiring.Divisible)
	if !ok {
		return nil, ErrNotDivisible
	}
	return d.Divide(denom, side)
}
