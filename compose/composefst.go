package compose

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/lazy"
	"github.com/wstrand/gofst/semiring"
)

// pairKey is the logical key ComposeFst's lazy.StateTable assigns a
// dense StateId to: the pair of constituent states plus the
// disambiguating FilterState.
type pairKey struct {
	q1, q2 fst.StateId
	fs     FilterState
}

// Op is the lazy.FstOp that derives the relational composition A ∘ B:
// a transition leaves (q1,q2,fs) for every
// admissible pairing of one of A's transitions out of q1 with one of
// B's transitions out of q2, where admissible is decided by an
// epsilon-filter plus real-vs-epsilon label matching, and the combined
// weight is tr1.Weight ⊗ tr2.Weight.
type Op struct {
	a, b   fst.Fst
	mb     Matcher // matches b's ilabels against a's olabels
	filter ComposeFilter
	states *lazy.StateTable[pairKey]
}

// NewOp builds the FstOp for composing a (A's olabel must line up with
// b's ilabel) with b, matching b's side with a SortedMatcher. Pass a
// fresh, not-yet-SetState'd filter; Op drives it.
func NewOp(a, b fst.Fst, filter ComposeFilter) *Op {
	return NewOpWithMatcher(a, b, filter, NewSortedMatcher(b, MatchOnInput))
}

// NewOpWithMatcher is NewOp with an explicit matcher over b's input
// side (a SigmaMatcher or PhiMatcher for wildcard/failure composition).
func NewOpWithMatcher(a, b fst.Fst, filter ComposeFilter, mb Matcher) *Op {
	return &Op{a: a, b: b, mb: mb, filter: filter, states: lazy.NewStateTable[pairKey]()}
}

func (op *Op) ComputeStart() (fst.StateId, bool) {
	s1, ok1 := op.a.Start()
	s2, ok2 := op.b.Start()
	if !ok1 || !ok2 {
		return 0, false
	}
	id, _ := op.states.IdFor(pairKey{s1, s2, op.filter.Start()})
	return id, true
}

// ComputeTrs enumerates every admissible (tr1,tr2) pairing out of the
// constituent states q decodes to. A KindMatch pairing requires
// tr1.Olabel == tr2.Ilabel and both non-epsilon, enumerated by asking
// the b-side matcher for each of A's output labels. A KindEpsBoth
// pairing advances both sides across an epsilon at once. A KindEps1
// pairing lets A emit an epsilon on its output side while B stays at q2
// (an implicit self-loop on B's side); a KindEps2 pairing is the mirror
// with B consuming an epsilon on its input side while A stays.
func (op *Op) ComputeTrs(q fst.StateId) ([]fst.Tr, error) {
	key, ok := op.states.KeyFor(q)
	if !ok {
		return nil, nil
	}
	op.filter.SetState(key.q1, key.q2, key.fs)
	if mf, ok := op.filter.(*MatchComposeFilter); ok {
		if _, err := mf.ChooseSide(); err != nil {
			return nil, err
		}
	}
	op.mb.SetState(key.q2)
	pl, _ := op.filter.(*PushLabelsComposeFilter)

	var out []fst.Tr
	epsB := op.mb.Find(fst.EpsLabel)
	for _, tr1 := range op.a.GetTrs(key.q1) {
		if tr1.Olabel == fst.EpsLabel {
			for _, tr2 := range epsB {
				nfs := op.filter.Filter(KindEpsBoth)
				if nfs == FilterDead {
					continue
				}
				nid, _ := op.states.IdFor(pairKey{tr1.NextState, tr2.NextState, nfs})
				out = append(out, fst.Tr{
					Ilabel:    tr1.Ilabel,
					Olabel:    tr2.Olabel,
					Weight:    tr1.Weight.Times(tr2.Weight),
					NextState: nid,
				})
			}
			continue
		}
		for _, tr2 := range op.mb.Find(tr1.Olabel) {
			nfs := op.filter.Filter(KindMatch)
			if nfs == FilterDead {
				continue
			}
			nid, _ := op.states.IdFor(pairKey{tr1.NextState, tr2.NextState, nfs})
			out = append(out, fst.Tr{
				Ilabel:    tr1.Ilabel,
				Olabel:    tr2.Olabel,
				Weight:    tr1.Weight.Times(tr2.Weight),
				NextState: nid,
			})
		}
	}
	for _, tr1 := range op.a.GetTrs(key.q1) {
		if tr1.Olabel != fst.EpsLabel {
			continue
		}
		nfs := op.filter.Filter(KindEps1)
		if nfs == FilterDead {
			continue
		}
		olabel := fst.EpsLabel
		if pl != nil {
			olabel = pl.RelabelOutput(KindEps1, olabel)
		}
		nid, _ := op.states.IdFor(pairKey{tr1.NextState, key.q2, nfs})
		out = append(out, fst.Tr{
			Ilabel:    tr1.Ilabel,
			Olabel:    olabel,
			Weight:    tr1.Weight,
			NextState: nid,
		})
	}
	for _, tr2 := range epsB {
		nfs := op.filter.Filter(KindEps2)
		if nfs == FilterDead {
			continue
		}
		olabel := tr2.Olabel
		if pl != nil {
			olabel = pl.RelabelOutput(KindEps2, olabel)
		}
		nid, _ := op.states.IdFor(pairKey{key.q1, tr2.NextState, nfs})
		out = append(out, fst.Tr{
			Ilabel:    fst.EpsLabel,
			Olabel:    olabel,
			Weight:    tr2.Weight,
			NextState: nid,
		})
	}
	return out, nil
}

func (op *Op) ComputeFinalWeight(q fst.StateId) (semiring.Weight, bool) {
	key, ok := op.states.KeyFor(q)
	if !ok {
		return nil, false
	}
	w1, ok1 := op.a.FinalWeight(key.q1)
	if !ok1 {
		return nil, false
	}
	w2, ok2 := op.b.FinalWeight(key.q2)
	if !ok2 {
		return nil, false
	}
	op.filter.SetState(key.q1, key.q2, key.fs)
	return op.filter.FilterFinal(w1, w2)
}

func (op *Op) Properties() fst.Properties { return 0 }

var _ lazy.FstOp = (*Op)(nil)

// ComposeFst lazily computes the relational composition of a and b:
// A reads A.ilabel and writes A.olabel, B reads A's output label and
// writes B.olabel, so the composed Fst reads A.ilabel and writes
// B.olabel. Default construction
// uses one SortedMatcher over b's input labels (binary search when b is
// ilabel-sorted, a linear scan otherwise) and a SequenceComposeFilter;
// NewComposeFstWithFilter lets a caller supply any ComposeFilter
// (NullComposeFilter when both sides are epsilon-free is a common
// speedup).
func ComposeFst(a, b fst.Fst) *lazy.LazyFst {
	return NewComposeFstWithFilter(a, b, NewSequenceComposeFilter())
}

// NewComposeFstWithFilter is ComposeFst with an explicit filter.
func NewComposeFstWithFilter(a, b fst.Fst, filter ComposeFilter) *lazy.LazyFst {
	op := NewOp(a, b, filter)
	out := lazy.NewLazyFst(op, lazy.NewCache(0))
	out.SetInputSymbols(a.InputSymbols())
	out.SetOutputSymbols(b.OutputSymbols())
	return out
}

// Compose eagerly materializes a ∘ b into a concrete VectorFst, the
// non-lazy convenience entry point mirroring how Determinize and
// RmEpsilon return concrete Fsts rather than lazy views. If b is not
// already ilabel-sorted it is copied and sorted first so the b-side
// matcher can binary search; the caller's b is never mutated.
func Compose(a, b fst.Fst) (*fst.VectorFst, error) {
	if !b.Properties().Has(fst.ILabelSorted) {
		sorted := fst.NewVectorFst()
		n := b.NumStates()
		for i := 0; i < n; i++ {
			sorted.AddState()
		}
		if s, ok := b.Start(); ok {
			if err := sorted.SetStart(s); err != nil {
				return nil, err
			}
		}
		for s := 0; s < n; s++ {
			sid := fst.StateId(s)
			for _, tr := range b.GetTrs(sid) {
				if err := sorted.AddTr(sid, tr); err != nil {
					return nil, err
				}
			}
			if w, ok := b.FinalWeight(sid); ok {
				if err := sorted.SetFinal(sid, w); err != nil {
					return nil, err
				}
			}
		}
		sorted.SortTrs(fst.ILess, true)
		b = sorted
	}
	return lazy.Materialize(ComposeFst(a, b))
}
