package lazy

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
	"github.com/wstrand/gofst/symtab"
)

// LazyFst is a read-only fst.Fst that forwards Start/GetTrs/FinalWeight
// through a Cache, calling into an FstOp and inserting the result on a
// cache miss. StateIds are assigned in discovery
// order: the first id a caller's traversal asks about is 0's caller-
// supplied identity (composition/determinize/... assign ids via their
// own lazy.StateTable as they discover logical keys); LazyFst itself is
// agnostic to what a StateId "means".
type LazyFst struct {
	op       FstOp
	cache    *Cache
	isymbols *symtab.Table
	osymbols *symtab.Table
}

// NewLazyFst wraps op behind cache (use NewCache(0) for an unbounded
// cache).
func NewLazyFst(op FstOp, cache *Cache) *LazyFst {
	return &LazyFst{op: op, cache: cache}
}

// SetInputSymbols / SetOutputSymbols install symbol tables on the lazy
// view, mirroring VectorFst's setters.
func (l *LazyFst) SetInputSymbols(t *symtab.Table)  { l.isymbols = t }
func (l *LazyFst) SetOutputSymbols(t *symtab.Table) { l.osymbols = t }

func (l *LazyFst) Start() (fst.StateId, bool) {
	if id, ok, known := l.cache.GetStart(); known {
		return id, ok
	}
	id, ok := l.op.ComputeStart()
	l.cache.InsertStart(id, ok)
	return id, ok
}

func (l *LazyFst) GetTrs(q fst.StateId) []fst.Tr {
	if trs, ok := l.cache.GetTrs(q); ok {
		return trs
	}
	trs, err := l.op.ComputeTrs(q)
	if err != nil {
		return nil
	}
	l.cache.InsertTrs(q, trs)
	return trs
}

func (l *LazyFst) NumTrs(q fst.StateId) int { return len(l.GetTrs(q)) }

func (l *LazyFst) FinalWeight(q fst.StateId) (semiring.Weight, bool) {
	if w, ok, known := l.cache.GetFinalWeight(q); known {
		return w, ok
	}
	w, ok := l.op.ComputeFinalWeight(q)
	l.cache.InsertFinalWeight(q, w)
	return w, ok
}

// NumStates reports the number of states discovered so far by whatever
// has already traversed this LazyFst; a consumer needing the true total
// must Materialize first.
func (l *LazyFst) NumStates() int { return l.cache.NumKnownStates() }

func (l *LazyFst) Properties() fst.Properties { return l.op.Properties() }

func (l *LazyFst) InputSymbols() *symtab.Table  { return l.isymbols }
func (l *LazyFst) OutputSymbols() *symtab.Table { return l.osymbols }

var _ fst.Fst = (*LazyFst)(nil)

// Materialize walks l breadth-first from its start, requesting every
// newly discovered state's transitions, and copies the result into a
// concrete VectorFst.
func Materialize(l *LazyFst) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	start, hasStart := l.Start()
	if !hasStart {
		return out, nil
	}
	ids := map[fst.StateId]fst.StateId{}
	order := []fst.StateId{start}
	ids[start] = out.AddState()
	queue := []fst.StateId{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, tr := range l.GetTrs(cur) {
			if _, seen := ids[tr.NextState]; !seen {
				ids[tr.NextState] = out.AddState()
				order = append(order, tr.NextState)
				queue = append(queue, tr.NextState)
			}
		}
	}
	if err := out.SetStart(ids[start]); err != nil {
		return nil, err
	}
	for _, q := range order {
		newId := ids[q]
		for _, tr := range l.GetTrs(q) {
			tr.NextState = ids[tr.NextState]
			if err := out.AddTr(newId, tr); err != nil {
				return nil, err
			}
		}
		if w, ok := l.FinalWeight(q); ok {
			if err := out.SetFinal(newId, w); err != nil {
				return nil, err
			}
		}
	}
	out.SetInputSymbols(l.InputSymbols())
	out.SetOutputSymbols(l.OutputSymbols())
	return out, nil
}
