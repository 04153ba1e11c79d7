package lazy_test

import (
	"testing"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/lazy"
	"github.com/wstrand/gofst/semiring"
)

// countingOp is an FstOp over a fixed 3-state chain (0->1->2, 2 final)
// that counts how many times each method is invoked, so tests can check
// the Cache actually prevents recomputation.
type countingOp struct {
	trCalls    map[fst.StateId]int
	finalCalls map[fst.StateId]int
}

func newCountingOp() *countingOp {
	return &countingOp{trCalls: map[fst.StateId]int{}, finalCalls: map[fst.StateId]int{}}
}

func (op *countingOp) ComputeStart() (fst.StateId, bool) { return 0, true }

func (op *countingOp) ComputeTrs(q fst.StateId) ([]fst.Tr, error) {
	op.trCalls[q]++
	switch q {
	case 0:
		return []fst.Tr{{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: 1}}, nil
	case 1:
		return []fst.Tr{{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(1), NextState: 2}}, nil
	default:
		return nil, nil
	}
}

func (op *countingOp) ComputeFinalWeight(q fst.StateId) (semiring.Weight, bool) {
	op.finalCalls[q]++
	if q == 2 {
		return semiring.TropicalWeight(0), true
	}
	return nil, false
}

func (op *countingOp) Properties() fst.Properties { return 0 }

var _ lazy.FstOp = (*countingOp)(nil)

func TestLazyFstExpandsOnDemand(t *testing.T) {
	op := newCountingOp()
	l := lazy.NewLazyFst(op, lazy.NewCache(0))

	start, ok := l.Start()
	if !ok || start != 0 {
		t.Fatalf("Start() = (%d, %v), want (0, true)", start, ok)
	}
	trs := l.GetTrs(0)
	if len(trs) != 1 || trs[0].NextState != 1 {
		t.Fatalf("GetTrs(0) = %+v", trs)
	}
	l.GetTrs(0)
	l.GetTrs(0)
	if op.trCalls[0] != 1 {
		t.Fatalf("ComputeTrs(0) called %d times, want 1 (cache should absorb repeats)", op.trCalls[0])
	}

	w, ok := l.FinalWeight(2)
	if !ok || w.(semiring.TropicalWeight) != 0 {
		t.Fatalf("FinalWeight(2) = (%v, %v), want (0, true)", w, ok)
	}
	l.FinalWeight(2)
	if op.finalCalls[2] != 1 {
		t.Fatalf("ComputeFinalWeight(2) called %d times, want 1", op.finalCalls[2])
	}
}

func TestMaterializeWalksWholeGraph(t *testing.T) {
	op := newCountingOp()
	l := lazy.NewLazyFst(op, lazy.NewCache(0))
	out, err := lazy.Materialize(l)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if out.NumStates() != 3 {
		t.Fatalf("NumStates() = %d, want 3", out.NumStates())
	}
	start, ok := out.Start()
	if !ok {
		t.Fatal("no start state")
	}
	n := 0
	cur := start
	for {
		trs := out.GetTrs(cur)
		if len(trs) == 0 {
			break
		}
		n++
		cur = trs[0].NextState
	}
	if n != 2 {
		t.Fatalf("materialized chain has %d transitions, want 2", n)
	}
	if _, ok := out.FinalWeight(cur); !ok {
		t.Fatal("last state in the materialized chain should be final")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	op := newCountingOp()
	c := lazy.NewCache(1) // cap=1: only one state's transitions stay cached at a time
	l := lazy.NewLazyFst(op, c)

	l.GetTrs(0)
	l.GetTrs(1)
	l.GetTrs(0) // state 0 was evicted when 1 was inserted; this recomputes it

	if op.trCalls[0] != 2 {
		t.Fatalf("ComputeTrs(0) called %d times, want 2 (state 0's entry should have been evicted under cap=1)", op.trCalls[0])
	}
}

func TestStateTableAssignsStableIds(t *testing.T) {
	st := lazy.NewStateTable[string]()
	id1, isNew1 := st.IdFor("a")
	if !isNew1 {
		t.Fatal("first IdFor(\"a\") should be new")
	}
	id2, isNew2 := st.IdFor("b")
	if !isNew2 || id2 == id1 {
		t.Fatalf("IdFor(\"b\") = (%d, %v), want a fresh id distinct from %d", id2, isNew2, id1)
	}
	id1Again, isNew3 := st.IdFor("a")
	if isNew3 || id1Again != id1 {
		t.Fatalf("IdFor(\"a\") again = (%d, %v), want (%d, false)", id1Again, isNew3, id1)
	}
	key, ok := st.KeyFor(id1)
	if !ok || key != "a" {
		t.Fatalf("KeyFor(%d) = (%q, %v), want (\"a\", true)", id1, key, ok)
	}
	if st.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", st.Size())
	}
}
