package visit_test

import (
	"testing"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
	"github.com/wstrand/gofst/visit"
)

func chain(t *testing.T) (*fst.VectorFst, fst.StateId) {
	t.Helper()
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(1), NextState: s2})
	f.SetFinal(s2, semiring.TropicalWeight(0))
	return f, s0
}

func TestDFSVisitsInOrder(t *testing.T) {
	f, start := chain(t)
	var order []fst.StateId
	visit.DFS(f, start, visit.AnyTrFilter, visit.Visitor{
		InitState: func(s, _ fst.StateId) bool { order = append(order, s); return true },
	})
	want := []fst.StateId{0, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestDFSStopsEarly(t *testing.T) {
	f, start := chain(t)
	count := 0
	visit.DFS(f, start, visit.AnyTrFilter, visit.Visitor{
		InitState: func(s, _ fst.StateId) bool {
			count++
			return s != 1
		},
	})
	if count != 2 {
		t.Fatalf("visited %d states, want 2 (stop after state 1)", count)
	}
}

func TestSCCAcyclicChainHasNStates(t *testing.T) {
	f, start := chain(t)
	res := visit.SCC(f, start)
	if res.NumSccs != 3 {
		t.Fatalf("NumSccs = %d, want 3 for an acyclic chain", res.NumSccs)
	}
	if res.Cyclic {
		t.Fatal("acyclic chain reported Cyclic")
	}
	for s := fst.StateId(0); s < 3; s++ {
		if !res.Access[s] {
			t.Fatalf("state %d should be accessible", s)
		}
		if !res.Coaccess[s] {
			t.Fatalf("state %d should be coaccessible", s)
		}
	}
}

func TestSCCDetectsCycle(t *testing.T) {
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s0})
	f.SetFinal(s1, semiring.TropicalWeight(0))

	res := visit.SCC(f, s0)
	if res.NumSccs != 1 {
		t.Fatalf("NumSccs = %d, want 1 (s0 and s1 are mutually reachable)", res.NumSccs)
	}
	if !res.Cyclic {
		t.Fatal("expected Cyclic = true")
	}
	if !res.InitialCyclic {
		t.Fatal("expected InitialCyclic = true (start is on the cycle)")
	}
}

func TestSCCCoaccessibleRequiresPathToFinal(t *testing.T) {
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState() // dead end, never final
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s1})
	// s0 has no final weight and s1 has no final weight: nothing coaccessible.
	res := visit.SCC(f, s0)
	if res.Coaccess[s0] || res.Coaccess[s1] {
		t.Fatal("no state can reach a final state; Coaccess should be false everywhere")
	}
}
