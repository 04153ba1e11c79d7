package compose_test

import (
	"testing"

	"github.com/wstrand/gofst/compose"
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/lazy"
	"github.com/wstrand/gofst/semiring"
)

// buildChain builds a 2-transition acceptor-ish transducer s0--a:b/w1-->s1--b:c/w2-->s2(final).
func buildChain(t *testing.T, il1, ol1, il2, ol2 fst.Label, w1, w2 float64) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	if err := f.SetStart(s0); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := f.SetFinal(s2, semiring.TropicalWeight(0)); err != nil {
		t.Fatalf("SetFinal: %v", err)
	}
	if err := f.AddTr(s0, fst.Tr{Ilabel: il1, Olabel: ol1, Weight: semiring.TropicalWeight(w1), NextState: s1}); err != nil {
		t.Fatalf("AddTr: %v", err)
	}
	if err := f.AddTr(s1, fst.Tr{Ilabel: il2, Olabel: ol2, Weight: semiring.TropicalWeight(w2), NextState: s2}); err != nil {
		t.Fatalf("AddTr: %v", err)
	}
	return f
}

func TestComposeSimpleChain(t *testing.T) {
	// A: 1:2/1.0 -> 2:3/1.0   (reads 1,2 writes 2,3)
	a := buildChain(t, 1, 2, 2, 3, 1.0, 1.0)
	// B: 2:9/2.0 -> 3:8/2.0   (reads 2,3 writes 9,8)
	b := buildChain(t, 2, 9, 3, 8, 2.0, 2.0)

	out, err := compose.Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	start, ok := out.Start()
	if !ok {
		t.Fatal("composed Fst has no start state")
	}

	// Walk the unique path and check labels/weight end to end.
	type step struct{ il, ol fst.Label }
	var got []step
	var total semiring.Weight = semiring.TropicalWeight(0)
	cur := start
	for i := 0; i < 10; i++ {
		trs := out.GetTrs(cur)
		if len(trs) == 0 {
			break
		}
		if len(trs) != 1 {
			t.Fatalf("state %d has %d outgoing trs, want 1 (ambiguous composition)", cur, len(trs))
		}
		tr := trs[0]
		got = append(got, step{tr.Ilabel, tr.Olabel})
		total = total.Times(tr.Weight)
		cur = tr.NextState
	}
	if len(got) != 2 {
		t.Fatalf("path length = %d, want 2: %+v", len(got), got)
	}
	if got[0] != (step{1, 9}) || got[1] != (step{2, 8}) {
		t.Fatalf("composed path = %+v, want [{1 9} {2 8}]", got)
	}
	w, ok := out.FinalWeight(cur)
	if !ok {
		t.Fatal("end state not final")
	}
	total = total.Times(w)
	if tw, ok := total.(semiring.TropicalWeight); !ok || float64(tw) != 6.0 {
		t.Fatalf("total weight = %v, want 6.0 (1+1+2+2)", total)
	}
}

func TestComposeNoMatchIsEmpty(t *testing.T) {
	a := buildChain(t, 1, 2, 2, 3, 1.0, 1.0)
	b := buildChain(t, 5, 9, 6, 8, 1.0, 1.0) // disjoint labels from a's output
	out, err := compose.Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	start, ok := out.Start()
	if !ok {
		return
	}
	if len(out.GetTrs(start)) != 0 {
		t.Fatalf("expected no transitions out of start, got %v", out.GetTrs(start))
	}
}

func TestComposeEpsilonFilterNoDuplicatePaths(t *testing.T) {
	// A and B both have an epsilon self-loop at the start; ensure
	// composition doesn't derive the epsilon self-loop at the composed
	// start twice via two different epsilon interleavings.
	a := fst.NewVectorFst()
	a0 := a.AddState()
	a1 := a.AddState()
	if err := a.SetStart(a0); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := a.SetFinal(a1, semiring.TropicalWeight(0)); err != nil {
		t.Fatalf("SetFinal: %v", err)
	}
	if err := a.AddTr(a0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(0), NextState: a0}); err != nil {
		t.Fatalf("AddTr: %v", err)
	}
	if err := a.AddTr(a0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: a1}); err != nil {
		t.Fatalf("AddTr: %v", err)
	}

	b := fst.NewVectorFst()
	b0 := b.AddState()
	if err := b.SetStart(b0); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := b.SetFinal(b0, semiring.TropicalWeight(0)); err != nil {
		t.Fatalf("SetFinal: %v", err)
	}
	if err := b.AddTr(b0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(0), NextState: b0}); err != nil {
		t.Fatalf("AddTr: %v", err)
	}

	out, err := compose.Compose(a, b)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	start, ok := out.Start()
	if !ok {
		t.Fatal("no start state")
	}
	selfLoops := 0
	for _, tr := range out.GetTrs(start) {
		if tr.NextState == start && tr.IsEpsilon() {
			selfLoops++
		}
	}
	if selfLoops > 1 {
		t.Fatalf("epsilon self-loop at start derived %d times, want at most 1 (epsilon filter should dedupe)", selfLoops)
	}
}

func TestSequenceComposeFilterBlocksCrissCross(t *testing.T) {
	f := compose.NewSequenceComposeFilter()
	f.SetState(0, 0, f.Start())
	if fs := f.Filter(compose.KindEps1); fs == compose.FilterDead {
		t.Fatal("first eps1 pairing should be admissible from FilterBoth")
	}
	f.SetState(0, 0, compose.FilterEps2)
	if fs := f.Filter(compose.KindEps1); fs != compose.FilterDead {
		t.Fatalf("eps1 pairing from FilterEps2 should be dead, got %v", fs)
	}
}

func TestSortedMatcherFind(t *testing.T) {
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(0), NextState: s1})
	f.AddTr(s0, fst.Tr{Ilabel: 3, Olabel: 3, Weight: semiring.TropicalWeight(0), NextState: s1})
	f.AddTr(s0, fst.Tr{Ilabel: 5, Olabel: 5, Weight: semiring.TropicalWeight(0), NextState: s1})

	m := compose.NewSortedMatcher(f, compose.MatchOnInput)
	m.SetState(s0)
	if got := m.Find(3); len(got) != 1 || got[0].Ilabel != 3 {
		t.Fatalf("Find(3) = %+v, want one tr labeled 3", got)
	}
	if got := m.Find(4); len(got) != 0 {
		t.Fatalf("Find(4) = %+v, want none", got)
	}
}

func TestComposeFstIsLazy(t *testing.T) {
	a := buildChain(t, 1, 2, 2, 3, 1.0, 1.0)
	b := buildChain(t, 2, 9, 3, 8, 2.0, 2.0)
	lf := compose.ComposeFst(a, b)
	var _ *lazy.LazyFst = lf
	if lf.NumStates() != 0 {
		t.Fatalf("NumStates() before any traversal = %d, want 0 (nothing materialized yet)", lf.NumStates())
	}
	if _, ok := lf.Start(); !ok {
		t.Fatal("expected a start state")
	}
	if lf.NumStates() == 0 {
		t.Fatal("NumStates() after Start() should reflect the discovered start state")
	}
}
