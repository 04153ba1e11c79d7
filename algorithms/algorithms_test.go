package algorithms_test

import (
	"testing"

	"github.com/wstrand/gofst/algorithms"
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

func mustAddTr(t *testing.T, f *fst.VectorFst, s fst.StateId, tr fst.Tr) {
	t.Helper()
	if err := f.AddTr(s, tr); err != nil {
		t.Fatalf("AddTr(%d, %+v): %v", s, tr, err)
	}
}

// linear builds a single accepting path s0 -1:1/1.0-> s1 -2:2/1.0-> s2(final).
func linear(t *testing.T) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst()
	s0, s1, s2 := f.AddState(), f.AddState(), f.AddState()
	if err := f.SetStart(s0); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := f.SetFinal(s2, semiring.TropicalWeight(0)); err != nil {
		t.Fatalf("SetFinal: %v", err)
	}
	mustAddTr(t, f, s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s1})
	mustAddTr(t, f, s1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(1), NextState: s2})
	return f
}

func TestConnectRemovesDeadStates(t *testing.T) {
	f := linear(t)
	dead := f.AddState() // unreachable, non-coaccessible
	mustAddTr(t, f, dead, fst.Tr{Ilabel: 9, Olabel: 9, Weight: semiring.TropicalWeight(0), NextState: dead})

	if err := algorithms.Connect(f); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if f.NumStates() != 3 {
		t.Fatalf("NumStates() after Connect = %d, want 3", f.NumStates())
	}
}

func TestTopSortOrdersByTransition(t *testing.T) {
	f := linear(t)
	if err := algorithms.TopSort(f); err != nil {
		t.Fatalf("TopSort: %v", err)
	}
	start, _ := f.Start()
	if start != 0 {
		t.Fatalf("start after TopSort = %d, want 0", start)
	}
	for _, tr := range f.GetTrs(start) {
		if tr.NextState <= start {
			t.Fatalf("transition %+v does not move forward from a topologically sorted start", tr)
		}
	}
}

func TestTopSortDetectsCycle(t *testing.T) {
	f := linear(t)
	mustAddTr(t, f, 2, fst.Tr{Ilabel: 3, Olabel: 3, Weight: semiring.TropicalWeight(0), NextState: 0})
	if err := algorithms.TopSort(f); err != algorithms.ErrCyclic {
		t.Fatalf("TopSort on a cyclic Fst = %v, want ErrCyclic", err)
	}
}

func TestClosureStarAcceptsEmptyString(t *testing.T) {
	f := linear(t)
	if err := algorithms.Closure(f, algorithms.ClosureStar); err != nil {
		t.Fatalf("Closure: %v", err)
	}
	start, ok := f.Start()
	if !ok {
		t.Fatal("no start state after Closure")
	}
	if _, final := f.FinalWeight(start); !final {
		t.Fatal("star closure's new start state should be final (accepts empty string)")
	}
}

// acceptedStrings enumerates every accepting path of f with at most
// maxTrs transitions, returning input-label sequences (epsilons skipped)
// mapped to their ⊕-summed total weight.
func acceptedStrings(f fst.Fst, maxTrs int) map[string]semiring.Weight {
	out := map[string]semiring.Weight{}
	start, ok := f.Start()
	if !ok {
		return out
	}
	var walk func(s fst.StateId, labels string, w semiring.Weight, depth int)
	walk = func(s fst.StateId, labels string, w semiring.Weight, depth int) {
		if fw, final := f.FinalWeight(s); final {
			total := w.Times(fw)
			if prev, seen := out[labels]; seen {
				total = prev.Plus(total)
			}
			out[labels] = total
		}
		if depth == maxTrs {
			return
		}
		for _, tr := range f.GetTrs(s) {
			next := labels
			if tr.Ilabel != fst.EpsLabel {
				next += string(rune('0' + tr.Ilabel))
			}
			walk(tr.NextState, next, w.Times(tr.Weight), depth+1)
		}
	}
	walk(start, "", semiring.TropicalWeight(0), 0)
	return out
}

func TestClosureKeepsOriginalLanguage(t *testing.T) {
	for _, mode := range []algorithms.ClosureMode{algorithms.ClosurePlus, algorithms.ClosureStar} {
		f := linear(t) // accepts "12" with weight 2
		if err := algorithms.Closure(f, mode); err != nil {
			t.Fatalf("Closure: %v", err)
		}
		got := acceptedStrings(f, 8)
		w, ok := got["12"]
		if !ok {
			t.Fatalf("mode %v: original string no longer accepted after closure; accepted = %v", mode, got)
		}
		if tw := w.(semiring.TropicalWeight); float64(tw) != 2.0 {
			t.Fatalf("mode %v: weight of original string = %v, want 2.0", mode, w)
		}
		w2, ok := got["1212"]
		if !ok {
			t.Fatalf("mode %v: one repetition should be accepted; accepted = %v", mode, got)
		}
		if tw := w2.(semiring.TropicalWeight); float64(tw) != 4.0 {
			t.Fatalf("mode %v: weight of one repetition = %v, want 4.0 (2 ⊗ 2)", mode, w2)
		}
		_, emptyOK := got[""]
		if mode == algorithms.ClosureStar && !emptyOK {
			t.Fatal("star closure must accept the empty string")
		}
		if mode == algorithms.ClosurePlus && emptyOK {
			t.Fatal("plus closure must not accept the empty string")
		}
	}
}

func TestUnionAcceptsEitherBranch(t *testing.T) {
	a := linear(t)
	b := linear(t)
	if err := algorithms.Union(a, b); err != nil {
		t.Fatalf("Union: %v", err)
	}
	start, ok := a.Start()
	if !ok {
		t.Fatal("no start state after Union")
	}
	if len(a.GetTrs(start)) == 0 {
		t.Fatal("union's start state has no outgoing transitions")
	}
}

func TestConcatChainsTwoFsts(t *testing.T) {
	a := linear(t)
	b := linear(t)
	nStatesA := a.NumStates()
	if err := algorithms.Concat(a, b); err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if a.NumStates() != nStatesA+b.NumStates() {
		t.Fatalf("NumStates() after Concat = %d, want %d", a.NumStates(), nStatesA+b.NumStates())
	}
}

func TestInvertSwapsLabels(t *testing.T) {
	f := fst.NewVectorFst()
	s0, s1 := f.AddState(), f.AddState()
	f.SetStart(s0)
	f.SetFinal(s1, semiring.TropicalWeight(0))
	mustAddTr(t, f, s0, fst.Tr{Ilabel: 1, Olabel: 2, Weight: semiring.TropicalWeight(0), NextState: s1})
	if err := algorithms.Invert(f); err != nil {
		t.Fatalf("Invert: %v", err)
	}
	trs := f.GetTrs(s0)
	if len(trs) != 1 || trs[0].Ilabel != 2 || trs[0].Olabel != 1 {
		t.Fatalf("GetTrs(s0) after Invert = %+v, want Ilabel=2 Olabel=1", trs)
	}
}

func TestRmEpsilonCollapsesEpsilonChain(t *testing.T) {
	f := fst.NewVectorFst()
	s0, s1, s2 := f.AddState(), f.AddState(), f.AddState()
	f.SetStart(s0)
	f.SetFinal(s2, semiring.TropicalWeight(0))
	mustAddTr(t, f, s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(1), NextState: s1})
	mustAddTr(t, f, s1, fst.Tr{Ilabel: 5, Olabel: 5, Weight: semiring.TropicalWeight(1), NextState: s2})

	out, err := algorithms.RmEpsilon(f)
	if err != nil {
		t.Fatalf("RmEpsilon: %v", err)
	}
	start, ok := out.Start()
	if !ok {
		t.Fatal("no start after RmEpsilon")
	}
	for _, tr := range out.GetTrs(start) {
		if tr.IsEpsilon() {
			t.Fatalf("epsilon transition survived RmEpsilon: %+v", tr)
		}
	}
	var found bool
	for _, tr := range out.GetTrs(start) {
		if tr.Ilabel == 5 {
			found = true
			if w, ok := tr.Weight.(semiring.TropicalWeight); !ok || float64(w) != 2.0 {
				t.Fatalf("collapsed weight = %v, want 2.0 (1+1)", tr.Weight)
			}
		}
	}
	if !found {
		t.Fatal("expected a direct transition labeled 5 after collapsing the epsilon")
	}
}

func TestShortestDistanceLinear(t *testing.T) {
	f := linear(t)
	d, err := algorithms.ShortestDistance(f)
	if err != nil {
		t.Fatalf("ShortestDistance: %v", err)
	}
	if len(d) != 3 {
		t.Fatalf("len(d) = %d, want 3", len(d))
	}
	if w, ok := d[2].(semiring.TropicalWeight); !ok || float64(w) != 2.0 {
		t.Fatalf("d[2] = %v, want 2.0", d[2])
	}
}

func TestShortestPathSingle(t *testing.T) {
	f := linear(t)
	out, err := algorithms.ShortestPath(f, algorithms.ShortestPathOptions{NShortest: 1})
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	start, ok := out.Start()
	if !ok {
		t.Fatal("no start state in shortest-path result")
	}
	steps := 0
	cur := start
	for {
		trs := out.GetTrs(cur)
		if len(trs) == 0 {
			break
		}
		steps++
		cur = trs[0].NextState
	}
	if steps != 2 {
		t.Fatalf("shortest path has %d transitions, want 2", steps)
	}
}

func TestPushWeightsToInitial(t *testing.T) {
	f := linear(t)
	if err := algorithms.PushWeights(f, algorithms.ReweightToInitial); err != nil {
		t.Fatalf("PushWeights: %v", err)
	}
	// Pushing weights must not change the total weight of the unique
	// accepting path: walk it and check the end-to-end sum is still 2
	// (the original path cost), regardless of how it's redistributed
	// across the individual transitions.
	start, ok := f.Start()
	if !ok {
		t.Fatal("no start state after PushWeights")
	}
	var total semiring.Weight = semiring.TropicalWeight(0)
	cur := start
	for {
		trs := f.GetTrs(cur)
		if len(trs) == 0 {
			break
		}
		total = total.Times(trs[0].Weight)
		cur = trs[0].NextState
	}
	if w, ok := f.FinalWeight(cur); ok {
		total = total.Times(w)
	}
	if w, ok := total.(semiring.TropicalWeight); !ok || float64(w) != 2.0 {
		t.Fatalf("end-to-end path weight after PushWeights = %v, want 2.0 (pushing must preserve total path weight)", total)
	}
}

func TestDeterminizeMergesSameLabelTransitions(t *testing.T) {
	f := fst.NewVectorFst()
	s0, s1, s2, s3 := f.AddState(), f.AddState(), f.AddState(), f.AddState()
	f.SetStart(s0)
	f.SetFinal(s2, semiring.TropicalWeight(0))
	f.SetFinal(s3, semiring.TropicalWeight(0))
	mustAddTr(t, f, s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s1})
	mustAddTr(t, f, s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2), NextState: s2})
	mustAddTr(t, f, s1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(0), NextState: s3})

	out, err := algorithms.Determinize(f, algorithms.DeterminizeOptions{})
	if err != nil {
		t.Fatalf("Determinize: %v", err)
	}
	start, ok := out.Start()
	if !ok {
		t.Fatal("no start state")
	}
	trsByLabel := map[fst.Label]int{}
	for _, tr := range out.GetTrs(start) {
		trsByLabel[tr.Ilabel]++
	}
	if trsByLabel[1] != 1 {
		t.Fatalf("determinized start has %d transitions labeled 1, want exactly 1", trsByLabel[1])
	}
}

func TestComputePropertiesMatchesStructure(t *testing.T) {
	f := linear(t)
	props := algorithms.ComputeProperties(f)
	for _, want := range []fst.Properties{
		fst.Acceptor, fst.IDeterministic, fst.ODeterministic,
		fst.NoIEpsilons, fst.NoOEpsilons, fst.Weighted,
		fst.Acyclic, fst.InitialAcyclic, fst.UnweightedCycles,
		fst.Accessible, fst.Coaccessible, fst.TopSorted, fst.StringFst,
	} {
		if !props.Has(want) {
			t.Fatalf("linear chain: expected property %b to be set in %b", want, props)
		}
	}
	if !props.SanityCheck() {
		t.Fatalf("ComputeProperties produced both bits of a pair: %b", props)
	}

	// A second same-ilabel transition out of the start breaks input
	// determinism, string-ness, and (target already visited) top-sortedness.
	mustAddTr(t, f, 0, fst.Tr{Ilabel: 1, Olabel: 9, Weight: semiring.TropicalWeight(0), NextState: 0})
	props = algorithms.ComputeProperties(f)
	for _, want := range []fst.Properties{
		fst.NotAcceptor, fst.NotIDeterministic, fst.Cyclic,
		fst.InitialCyclic, fst.NotTopSorted, fst.NotStringFst,
	} {
		if !props.Has(want) {
			t.Fatalf("after self-loop: expected property %b to be set in %b", want, props)
		}
	}
	if !props.SanityCheck() {
		t.Fatalf("ComputeProperties produced both bits of a pair: %b", props)
	}
}

func TestIsomorphicIdentity(t *testing.T) {
	a := linear(t)
	b := linear(t)
	if !algorithms.Isomorphic(a, b) {
		t.Fatal("two structurally identical Fsts should be isomorphic")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := linear(t)
	table := algorithms.NewEncodeTable(algorithms.EncodeLabels | algorithms.EncodeWeights)
	if err := algorithms.Encode(f, table); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for s := 0; s < f.NumStates(); s++ {
		for _, tr := range f.GetTrs(fst.StateId(s)) {
			if tr.Ilabel != tr.Olabel {
				t.Fatalf("encoded transition should carry matching ilabel/olabel (the synthetic code): %+v", tr)
			}
		}
	}
	if err := algorithms.Decode(f, table); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	orig := linear(t)
	if !algorithms.Isomorphic(f, orig) {
		t.Fatal("Encode followed by Decode should round-trip to an isomorphic Fst")
	}
}
