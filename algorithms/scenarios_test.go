package algorithms_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wstrand/gofst/algorithms"
	"github.com/wstrand/gofst/compose"
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// singleTr builds start --il:ol/w--> final(fw) over Tropical.
func singleTr(t *testing.T, il, ol fst.Label, w, fw float64) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst()
	s0, s1 := f.AddState(), f.AddState()
	require.NoError(t, f.SetStart(s0))
	require.NoError(t, f.SetFinal(s1, semiring.TropicalWeight(fw)))
	require.NoError(t, f.AddTr(s0, fst.Tr{Ilabel: il, Olabel: ol, Weight: semiring.TropicalWeight(w), NextState: s1}))
	return f
}

// tropical unwraps w for numeric assertions.
func tropical(t *testing.T, w semiring.Weight) float64 {
	t.Helper()
	tw, ok := w.(semiring.TropicalWeight)
	require.True(t, ok, "weight %v is not tropical", w)
	return float64(tw)
}

func TestScenarioSingleTransitionDistances(t *testing.T) {
	f := singleTr(t, 1, 1, 2.5, 0)

	d, err := algorithms.ShortestDistance(f)
	require.NoError(t, err)
	require.Len(t, d, 2)
	require.InDelta(t, 0.0, tropical(t, d[0]), 1e-9)
	require.InDelta(t, 2.5, tropical(t, d[1]), 1e-9)

	best, err := algorithms.ShortestPath(f, algorithms.ShortestPathOptions{NShortest: 1})
	require.NoError(t, err)
	start, ok := best.Start()
	require.True(t, ok)
	trs := best.GetTrs(start)
	require.Len(t, trs, 1)
	require.Equal(t, fst.Label(1), trs[0].Ilabel)
	require.Equal(t, fst.Label(1), trs[0].Olabel)
	fw, ok := best.FinalWeight(trs[0].NextState)
	require.True(t, ok)
	require.InDelta(t, 2.5, tropical(t, trs[0].Weight)+tropical(t, fw), 1e-9)
}

func TestScenarioUnionKeepsBothTransductions(t *testing.T) {
	a := singleTr(t, 1, 10, 1, 0) // "a" -> "x" weight 1
	b := singleTr(t, 2, 20, 3, 0) // "b" -> "y" weight 3
	require.NoError(t, algorithms.Union(a, b))

	start, ok := a.Start()
	require.True(t, ok)

	// Collect the total weight of every accepting path.
	totals := map[fst.Label]float64{}
	var walk func(s fst.StateId, firstLabel fst.Label, acc float64)
	walk = func(s fst.StateId, firstLabel fst.Label, acc float64) {
		if w, final := a.FinalWeight(s); final && firstLabel != fst.NoLabel {
			totals[firstLabel] = acc + tropical(t, w)
		}
		for _, tr := range a.GetTrs(s) {
			lbl := firstLabel
			if tr.Ilabel != fst.EpsLabel && lbl == fst.NoLabel {
				lbl = tr.Ilabel
			}
			walk(tr.NextState, lbl, acc+tropical(t, tr.Weight))
		}
	}
	walk(start, fst.NoLabel, 0)

	require.Len(t, totals, 2, "union must accept exactly the two original paths")
	require.InDelta(t, 1.0, totals[1], 1e-9)
	require.InDelta(t, 3.0, totals[2], 1e-9)
}

func TestScenarioComposeChainsWeights(t *testing.T) {
	a := singleTr(t, 1, 2, 0.5, 0)  // [1] -> [2] / 0.5
	b := singleTr(t, 2, 3, 0.25, 0) // [2] -> [3] / 0.25

	out, err := compose.Compose(a, b)
	require.NoError(t, err)

	want := singleTr(t, 1, 3, 0.75, 0)
	require.True(t, algorithms.Isomorphic(out, want),
		"compose([1]->[2]/0.5, [2]->[3]/0.25) must equal [1]->[3]/0.75 up to isomorphism")
}

func TestScenarioDeterminizeCollapsesParallelTransitions(t *testing.T) {
	f := fst.NewVectorFst()
	s0, s1 := f.AddState(), f.AddState()
	require.NoError(t, f.SetStart(s0))
	require.NoError(t, f.SetFinal(s1, semiring.TropicalWeight(0)))
	for i := 0; i < 3; i++ {
		require.NoError(t, f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2), NextState: s1}))
	}

	det, err := algorithms.Determinize(f, algorithms.DeterminizeOptions{})
	require.NoError(t, err)
	start, ok := det.Start()
	require.True(t, ok)
	trs := det.GetTrs(start)
	require.Len(t, trs, 1, "three identical parallel transitions determinize to one")
	require.InDelta(t, 2.0, tropical(t, trs[0].Weight), 1e-9, "min(2,2,2) = 2")
}

func TestScenarioRmEpsilonYieldsDirectTransition(t *testing.T) {
	f := fst.NewVectorFst()
	s0, s1, s2 := f.AddState(), f.AddState(), f.AddState()
	require.NoError(t, f.SetStart(s0))
	require.NoError(t, f.SetFinal(s2, semiring.TropicalWeight(0)))
	require.NoError(t, f.AddTr(s0, fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: semiring.TropicalWeight(0), NextState: s1}))
	require.NoError(t, f.AddTr(s1, fst.Tr{Ilabel: 5, Olabel: 5, Weight: semiring.TropicalWeight(1), NextState: s2}))

	out, err := algorithms.RmEpsilon(f)
	require.NoError(t, err)
	require.NoError(t, algorithms.Connect(out))

	want := singleTr(t, 5, 5, 1, 0)
	require.True(t, algorithms.Isomorphic(out, want))
}

func TestScenarioPushWeightsToInitialFrontLoads(t *testing.T) {
	f := fst.NewVectorFst()
	s0, s1, s2 := f.AddState(), f.AddState(), f.AddState()
	require.NoError(t, f.SetStart(s0))
	require.NoError(t, f.SetFinal(s2, semiring.TropicalWeight(1)))
	require.NoError(t, f.AddTr(s0, fst.Tr{Ilabel: 10, Olabel: 10, Weight: semiring.TropicalWeight(3), NextState: s1}))
	require.NoError(t, f.AddTr(s1, fst.Tr{Ilabel: 11, Olabel: 11, Weight: semiring.TropicalWeight(2), NextState: s2}))

	require.NoError(t, algorithms.PushWeights(f, algorithms.ReweightToInitial))

	require.InDelta(t, 6.0, tropical(t, f.GetTrs(s0)[0].Weight), 1e-9, "first transition carries the whole path weight")
	require.InDelta(t, 0.0, tropical(t, f.GetTrs(s1)[0].Weight), 1e-9)
	fw, ok := f.FinalWeight(s2)
	require.True(t, ok)
	require.InDelta(t, 0.0, tropical(t, fw), 1e-9)
}

func TestScenarioReverseTwiceIsIsomorphic(t *testing.T) {
	f := singleTr(t, 1, 2, 1.5, 0.5)
	r1, err := algorithms.Reverse(f)
	require.NoError(t, err)
	r2, err := algorithms.Reverse(r1)
	require.NoError(t, err)

	// Double reversal introduces auxiliary epsilon plumbing; strip it
	// before comparing.
	clean, err := algorithms.RmEpsilon(r2)
	require.NoError(t, err)
	require.NoError(t, algorithms.Connect(clean))

	origNoEps, err := algorithms.RmEpsilon(f)
	require.NoError(t, err)
	require.NoError(t, algorithms.Connect(origNoEps))
	require.True(t, algorithms.Isomorphic(clean, origNoEps))
}
