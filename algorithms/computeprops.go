package algorithms

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
	"github.com/wstrand/gofst/visit"
)

// ComputeProperties recomputes f's property bits from scratch, the
// authoritative fallback when incremental propagation has left a bit
// unknown. Label/weight facts come from one scan over every state;
// cyclicity from a full-graph three-color DFS (so cycles confined to
// unreachable states are still found); accessibility from visit.SCC and
// coaccessibility from a reverse walk out of the final states. Cycle
// weightedness is only decided when the scan can prove it (acyclic, or a
// back edge carrying a non-One weight); otherwise both bits stay unknown
// rather than guessed.
//
// The caller decides what to do with the result — typically
// f.SetProperties(ComputeProperties(f)) on a *fst.VectorFst.
func ComputeProperties(f fst.Fst) fst.Properties {
	n := f.NumStates()
	props := fst.Acceptor | fst.IDeterministic | fst.ODeterministic |
		fst.NoIEpsilons | fst.NoOEpsilons | fst.ILabelSorted | fst.OLabelSorted |
		fst.Unweighted | fst.TopSorted
	flip := func(pos, neg fst.Properties) { props = (props &^ pos) | neg }

	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		iSeen := make(map[fst.Label]bool, len(trs))
		oSeen := make(map[fst.Label]bool, len(trs))
		for i, tr := range trs {
			if tr.Ilabel != tr.Olabel {
				flip(fst.Acceptor, fst.NotAcceptor)
			}
			if tr.Ilabel == fst.EpsLabel {
				flip(fst.NoIEpsilons, fst.IEpsilons)
			}
			if tr.Olabel == fst.EpsLabel {
				flip(fst.NoOEpsilons, fst.OEpsilons)
			}
			if iSeen[tr.Ilabel] {
				flip(fst.IDeterministic, fst.NotIDeterministic)
			}
			if oSeen[tr.Olabel] {
				flip(fst.ODeterministic, fst.NotODeterministic)
			}
			iSeen[tr.Ilabel] = true
			oSeen[tr.Olabel] = true
			if i > 0 {
				if tr.Ilabel < trs[i-1].Ilabel {
					flip(fst.ILabelSorted, fst.NotILabelSorted)
				}
				if tr.Olabel < trs[i-1].Olabel {
					flip(fst.OLabelSorted, fst.NotOLabelSorted)
				}
			}
			if !weightIsOneOrZero(tr.Weight) {
				flip(fst.Unweighted, fst.Weighted)
			}
			if tr.NextState <= sid {
				flip(fst.TopSorted, fst.NotTopSorted)
			}
		}
		if w, ok := f.FinalWeight(sid); ok && !weightIsOneOrZero(w) {
			flip(fst.Unweighted, fst.Weighted)
		}
	}

	cyclic, weightedBackEdge := scanCycles(f)
	if cyclic {
		props |= fst.Cyclic
		if weightedBackEdge {
			props |= fst.WeightedCycles
		}
	} else {
		props |= fst.Acyclic | fst.UnweightedCycles
	}

	start, hasStart := f.Start()
	if n == 0 {
		return props | fst.Accessible | fst.Coaccessible | fst.InitialAcyclic | fst.NotStringFst
	}
	if !hasStart {
		return props | fst.NotAccessible | fst.NotCoaccessible | fst.NotStringFst
	}

	scc := visit.SCC(f, start)
	if len(scc.Access) == n {
		props |= fst.Accessible
	} else {
		props |= fst.NotAccessible
	}
	if scc.InitialCyclic {
		props |= fst.InitialCyclic
	} else {
		props |= fst.InitialAcyclic
	}
	if allCoaccessible(f, n) {
		props |= fst.Coaccessible
	} else {
		props |= fst.NotCoaccessible
	}
	if isStringFst(f, start, n) {
		props |= fst.StringFst
	} else {
		props |= fst.NotStringFst
	}
	return props
}

// weightIsOneOrZero mirrors the incremental rule: only a weight distinct
// from both identities makes the Fst Weighted.
func weightIsOneOrZero(w semiring.Weight) bool {
	h := w.Hash()
	return h == w.One().Hash() || h == w.Zero().Hash()
}

// scanCycles runs a three-color DFS from every root, reporting whether
// any back edge exists and whether some back edge carries a non-One
// weight (a back edge always lies on a cycle, so that is proof of a
// weighted cycle; the converse cannot be decided this cheaply).
func scanCycles(f fst.Fst) (cyclic, weightedBackEdge bool) {
	n := f.NumStates()
	const (
		white = iota
		grey
		black
	)
	colors := make([]uint8, n)
	type frame struct {
		state fst.StateId
		idx   int
	}
	for root := 0; root < n; root++ {
		if colors[root] != white {
			continue
		}
		colors[root] = grey
		stack := []frame{{state: fst.StateId(root)}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			trs := f.GetTrs(top.state)
			if top.idx >= len(trs) {
				colors[top.state] = black
				stack = stack[:len(stack)-1]
				continue
			}
			tr := trs[top.idx]
			top.idx++
			switch colors[tr.NextState] {
			case white:
				colors[tr.NextState] = grey
				stack = append(stack, frame{state: tr.NextState})
			case grey:
				cyclic = true
				if tr.Weight.Hash() != tr.Weight.One().Hash() {
					weightedBackEdge = true
				}
			}
		}
	}
	return cyclic, weightedBackEdge
}

// allCoaccessible walks the reversed graph from every final state and
// reports whether that walk covers all n states.
func allCoaccessible(f fst.Fst, n int) bool {
	rev := make([][]fst.StateId, n)
	var queue []fst.StateId
	seen := make([]bool, n)
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range f.GetTrs(sid) {
			rev[tr.NextState] = append(rev[tr.NextState], sid)
		}
		if _, ok := f.FinalWeight(sid); ok {
			seen[s] = true
			queue = append(queue, sid)
		}
	}
	covered := len(queue)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range rev[cur] {
			if !seen[p] {
				seen[p] = true
				covered++
				queue = append(queue, p)
			}
		}
	}
	return covered == n
}

// isStringFst reports whether f is a single linear chain: starting at
// start, every state has at most one outgoing transition, the chain
// covers every state exactly once, and only the chain's last state is
// final.
func isStringFst(f fst.Fst, start fst.StateId, n int) bool {
	visited := 0
	seen := make([]bool, n)
	cur := start
	for {
		if seen[cur] {
			return false // cycle
		}
		seen[cur] = true
		visited++
		trs := f.GetTrs(cur)
		_, final := f.FinalWeight(cur)
		switch len(trs) {
		case 0:
			return final && visited == n
		case 1:
			if final {
				return false
			}
			cur = trs[0].NextState
		default:
			return false
		}
	}
}
