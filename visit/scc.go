package visit

import "github.com/wstrand/gofst/fst"

// SccResult is the output of a Tarjan pass: a component id per state,
// per-state accessibility and coaccessibility, and the Cyclic and
// InitialCyclic flags. It holds no fst.Properties value; callers turn
// these facts into property bits.
//
// SccId assigns ids in Tarjan close-order: a component closes only after
// every component reachable from it (other than through back edges to its
// own ancestors) has already closed, so any edge crossing two distinct
// components always runs from a higher id to a lower one. Coaccessibility
// below exploits exactly that ordering.
type SccResult struct {
	NumSccs int
	SccId   map[fst.StateId]int
	// Access[s] is true if s is reachable from the DFS root(s).
	Access map[fst.StateId]bool
	// Coaccess[s] is true if s can reach a final state.
	Coaccess      map[fst.StateId]bool
	Cyclic        bool
	InitialCyclic bool
}

// SCC runs Tarjan's algorithm over every state reachable from start,
// then derives coaccessibility from the component DAG.
func SCC(f fst.Fst, start fst.StateId) SccResult {
	index := make(map[fst.StateId]int)
	lowlink := make(map[fst.StateId]int)
	onStack := make(map[fst.StateId]bool)
	var cstack []fst.StateId
	nextIndex := 0
	nextScc := 0
	sccOf := make(map[fst.StateId]int)
	// sccEdges[c] holds the set of distinct SCC ids c has an edge into
	// (other than itself), used for the coaccessibility pass below.
	sccEdges := make(map[int]map[int]bool)
	cyclic := false

	closeScc := func(root fst.StateId) {
		id := nextScc
		nextScc++
		for {
			n := len(cstack) - 1
			top := cstack[n]
			cstack = cstack[:n]
			onStack[top] = false
			sccOf[top] = id
			if top == root {
				break
			}
		}
	}

	DFS(f, start, AnyTrFilter, Visitor{
		InitState: func(s, _ fst.StateId) bool {
			index[s] = nextIndex
			lowlink[s] = nextIndex
			nextIndex++
			cstack = append(cstack, s)
			onStack[s] = true
			return true
		},
		BackTr: func(s fst.StateId, tr fst.Tr) bool {
			if index[tr.NextState] < lowlink[s] {
				lowlink[s] = index[tr.NextState]
			}
			cyclic = true
			return true
		},
		ForwardOrCrossTr: func(s fst.StateId, tr fst.Tr) bool {
			if onStack[tr.NextState] {
				if index[tr.NextState] < lowlink[s] {
					lowlink[s] = index[tr.NextState]
				}
			}
			return true
		},
		FinishState: func(s, parent fst.StateId, _ fst.Tr) bool {
			if parent != fst.NoStateId && lowlink[s] < lowlink[parent] {
				lowlink[parent] = lowlink[s]
			}
			if lowlink[s] == index[s] {
				closeScc(s)
			}
			return true
		},
	})

	// Build the inter-SCC edge set for coaccessibility.
	for s, trs := range allTrsByState(f, sccOf) {
		cs := sccOf[s]
		for _, tr := range trs {
			ct, ok := sccOf[tr.NextState]
			if !ok || ct == cs {
				continue
			}
			if sccEdges[cs] == nil {
				sccEdges[cs] = make(map[int]bool)
			}
			sccEdges[cs][ct] = true
		}
	}

	coaccessSccs := make(map[int]bool)
	for id := 0; id < nextScc; id++ {
		if sccHasFinal(f, sccOf, id) {
			coaccessSccs[id] = true
			continue
		}
		for target := range sccEdges[id] {
			if coaccessSccs[target] {
				coaccessSccs[id] = true
				break
			}
		}
	}

	access := make(map[fst.StateId]bool, len(sccOf))
	coaccess := make(map[fst.StateId]bool, len(sccOf))
	for s, id := range sccOf {
		access[s] = true
		coaccess[s] = coaccessSccs[id]
	}

	startScc := sccOf[start]
	startSccSize := 0
	for _, id := range sccOf {
		if id == startScc {
			startSccSize++
		}
	}
	initialCyclic := startSccSize > 1
	if !initialCyclic {
		for _, tr := range f.GetTrs(start) {
			if tr.NextState == start {
				initialCyclic = true
				break
			}
		}
	}

	return SccResult{
		NumSccs:       nextScc,
		SccId:         sccOf,
		Access:        access,
		Coaccess:      coaccess,
		Cyclic:        cyclic,
		InitialCyclic: initialCyclic,
	}
}

func allTrsByState(f fst.Fst, visited map[fst.StateId]int) map[fst.StateId][]fst.Tr {
	out := make(map[fst.StateId][]fst.Tr, len(visited))
	for s := range visited {
		out[s] = f.GetTrs(s)
	}
	return out
}

func sccHasFinal(f fst.Fst, sccOf map[fst.StateId]int, id int) bool {
	for s, c := range sccOf {
		if c != id {
			continue
		}
		if _, ok := f.FinalWeight(s); ok {
			return true
		}
	}
	return false
}
