package visit

import "github.com/wstrand/gofst/fst"

// color marks a state's DFS status.
type color uint8

const (
	white color = iota
	grey
	black
)

// Visitor is the seven-callback DFS visitor contract. Every callback
// returns a bool; returning false stops the visit immediately.
type Visitor struct {
	// InitVisit runs once before the first state is visited.
	InitVisit func() bool
	// InitState runs when s is first discovered; root is the state the
	// current DFS call started from.
	InitState func(s, root fst.StateId) bool
	// TreeTr runs when following a transition to an undiscovered state.
	TreeTr func(s fst.StateId, tr fst.Tr) bool
	// BackTr runs when a transition targets a state still on the stack
	// (grey): this is the edge that makes the graph cyclic.
	BackTr func(s fst.StateId, tr fst.Tr) bool
	// ForwardOrCrossTr runs when a transition targets an already-
	// finished state (black).
	ForwardOrCrossTr func(s fst.StateId, tr fst.Tr) bool
	// FinishState runs after every outgoing transition of s has been
	// processed. parent/viaTr describe the tree edge that discovered s,
	// or (NoStateId, zero Tr) if s was a root.
	FinishState func(s, parent fst.StateId, viaTr fst.Tr) bool
	// FinishVisit runs once after the whole traversal completes.
	FinishVisit func() bool
}

type dfsFrame struct {
	state     fst.StateId
	trs       []fst.Tr
	idx       int
	parent    fst.StateId
	hasParent bool
	viaTr     fst.Tr
}

// DFS runs a filtered depth-first traversal over f starting at start,
// covering exactly the states reachable from start via transitions the
// filter accepts.
func DFS(f fst.Fst, start fst.StateId, filter TrFilter, v Visitor) {
	if v.InitVisit != nil && !v.InitVisit() {
		return
	}
	colors := make(map[fst.StateId]color)
	colors[start] = grey
	if v.InitState != nil && !v.InitState(start, start) {
		return
	}
	stack := []*dfsFrame{{state: start, trs: filteredTrs(f, start, filter), parent: fst.NoStateId, hasParent: false}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.idx >= len(top.trs) {
			colors[top.state] = black
			if v.FinishState != nil && !v.FinishState(top.state, top.parent, top.viaTr) {
				return
			}
			stack = stack[:len(stack)-1]
			continue
		}
		tr := top.trs[top.idx]
		top.idx++
		next := tr.NextState
		switch colors[next] {
		case white:
			if v.TreeTr != nil && !v.TreeTr(top.state, tr) {
				return
			}
			colors[next] = grey
			if v.InitState != nil && !v.InitState(next, start) {
				return
			}
			stack = append(stack, &dfsFrame{
				state: next, trs: filteredTrs(f, next, filter),
				parent: top.state, hasParent: true, viaTr: tr,
			})
		case grey:
			if v.BackTr != nil && !v.BackTr(top.state, tr) {
				return
			}
		case black:
			if v.ForwardOrCrossTr != nil && !v.ForwardOrCrossTr(top.state, tr) {
				return
			}
		}
	}
	if v.FinishVisit != nil {
		v.FinishVisit()
	}
}

func filteredTrs(f fst.Fst, s fst.StateId, filter TrFilter) []fst.Tr {
	all := f.GetTrs(s)
	if filter == nil {
		return all
	}
	out := make([]fst.Tr, 0, len(all))
	for _, tr := range all {
		if filter(tr) {
			out = append(out, tr)
		}
	}
	return out
}
