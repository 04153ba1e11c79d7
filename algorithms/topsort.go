package algorithms

import (
	"github.com/wstrand/gofst/ferr"
	"github.com/wstrand/gofst/fst"
)

// ErrCyclic is returned by algorithms that require an acyclic input.
var ErrCyclic = ferr.New(ferr.Invariant, "algorithms: input is cyclic")

// TopSort reorders f's states so every transition runs from a lower index
// to a higher one. If f is cyclic (anywhere,
// including parts unreachable from the start) it is left unchanged and
// ErrCyclic is returned.
//
// Steps:
//  1. Run a three-color DFS over every state (start first, then any
//     remaining roots), recording finish order and watching for back
//     edges.
//  2. A back edge means cyclic: bail without touching f.
//  3. Reverse finish order is a topological order; renumber f by it.
func TopSort(f *fst.VectorFst) error {
	n := f.NumStates()
	if n == 0 {
		return nil
	}
	const (
		white = iota
		grey
		black
	)
	colors := make([]uint8, n)
	finish := make([]fst.StateId, 0, n)

	type frame struct {
		state fst.StateId
		idx   int
	}
	dfs := func(root fst.StateId) bool {
		colors[root] = grey
		stack := []frame{{state: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			trs := f.GetTrs(top.state)
			if top.idx >= len(trs) {
				colors[top.state] = black
				finish = append(finish, top.state)
				stack = stack[:len(stack)-1]
				continue
			}
			next := trs[top.idx].NextState
			top.idx++
			switch colors[next] {
			case white:
				colors[next] = grey
				stack = append(stack, frame{state: next})
			case grey:
				return false // back edge
			}
		}
		return true
	}

	roots := make([]fst.StateId, 0, n)
	if start, ok := f.Start(); ok {
		roots = append(roots, start)
	}
	for s := 0; s < n; s++ {
		roots = append(roots, fst.StateId(s))
	}
	for _, root := range roots {
		if colors[root] != white {
			continue
		}
		if !dfs(root) {
			return ErrCyclic
		}
	}

	newOrder := make([]fst.StateId, n)
	for i, s := range finish {
		// finish[0] is the deepest sink: it belongs at the highest index.
		newOrder[s] = fst.StateId(n - 1 - i)
	}
	if err := f.Renumber(newOrder); err != nil {
		return err
	}
	f.SetProperties((f.Properties() &^ (fst.NotTopSorted | fst.Cyclic)) | fst.TopSorted | fst.Acyclic)
	return nil
}
