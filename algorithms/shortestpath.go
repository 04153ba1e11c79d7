package algorithms

import (
	"container/heap"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// ShortestPathOptions configures ShortestPath.
type ShortestPathOptions struct {
	// NShortest is how many shortest paths to extract; 1 by default.
	NShortest int
	// Unique requires the caller to have already Determinized the input
	// so that no two extracted paths share an input label sequence; not
	// itself enforced here.
	Unique bool
}

// ShortestPath extracts the NShortest lowest-weight accepting paths from
// f as a new Fst whose paths are exactly those. NShortest==1 requires
// f's semiring to declare Path; the general case uses a
// counting Dijkstra variant over a product with a per-state visit
// counter.
func ShortestPath(f fst.Fst, opts ShortestPathOptions) (*fst.VectorFst, error) {
	if opts.NShortest <= 0 {
		opts.NShortest = 1
	}
	start, ok := f.Start()
	if !ok {
		return fst.NewVectorFst(), nil
	}
	one := oneFrom(f)
	if one != nil && !one.Properties().Has(semiring.Path) && opts.NShortest == 1 {
		return nil, ErrNotPath
	}

	paths := nShortestPaths(f, start, opts.NShortest)
	out := fst.NewVectorFst()
	newStart := out.AddState()
	if err := out.SetStart(newStart); err != nil {
		return nil, err
	}
	for _, p := range paths {
		cur := newStart
		for _, step := range p.steps {
			next := out.AddState()
			if err := out.AddTr(cur, fst.Tr{Ilabel: step.Ilabel, Olabel: step.Olabel, Weight: step.Weight, NextState: next}); err != nil {
				return nil, err
			}
			cur = next
		}
		if err := out.SetFinal(cur, p.final); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type pathStep struct {
	Ilabel, Olabel fst.Label
	Weight         semiring.Weight
}

type foundPath struct {
	steps []pathStep
	final semiring.Weight
	total semiring.Weight
}

// pqItem is one partial path in the counting-Dijkstra priority queue.
type pqItem struct {
	state  fst.StateId
	weight semiring.Weight
	path   []pathStep
	index  int
}

type pathPQ []*pqItem

func (pq pathPQ) Len() int { return len(pq) }
func (pq pathPQ) Less(i, j int) bool {
	wi, wj := pq[i].weight, pq[j].weight
	if p, ok := wi.(interface{ Less(semiring.Weight) bool }); ok {
		return p.Less(wj)
	}
	// Fall back to hash-string comparison: stable but not a numeric
	// order for semirings that don't expose one explicitly.
	return wi.Hash() < wj.Hash()
}
func (pq pathPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *pathPQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *pathPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// nShortestPaths runs a counting-Dijkstra: each state may be "finalized"
// (popped and expanded) at most nshortest times, since the nshortest-th
// time a state is popped is by definition via its nshortest-th best
// prefix weight.
func nShortestPaths(f fst.Fst, start fst.StateId, nshortest int) []foundPath {
	pq := &pathPQ{}
	heap.Init(pq)
	one := oneFrom(f)
	heap.Push(pq, &pqItem{state: start, weight: one, path: nil})

	visits := make(map[fst.StateId]int)
	var results []foundPath
	for pq.Len() > 0 && len(results) < nshortest {
		item := heap.Pop(pq).(*pqItem)
		if visits[item.state] >= nshortest {
			continue
		}
		visits[item.state]++
		if w, ok := f.FinalWeight(item.state); ok {
			results = append(results, foundPath{
				steps: item.path,
				final: w,
				total: item.weight.Times(w),
			})
		}
		for _, tr := range f.GetTrs(item.state) {
			np := make([]pathStep, len(item.path)+1)
			copy(np, item.path)
			np[len(item.path)] = pathStep{Ilabel: tr.Ilabel, Olabel: tr.Olabel, Weight: tr.Weight}
			heap.Push(pq, &pqItem{state: tr.NextState, weight: item.weight.Times(tr.Weight), path: np})
		}
	}
	return results
}
