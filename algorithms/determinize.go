package algorithms

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// DeterminizeOptions configures Determinize.
type DeterminizeOptions struct {
	// Delta is the quantization grid used to canonicalize residual
	// weights before they're hashed into the subset-construction state
	// table.
	Delta float64
}

func (o DeterminizeOptions) delta() float64 {
	if o.Delta > 0 {
		return o.Delta
	}
	return semiring.DefaultQuantizeDelta
}

// Determinize builds an equivalent Fst with no two transitions leaving
// any state sharing an input label, via weighted subset construction.
// Acceptors over a LeftSemiring are handled directly. Transducers are
// reduced to acceptor determinization
// by first encoding output label sequences as Gallic weights, then
// unwrapping the result back into (ilabel, olabel, weight) transitions.
func Determinize(f fst.Fst, opts DeterminizeOptions) (*fst.VectorFst, error) {
	one := oneFrom(f)
	if one == nil {
		return fst.NewVectorFst(), nil
	}
	if !one.Properties().Has(semiring.LeftSemiring) {
		return nil, ErrNotLeftSemiring
	}

	if f.Properties().Has(fst.Acceptor) {
		return determinizeAcceptor(f, opts.delta())
	}

	gallicAcceptor, err := toGallicAcceptor(f)
	if err != nil {
		return nil, err
	}
	det, err := determinizeAcceptor(gallicAcceptor, opts.delta())
	if err != nil {
		return nil, err
	}
	return unwrapGallicAcceptor(det)
}

// subsetPair is one (state, residual weight) element of a weighted
// subset.
type subsetPair struct {
	state    fst.StateId
	residual semiring.Weight
}

type subset []subsetPair

// key canonicalizes a subset into a hashable string: sorted by state id
// so two equal subsets (as sets) always hash the same regardless of
// discovery order, with each residual weight quantized first so the
// state table stays finite under float noise.
func (s subset) key(delta float64) string {
	sorted := make(subset, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].state < sorted[j].state })
	var b strings.Builder
	for _, p := range sorted {
		b.WriteString(strconv.FormatInt(int64(p.state), 10))
		b.WriteByte(':')
		b.WriteString(p.residual.Quantize(delta).Hash())
		b.WriteByte(';')
	}
	return b.String()
}

func determinizeAcceptor(f fst.Fst, delta float64) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	start, ok := f.Start()
	if !ok {
		return out, nil
	}
	one := oneFrom(f)
	zero := zeroFrom(f)

	idOf := map[string]fst.StateId{}
	subsetOf := map[fst.StateId]subset{}

	startSubset := subset{{state: start, residual: one}}
	startId := out.AddState()
	idOf[startSubset.key(delta)] = startId
	subsetOf[startId] = startSubset
	if err := out.SetStart(startId); err != nil {
		return nil, err
	}

	queue := []fst.StateId{startId}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ss := subsetOf[id]

		finalW := zero
		any := false
		for _, p := range ss {
			if fw, ok := f.FinalWeight(p.state); ok {
				finalW = finalW.Plus(p.residual.Times(fw))
				any = true
			}
		}
		if any {
			if err := out.SetFinal(id, finalW); err != nil {
				return nil, err
			}
		}

		byLabel := map[fst.Label][]subsetPair{}
		for _, p := range ss {
			for _, tr := range f.GetTrs(p.state) {
				byLabel[tr.Ilabel] = append(byLabel[tr.Ilabel], subsetPair{
					state:    tr.NextState,
					residual: p.residual.Times(tr.Weight),
				})
			}
		}
		labels := make([]fst.Label, 0, len(byLabel))
		for l := range byLabel {
			labels = append(labels, l)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		for _, label := range labels {
			entries := byLabel[label]
			grouped := map[fst.StateId]semiring.Weight{}
			var order []fst.StateId
			for _, e := range entries {
				if existing, ok := grouped[e.state]; ok {
					grouped[e.state] = commonDivisor(existing, e.residual)
				} else {
					grouped[e.state] = e.residual
					order = append(order, e.state)
				}
			}
			total := zero
			for _, s := range order {
				total = commonDivisor(total, grouped[s])
			}
			var newSubset subset
			for _, s := range order {
				residual, err := divideWeight(grouped[s], total)
				if err != nil {
					return nil, err
				}
				newSubset = append(newSubset, subsetPair{state: s, residual: residual})
			}
			key := newSubset.key(delta)
			target, exists := idOf[key]
			if !exists {
				target = out.AddState()
				idOf[key] = target
				subsetOf[target] = newSubset
				queue = append(queue, target)
			}
			if err := out.AddTr(id, fst.Tr{Ilabel: label, Olabel: label, Weight: total, NextState: target}); err != nil {
				return nil, err
			}
		}
	}
	out.SetProperties((out.Properties() &^ (fst.NotIDeterministic | fst.NotODeterministic)) | fst.IDeterministic | fst.ODeterministic | fst.Acceptor)
	return out, nil
}

// commonDivisor folds two weights by the determinization "common
// divisor" policy: GallicWeight uses its own longest-
// common-prefix CommonDivisor; every other semiring uses plain ⊕.
func commonDivisor(a, b semiring.Weight) semiring.Weight {
	if ga, ok := a.(semiring.GallicWeight); ok {
		if gb, ok := b.(semiring.GallicWeight); ok {
			return ga.CommonDivisor(gb)
		}
	}
	return a.Plus(b)
}

func divideWeight(lhs, rhs semiring.Weight) (semiring.Weight, error) {
	d, ok := lhs.(semiring.Divisible)
	if !ok {
		return nil, ErrNotDivisible
	}
	return d.Divide(rhs, semiring.DivideLeft)
}

// toGallicAcceptor rewrites f into an acceptor whose label is the
// original ilabel and whose weight is a GallicWeight pairing the
// original olabel (as a one-symbol StringWeight, or the empty string
// for an epsilon olabel) with the original weight.
func toGallicAcceptor(f fst.Fst) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	n := f.NumStates()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if s, ok := f.Start(); ok {
		if err := out.SetStart(s); err != nil {
			return nil, err
		}
	}
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range f.GetTrs(sid) {
			var str semiring.StringWeight
			if tr.Olabel == fst.EpsLabel {
				str = semiring.StringOne(semiring.StringLeft)
			} else {
				str = semiring.NewStringWeight(semiring.StringLeft, int32(tr.Olabel))
			}
			gw := semiring.NewGallicWeight(str, tr.Weight)
			if err := out.AddTr(sid, fst.Tr{Ilabel: tr.Ilabel, Olabel: tr.Ilabel, Weight: gw, NextState: tr.NextState}); err != nil {
				return nil, err
			}
		}
		if w, ok := f.FinalWeight(sid); ok {
			gw := semiring.NewGallicWeight(semiring.StringOne(semiring.StringLeft), w)
			if err := out.SetFinal(sid, gw); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// unwrapGallicAcceptor is the "factor-weight out, convert back" half of
// transducer determinization: every transition (and final weight)
// carries a GallicWeight whose string component may hold zero or more
// output labels (subset construction can merge several original
// transitions' output strings behind one new label); this expands each
// into a chain of states emitting one output label per hop, epsilon on
// input after the first.
func unwrapGallicAcceptor(det fst.Fst) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	n := det.NumStates()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if s, ok := det.Start(); ok {
		if err := out.SetStart(s); err != nil {
			return nil, err
		}
	}
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range det.GetTrs(sid) {
			gw := tr.Weight.(semiring.GallicWeight)
			if err := emitGallicChain(out, sid, tr.Ilabel, gw, tr.NextState); err != nil {
				return nil, err
			}
		}
		if w, ok := det.FinalWeight(sid); ok {
			gw := w.(semiring.GallicWeight)
			if err := emitGallicFinal(out, sid, gw); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func emitGallicChain(out *fst.VectorFst, from fst.StateId, ilabel fst.Label, gw semiring.GallicWeight, dst fst.StateId) error {
	labels := gw.Str.Labels
	if len(labels) == 0 {
		return out.AddTr(from, fst.Tr{Ilabel: ilabel, Olabel: fst.EpsLabel, Weight: gw.W, NextState: dst})
	}
	cur, curI := from, ilabel
	for i, lbl := range labels {
		w := gw.W.One()
		if i == 0 {
			w = gw.W
		}
		if i == len(labels)-1 {
			return out.AddTr(cur, fst.Tr{Ilabel: curI, Olabel: fst.Label(lbl), Weight: w, NextState: dst})
		}
		mid := out.AddState()
		if err := out.AddTr(cur, fst.Tr{Ilabel: curI, Olabel: fst.Label(lbl), Weight: w, NextState: mid}); err != nil {
			return err
		}
		cur, curI = mid, fst.EpsLabel
	}
	return nil
}

func emitGallicFinal(out *fst.VectorFst, from fst.StateId, gw semiring.GallicWeight) error {
	labels := gw.Str.Labels
	if len(labels) == 0 {
		return out.SetFinal(from, gw.W)
	}
	cur, curI := from, fst.EpsLabel
	for i, lbl := range labels {
		w := gw.W.One()
		if i == 0 {
			w = gw.W
		}
		if i == len(labels)-1 {
			mid := out.AddState()
			if err := out.AddTr(cur, fst.Tr{Ilabel: curI, Olabel: fst.Label(lbl), Weight: w, NextState: mid}); err != nil {
				return err
			}
			return out.SetFinal(mid, gw.W.One())
		}
		mid := out.AddState()
		if err := out.AddTr(cur, fst.Tr{Ilabel: curI, Olabel: fst.Label(lbl), Weight: w, NextState: mid}); err != nil {
			return err
		}
		cur, curI = mid, fst.EpsLabel
	}
	return nil
}
