package compose

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// FilterState disambiguates how a composed transition pair consumed
// epsilon, so a composition never derives the same output path twice
// through two different epsilon interleavings. FilterDead means the
// pairing is disallowed from the filter's current internal state.
type FilterState int

const (
	FilterBoth FilterState = iota
	FilterEps1
	FilterEps2
	FilterDead FilterState = -1
)

// PairKind classifies one candidate composed transition pair before the
// filter decides whether it's admissible.
type PairKind int

const (
	// KindMatch is a real (non-epsilon) label carried across both sides:
	// tr1.Olabel == tr2.Ilabel != EpsLabel.
	KindMatch PairKind = iota
	// KindEps1 is tr1.Olabel == EpsLabel paired against B's implicit
	// self-loop at q2 (B stays put while A emits nothing).
	KindEps1
	// KindEps2 is tr2.Ilabel == EpsLabel paired against A's implicit
	// self-loop at q1 (A stays put while B consumes nothing).
	KindEps2
	// KindEpsBoth advances both sides at once: tr1.Olabel == EpsLabel
	// matched directly against tr2.Ilabel == EpsLabel. The sequence
	// filters admit this only from FilterBoth, which is what keeps an
	// (eps,eps) step from also being derivable as eps1-then-eps2.
	KindEpsBoth
)

// ComposeFilter decides, for each candidate transition pairing
// ComposeFst considers, whether it is admissible from the current
// filter state, and what filter state results. A filter is mutable:
// SetState repositions it at the start of processing one composition
// state's outgoing transitions.
type ComposeFilter interface {
	Start() FilterState
	SetState(q1, q2 fst.StateId, fs FilterState)
	Filter(kind PairKind) FilterState
	FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool)
}

func filterFinalSimple(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	if w1 == nil || w2 == nil {
		return nil, false
	}
	return w1.Times(w2), true
}

// SequenceComposeFilter is the classical Mohri/Pereira/Riley epsilon
// filter. Once FilterEps2 has been entered (B is consuming epsilon
// alone), a further KindEps1 pairing is disallowed, and once FilterEps1
// has been entered a further KindEps2 pairing is disallowed; a
// KindEpsBoth pairing is only taken from FilterBoth. This is what
// prevents the same (eps,eps) path from being derived twice.
type SequenceComposeFilter struct {
	fs FilterState
}

func NewSequenceComposeFilter() *SequenceComposeFilter { return &SequenceComposeFilter{} }

func (f *SequenceComposeFilter) Start() FilterState { return FilterBoth }

func (f *SequenceComposeFilter) SetState(_, _ fst.StateId, fs FilterState) { f.fs = fs }

func (f *SequenceComposeFilter) Filter(kind PairKind) FilterState {
	switch kind {
	case KindMatch:
		return FilterBoth
	case KindEpsBoth:
		if f.fs != FilterBoth {
			return FilterDead
		}
		return FilterBoth
	case KindEps1:
		if f.fs == FilterEps2 {
			return FilterDead
		}
		return FilterEps1
	case KindEps2:
		if f.fs == FilterEps1 {
			return FilterDead
		}
		return FilterEps2
	default:
		return FilterDead
	}
}

func (f *SequenceComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return filterFinalSimple(w1, w2)
}

var _ ComposeFilter = (*SequenceComposeFilter)(nil)

// AltSequenceComposeFilter is the mirror of SequenceComposeFilter, with
// the KindEps2 rule written before the KindEps1 rule. The rules are
// symmetric, so it admits exactly the same pairings.
type AltSequenceComposeFilter struct {
	fs FilterState
}

func NewAltSequenceComposeFilter() *AltSequenceComposeFilter { return &AltSequenceComposeFilter{} }

func (f *AltSequenceComposeFilter) Start() FilterState { return FilterBoth }

func (f *AltSequenceComposeFilter) SetState(_, _ fst.StateId, fs FilterState) { f.fs = fs }

func (f *AltSequenceComposeFilter) Filter(kind PairKind) FilterState {
	switch kind {
	case KindMatch:
		return FilterBoth
	case KindEpsBoth:
		if f.fs != FilterBoth {
			return FilterDead
		}
		return FilterBoth
	case KindEps2:
		if f.fs == FilterEps1 {
			return FilterDead
		}
		return FilterEps2
	case KindEps1:
		if f.fs == FilterEps2 {
			return FilterDead
		}
		return FilterEps1
	default:
		return FilterDead
	}
}

func (f *AltSequenceComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return filterFinalSimple(w1, w2)
}

var _ ComposeFilter = (*AltSequenceComposeFilter)(nil)

// MatchComposeFilter defers to the matchers' declared MatcherFlags:
// a KindEps1 pairing is dead when m2 reports MatchNone, a KindEps2
// pairing is dead when m1 reports MatchNone, and every other pairing
// is decided by the base filter.
type MatchComposeFilter struct {
	base   ComposeFilter
	m1, m2 Matcher
	q1, q2 fst.StateId
}

func NewMatchComposeFilter(base ComposeFilter, m1, m2 Matcher) *MatchComposeFilter {
	return &MatchComposeFilter{base: base, m1: m1, m2: m2}
}

func (f *MatchComposeFilter) Start() FilterState { return f.base.Start() }

func (f *MatchComposeFilter) SetState(q1, q2 fst.StateId, fs FilterState) {
	f.q1, f.q2 = q1, q2
	f.base.SetState(q1, q2, fs)
	f.m1.SetState(q1)
	f.m2.SetState(q2)
}

func (f *MatchComposeFilter) Filter(kind PairKind) FilterState {
	if kind == KindEps1 && f.m2.Flags() == MatchNone {
		return FilterDead
	}
	if kind == KindEps2 && f.m1.Flags() == MatchNone {
		return FilterDead
	}
	return f.base.Filter(kind)
}

func (f *MatchComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return f.base.FilterFinal(w1, w2)
}

// ChooseSide picks which matcher to drive the current state pair with,
// favoring the side with fewer candidates. Both sides answering
// RequirePriority for the same pair is a caller error; Op surfaces it from
// ComputeTrs.
func (f *MatchComposeFilter) ChooseSide() (Side, error) {
	p1, p2 := f.m1.Priority(f.q1), f.m2.Priority(f.q2)
	if p1 == RequirePriority && p2 == RequirePriority {
		return 0, ErrAmbiguousPriority
	}
	if p1 == RequirePriority {
		return MatchOnOutput, nil
	}
	if p2 == RequirePriority || p2 <= p1 {
		return MatchOnInput, nil
	}
	return MatchOnOutput, nil
}

var _ ComposeFilter = (*MatchComposeFilter)(nil)

// NullComposeFilter performs no epsilon disambiguation at all: every
// pairing is admitted and the filter state is always FilterBoth.
// Composing two epsilon-free Fsts with it is sound and faster than
// running a full sequence filter for nothing.
type NullComposeFilter struct{}

func NewNullComposeFilter() *NullComposeFilter { return &NullComposeFilter{} }

func (f *NullComposeFilter) Start() FilterState                       { return FilterBoth }
func (f *NullComposeFilter) SetState(_, _ fst.StateId, _ FilterState) {}
func (f *NullComposeFilter) Filter(PairKind) FilterState              { return FilterBoth }
func (f *NullComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return filterFinalSimple(w1, w2)
}

var _ ComposeFilter = (*NullComposeFilter)(nil)

// TrivialComposeFilter admits every pairing like NullComposeFilter but
// tracks filter state honestly rather than collapsing it to FilterBoth,
// for callers upstream of ComposeFst (e.g. a matcher already pruning
// epsilon ambiguity) that still want FilterState threaded through for
// bookkeeping.
type TrivialComposeFilter struct{}

func NewTrivialComposeFilter() *TrivialComposeFilter { return &TrivialComposeFilter{} }

func (f *TrivialComposeFilter) Start() FilterState                       { return FilterBoth }
func (f *TrivialComposeFilter) SetState(_, _ fst.StateId, _ FilterState) {}
func (f *TrivialComposeFilter) Filter(kind PairKind) FilterState {
	switch kind {
	case KindEps1:
		return FilterEps1
	case KindEps2:
		return FilterEps2
	default: // KindMatch, KindEpsBoth
		return FilterBoth
	}
}
func (f *TrivialComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return filterFinalSimple(w1, w2)
}

var _ ComposeFilter = (*TrivialComposeFilter)(nil)

// reachableSet maps a state to the set of non-epsilon labels reachable
// along some path starting at it (through epsilon transitions too),
// used by LookaheadComposeFilter to prune dead composition branches
// before they're ever expanded.
type reachableSet map[fst.StateId]map[fst.Label]bool

// buildReachable computes, for every state of f, the non-epsilon labels
// reachable via byLabel(tr) from it or any state reachable through an
// epsilon-labeled (on the matched side) transition, memoized per state
// with in-progress states treated as empty to cut epsilon cycles.
func buildReachable(f fst.Fst, byLabel func(fst.Tr) fst.Label) reachableSet {
	memo := make(reachableSet)
	var visit func(s fst.StateId, visiting map[fst.StateId]bool) map[fst.Label]bool
	visit = func(s fst.StateId, visiting map[fst.StateId]bool) map[fst.Label]bool {
		if set, ok := memo[s]; ok {
			return set
		}
		if visiting[s] {
			return map[fst.Label]bool{}
		}
		visiting[s] = true
		set := map[fst.Label]bool{}
		for _, tr := range f.GetTrs(s) {
			lbl := byLabel(tr)
			if lbl != fst.EpsLabel {
				set[lbl] = true
			} else {
				for l := range visit(tr.NextState, visiting) {
					set[l] = true
				}
			}
		}
		delete(visiting, s)
		memo[s] = set
		return set
	}
	for s := 0; s < f.NumStates(); s++ {
		visit(fst.StateId(s), map[fst.StateId]bool{})
	}
	return memo
}

// LookaheadComposeFilter wraps a base filter with one-state-of-lookahead
// pruning: a KindEps1 pairing
// (A advances alone) is only worth taking if some label A can still
// eventually emit is one B can still eventually consume from q2, and
// symmetrically for KindEps2. This never changes which *matched* paths
// exist, only how early a dead end is recognized.
type LookaheadComposeFilter struct {
	base   ComposeFilter
	aOut   reachableSet // labels A can still emit, from each A-state
	bIn    reachableSet // labels B can still consume, from each B-state
	q1, q2 fst.StateId
}

// NewLookaheadComposeFilter precomputes reachability over a and b once;
// reuse the returned filter across an entire composition.
func NewLookaheadComposeFilter(base ComposeFilter, a, b fst.Fst) *LookaheadComposeFilter {
	return &LookaheadComposeFilter{
		base: base,
		aOut: buildReachable(a, func(tr fst.Tr) fst.Label { return tr.Olabel }),
		bIn:  buildReachable(b, func(tr fst.Tr) fst.Label { return tr.Ilabel }),
	}
}

func (f *LookaheadComposeFilter) Start() FilterState { return f.base.Start() }

func (f *LookaheadComposeFilter) SetState(q1, q2 fst.StateId, fs FilterState) {
	f.q1, f.q2 = q1, q2
	f.base.SetState(q1, q2, fs)
}

func (f *LookaheadComposeFilter) intersects(q1, q2 fst.StateId) bool {
	out, in := f.aOut[q1], f.bIn[q2]
	if len(out) == 0 || len(in) == 0 {
		return false
	}
	for l := range out {
		if in[l] {
			return true
		}
	}
	return false
}

func (f *LookaheadComposeFilter) Filter(kind PairKind) FilterState {
	if !f.intersects(f.q1, f.q2) {
		return FilterDead
	}
	return f.base.Filter(kind)
}

func (f *LookaheadComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return f.base.FilterFinal(w1, w2)
}

var _ ComposeFilter = (*LookaheadComposeFilter)(nil)

// PushWeightsComposeFilter wraps a base filter and additionally folds a
// per-composed-state residual weight into FilterFinal, the same
// divide-by-future-shortest-distance idea algorithms.PushWeights uses
// to move weight towards the initial state: Residual(q1,q2), when non-nil, is
// right-divided out of the combined final weight so mass already
// accounted for upstream isn't double counted.
type PushWeightsComposeFilter struct {
	base     ComposeFilter
	Residual func(q1, q2 fst.StateId) semiring.Weight
	q1, q2   fst.StateId
}

func NewPushWeightsComposeFilter(base ComposeFilter, residual func(q1, q2 fst.StateId) semiring.Weight) *PushWeightsComposeFilter {
	return &PushWeightsComposeFilter{base: base, Residual: residual}
}

func (f *PushWeightsComposeFilter) Start() FilterState { return f.base.Start() }

func (f *PushWeightsComposeFilter) SetState(q1, q2 fst.StateId, fs FilterState) {
	f.q1, f.q2 = q1, q2
	f.base.SetState(q1, q2, fs)
}

func (f *PushWeightsComposeFilter) Filter(kind PairKind) FilterState { return f.base.Filter(kind) }

func (f *PushWeightsComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	w, ok := f.base.FilterFinal(w1, w2)
	if !ok || f.Residual == nil {
		return w, ok
	}
	r := f.Residual(f.q1, f.q2)
	div, isDiv := w.(semiring.Divisible)
	if r == nil || !isDiv {
		return w, ok
	}
	out, err := div.Divide(r, semiring.DivideRight)
	if err != nil {
		return w, ok
	}
	return out, true
}

var _ ComposeFilter = (*PushWeightsComposeFilter)(nil)

// PushLabelsComposeFilter wraps a base filter and rewrites the epsilon
// side of a KindEps1/KindEps2 pairing through RelabelOutput, the label
// analogue of PushWeightsComposeFilter: when Rewrite is set, an otherwise-epsilon
// output label is replaced before ComposeFst emits the transition, so
// label mass that would otherwise sit arbitrarily far downstream moves
// up to where it was first determined.
type PushLabelsComposeFilter struct {
	base    ComposeFilter
	Rewrite func(q1, q2 fst.StateId, kind PairKind, label fst.Label) fst.Label
	q1, q2  fst.StateId
}

func NewPushLabelsComposeFilter(base ComposeFilter, rewrite func(q1, q2 fst.StateId, kind PairKind, label fst.Label) fst.Label) *PushLabelsComposeFilter {
	return &PushLabelsComposeFilter{base: base, Rewrite: rewrite}
}

func (f *PushLabelsComposeFilter) Start() FilterState { return f.base.Start() }

func (f *PushLabelsComposeFilter) SetState(q1, q2 fst.StateId, fs FilterState) {
	f.q1, f.q2 = q1, q2
	f.base.SetState(q1, q2, fs)
}

func (f *PushLabelsComposeFilter) Filter(kind PairKind) FilterState { return f.base.Filter(kind) }

func (f *PushLabelsComposeFilter) FilterFinal(w1, w2 semiring.Weight) (semiring.Weight, bool) {
	return f.base.FilterFinal(w1, w2)
}

// RelabelOutput applies Rewrite (if set) to an otherwise-epsilon output
// label produced by a KindEps1/KindEps2 pairing at (q1,q2).
func (f *PushLabelsComposeFilter) RelabelOutput(kind PairKind, label fst.Label) fst.Label {
	if f.Rewrite == nil {
		return label
	}
	return f.Rewrite(f.q1, f.q2, kind, label)
}

var _ ComposeFilter = (*PushLabelsComposeFilter)(nil)
