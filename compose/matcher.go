// Package compose implements WFST composition: matchers that enumerate
// label-matching transitions out of a state, compose filters that
// serialize epsilon-matching so a composed pair of paths is derived
// exactly once, and ComposeFst, a lazy.FstOp combining two Fsts into
// their relational composition.
package compose

import (
	"sort"

	"github.com/wstrand/gofst/fst"
)

// MatcherFlags reports a matcher's capabilities, consulted by
// MatchComposeFilter to pick which side to match with a given state.
type MatcherFlags uint8

const (
	MatchInput MatcherFlags = 1 << iota
	MatchOutput
	MatchNone
)

// RequirePriority is the distinguished Priority value meaning "you must
// use this matcher on this state"; both sides requiring it at once is an
// error (ErrAmbiguousPriority).
const RequirePriority = int(^uint(0) >> 1) // math.MaxInt, without importing math for one constant

// Matcher enumerates, for the state most recently set, the transitions
// whose relevant label matches a requested label.
// Label can be fst.EpsLabel (match only epsilons) or fst.NoLabel,
// which requests every transition out of the current state regardless
// of label.
type Matcher interface {
	SetState(q fst.StateId)
	Find(label fst.Label) []fst.Tr
	Priority(q fst.StateId) int
	Flags() MatcherFlags
}

// side selects which of a transition's two labels a Matcher matches
// against: Input matchers (used on the second/right-hand Fst of a
// composition) match ilabel; Output matchers (the first/left-hand Fst)
// match olabel.
type Side int

const (
	MatchOnInput Side = iota
	MatchOnOutput
)

// SortedMatcher binary-searches a state's transition list, assumed
// sorted (ilabel- or olabel-sorted per Side) by the caller.
type SortedMatcher struct {
	f    fst.Fst
	side Side
	q    fst.StateId
	trs  []fst.Tr
}

// NewSortedMatcher wraps f; the caller is responsible for having
// TrSort'd f appropriately for side before composing with it.
func NewSortedMatcher(f fst.Fst, side Side) *SortedMatcher {
	return &SortedMatcher{f: f, side: side}
}

func (m *SortedMatcher) SetState(q fst.StateId) {
	m.q = q
	m.trs = m.f.GetTrs(q)
}

func (m *SortedMatcher) label(tr fst.Tr) fst.Label {
	if m.side == MatchOnInput {
		return tr.Ilabel
	}
	return tr.Olabel
}

// Find returns every transition out of the current state whose matched
// label equals label; fst.NoLabel requests every transition regardless
// of label. Falls back to a linear scan if the list turns out not to be
// sorted (e.g. the caller skipped TrSort); binary search is an
// optimization, not a correctness requirement.
func (m *SortedMatcher) Find(label fst.Label) []fst.Tr {
	if label == fst.NoLabel {
		return m.trs
	}
	if !sort.SliceIsSorted(m.trs, func(i, j int) bool { return m.label(m.trs[i]) < m.label(m.trs[j]) }) {
		return m.linearFind(label)
	}
	lo := sort.Search(len(m.trs), func(i int) bool { return m.label(m.trs[i]) >= label })
	var out []fst.Tr
	for i := lo; i < len(m.trs) && m.label(m.trs[i]) == label; i++ {
		out = append(out, m.trs[i])
	}
	return out
}

func (m *SortedMatcher) linearFind(label fst.Label) []fst.Tr {
	var out []fst.Tr
	for _, tr := range m.trs {
		if m.label(tr) == label {
			out = append(out, tr)
		}
	}
	return out
}

// Priority is the number of candidate transitions at the current state:
// fewer candidates means this side is cheaper to drive the match with.
func (m *SortedMatcher) Priority(fst.StateId) int { return len(m.trs) }

func (m *SortedMatcher) Flags() MatcherFlags {
	if m.side == MatchOnInput {
		return MatchInput
	}
	return MatchOutput
}

var _ Matcher = (*SortedMatcher)(nil)

// SigmaLabel is the wildcard label SigmaMatcher treats as "matches any
// source label". Chosen distinct from any
// label a caller would assign a real symbol (symbol table labels start
// densely at 0 upward; this sits far outside that range).
const SigmaLabel fst.Label = -2

// SigmaRewriteMode selects how SigmaMatcher rewrites the *other* output
// label when a sigma transition is taken.
type SigmaRewriteMode int

const (
	SigmaRewriteAuto SigmaRewriteMode = iota
	SigmaRewriteAlways
	SigmaRewriteNever
)

// SigmaMatcher wraps a base Matcher, additionally matching any
// requested label against a SigmaLabel-labeled transition as a wildcard.
type SigmaMatcher struct {
	base Matcher
	mode SigmaRewriteMode
}

func NewSigmaMatcher(base Matcher, mode SigmaRewriteMode) *SigmaMatcher {
	return &SigmaMatcher{base: base, mode: mode}
}

func (m *SigmaMatcher) SetState(q fst.StateId) { m.base.SetState(q) }

func (m *SigmaMatcher) Find(label fst.Label) []fst.Tr {
	direct := m.base.Find(label)
	if label == SigmaLabel {
		return direct
	}
	sigma := m.base.Find(SigmaLabel)
	if len(sigma) == 0 {
		return direct
	}
	out := make([]fst.Tr, 0, len(direct)+len(sigma))
	out = append(out, direct...)
	for _, tr := range sigma {
		rewritten := tr
		switch m.mode {
		case SigmaRewriteAlways, SigmaRewriteAuto:
			if tr.Ilabel == SigmaLabel {
				rewritten.Ilabel = label
			}
			if tr.Olabel == SigmaLabel {
				rewritten.Olabel = label
			}
		case SigmaRewriteNever:
		}
		out = append(out, rewritten)
	}
	return out
}

func (m *SigmaMatcher) Priority(q fst.StateId) int { return m.base.Priority(q) }
func (m *SigmaMatcher) Flags() MatcherFlags        { return m.base.Flags() }

var _ Matcher = (*SigmaMatcher)(nil)

// PhiLabel is the distinguished failure-transition label PhiMatcher
// follows when no direct match exists.
const PhiLabel fst.Label = -3

// PhiMatcher wraps a base Matcher: if Find(label) comes back empty and
// the current state has a phi-labeled transition, it follows phi
// (repeatedly, up to the underlying Fst's state count, to guard against
// a phi cycle) and retries the match from the failure state.
type PhiMatcher struct {
	f    fst.Fst
	base Matcher
	side Side
	q    fst.StateId
}

func NewPhiMatcher(f fst.Fst, base Matcher, side Side) *PhiMatcher {
	return &PhiMatcher{f: f, base: base, side: side}
}

func (m *PhiMatcher) SetState(q fst.StateId) {
	m.q = q
	m.base.SetState(q)
}

func (m *PhiMatcher) Find(label fst.Label) []fst.Tr {
	if direct := m.base.Find(label); len(direct) > 0 || label == PhiLabel {
		return direct
	}
	// The phi walk repositions the base matcher; put it back on the
	// matcher's own state before returning so later Find calls still
	// search from where SetState left us.
	defer m.base.SetState(m.q)
	seen := map[fst.StateId]bool{}
	phi := m.base.Find(PhiLabel)
	for len(phi) > 0 {
		next := phi[0].NextState
		if seen[next] {
			break
		}
		seen[next] = true
		m.base.SetState(next)
		if direct := m.base.Find(label); len(direct) > 0 {
			return direct
		}
		phi = m.base.Find(PhiLabel)
	}
	return nil
}

func (m *PhiMatcher) Priority(q fst.StateId) int { return m.base.Priority(q) }
func (m *PhiMatcher) Flags() MatcherFlags        { return m.base.Flags() }

var _ Matcher = (*PhiMatcher)(nil)

// MultiEpsMatcher wraps a base Matcher, additionally treating every
// label in Extra as epsilon: a Find(fst.EpsLabel) call also returns
// transitions labeled with any member of Extra.
type MultiEpsMatcher struct {
	base  Matcher
	side  Side
	Extra map[fst.Label]bool
}

func NewMultiEpsMatcher(base Matcher, side Side, extra map[fst.Label]bool) *MultiEpsMatcher {
	return &MultiEpsMatcher{base: base, side: side, Extra: extra}
}

func (m *MultiEpsMatcher) SetState(q fst.StateId) { m.base.SetState(q) }

func (m *MultiEpsMatcher) Find(label fst.Label) []fst.Tr {
	out := m.base.Find(label)
	if label != fst.EpsLabel {
		return out
	}
	for extra := range m.Extra {
		out = append(out, m.base.Find(extra)...)
	}
	return out
}

func (m *MultiEpsMatcher) Priority(q fst.StateId) int { return m.base.Priority(q) }
func (m *MultiEpsMatcher) Flags() MatcherFlags        { return m.base.Flags() }

var _ Matcher = (*MultiEpsMatcher)(nil)
