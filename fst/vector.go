package fst

import (
	"sync"

	"github.com/wstrand/gofst/semiring"
	"github.com/wstrand/gofst/symtab"
)

// vecState is one state's mutable record inside a VectorFst: its own
// transition list plus cached epsilon counts, kept next to the
// transition data rather than in a parallel map.
type vecState struct {
	trs     []Tr
	final   semiring.Weight // nil means not final
	numIEps int
	numOEps int
}

// VectorFst is the mutable, vector-form Fst: states indexed densely
// 0..N-1, each owning its own transition slice. Safe for concurrent
// use: mutations take a write lock, reads take a read lock.
type VectorFst struct {
	mu sync.RWMutex

	states   []vecState
	start    StateId
	hasStart bool
	props    Properties
	isymbols *symtab.Table
	osymbols *symtab.Table
}

// NewVectorFst returns an empty mutable Fst with no start state.
func NewVectorFst() *VectorFst {
	return &VectorFst{start: NoStateId, props: Acceptor | IDeterministic | ODeterministic | NoIEpsilons | NoOEpsilons | ILabelSorted | OLabelSorted | Unweighted | Acyclic | Accessible | Coaccessible}
}

// AddState appends a new, final-less, transition-less state and returns
// its id. Accessibility, coaccessibility and string-ness become unknown
// on every new state.
func (f *VectorFst) AddState() StateId {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := StateId(len(f.states))
	f.states = append(f.states, vecState{})
	f.props = AddStateProps(f.props)
	return id
}

// SetStart designates s as the start state. s must already exist.
func (f *VectorFst) SetStart(s StateId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasStateLocked(s) {
		return errInvalidState(s)
	}
	f.start = s
	f.hasStart = true
	return nil
}

// SetFinal sets (or, with w == nil, clears) the final weight at s.
func (f *VectorFst) SetFinal(s StateId, w semiring.Weight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasStateLocked(s) {
		return errInvalidState(s)
	}
	f.states[s].final = w
	return nil
}

// AddTr appends tr to state s's outgoing transition list, updating the
// cached epsilon counts and property bits.
func (f *VectorFst) AddTr(s StateId, tr Tr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasStateLocked(s) {
		return errInvalidState(s)
	}
	if !f.hasStateLocked(tr.NextState) {
		return errInvalidState(tr.NextState)
	}
	st := &f.states[s]
	var prev Tr
	hadPrev := len(st.trs) > 0
	if hadPrev {
		prev = st.trs[len(st.trs)-1]
	}
	dupIlabel, dupOlabel := false, false
	for _, old := range st.trs {
		if old.Ilabel == tr.Ilabel {
			dupIlabel = true
		}
		if old.Olabel == tr.Olabel {
			dupOlabel = true
		}
		if dupIlabel && dupOlabel {
			break
		}
	}
	createsCycle := tr.NextState == s || f.reachesLocked(tr.NextState, s)
	st.trs = append(st.trs, tr)
	if tr.Ilabel == EpsLabel {
		st.numIEps++
	}
	if tr.Olabel == EpsLabel {
		st.numOEps++
	}
	f.props = AddTrProps(f.props, tr, prev, hadPrev, createsCycle, dupIlabel, dupOlabel)
	return nil
}

// reachesLocked does a bounded DFS to answer "can target reach s", used
// only to flag Cyclic incrementally; callers needing an authoritative
// answer should use visit.SCC instead. Caller must already hold f.mu.
func (f *VectorFst) reachesLocked(target, s StateId) bool {
	if target == s {
		return true
	}
	seen := make(map[StateId]bool)
	stack := []StateId{target}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if cur == s {
			return true
		}
		for _, tr := range f.states[cur].trs {
			if !seen[tr.NextState] {
				stack = append(stack, tr.NextState)
			}
		}
	}
	return false
}

// DeleteStates removes the states in ids and renumbers the remaining
// states densely, preserving the relative order of survivors.
// Transitions into a deleted state are dropped along with it.
func (f *VectorFst) DeleteStates(ids []StateId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	del := make(map[StateId]bool, len(ids))
	for _, id := range ids {
		if !f.hasStateLocked(id) {
			return errInvalidState(id)
		}
		del[id] = true
	}
	remap := make(map[StateId]StateId, len(f.states))
	newStates := make([]vecState, 0, len(f.states)-len(del))
	for old := StateId(0); int(old) < len(f.states); old++ {
		if del[old] {
			continue
		}
		remap[old] = StateId(len(newStates))
		newStates = append(newStates, f.states[old])
	}
	for i := range newStates {
		kept := newStates[i].trs[:0]
		for _, tr := range newStates[i].trs {
			if del[tr.NextState] {
				if tr.Ilabel == EpsLabel {
					newStates[i].numIEps--
				}
				if tr.Olabel == EpsLabel {
					newStates[i].numOEps--
				}
				continue
			}
			tr.NextState = remap[tr.NextState]
			kept = append(kept, tr)
		}
		newStates[i].trs = kept
	}
	f.states = newStates
	if f.hasStart {
		if newStart, ok := remap[f.start]; ok {
			f.start = newStart
		} else {
			f.start = NoStateId
			f.hasStart = false
		}
	}
	f.props = DeleteStatesProps(f.props)
	return nil
}

// ReplaceTrs overwrites s's entire outgoing transition list with trs,
// recomputing its cached epsilon counts. Used by label-rewriting
// algorithms (Project, Invert, Relabel) that change every transition's
// labels without changing the transition count or targets. Callers are
// responsible for any property-bit updates ReplaceTrs itself cannot infer
// (e.g. Project always yields an Acceptor).
func (f *VectorFst) ReplaceTrs(s StateId, trs []Tr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasStateLocked(s) {
		return errInvalidState(s)
	}
	iEps, oEps := 0, 0
	for _, tr := range trs {
		if tr.Ilabel == EpsLabel {
			iEps++
		}
		if tr.Olabel == EpsLabel {
			oEps++
		}
	}
	f.states[s].trs = trs
	f.states[s].numIEps = iEps
	f.states[s].numOEps = oEps
	return nil
}

// Renumber permutes states according to newOrder, where newOrder[old]
// gives the new id for the state currently numbered old. Used by TopSort.
// newOrder must be a bijection on [0,NumStates).
func (f *VectorFst) Renumber(newOrder []StateId) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(newOrder) != len(f.states) {
		return errInvalidState(StateId(len(newOrder)))
	}
	newStates := make([]vecState, len(f.states))
	for old, n := range newOrder {
		st := f.states[old]
		remapped := make([]Tr, len(st.trs))
		for i, tr := range st.trs {
			tr.NextState = newOrder[tr.NextState]
			remapped[i] = tr
		}
		st.trs = remapped
		newStates[n] = st
	}
	f.states = newStates
	if f.hasStart {
		f.start = newOrder[f.start]
	}
	return nil
}

// SortTrs reorders every state's outgoing transitions with less, typically
// fst.ILess or fst.OLess.
func (f *VectorFst) SortTrs(less func(a, b Tr) bool, byInput bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.states {
		trs := f.states[i].trs
		for a := 1; a < len(trs); a++ {
			for b := a; b > 0 && less(trs[b], trs[b-1]); b-- {
				trs[b], trs[b-1] = trs[b-1], trs[b]
			}
		}
	}
	f.props = SortTrsProps(f.props, byInput)
}

// SetProperties overwrites the cached bits wholesale; used after a
// from-scratch recomputation (visit.SCC) or by algorithms that know the
// exact resulting bitset better than incremental propagation can.
func (f *VectorFst) SetProperties(p Properties) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props = p
}

// SetInputSymbols / SetOutputSymbols install a (possibly shared) symbol
// table; the table itself is treated as immutable once installed.
func (f *VectorFst) SetInputSymbols(t *symtab.Table)  { f.mu.Lock(); f.isymbols = t; f.mu.Unlock() }
func (f *VectorFst) SetOutputSymbols(t *symtab.Table) { f.mu.Lock(); f.osymbols = t; f.mu.Unlock() }

func (f *VectorFst) hasStateLocked(s StateId) bool {
	return s >= 0 && int(s) < len(f.states)
}

// --- Fst interface ---

func (f *VectorFst) Start() (StateId, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.start, f.hasStart
}

func (f *VectorFst) FinalWeight(s StateId) (semiring.Weight, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasStateLocked(s) {
		return nil, false
	}
	w := f.states[s].final
	return w, w != nil
}

func (f *VectorFst) NumTrs(s StateId) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasStateLocked(s) {
		return 0
	}
	return len(f.states[s].trs)
}

func (f *VectorFst) GetTrs(s StateId) []Tr {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasStateLocked(s) {
		return nil
	}
	out := make([]Tr, len(f.states[s].trs))
	copy(out, f.states[s].trs)
	return out
}

// NumInputEpsilons / NumOutputEpsilons expose the cached per-state counts.
func (f *VectorFst) NumInputEpsilons(s StateId) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasStateLocked(s) {
		return 0
	}
	return f.states[s].numIEps
}

func (f *VectorFst) NumOutputEpsilons(s StateId) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.hasStateLocked(s) {
		return 0
	}
	return f.states[s].numOEps
}

func (f *VectorFst) NumStates() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.states)
}

func (f *VectorFst) Properties() Properties {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.props
}

func (f *VectorFst) InputSymbols() *symtab.Table {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.isymbols
}

func (f *VectorFst) OutputSymbols() *symtab.Table {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.osymbols
}

var _ Fst = (*VectorFst)(nil)
