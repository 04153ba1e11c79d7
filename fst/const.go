package fst

import (
	"github.com/wstrand/gofst/semiring"
	"github.com/wstrand/gofst/symtab"
)

// constState is a state's fixed-size header inside the packed transition
// array: offset/count into the flat Trs slice, the cached epsilon
// counts, and the final weight.
type constState struct {
	offset  int
	count   int
	numIEps int
	numOEps int
	final   semiring.Weight
}

// ConstFst is the immutable, contiguous Fst representation: every
// transition for every state lives in one packed slice, addressed by each
// state's (offset, count) header. Built once from a VectorFst
// by NewConstFst after the source's properties are finalized; there is no
// mutation API — build a VectorFst, mutate it, then convert.
type ConstFst struct {
	states   []constState
	trs      []Tr
	start    StateId
	hasStart bool
	props    Properties
	isymbols *symtab.Table
	osymbols *symtab.Table
}

// NewConstFst performs the one-shot vector->contiguous conversion.
func NewConstFst(src Fst) *ConstFst {
	n := src.NumStates()
	c := &ConstFst{
		states:   make([]constState, n),
		props:    src.Properties(),
		isymbols: src.InputSymbols(),
		osymbols: src.OutputSymbols(),
	}
	c.start, c.hasStart = src.Start()
	offset := 0
	for s := 0; s < n; s++ {
		trs := src.GetTrs(StateId(s))
		iEps, oEps := 0, 0
		for _, tr := range trs {
			if tr.Ilabel == EpsLabel {
				iEps++
			}
			if tr.Olabel == EpsLabel {
				oEps++
			}
		}
		final, _ := src.FinalWeight(StateId(s))
		c.states[s] = constState{offset: offset, count: len(trs), numIEps: iEps, numOEps: oEps, final: final}
		c.trs = append(c.trs, trs...)
		offset += len(trs)
	}
	return c
}

func (c *ConstFst) hasState(s StateId) bool { return s >= 0 && int(s) < len(c.states) }

func (c *ConstFst) Start() (StateId, bool) { return c.start, c.hasStart }

func (c *ConstFst) FinalWeight(s StateId) (semiring.Weight, bool) {
	if !c.hasState(s) {
		return nil, false
	}
	w := c.states[s].final
	return w, w != nil
}

func (c *ConstFst) NumTrs(s StateId) int {
	if !c.hasState(s) {
		return 0
	}
	return c.states[s].count
}

func (c *ConstFst) GetTrs(s StateId) []Tr {
	if !c.hasState(s) {
		return nil
	}
	st := c.states[s]
	out := make([]Tr, st.count)
	copy(out, c.trs[st.offset:st.offset+st.count])
	return out
}

func (c *ConstFst) NumInputEpsilons(s StateId) int {
	if !c.hasState(s) {
		return 0
	}
	return c.states[s].numIEps
}

func (c *ConstFst) NumOutputEpsilons(s StateId) int {
	if !c.hasState(s) {
		return 0
	}
	return c.states[s].numOEps
}

func (c *ConstFst) NumStates() int { return len(c.states) }

func (c *ConstFst) Properties() Properties { return c.props }

func (c *ConstFst) InputSymbols() *symtab.Table  { return c.isymbols }
func (c *ConstFst) OutputSymbols() *symtab.Table { return c.osymbols }

var _ Fst = (*ConstFst)(nil)
