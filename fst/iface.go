package fst

import (
	"github.com/wstrand/gofst/semiring"
	"github.com/wstrand/gofst/symtab"
)

// Fst is the read-only interface every concrete representation (VectorFst,
// ConstFst) and every lazy wrapper (lazy.LazyFst, compose.ComposeFst)
// implements; the entire algorithm library is written against this
// interface, never against a concrete type.
type Fst interface {
	// Start returns the start state and true, or false if the Fst has no
	// start state; the StateId returned alongside false names no state.
	Start() (StateId, bool)
	// FinalWeight returns the final weight at s and true, or (nil,
	// false) if s is not final. s out of range is an error the caller
	// should have avoided; implementations return (nil, false).
	FinalWeight(s StateId) (semiring.Weight, bool)
	// NumTrs reports how many transitions leave s.
	NumTrs(s StateId) int
	// GetTrs returns the transitions leaving s, in insertion order.
	GetTrs(s StateId) []Tr
	// NumStates reports the number of states, for expanded Fsts. Lazy
	// Fsts that have not yet discovered every state return the number
	// discovered so far; callers that need the true count must
	// materialize first.
	NumStates() int
	// Properties reports the currently known property bits.
	Properties() Properties
	// InputSymbols / OutputSymbols return the shared symbol tables
	// installed on this Fst, or nil if none.
	InputSymbols() *symtab.Table
	OutputSymbols() *symtab.Table
}
