package lazy

import (
	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// FstOp answers the three questions LazyFst needs about one state of
// the Fst it's producing: its start, its outgoing transitions, and its
// final weight. Implementations may borrow
// or own whatever source Fst(s) they're deriving output from.
type FstOp interface {
	// ComputeStart returns the output Fst's start state, or false if it
	// has none.
	ComputeStart() (fst.StateId, bool)
	// ComputeTrs returns the transitions leaving q.
	ComputeTrs(q fst.StateId) ([]fst.Tr, error)
	// ComputeFinalWeight returns q's final weight, or false if q is not
	// final.
	ComputeFinalWeight(q fst.StateId) (semiring.Weight, bool)
	// Properties reports the static properties this Op's output
	// declares regardless of how much of it has been materialized yet.
	Properties() fst.Properties
}
