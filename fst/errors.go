package fst

import (
	"github.com/wstrand/gofst/ferr"
)

func errInvalidState(s StateId) error {
	return ferr.Newf(ferr.Argument, "fst: invalid state id %d", s)
}

// ErrNoStart is returned by algorithms that require a start state when the
// input Fst has none.
var ErrNoStart = ferr.New(ferr.Argument, "fst: no start state")
