package algorithms

import "github.com/wstrand/gofst/ferr"

// ErrNotStarSemiring is returned by RmEpsilon and all-pairs
// ShortestDistance when a weight that needs Closure() doesn't implement
// semiring.StarSemiring.
var ErrNotStarSemiring = ferr.New(ferr.Semiring, "algorithms: semiring does not admit closure (not a star semiring)")

// ErrEpsilonCycleDiverges is returned by RmEpsilon when an epsilon
// cycle's weight closure does not converge to a member of the semiring
// (e.g. a negative-cost epsilon cycle under Tropical).
var ErrEpsilonCycleDiverges = ferr.New(ferr.Semiring, "algorithms: epsilon cycle weight closure diverges")

// ErrNotLeftSemiring is returned by Determinize when the input's
// semiring does not declare LeftSemiring.
var ErrNotLeftSemiring = ferr.New(ferr.Semiring, "algorithms: determinization requires a left-distributive semiring")

// ErrNotDivisible is returned by PushWeights and Determinize when the semiring does not
// implement semiring.Divisible.
var ErrNotDivisible = ferr.New(ferr.Semiring, "algorithms: weight pushing requires a weakly divisible semiring")

// ErrNotPath is returned by ShortestPath when nshortest==1 is requested
// over a semiring without the Path property.
var ErrNotPath = ferr.New(ferr.Semiring, "algorithms: shortest path requires the Path property")
