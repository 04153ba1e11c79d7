package visit

import "github.com/wstrand/gofst/fst"

// TrFilter decides whether a transition should be followed during a
// traversal. The four named filters below cover the
// standard cases; callers may supply any func(fst.Tr) bool.
type TrFilter func(fst.Tr) bool

// AnyTrFilter follows every transition.
func AnyTrFilter(fst.Tr) bool { return true }

// EpsilonTrFilter follows only transitions where both labels are epsilon.
func EpsilonTrFilter(tr fst.Tr) bool { return tr.IsEpsilon() }

// InputEpsilonTrFilter follows only transitions with an epsilon input label.
func InputEpsilonTrFilter(tr fst.Tr) bool { return tr.Ilabel == fst.EpsLabel }

// OutputEpsilonTrFilter follows only transitions with an epsilon output label.
func OutputEpsilonTrFilter(tr fst.Tr) bool { return tr.Olabel == fst.EpsLabel }
