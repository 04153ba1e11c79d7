// Package fst defines the weighted-transducer data model: labels, states,
// transitions, the read-only Fst interface both concrete representations
// satisfy, the cached FstProperties bitset, and the two concrete
// representations themselves (VectorFst, mutable; ConstFst, immutable and
// contiguous).
package fst

import "github.com/wstrand/gofst/semiring"

// Label is a non-negative integer naming an input or output symbol.
// EpsLabel (0) means "no symbol consumed/emitted".
type Label int64

// EpsLabel is the distinguished epsilon label.
const EpsLabel Label = 0

// NoLabel is a sentinel meaning "unspecified"; a matcher's Find treats
// it as a request for every transition regardless of label.
const NoLabel Label = -1

// StateId identifies a state within a single Fst.
type StateId int64

// NoStateId is a sentinel meaning "no such state": VectorFst's start
// before SetStart, a DFS root's parent, and the StateId returned
// alongside an error.
const NoStateId StateId = -1

// Tr is an immutable transition record: reading ilabel while writing
// olabel, weighted by Weight, landing on NextState.
type Tr struct {
	Ilabel    Label
	Olabel    Label
	Weight    semiring.Weight
	NextState StateId
}

// IsEpsilon reports whether both labels are epsilon.
func (t Tr) IsEpsilon() bool { return t.Ilabel == EpsLabel && t.Olabel == EpsLabel }

// ILess orders two Trs by (ilabel, olabel, nextstate); used by TrSort's
// ilabel comparator.
func ILess(a, b Tr) bool {
	if a.Ilabel != b.Ilabel {
		return a.Ilabel < b.Ilabel
	}
	if a.Olabel != b.Olabel {
		return a.Olabel < b.Olabel
	}
	return a.NextState < b.NextState
}

// OLess orders two Trs by (olabel, ilabel, nextstate); used by TrSort's
// olabel comparator.
func OLess(a, b Tr) bool {
	if a.Olabel != b.Olabel {
		return a.Olabel < b.Olabel
	}
	if a.Ilabel != b.Ilabel {
		return a.Ilabel < b.Ilabel
	}
	return a.NextState < b.NextState
}
