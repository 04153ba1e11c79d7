package algorithms

import (
	"strconv"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

// EncodeFlags selects what Encode folds into the synthetic label.
type EncodeFlags uint8

const (
	// EncodeLabels folds (ilabel, olabel) into the label.
	EncodeLabels EncodeFlags = 1 << iota
	// EncodeWeights folds the weight into the label too, replacing it
	// with One on the encoded transition.
	EncodeWeights
)

// EncodeTable is the bijection Encode builds between observed
// (ilabel, olabel, weight) tuples and dense integer codes, retained so
// Decode can invert it.
type EncodeTable struct {
	flags   EncodeFlags
	codeOf  map[string]fst.Label
	tupleOf map[fst.Label]encodedTuple
	next    fst.Label
}

type encodedTuple struct {
	ilabel, olabel fst.Label
	weight         semiring.Weight
}

// NewEncodeTable returns an empty table for the given flags; labels are
// assigned starting at 1 (0 stays epsilon).
func NewEncodeTable(flags EncodeFlags) *EncodeTable {
	return &EncodeTable{flags: flags, codeOf: map[string]fst.Label{}, tupleOf: map[fst.Label]encodedTuple{}, next: 1}
}

func (t *EncodeTable) tupleKey(tr fst.Tr) string {
	k := strconv.FormatInt(int64(tr.Ilabel), 10) + "," + strconv.FormatInt(int64(tr.Olabel), 10)
	if t.flags&EncodeWeights != 0 {
		k += "," + tr.Weight.Hash()
	}
	return k
}

// Encode rewrites every transition (i, o, w) of f into (k, k, w), or into
// (k, k, One) when the table's flags include EncodeWeights, where k is a
// unique code per observed tuple, recording the mapping in t. Without
// EncodeWeights, epsilon:epsilon transitions are left as they are.
func Encode(f *fst.VectorFst, t *EncodeTable) error {
	n := f.NumStates()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		if len(trs) == 0 {
			continue
		}
		for i := range trs {
			trs[i] = t.encodeTr(trs[i])
		}
		if err := f.ReplaceTrs(sid, trs); err != nil {
			return err
		}
	}
	f.SetProperties(f.Properties() &^ (fst.NotAcceptor | fst.Acceptor | fst.ILabelSorted | fst.OLabelSorted))
	return nil
}

func (t *EncodeTable) encodeTr(tr fst.Tr) fst.Tr {
	if tr.Ilabel == fst.EpsLabel && tr.Olabel == fst.EpsLabel && t.flags&EncodeWeights == 0 {
		return tr
	}
	key := t.tupleKey(tr)
	code, ok := t.codeOf[key]
	if !ok {
		code = t.next
		t.next++
		t.codeOf[key] = code
		t.tupleOf[code] = encodedTuple{ilabel: tr.Ilabel, olabel: tr.Olabel, weight: tr.Weight}
	}
	out := fst.Tr{Ilabel: code, Olabel: code, NextState: tr.NextState}
	if t.flags&EncodeWeights != 0 {
		out.Weight = tr.Weight.One()
	} else {
		out.Weight = tr.Weight
	}
	return out
}

// Decode reverses Encode using the same table, restoring original
// labels and (if EncodeWeights was set) weights.
func Decode(f *fst.VectorFst, t *EncodeTable) error {
	n := f.NumStates()
	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		trs := f.GetTrs(sid)
		if len(trs) == 0 {
			continue
		}
		for i := range trs {
			code := trs[i].Ilabel
			if code == fst.EpsLabel {
				continue
			}
			tuple, ok := t.tupleOf[code]
			if !ok {
				continue
			}
			trs[i].Ilabel = tuple.ilabel
			trs[i].Olabel = tuple.olabel
			if t.flags&EncodeWeights != 0 {
				trs[i].Weight = tuple.weight
			}
		}
		if err := f.ReplaceTrs(sid, trs); err != nil {
			return err
		}
	}
	return nil
}
