package fst_test

import (
	"testing"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

func buildTwoStateTropical(t *testing.T) *fst.VectorFst {
	t.Helper()
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	if err := f.SetStart(s0); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	if err := f.SetFinal(s1, semiring.TropicalWeight(0)); err != nil {
		t.Fatalf("SetFinal: %v", err)
	}
	if err := f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2.5), NextState: s1}); err != nil {
		t.Fatalf("AddTr: %v", err)
	}
	return f
}

func TestVectorFstBasics(t *testing.T) {
	f := buildTwoStateTropical(t)
	start, ok := f.Start()
	if !ok || start != 0 {
		t.Fatalf("Start() = (%d, %v), want (0, true)", start, ok)
	}
	if f.NumStates() != 2 {
		t.Fatalf("NumStates() = %d, want 2", f.NumStates())
	}
	trs := f.GetTrs(0)
	if len(trs) != 1 || trs[0].Ilabel != 1 || trs[0].NextState != 1 {
		t.Fatalf("GetTrs(0) = %+v", trs)
	}
	w, ok := f.FinalWeight(1)
	if !ok || w.(semiring.TropicalWeight) != 0 {
		t.Fatalf("FinalWeight(1) = (%v, %v), want (0, true)", w, ok)
	}
}

func TestVectorFstInvalidState(t *testing.T) {
	f := fst.NewVectorFst()
	if err := f.SetStart(5); err == nil {
		t.Fatal("expected error setting start to an out-of-range state")
	}
}

func TestDeleteStatesRenumbers(t *testing.T) {
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	s2 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(1), NextState: s1})
	f.AddTr(s1, fst.Tr{Ilabel: 2, Olabel: 2, Weight: semiring.TropicalWeight(1), NextState: s2})
	f.SetFinal(s2, semiring.TropicalWeight(0))

	if err := f.DeleteStates([]fst.StateId{s1}); err != nil {
		t.Fatalf("DeleteStates: %v", err)
	}
	if f.NumStates() != 2 {
		t.Fatalf("NumStates() after delete = %d, want 2", f.NumStates())
	}
	// s0's transition into the deleted state must be gone.
	if len(f.GetTrs(0)) != 0 {
		t.Fatalf("GetTrs(0) after delete = %+v, want empty", f.GetTrs(0))
	}
}

func TestConstFstMirrorsVectorFst(t *testing.T) {
	v := buildTwoStateTropical(t)
	c := fst.NewConstFst(v)
	if c.NumStates() != v.NumStates() {
		t.Fatalf("NumStates mismatch: %d vs %d", c.NumStates(), v.NumStates())
	}
	vTrs, cTrs := v.GetTrs(0), c.GetTrs(0)
	if len(vTrs) != len(cTrs) || vTrs[0] != cTrs[0] {
		t.Fatalf("GetTrs(0) mismatch: %+v vs %+v", vTrs, cTrs)
	}
	vStart, vOK := v.Start()
	cStart, cOK := c.Start()
	if vStart != cStart || vOK != cOK {
		t.Fatalf("Start mismatch: (%d,%v) vs (%d,%v)", vStart, vOK, cStart, cOK)
	}
}

func TestPropertiesSanityCheck(t *testing.T) {
	f := fst.NewVectorFst()
	if !f.Properties().SanityCheck() {
		t.Fatal("fresh VectorFst properties should never set both bits of a pair")
	}
}

func TestAddTrSetsNotAcceptorForTransducer(t *testing.T) {
	f := fst.NewVectorFst()
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 2, Weight: semiring.TropicalWeight(0), NextState: s1})
	if f.Properties().Has(fst.Acceptor) {
		t.Fatal("transducer with ilabel != olabel must not be flagged Acceptor")
	}
	if !f.Properties().Has(fst.NotAcceptor) {
		t.Fatal("expected NotAcceptor to be set")
	}
}
