package algorithms

import (
	"github.com/wstrand/gofst/ferr"
	"github.com/wstrand/gofst/fst"
)

// FinalAction tells ApplyTrMap how a TrMapper's final-weight mapping
// interacts with non-epsilon output it might produce.
type FinalAction int

const (
	// NoSuperfinal: the mapper's final weights map back to final
	// weights directly; it is an error for MapFinal to want to emit a
	// non-epsilon-labeled transition.
	NoSuperfinal FinalAction = iota
	// AllowSuperfinal lazily introduces one extra super-final state and
	// routes MapFinal's transition to it only when that transition is
	// not epsilon:epsilon.
	AllowSuperfinal
	// RequireSuperfinal always introduces the extra state.
	RequireSuperfinal
)

// TrMapper rewrites every transition and final weight of an Fst. MapTr is
// called once per transition; MapFinal once per state with a final
// weight (ok=false states are skipped).
type TrMapper interface {
	MapTr(tr fst.Tr) fst.Tr
	MapFinal(w fst.Tr) (fst.Tr, bool)
	FinalAction() FinalAction
	// Properties reports the properties the mapper guarantees it
	// preserves (AND-ed with the input's actual properties); mappers
	// that cannot make any guarantee return 0.
	Properties(in fst.Properties) fst.Properties
}

// ErrSuperfinalDisallowed is returned when a NoSuperfinal mapper's
// MapFinal yields a non-epsilon-labeled transition.
var ErrSuperfinalDisallowed = ferr.New(ferr.Invariant, "algorithms: tr-map final action produced a non-epsilon transition under NoSuperfinal")

// ApplyTrMap builds a new VectorFst by applying mapper to every
// transition and final weight of in.
func ApplyTrMap(in fst.Fst, mapper TrMapper) (*fst.VectorFst, error) {
	out := fst.NewVectorFst()
	n := in.NumStates()
	for i := 0; i < n; i++ {
		out.AddState()
	}
	if s, ok := in.Start(); ok {
		if err := out.SetStart(s); err != nil {
			return nil, err
		}
	}

	var superfinal fst.StateId = fst.NoStateId
	ensureSuperfinal := func() fst.StateId {
		if superfinal == fst.NoStateId {
			superfinal = out.AddState()
			out.SetFinal(superfinal, oneFrom(in))
		}
		return superfinal
	}
	if mapper.FinalAction() == RequireSuperfinal {
		ensureSuperfinal()
	}

	for s := 0; s < n; s++ {
		sid := fst.StateId(s)
		for _, tr := range in.GetTrs(sid) {
			if err := out.AddTr(sid, mapper.MapTr(tr)); err != nil {
				return nil, err
			}
		}
		w, ok := in.FinalWeight(sid)
		if !ok {
			continue
		}
		mappedTr, isTr := mapper.MapFinal(fst.Tr{Ilabel: fst.EpsLabel, Olabel: fst.EpsLabel, Weight: w, NextState: fst.NoStateId})
		if !isTr {
			continue
		}
		if mappedTr.Ilabel == fst.EpsLabel && mappedTr.Olabel == fst.EpsLabel {
			if err := out.SetFinal(sid, mappedTr.Weight); err != nil {
				return nil, err
			}
			continue
		}
		switch mapper.FinalAction() {
		case NoSuperfinal:
			return nil, ErrSuperfinalDisallowed
		default:
			target := ensureSuperfinal()
			mappedTr.NextState = target
			if err := out.AddTr(sid, mappedTr); err != nil {
				return nil, err
			}
		}
	}
	out.SetProperties(mapper.Properties(in.Properties()))
	return out, nil
}
