package fst

import "github.com/wstrand/gofst/semiring"

// Properties is a bit-vector of trinary facts about an Fst. Each fact
// is a pair of bits: if neither is set the fact is unknown; both set
// simultaneously is an invariant violation that
// this package never produces (see the *Props functions below, which are
// always applied as a (preserved&old)|set pair so only one bit of a pair
// is ever freshly set by a single mutation).
type Properties uint64

const (
	Acceptor Properties = 1 << iota
	NotAcceptor
	IDeterministic
	NotIDeterministic
	ODeterministic
	NotODeterministic
	IEpsilons
	NoIEpsilons
	OEpsilons
	NoOEpsilons
	ILabelSorted
	NotILabelSorted
	OLabelSorted
	NotOLabelSorted
	Weighted
	Unweighted
	Cyclic
	Acyclic
	InitialCyclic
	InitialAcyclic
	TopSorted
	NotTopSorted
	Accessible
	NotAccessible
	Coaccessible
	NotCoaccessible
	StringFst
	NotStringFst
	WeightedCycles
	UnweightedCycles
)

// Pairs enumerates every (positive, negative) bit pair, used by
// SanityCheck to enforce "both bits of a pair never hold simultaneously".
var Pairs = [][2]Properties{
	{Acceptor, NotAcceptor},
	{IDeterministic, NotIDeterministic},
	{ODeterministic, NotODeterministic},
	{IEpsilons, NoIEpsilons},
	{OEpsilons, NoOEpsilons},
	{ILabelSorted, NotILabelSorted},
	{OLabelSorted, NotOLabelSorted},
	{Weighted, Unweighted},
	{Cyclic, Acyclic},
	{InitialCyclic, InitialAcyclic},
	{TopSorted, NotTopSorted},
	{Accessible, NotAccessible},
	{Coaccessible, NotCoaccessible},
	{StringFst, NotStringFst},
	{WeightedCycles, UnweightedCycles},
}

// SanityCheck reports whether p never sets both bits of any pair.
func (p Properties) SanityCheck() bool {
	for _, pr := range Pairs {
		if p&pr[0] != 0 && p&pr[1] != 0 {
			return false
		}
	}
	return true
}

// Has reports whether every bit in want is set in p.
func (p Properties) Has(want Properties) bool { return p&want == want }

// unknownMask is every bit this package knows how to track; mutators
// express their effect as (props & preserved) | set.
const unknownMask Properties = (1 << 30) - 1

// mutate applies the propagation rule props' = (props & preserved) | set.
func mutate(props, preserved, set Properties) Properties {
	return (props & preserved) | set
}

// addStatePreserved is applied when a new state is added: most bits survive,
// but accessibility/coaccessibility/string-ness become unknown since the
// new state hasn't been reached by any traversal yet.
var addStatePreserved = unknownMask &^ (Accessible | NotAccessible | Coaccessible | NotCoaccessible | StringFst | NotStringFst)

// AddStateProps is the mask pair applied when a state is added.
func AddStateProps(props Properties) Properties {
	return mutate(props, addStatePreserved, 0)
}

// AddTrProps is the mask pair applied when a transition is added to
// state s: given the previous last Tr out of s (hadPrev=false if s had
// none yet), whether nextstate is already known to reach s (creating a
// cycle), and whether the new transition repeats an ilabel/olabel some
// earlier transition out of s already uses (breaking input/output
// determinism), compute the new property bits to set/clear.
func AddTrProps(props Properties, tr Tr, prevInState Tr, hadPrev bool, createsCycle, dupIlabel, dupOlabel bool) Properties {
	preserved := unknownMask &^ (Accessible | NotAccessible | Coaccessible | NotCoaccessible | StringFst | NotStringFst)
	var set Properties

	if tr.Ilabel != tr.Olabel {
		preserved &^= Acceptor
		set |= NotAcceptor
	}
	if dupIlabel {
		preserved &^= IDeterministic
		set |= NotIDeterministic
	}
	if dupOlabel {
		preserved &^= ODeterministic
		set |= NotODeterministic
	}
	if tr.Ilabel == EpsLabel {
		preserved &^= NoIEpsilons
		set |= IEpsilons
	}
	if tr.Olabel == EpsLabel {
		preserved &^= NoOEpsilons
		set |= OEpsilons
	}
	if !isOneOrZero(tr.Weight) {
		preserved &^= Unweighted
		set |= Weighted
	}
	if hadPrev {
		if tr.Ilabel < prevInState.Ilabel {
			preserved &^= ILabelSorted
			set |= NotILabelSorted
		}
		if tr.Olabel < prevInState.Olabel {
			preserved &^= OLabelSorted
			set |= NotOLabelSorted
		}
	}
	if createsCycle {
		preserved &^= Acyclic
		set |= Cyclic
	}
	return mutate(props, preserved, set)
}

// isOneOrZero reports whether w hashes identically to its own semiring's
// One or Zero; any other weight makes the Fst Weighted.
func isOneOrZero(w semiring.Weight) bool {
	h := w.Hash()
	return h == w.One().Hash() || h == w.Zero().Hash()
}

// DeleteStatesProps is the mask pair applied on state deletion: acceptor,
// determinism, epsilon, sort, unweighted and acyclic bits survive, but
// accessibility-derived bits are invalidated since the state numbering
// changed.
func DeleteStatesProps(props Properties) Properties {
	preserved := Acceptor | NotAcceptor |
		IDeterministic | NotIDeterministic | ODeterministic | NotODeterministic |
		IEpsilons | NoIEpsilons | OEpsilons | NoOEpsilons |
		ILabelSorted | NotILabelSorted | OLabelSorted | NotOLabelSorted |
		Weighted | Unweighted | Cyclic | Acyclic
	return mutate(props, preserved, 0)
}

// SortTrsProps is the mask pair applied after sorting transitions.
func SortTrsProps(props Properties, byInput bool) Properties {
	if byInput {
		return mutate(props, unknownMask&^NotILabelSorted, ILabelSorted)
	}
	return mutate(props, unknownMask&^NotOLabelSorted, OLabelSorted)
}
