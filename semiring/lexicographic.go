package semiring

// LexicographicWeight compares two Path semirings lexicographically:
// Plus keeps whichever operand's W1 component is ⊕-preferred (i.e. equal
// to W1.Plus(other.W1)); ties are broken by the W2 component. Both
// components must declare Path. Times applies componentwise like ProductWeight.
type LexicographicWeight struct {
	W1, W2 Weight
}

func NewLexicographicWeight(w1, w2 Weight) LexicographicWeight {
	if !w1.Properties().Has(Path) || !w2.Properties().Has(Path) {
		panic("semiring: LexicographicWeight components must both declare Path")
	}
	return LexicographicWeight{W1: w1, W2: w2}
}

func (l LexicographicWeight) Zero() Weight {
	return LexicographicWeight{W1: l.W1.Zero(), W2: l.W2.Zero()}
}

func (l LexicographicWeight) One() Weight {
	return LexicographicWeight{W1: l.W1.One(), W2: l.W2.One()}
}

func (l LexicographicWeight) Plus(other Weight) Weight {
	o := other.(LexicographicWeight)
	preferred1 := l.W1.Plus(o.W1)
	lWins := preferred1.Hash() == l.W1.Hash()
	oWins := preferred1.Hash() == o.W1.Hash()
	switch {
	case lWins && !oWins:
		return l
	case oWins && !lWins:
		return o
	default:
		// tie on W1: break on W2's own semiring order.
		preferred2 := l.W2.Plus(o.W2)
		if preferred2.Hash() == l.W2.Hash() {
			return l
		}
		return o
	}
}

func (l LexicographicWeight) Times(other Weight) Weight {
	o := other.(LexicographicWeight)
	return LexicographicWeight{W1: l.W1.Times(o.W1), W2: l.W2.Times(o.W2)}
}

func (l LexicographicWeight) Member() bool { return l.W1.Member() && l.W2.Member() }

func (l LexicographicWeight) Reverse() Weight {
	return LexicographicWeight{W1: l.W1.Reverse(), W2: l.W2.Reverse()}
}

func (l LexicographicWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(LexicographicWeight)
	return l.W1.ApproxEqual(o.W1, delta) && l.W2.ApproxEqual(o.W2, delta)
}

func (l LexicographicWeight) Quantize(delta float64) Weight {
	return LexicographicWeight{W1: l.W1.Quantize(delta), W2: l.W2.Quantize(delta)}
}

func (l LexicographicWeight) Hash() string { return l.W1.Hash() + ":" + l.W2.Hash() }

func (l LexicographicWeight) Properties() Properties {
	return (l.W1.Properties() & l.W2.Properties()) | Path
}

func (l LexicographicWeight) String() string { return "<" + l.W1.String() + ", " + l.W2.String() + ">" }
