package semiring

// ProductWeight is the direct product of two (possibly different)
// semirings, operations applied componentwise.
type ProductWeight struct {
	W1, W2 Weight
}

func NewProductWeight(w1, w2 Weight) ProductWeight {
	return ProductWeight{W1: w1, W2: w2}
}

func (p ProductWeight) Zero() Weight {
	return ProductWeight{W1: p.W1.Zero(), W2: p.W2.Zero()}
}

func (p ProductWeight) One() Weight {
	return ProductWeight{W1: p.W1.One(), W2: p.W2.One()}
}

func (p ProductWeight) Plus(other Weight) Weight {
	o := other.(ProductWeight)
	return ProductWeight{W1: p.W1.Plus(o.W1), W2: p.W2.Plus(o.W2)}
}

func (p ProductWeight) Times(other Weight) Weight {
	o := other.(ProductWeight)
	return ProductWeight{W1: p.W1.Times(o.W1), W2: p.W2.Times(o.W2)}
}

func (p ProductWeight) Member() bool { return p.W1.Member() && p.W2.Member() }

func (p ProductWeight) Reverse() Weight {
	return ProductWeight{W1: p.W1.Reverse(), W2: p.W2.Reverse()}
}

func (p ProductWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(ProductWeight)
	return p.W1.ApproxEqual(o.W1, delta) && p.W2.ApproxEqual(o.W2, delta)
}

func (p ProductWeight) Quantize(delta float64) Weight {
	return ProductWeight{W1: p.W1.Quantize(delta), W2: p.W2.Quantize(delta)}
}

func (p ProductWeight) Hash() string { return p.W1.Hash() + "x" + p.W2.Hash() }

func (p ProductWeight) Properties() Properties {
	return p.W1.Properties() & p.W2.Properties()
}

func (p ProductWeight) String() string { return "(" + p.W1.String() + ", " + p.W2.String() + ")" }
