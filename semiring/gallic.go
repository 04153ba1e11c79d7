package semiring

// GallicWeight pairs a label-string with an underlying weight, used to
// reduce transducer determinization to acceptor determinization.
//
// There is no static "zero value" to hand back for an arbitrary underlying
// semiring in Go without generics-over-constructors, so GallicWeight.Zero/
// One call through to W's own Zero()/One() — any live GallicWeight value
// already carries a W of the right concrete type to ask.
type GallicWeight struct {
	Str StringWeight
	W   Weight
}

// NewGallicWeight pairs a string and an underlying weight.
func NewGallicWeight(str StringWeight, w Weight) GallicWeight {
	return GallicWeight{Str: str, W: w}
}

func (g GallicWeight) Zero() Weight {
	return GallicWeight{Str: g.Str.Zero().(StringWeight), W: g.W.Zero()}
}

func (g GallicWeight) One() Weight {
	return GallicWeight{Str: g.Str.One().(StringWeight), W: g.W.One()}
}

func (g GallicWeight) Plus(other Weight) Weight {
	o := other.(GallicWeight)
	return GallicWeight{
		Str: g.Str.Plus(o.Str).(StringWeight),
		W:   g.W.Plus(o.W),
	}
}

func (g GallicWeight) Times(other Weight) Weight {
	o := other.(GallicWeight)
	return GallicWeight{
		Str: g.Str.Times(o.Str).(StringWeight),
		W:   g.W.Times(o.W),
	}
}

func (g GallicWeight) Member() bool { return g.Str.Member() && g.W.Member() }

func (g GallicWeight) Reverse() Weight {
	return GallicWeight{Str: g.Str.Reverse().(StringWeight), W: g.W.Reverse()}
}

func (g GallicWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(GallicWeight)
	return g.Str.ApproxEqual(o.Str, delta) && g.W.ApproxEqual(o.W, delta)
}

func (g GallicWeight) Quantize(delta float64) Weight {
	return GallicWeight{Str: g.Str.Quantize(delta).(StringWeight), W: g.W.Quantize(delta)}
}

func (g GallicWeight) Hash() string { return g.Str.Hash() + "/" + g.W.Hash() }

func (g GallicWeight) Properties() Properties {
	return g.Str.Properties() & g.W.Properties()
}

func (g GallicWeight) String() string { return g.Hash() }

// Divide implements Divisible componentwise: the string component strips
// the divisor's string, the weight component defers to the underlying
// semiring's Divide. Needed by Determinize's residual computation on the
// Gallic-acceptor path.
func (g GallicWeight) Divide(rhs Weight, side DivideSide) (Weight, error) {
	o := rhs.(GallicWeight)
	str, err := g.Str.Divide(o.Str, side)
	if err != nil {
		return nil, err
	}
	dw, ok := g.W.(Divisible)
	if !ok {
		return nil, notDivisibleErr("gallic underlying")
	}
	w, err := dw.Divide(o.W, side)
	if err != nil {
		return nil, err
	}
	return GallicWeight{Str: str.(StringWeight), W: w}, nil
}

var _ Divisible = GallicWeight{}

// CommonDivisor implements the "common divisor" policy Determinize needs
// for Gallic weights over a min-ordered underlying semiring: the longest
// common prefix of the string components, paired with the underlying
// semiring's Plus of the weight components.
func (g GallicWeight) CommonDivisor(other GallicWeight) GallicWeight {
	leftMode := g.Str
	leftMode.Mode = StringLeft
	otherLeft := other.Str
	otherLeft.Mode = StringLeft
	return GallicWeight{
		Str: leftMode.Plus(otherLeft).(StringWeight),
		W:   g.W.Plus(other.W),
	}
}
