package semiring

import (
	"math"
	"strconv"
)

// TropicalWeight is ⟨ℝ∪{+∞}, min, +, +∞, 0⟩: idempotent, Path. The
// workhorse semiring for shortest-path style problems (edge cost = +,
// path comparison = min).
type TropicalWeight float64

// TropicalZero is the ⊕-identity (+∞): no path.
var TropicalZero TropicalWeight = TropicalWeight(math.Inf(1))

// TropicalOne is the ⊗-identity (0): the empty path.
const TropicalOne TropicalWeight = 0

func (w TropicalWeight) Plus(other Weight) Weight {
	o := other.(TropicalWeight)
	if w < o {
		return w
	}
	return o
}

func (w TropicalWeight) Times(other Weight) Weight {
	o := other.(TropicalWeight)
	if math.IsInf(float64(w), 1) || math.IsInf(float64(o), 1) {
		return TropicalZero
	}
	return w + o
}

func (w TropicalWeight) Zero() Weight { return TropicalZero }
func (w TropicalWeight) One() Weight  { return TropicalOne }

func (w TropicalWeight) Member() bool {
	return !math.IsNaN(float64(w)) && !math.IsInf(float64(w), -1)
}

// Reverse is the identity map: the tropical semiring's reverse semiring is
// itself, and path weight (a sum of costs) is unaffected by traversal
// direction.
func (w TropicalWeight) Reverse() Weight { return w }

func (w TropicalWeight) ApproxEqual(other Weight, delta float64) bool {
	o := other.(TropicalWeight)
	if math.IsInf(float64(w), 1) || math.IsInf(float64(o), 1) {
		return math.IsInf(float64(w), 1) == math.IsInf(float64(o), 1)
	}
	return math.Abs(float64(w)-float64(o)) <= delta
}

func (w TropicalWeight) Quantize(delta float64) Weight {
	if math.IsInf(float64(w), 1) || delta <= 0 {
		return w
	}
	return TropicalWeight(math.Round(float64(w)/delta) * delta)
}

func (w TropicalWeight) Hash() string {
	if math.IsInf(float64(w), 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(float64(w), 'g', -1, 64)
}

func (w TropicalWeight) Properties() Properties {
	return LeftSemiring | RightSemiring | Idempotent | Path
}

func (w TropicalWeight) String() string { return w.Hash() }

// Divide implements Divisible: Tropical ⊗ is +, so division is subtraction.
func (w TropicalWeight) Divide(rhs Weight, _ DivideSide) (Weight, error) {
	r := rhs.(TropicalWeight)
	if math.IsInf(float64(r), 1) {
		return nil, divideByZeroErr("tropical")
	}
	if math.IsInf(float64(w), 1) {
		return TropicalZero, nil
	}
	return TropicalWeight(float64(w) - float64(r)), nil
}

// Closure implements StarSemiring. a* = ⊕_{n≥0} n·a = min(0, a, 2a, ...).
// For a ≥ 0 this converges to One; for a < 0 the sum is unbounded below
// and the result is -Inf, a non-Member value RmEpsilon rejects as a
// diverging epsilon cycle.
func (w TropicalWeight) Closure() Weight {
	if w >= 0 {
		return TropicalOne
	}
	return TropicalWeight(math.Inf(-1))
}

// Less implements NaturalOrder: ⊕ is min, so the natural order is <.
func (w TropicalWeight) Less(other Weight) bool { return w < other.(TropicalWeight) }

var _ Divisible = TropicalWeight(0)
var _ StarSemiring = TropicalWeight(0)
var _ NaturalOrder = TropicalWeight(0)
