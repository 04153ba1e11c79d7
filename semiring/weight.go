package semiring

// Properties is a bitset of algebraic laws a semiring declares. Algorithms
// gate themselves on these bits rather than switching on concrete types.
type Properties uint8

const (
	// LeftSemiring: ⊗ distributes over ⊕ on the left.
	LeftSemiring Properties = 1 << iota
	// RightSemiring: ⊗ distributes over ⊕ on the right.
	RightSemiring
	// Commutative: ⊗ is commutative.
	Commutative
	// Idempotent: a ⊕ a = a for all a.
	Idempotent
	// Path: the semiring induces a total order via ⊕ = min/max of a
	// natural order, so "the" shortest path is well defined.
	Path
)

// Has reports whether p declares every bit in want.
func (p Properties) Has(want Properties) bool { return p&want == want }

// DefaultQuantizeDelta is used by algorithms (Determinize,
// ShortestDistance) that need to canonicalize float weights before hashing
// them, unless the caller overrides it per call.
//
// Open Question: callers may want to override per call; Determinize takes
// DeterminizeOptions.Delta and ShortestDistance, ShortestDistanceToFinal
// and PushWeights take a WithDelta functional option. RmEpsilon always
// uses this constant.
const DefaultQuantizeDelta = 1e-6

// Weight is the value every Tr and final-state weight carries. Concrete
// semirings (TropicalWeight, LogWeight, ...) are small value types
// implementing this interface; Plus/Times/Reverse/Quantize all return a new
// value rather than mutating the receiver.
type Weight interface {
	// Plus is the semiring's ⊕.
	Plus(other Weight) Weight
	// Times is the semiring's ⊗.
	Times(other Weight) Weight
	// Zero returns the ⊕-identity of this weight's semiring.
	Zero() Weight
	// One returns the ⊗-identity of this weight's semiring.
	One() Weight
	// Member reports whether the value is valid (e.g. not NaN).
	Member() bool
	// Reverse produces the corresponding value in the reverse semiring
	// used by the Reverse algorithm, so path weights stay equal under
	// traversal reversal.
	Reverse() Weight
	// ApproxEqual reports approximate equality within delta.
	ApproxEqual(other Weight, delta float64) bool
	// Quantize canonicalizes a float-valued weight to a delta-wide grid,
	// so that two numerically-close weights hash identically. A no-op
	// for exact (non-float) semirings.
	Quantize(delta float64) Weight
	// Hash returns a canonical string form suitable as a map key; two
	// weights that ApproxEqual after Quantize(delta) must produce the
	// same Hash after being Quantized with the same delta.
	Hash() string
	// Properties reports the algebraic laws this semiring declares.
	Properties() Properties
	// String renders a human-readable form for diagnostics.
	String() string
}

// DivideSide selects which side of the product lhs = rhs⊗z (or z⊗rhs)
// the division solves for.
type DivideSide int

const (
	// DivideLeft solves lhs = rhs ⊗ z for z (the divisor sits on the
	// left of the product being undone).
	DivideLeft DivideSide = iota
	// DivideRight solves lhs = z ⊗ rhs for z.
	DivideRight
)

// Divisible is implemented by weakly-divisible semirings.
type Divisible interface {
	Weight
	// Divide computes z such that lhs = rhs ⊗ z (or lhs = z ⊗ rhs for
	// DivideRight), where lhs is the receiver.
	// Returns an error (ferr kind Semiring) dividing by Zero.
	Divide(rhs Weight, side DivideSide) (Weight, error)
}

// NaturalOrder is the order ⊕ induces on a Path semiring (a ≤ b iff
// a⊕b == a), which ShortestPath uses to pick "the" minimal-weight path
// deterministically. Only TropicalWeight implements it; BooleanWeight and
// LexicographicWeight declare Path without implementing it.
type NaturalOrder interface {
	Weight
	// Less reports whether the receiver precedes other in the natural
	// order induced by ⊕.
	Less(other Weight) bool
}

// StarSemiring is implemented by semirings admitting a closure operator
// a* = ⊕_{n≥0} a^n such that a* = 1̄ ⊕ a⊗a* (glossary "Star semiring"),
// required by RmEpsilon and all-pairs ShortestDistance.
type StarSemiring interface {
	Weight
	// Closure computes a* for the receiver a.
	Closure() Weight
}
