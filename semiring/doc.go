// Package semiring provides the algebraic weight types every gofst algorithm
// is parameterized by.
//
// A Weight is a value drawn from a semiring ⟨S, ⊕, ⊗, 0̄, 1̄⟩: ⊕ (Plus) is
// associative and commutative with identity Zero; ⊗ (Times) is associative
// with identity One; ⊗ distributes over ⊕; Zero annihilates ⊗. Concrete
// instances (Tropical, Log, Probability, Boolean, Integer, String, Gallic,
// Product, Power, Lexicographic) declare which additional algebraic laws
// they satisfy via Properties, and the algorithm library gates itself on
// those declarations — Determinize requires LeftSemiring, ShortestPath's
// single-best-path fast path additionally requires Path.
//
// Weights that are weakly divisible additionally implement Divisible;
// weights admitting an infinite-sum closure additionally implement
// StarSemiring. Both are optional, type-asserted extensions rather than
// required Weight methods, since most algorithms never need them.
package semiring
