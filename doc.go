// Package gofst is a library for building, transforming, and querying
// weighted finite-state transducers (WFSTs).
//
// A WFST reads a sequence of input labels, writes a sequence of output
// labels, and accumulates a path weight in some semiring — the tropical
// semiring for shortest-path search, the log semiring for summing over
// alternatives, the string semiring for labeling, and so on. gofst
// follows the design of OpenFst: a small read-only Fst interface that
// every concrete and lazily-computed representation implements, and an
// algorithm library written entirely against that interface.
//
// Everything is organized under focused subpackages:
//
//	semiring/   — the Weight algebra (Tropical, Log, String, Gallic, ...)
//	symtab/     — refcounted, shareable symbol tables
//	fst/        — the Fst interface, Tr/StateId/Properties, VectorFst (mutable)
//	             and ConstFst (immutable, contiguous)
//	visit/      — DFS/SCC traversal primitives the algorithms share
//	algorithms/ — Connect, TopSort, RmEpsilon, Determinize, ShortestPath,
//	             PushWeights, FactorWeight, and the rest of the catalogue
//	lazy/       — the on-demand FstOp/Cache/LazyFst framework algorithms
//	             that can't afford to expand their whole output use
//	compose/    — WFST composition: matchers, epsilon-disambiguating
//	             compose filters, and the lazy ComposeFst
//	ferr/       — the shared error-kind taxonomy every package returns
//
// A minimal example: build a two-state acceptor over the tropical
// semiring, remove its epsilons, and find its shortest path.
//
//	f := fst.NewVectorFst()
//	s0, s1 := f.AddState(), f.AddState()
//	f.SetStart(s0)
//	f.SetFinal(s1, semiring.TropicalWeight(0))
//	f.AddTr(s0, fst.Tr{Ilabel: 1, Olabel: 1, Weight: semiring.TropicalWeight(2.5), NextState: s1})
//
//	noEps, err := algorithms.RmEpsilon(f)
//	best, err := algorithms.ShortestPath(noEps, algorithms.ShortestPathOptions{NShortest: 1})
package gofst
