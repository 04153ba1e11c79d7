// Package algorithms implements the weighted-transducer algorithm library
// over the fst.Fst interface: connection, sorting and the
// classic rational operations (union, concat, closure, reverse), label
// projection/inversion/relabeling, epsilon removal, shortest distance and
// shortest path, weight pushing, factor weight, determinization and
// encoding, and isomorphism checking.
//
// Every mutator works in place on a *fst.VectorFst. Property bits are
// kept by VectorFst's own per-call updates (AddState, AddTr, SetFinal,
// DeleteStates, ...); only some mutators (Connect, TopSort, Project,
// Invert, Relabel, Encode among them) adjust the bits again with
// SetProperties at the end of their body.
package algorithms
