// Package visit provides the traversal primitives the algorithm library
// builds on: a filtered three-color DFS visitor and a Tarjan-style SCC
// pass. The DFS uses an explicit stack instead of recursion, so the
// traversal depth is bounded by heap rather than goroutine stack growth.
package visit
