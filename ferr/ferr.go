// Package ferr defines the shared error-kind taxonomy used across gofst.
//
// Every fallible operation in the library returns a plain Go error. Most of
// those errors are package-level sentinels (var ErrX = ferr.New(...)) so
// callers branch with errors.Is, never string comparison. ferr additionally
// lets a caller ask *what class* of failure occurred (bad argument vs.
// semiring mismatch vs. format vs. invariant vs. overflow) without having to
// enumerate every sentinel across every package.
package ferr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Argument marks a bad state id, a missing start state, or sizes that disagree.
	Argument Kind = iota
	// Semiring marks an operation not defined for the semiring in play
	// (e.g. Divide on a non-divisible semiring).
	Semiring
	// Format marks a parsing failure or version mismatch.
	Format
	// Invariant marks a property an algorithm requires that is not
	// declared, or is declared false, on the input.
	Invariant
	// Overflow marks a quantization or precision limit exceeded.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case Argument:
		return "argument"
	case Semiring:
		return "semiring"
	case Format:
		return "format"
	case Invariant:
		return "invariant"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Error is a sentinel error that also carries a Kind.
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Kind reports the failure class of e.
func (e *Error) Kind() Kind { return e.kind }

// New builds a sentinel error of the given kind. The "<pkg>: <message>"
// prefix is the caller's job (e.g. "fst: invalid state id").
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting for one-off diagnostics;
// prefer New with a package-level var for anything callers will match on
// with errors.Is.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err if it (or something it wraps) is a
// *ferr.Error; ok is false otherwise.
func KindOf(err error) (k Kind, ok bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind, true
	}
	return 0, false
}
