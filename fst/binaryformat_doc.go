package fst

// This file documents the on-disk wire layout an external codec
// package would target. gofst's core deliberately
// does not implement a reader or writer; VectorFst/ConstFst are
// shaped so such a codec could be layered on top without changing either
// representation.
//
// Header, in order:
//
//	magic        int32   little-endian, value 2125659606
//	fst type     string  length-prefixed UTF-8: "vector" or "const"
//	tr type      string  length-prefixed UTF-8, names the semiring
//	             ("standard" for Tropical)
//	version      int32   >= 2 for both vector and const forms
//	flags        uint32  bit 0: HAS_ISYMBOLS, bit 1: HAS_OSYMBOLS
//	properties   uint64
//	start        int64   -1 means none
//	num states   uint64
//	num trs      uint64
//	[isymbols]   present iff HAS_ISYMBOLS: length-prefixed list of
//	             (string, int64 label) pairs
//	[osymbols]   present iff HAS_OSYMBOLS: same format
//
// Body, vector form: per state in order, final weight (semiring-specific
// serialization), transition count, then that many (ilabel int32, olabel
// int32, weight, nextstate int32) records.
//
// Body, const form: an array of per-state records (final weight,
// transition offset int32, transition count int32, iepsilon count int32,
// oepsilon count int32), followed by the packed transition array in the
// same (ilabel, olabel, weight, nextstate) shape. The unaligned layout is
// emitted by default; an aligned variant pads between sections to an
// architecture-specific boundary and is distinguished by a separate
// version number, which this package does not assign since it never
// writes the aligned form.
