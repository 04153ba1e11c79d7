// Package symtab provides the bidirectional label<->string mapping used
// at FST boundaries: an id2str slice plus a str2id map, grown
// monotonically by AddSymbol. Entry 0 is conventionally "<eps>".
package symtab

import "sync/atomic"

// EpsSymbol is the conventional string for label 0.
const EpsSymbol = "<eps>"

// tableData is the shared, refcounted payload two Tables may point at.
type tableData struct {
	name   string
	id2str []string
	str2id map[string]int64
	refs   int32
}

// Table is a refcounted, shareable label<->string mapping. The zero value
// is not usable; construct with New. Two Tables produced by Share() point
// at the same underlying data, so two FSTs may share one symbol table;
// Clone() produces an independent copy a caller can mutate without
// affecting sharers.
type Table struct {
	d *tableData
}

// New creates a Table with label 0 pre-bound to EpsSymbol.
func New(name string) *Table {
	d := &tableData{
		name:   name,
		id2str: []string{EpsSymbol},
		str2id: map[string]int64{EpsSymbol: 0},
		refs:   1,
	}
	return &Table{d: d}
}

// Name reports the table's diagnostic name.
func (t *Table) Name() string { return t.d.name }

// Share returns a new handle to the same underlying data, incrementing
// the refcount. Mutating through either handle is visible through both —
// callers that want an independent copy should use Clone instead.
func (t *Table) Share() *Table {
	atomic.AddInt32(&t.d.refs, 1)
	return &Table{d: t.d}
}

// Clone returns an independent copy of t; mutating the clone never
// affects t or any of its other sharers.
func (t *Table) Clone() *Table {
	id2str := make([]string, len(t.d.id2str))
	copy(id2str, t.d.id2str)
	str2id := make(map[string]int64, len(t.d.str2id))
	for k, v := range t.d.str2id {
		str2id[k] = v
	}
	return &Table{d: &tableData{name: t.d.name, id2str: id2str, str2id: str2id, refs: 1}}
}

// NumSymbols reports the number of entries, including the epsilon entry.
func (t *Table) NumSymbols() int { return len(t.d.id2str) }

// Find looks up the label bound to sym; ok is false if sym is absent.
func (t *Table) Find(sym string) (label int64, ok bool) {
	label, ok = t.d.str2id[sym]
	return
}

// FindSymbol looks up the string bound to label; ok is false if label is
// out of range.
func (t *Table) FindSymbol(label int64) (sym string, ok bool) {
	if label < 0 || int(label) >= len(t.d.id2str) {
		return "", false
	}
	return t.d.id2str[label], true
}

// AddSymbol binds sym to the next unused label (dense, starting at the
// current NumSymbols) and returns it; if sym is already present, its
// existing label is returned unchanged.
func (t *Table) AddSymbol(sym string) int64 {
	if id, ok := t.d.str2id[sym]; ok {
		return id
	}
	id := int64(len(t.d.id2str))
	t.d.id2str = append(t.d.id2str, sym)
	t.d.str2id[sym] = id
	return id
}

// Symbols returns a defensive copy of the dense label->string slice, in
// label order.
func (t *Table) Symbols() []string {
	out := make([]string, len(t.d.id2str))
	copy(out, t.d.id2str)
	return out
}
