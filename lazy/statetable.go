// Package lazy provides the on-demand FST construction framework: an
// FstOp computes a state's transitions/final weight/start on
// request, a Cache remembers what has been computed so far (optionally
// bounded by an LRU eviction cap), and LazyFst exposes the pair as a
// read-only fst.Fst, expanding on cache miss.
package lazy

import (
	"container/list"
	"sync"

	"github.com/wstrand/gofst/fst"
)

// StateTable is a bidirectional mapping from an algorithm's logical key
// (a composition pair (q1,q2,filterState), a determinization weighted
// subset, a factor-weight (state,residual) pair, ...) to a dense
// fst.StateId, assigning the next id the first time a key is seen.
// Safe for concurrent use.
type StateTable[K comparable] struct {
	mu    sync.Mutex
	idOf  map[K]fst.StateId
	keyOf []K
}

// NewStateTable returns an empty table.
func NewStateTable[K comparable]() *StateTable[K] {
	return &StateTable[K]{idOf: make(map[K]fst.StateId)}
}

// IdFor returns key's existing id, or allocates the next one.
func (t *StateTable[K]) IdFor(key K) (id fst.StateId, isNew bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.idOf[key]; ok {
		return id, false
	}
	id = fst.StateId(len(t.keyOf))
	t.idOf[key] = id
	t.keyOf = append(t.keyOf, key)
	return id, true
}

// KeyFor returns the logical key for a known id.
func (t *StateTable[K]) KeyFor(id fst.StateId) (key K, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) < 0 || int(id) >= len(t.keyOf) {
		return key, false
	}
	return t.keyOf[id], true
}

// Size reports how many keys have been assigned ids so far.
func (t *StateTable[K]) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keyOf)
}

// lruList backs the Cache's optional bounded eviction; kept here
// since both Cache and any future table-backed cache variant can share
// the same small LRU helper.
type lruList struct {
	l     *list.List
	elems map[fst.StateId]*list.Element
}

func newLRUList() *lruList {
	return &lruList{l: list.New(), elems: make(map[fst.StateId]*list.Element)}
}

func (r *lruList) touch(id fst.StateId) {
	if e, ok := r.elems[id]; ok {
		r.l.MoveToFront(e)
		return
	}
	r.elems[id] = r.l.PushFront(id)
}

func (r *lruList) evictOldest() (fst.StateId, bool) {
	back := r.l.Back()
	if back == nil {
		return 0, false
	}
	id := back.Value.(fst.StateId)
	r.l.Remove(back)
	delete(r.elems, id)
	return id, true
}

func (r *lruList) remove(id fst.StateId) {
	if e, ok := r.elems[id]; ok {
		r.l.Remove(e)
		delete(r.elems, id)
	}
}
