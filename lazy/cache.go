package lazy

import (
	"sync"

	"github.com/wstrand/gofst/fst"
	"github.com/wstrand/gofst/semiring"
)

type cacheEntry struct {
	trs        []fst.Tr
	trsKnown   bool
	final      semiring.Weight
	finalKnown bool
}

// Cache stores, per output state id, the results of an FstOp's three
// computations once obtained. The
// reference implementation here is a map guarded by a mutex, optionally
// bounded by Cap: once the number of states with known transitions
// exceeds Cap, the least-recently-touched entry's transitions are
// evicted (the state id itself, and its final weight, are kept — only
// the (re-computable) transition list is dropped — so a subsequent
// GetTrs miss simply re-asks the Op).
type Cache struct {
	mu         sync.Mutex
	cap        int
	lru        *lruList
	start      fst.StateId
	hasStart   bool
	startKnown bool
	entries    map[fst.StateId]*cacheEntry
}

// NewCache returns a cache holding at most cap expanded states, evicting
// the least recently used one beyond that. cap<=0 means unbounded.
func NewCache(cap int) *Cache {
	c := &Cache{cap: cap, entries: make(map[fst.StateId]*cacheEntry)}
	if cap > 0 {
		c.lru = newLRUList()
	}
	return c
}

func (c *Cache) entry(q fst.StateId) *cacheEntry {
	e, ok := c.entries[q]
	if !ok {
		e = &cacheEntry{}
		c.entries[q] = e
	}
	return e
}

// GetStart/InsertStart cache the output Fst's start state.
func (c *Cache) GetStart() (fst.StateId, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start, c.hasStart, c.startKnown
}

func (c *Cache) InsertStart(id fst.StateId, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start, c.hasStart, c.startKnown = id, ok, true
	if ok {
		c.entry(id) // the start state is now a known state
	}
}

// GetTrs returns q's cached transitions, or ok=false on a miss.
func (c *Cache) GetTrs(q fst.StateId) ([]fst.Tr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[q]
	if !ok || !e.trsKnown {
		return nil, false
	}
	if c.lru != nil {
		c.lru.touch(q)
	}
	return e.trs, true
}

// InsertTrs caches q's transitions, evicting the LRU entry if Cap is set
// and exceeded.
func (c *Cache) InsertTrs(q fst.StateId, trs []fst.Tr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(q)
	e.trs = trs
	e.trsKnown = true
	if c.lru == nil {
		return
	}
	c.lru.touch(q)
	for c.numKnownLocked() > c.cap {
		evict, ok := c.lru.evictOldest()
		if !ok || evict == q {
			break
		}
		if ev, ok := c.entries[evict]; ok {
			ev.trs = nil
			ev.trsKnown = false
		}
	}
}

// GetFinalWeight returns q's cached final weight; the third return
// value reports whether q's final-ness has been computed at all.
func (c *Cache) GetFinalWeight(q fst.StateId) (semiring.Weight, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[q]
	if !ok || !e.finalKnown {
		return nil, false, false
	}
	return e.final, e.final != nil, true
}

func (c *Cache) InsertFinalWeight(q fst.StateId, w semiring.Weight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(q)
	e.final = w
	e.finalKnown = true
}

// NumKnownStates reports how many distinct state ids have any cached
// data at all.
func (c *Cache) NumKnownStates() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) numKnownLocked() int {
	n := 0
	for _, e := range c.entries {
		if e.trsKnown {
			n++
		}
	}
	return n
}

// NumTrs/NumInputEpsilons/NumOutputEpsilons report on a state whose
// transitions are already cached; callers must have done a GetTrs first
// if they need to guarantee it's populated.
func (c *Cache) NumTrs(q fst.StateId) (int, bool) {
	trs, ok := c.GetTrs(q)
	if !ok {
		return 0, false
	}
	return len(trs), true
}

func (c *Cache) NumInputEpsilons(q fst.StateId) (int, bool) {
	trs, ok := c.GetTrs(q)
	if !ok {
		return 0, false
	}
	n := 0
	for _, tr := range trs {
		if tr.Ilabel == fst.EpsLabel {
			n++
		}
	}
	return n, true
}

func (c *Cache) NumOutputEpsilons(q fst.StateId) (int, bool) {
	trs, ok := c.GetTrs(q)
	if !ok {
		return 0, false
	}
	n := 0
	for _, tr := range trs {
		if tr.Olabel == fst.EpsLabel {
			n++
		}
	}
	return n, true
}
