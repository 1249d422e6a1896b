// Package engine implements the shared, in-memory data store: three typed
// keyspaces (scalar, list, hash) plus an expiry index, all guarded by a
// single mutex. Every exported method is one atomic operation — no method
// calls another exported method while holding the lock, and the lock is
// never re-acquired recursively.
package engine

import (
	"strconv"
	"sync"
	"time"
)

// Engine is a process-lifetime value, not a package singleton: callers
// construct one with New and pass it down explicitly. Tests get a fresh,
// isolated Engine per case.
type Engine struct {
	mu sync.Mutex

	scalars map[string][]byte
	lists   map[string][][]byte
	hashes  map[string]map[string][]byte

	expiry *expiryScheduler

	// now is overridable in tests so expiry behavior doesn't depend on wall
	// clock timing.
	now func() time.Time
}

// New constructs an empty Engine.
func New() *Engine {
	return &Engine{
		scalars: make(map[string][]byte),
		lists:   make(map[string][][]byte),
		hashes:  make(map[string]map[string][]byte),
		expiry:  newExpiryScheduler(),
		now:     time.Now,
	}
}

// Type reports which keyspace key lives in, using the fixed priority order
// scalar → list → hash → none (§3 invariant 1). Expired keys are lazily
// evicted first, so Type never reports a key past its deadline.
func (e *Engine) Type(key string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	if _, ok := e.scalars[key]; ok {
		return "string"
	}
	if _, ok := e.lists[key]; ok {
		return "list"
	}
	if _, ok := e.hashes[key]; ok {
		return "hash"
	}
	return "none"
}

// Keys enumerates every key across all three keyspaces. A key present in
// more than one keyspace (possible under the soft type-exclusivity
// invariant) appears once per keyspace. Order is unspecified.
func (e *Engine) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reapAllLocked()

	keys := make([]string, 0, len(e.scalars)+len(e.lists)+len(e.hashes))
	for k := range e.scalars {
		keys = append(keys, k)
	}
	for k := range e.lists {
		keys = append(keys, k)
	}
	for k := range e.hashes {
		keys = append(keys, k)
	}
	return keys
}

// Del removes key from every keyspace and the expiry index in one atomic
// step (invariant 2). It reports whether anything was actually removed.
func (e *Engine) Del(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed := false
	if _, ok := e.scalars[key]; ok {
		delete(e.scalars, key)
		removed = true
	}
	if _, ok := e.lists[key]; ok {
		delete(e.lists, key)
		removed = true
	}
	if _, ok := e.hashes[key]; ok {
		delete(e.hashes, key)
		removed = true
	}
	e.expiry.remove(key)
	return removed
}

// Expire records a deadline of now+seconds for key, provided key exists in
// at least one keyspace. seconds is parsed as a signed decimal integer;
// non-numeric input or a missing key both report failure.
func (e *Engine) Expire(key string, secondsText string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	if !e.existsLocked(key) {
		return false
	}
	seconds, err := strconv.ParseInt(secondsText, 10, 64)
	if err != nil {
		return false
	}
	e.expiry.set(key, e.now().Add(time.Duration(seconds)*time.Second))
	return true
}

// Rename moves src's value (from whichever keyspace it is found in first,
// scalar → list → hash) to dst. Requires src to exist somewhere and dst to
// exist nowhere (invariant 3). On success, any expiry entry for src is
// re-keyed to dst. Matches the source quirk where a src present in more
// than one keyspace only has its first match moved (§9).
func (e *Engine) Rename(src, dst string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(src)
	e.expireIfDueLocked(dst)

	if e.existsLocked(dst) {
		return false
	}

	if v, ok := e.scalars[src]; ok {
		delete(e.scalars, src)
		e.scalars[dst] = v
	} else if v, ok := e.lists[src]; ok {
		delete(e.lists, src)
		e.lists[dst] = v
	} else if v, ok := e.hashes[src]; ok {
		delete(e.hashes, src)
		e.hashes[dst] = v
	} else {
		return false
	}

	if when, ok := e.expiry.deadline(src); ok {
		e.expiry.remove(src)
		e.expiry.set(dst, when)
	}
	return true
}

// FlushAll empties all three keyspaces and the expiry index. Clearing the
// expiry index on flush is a deliberate divergence from the source (which
// left expiry_map untouched) — see SPEC_FULL.md's Open Question OQ-3.
func (e *Engine) FlushAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scalars = make(map[string][]byte)
	e.lists = make(map[string][][]byte)
	e.hashes = make(map[string]map[string][]byte)
	e.expiry.clear()
}

// Ping returns the fixed PONG reply payload.
func (e *Engine) Ping() string { return "PONG" }

// Echo returns msg unchanged.
func (e *Engine) Echo(msg string) string { return msg }

// Dev returns a constant diagnostic string.
func (e *Engine) Dev() string { return "ramdb" }

// Reap actively evicts every key whose deadline is at or before at,
// returning how many keys were removed. Intended to be called periodically
// by the process entry point; lazy eviction on access means correctness
// never depends on Reap running promptly.
func (e *Engine) Reap(at time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	due := e.expiry.dueKeys(at)
	for _, key := range due {
		delete(e.scalars, key)
		delete(e.lists, key)
		delete(e.hashes, key)
	}
	return len(due)
}

// existsLocked reports whether key is present in any keyspace. Caller must
// hold e.mu.
func (e *Engine) existsLocked(key string) bool {
	if _, ok := e.scalars[key]; ok {
		return true
	}
	if _, ok := e.lists[key]; ok {
		return true
	}
	if _, ok := e.hashes[key]; ok {
		return true
	}
	return false
}

// expireIfDueLocked lazily evicts key if its recorded deadline has passed.
// Caller must hold e.mu.
func (e *Engine) expireIfDueLocked(key string) {
	when, ok := e.expiry.deadline(key)
	if !ok || when.After(e.now()) {
		return
	}
	delete(e.scalars, key)
	delete(e.lists, key)
	delete(e.hashes, key)
	e.expiry.remove(key)
}

// reapAllLocked lazily expires every key with a due deadline. Used by Keys,
// which otherwise has no single key to check against.
func (e *Engine) reapAllLocked() {
	now := e.now()
	due := e.expiry.dueKeys(now)
	for _, key := range due {
		delete(e.scalars, key)
		delete(e.lists, key)
		delete(e.hashes, key)
	}
}
