package engine

// Export returns a point-in-time copy of all three keyspaces, taken under
// the engine mutex so a concurrent writer never produces a torn view (§5:
// "a dump is a consistent point-in-time view"). Intended for the snapshot
// codec; callers must not mutate the returned maps.
func (e *Engine) Export() (scalars map[string][]byte, lists map[string][][]byte, hashes map[string]map[string][]byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	scalars = make(map[string][]byte, len(e.scalars))
	for k, v := range e.scalars {
		scalars[k] = v
	}
	lists = make(map[string][][]byte, len(e.lists))
	for k, v := range e.lists {
		lists[k] = append([][]byte(nil), v...)
	}
	hashes = make(map[string]map[string][]byte, len(e.hashes))
	for k, v := range e.hashes {
		h := make(map[string][]byte, len(v))
		for f, fv := range v {
			h[f] = fv
		}
		hashes[k] = h
	}
	return scalars, lists, hashes
}

// Import replaces all three keyspaces with the given contents and clears
// the expiry index, under the engine mutex. Used by the snapshot loader.
// Clearing the expiry index on load (rather than leaving it untouched) is
// the OQ-3 divergence from the source documented in SPEC_FULL.md.
func (e *Engine) Import(scalars map[string][]byte, lists map[string][][]byte, hashes map[string]map[string][]byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if scalars == nil {
		scalars = make(map[string][]byte)
	}
	if lists == nil {
		lists = make(map[string][][]byte)
	}
	if hashes == nil {
		hashes = make(map[string]map[string][]byte)
	}
	e.scalars = scalars
	e.lists = lists
	e.hashes = hashes
	e.expiry.clear()
}
