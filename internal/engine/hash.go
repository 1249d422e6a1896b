package engine

import "fmt"

// HSet unconditionally overwrites field within key's hash, creating the
// hash if key is absent.
func (e *Engine) HSet(key, field string, value []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h, ok := e.hashes[key]
	if !ok {
		h = make(map[string][]byte)
		e.hashes[key] = h
	}
	h[field] = value
}

// HGet returns field's value within key's hash, or ok=false if either the
// hash or the field is absent.
func (e *Engine) HGet(key, field string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h, ok := e.hashes[key]
	if !ok {
		return nil, false
	}
	v, ok := h[field]
	return v, ok
}

// HDel removes field from key's hash, reporting whether it was present.
func (e *Engine) HDel(key, field string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h, ok := e.hashes[key]
	if !ok {
		return false
	}
	if _, ok := h[field]; !ok {
		return false
	}
	delete(h, field)
	return true
}

// HExists reports whether field is present within key's hash.
func (e *Engine) HExists(key, field string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h, ok := e.hashes[key]
	if !ok {
		return false
	}
	_, ok = h[field]
	return ok
}

// HLen reports the number of fields in key's hash (0 if absent).
func (e *Engine) HLen(key string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	return len(e.hashes[key])
}

// HKeys returns key's field names. Order is unspecified.
func (e *Engine) HKeys(key string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h := e.hashes[key]
	out := make([]string, 0, len(h))
	for f := range h {
		out = append(out, f)
	}
	return out
}

// HVals returns key's field values. Order is unspecified but is not tied
// to HKeys' order.
func (e *Engine) HVals(key string) [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h := e.hashes[key]
	out := make([][]byte, 0, len(h))
	for _, v := range h {
		out = append(out, v)
	}
	return out
}

// HGetAll returns key's fields interleaved with their values: field, value,
// field, value, ... Each field is guaranteed adjacent to its own value.
func (e *Engine) HGetAll(key string) [][]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h := e.hashes[key]
	out := make([][]byte, 0, len(h)*2)
	for f, v := range h {
		out = append(out, []byte(f), v)
	}
	return out
}

// HMSet sets every (field, value) pair atomically with respect to other
// commands (the whole call runs under one mutex acquisition). pairs must
// have an even length — callers are responsible for enforcing HMSET's
// arity contract before calling HMSet.
func (e *Engine) HMSet(key string, pairs [][]byte) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("HMSet: odd number of field/value arguments (%d)", len(pairs))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	h, ok := e.hashes[key]
	if !ok {
		h = make(map[string][]byte)
		e.hashes[key] = h
	}
	for i := 0; i < len(pairs); i += 2 {
		h[string(pairs[i])] = pairs[i+1]
	}
	return nil
}
