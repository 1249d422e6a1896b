package engine

// Set unconditionally overwrites key's scalar value. Does not touch the
// list or hash keyspaces even if key already exists there.
func (e *Engine) Set(key string, value []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	e.scalars[key] = value
}

// Get returns key's scalar value, or ok=false if key has no scalar value
// (whether absent entirely or present only in another keyspace).
func (e *Engine) Get(key string) (value []byte, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	v, ok := e.scalars[key]
	return v, ok
}
