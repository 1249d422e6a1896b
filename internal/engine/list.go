package engine

import (
	"bytes"
	"strconv"
)

// LPush prepends values to key's list such that values itself becomes the
// new head in the given order — LPUSH k a b c on an existing list turns
// [x y] into [a b c x y]. Creates the list if key is absent. Returns the
// new length.
func (e *Engine) LPush(key string, values [][]byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	cur := e.lists[key]
	next := make([][]byte, 0, len(values)+len(cur))
	next = append(next, values...)
	next = append(next, cur...)
	e.lists[key] = next
	return len(next)
}

// RPush appends values to key's list in order. Creates the list if key is
// absent. Returns the new length.
func (e *Engine) RPush(key string, values [][]byte) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	e.lists[key] = append(e.lists[key], values...)
	return len(e.lists[key])
}

// LPop removes and returns the head of key's list. Reports absence if key
// is missing or its list is empty.
func (e *Engine) LPop(key string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	list := e.lists[key]
	if len(list) == 0 {
		return nil, false
	}
	v := list[0]
	e.lists[key] = list[1:]
	return v, true
}

// RPop removes and returns the tail of key's list. Reports absence if key
// is missing or its list is empty.
func (e *Engine) RPop(key string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	list := e.lists[key]
	if len(list) == 0 {
		return nil, false
	}
	v := list[len(list)-1]
	e.lists[key] = list[:len(list)-1]
	return v, true
}

// LLen reports key's list length, or -1 if key is not a list.
func (e *Engine) LLen(key string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	list, ok := e.lists[key]
	if !ok {
		return -1
	}
	return len(list)
}

// LIndex returns the element at index i (negative indexes from the tail,
// -1 = last). Reports absence if key is not a list or i is out of range.
func (e *Engine) LIndex(key string, iText string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	i, err := strconv.Atoi(iText)
	if err != nil {
		return nil, false
	}
	list, ok := e.lists[key]
	if !ok {
		return nil, false
	}
	idx := normalizeIndex(i, len(list))
	if idx < 0 || idx >= len(list) {
		return nil, false
	}
	return list[idx], true
}

// LSet overwrites the element at index i (negative indexes from the tail).
// Fails if key is not a list or i is out of range.
func (e *Engine) LSet(key string, iText string, value []byte) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	i, err := strconv.Atoi(iText)
	if err != nil {
		return false
	}
	list, ok := e.lists[key]
	if !ok {
		return false
	}
	idx := normalizeIndex(i, len(list))
	if idx < 0 || idx >= len(list) {
		return false
	}
	list[idx] = value
	return true
}

// LRange returns the inclusive range [start, stop] with negative indexing,
// clamped so start = max(0, start) and stop = min(size-1, stop). If the
// clamped range is empty (start > stop), LRange reports absence rather than
// an empty slice — a deliberate preservation of the source's quirk (§9
// OQ-5). Non-numeric bounds also report absence.
func (e *Engine) LRange(key, startText, stopText string) ([][]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	start, err := strconv.Atoi(startText)
	if err != nil {
		return nil, false
	}
	stop, err := strconv.Atoi(stopText)
	if err != nil {
		return nil, false
	}
	list, ok := e.lists[key]
	if !ok {
		return nil, false
	}
	n := len(list)
	start = normalizeIndex(start, n)
	stop = normalizeIndex(stop, n)
	if start < 0 {
		start = 0
	}
	if stop > n-1 {
		stop = n - 1
	}
	if start > stop {
		return nil, false
	}

	out := make([][]byte, stop-start+1)
	copy(out, list[start:stop+1])
	return out, true
}

// LRem removes elements of key's list equal to value. count > 0 removes the
// first count matches scanning head-to-tail; count < 0 removes the first
// |count| matches scanning tail-to-head; count == 0 removes every match.
// countText is parsed as a signed integer here (rather than by the
// dispatcher) because LREM is one of the ops spec.md §4.2 groups under
// engine-level numeric-parse failure; ok is false only for non-numeric
// countText, never for a missing key (which legitimately returns 0
// removed).
func (e *Engine) LRem(key string, value []byte, countText string) (removed int, ok bool) {
	count, err := strconv.Atoi(countText)
	if err != nil {
		return 0, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.expireIfDueLocked(key)

	list, exists := e.lists[key]
	if !exists {
		return 0, true
	}

	out := make([][]byte, 0, len(list))

	switch {
	case count == 0:
		for _, v := range list {
			if bytes.Equal(v, value) {
				removed++
				continue
			}
			out = append(out, v)
		}
	case count > 0:
		limit := count
		for _, v := range list {
			if limit > 0 && bytes.Equal(v, value) {
				removed++
				limit--
				continue
			}
			out = append(out, v)
		}
	default: // count < 0: scan tail-to-head
		limit := -count
		keep := make([]bool, len(list))
		for i := range keep {
			keep[i] = true
		}
		for i := len(list) - 1; i >= 0 && limit > 0; i-- {
			if bytes.Equal(list[i], value) {
				keep[i] = false
				removed++
				limit--
			}
		}
		for i, v := range list {
			if keep[i] {
				out = append(out, v)
			}
		}
	}

	e.lists[key] = out
	return removed, true
}

// normalizeIndex resolves a possibly-negative index against a list of
// length n (negative counts from the tail; -1 is the last element). The
// caller is responsible for bounds-checking the result against [0, n).
func normalizeIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}
