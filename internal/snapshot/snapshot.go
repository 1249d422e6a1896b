// Package snapshot implements the textual, line-oriented on-disk format the
// engine is periodically dumped to and loaded from at startup. The format
// is whitespace-separated and lossy for keys/values containing whitespace
// or (for hash pairs) a colon — a deliberate limitation carried over from
// the source, documented in SPEC_FULL.md's Open Questions rather than
// silently re-architected into a binary format.
package snapshot

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/edirooss/ramdb-server/internal/engine"
)

const (
	tagScalar = "K"
	tagList   = "L"
	tagHash   = "H"
)

// Dump writes e's current state to path as a sequence of K/L/H lines.
// Export() takes the engine mutex for the duration of the read, so the
// resulting file is a consistent point-in-time view even under concurrent
// writers (§5).
func Dump(e *engine.Engine, path string) error {
	scalars, lists, hashes := e.Export()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for key, value := range scalars {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", tagScalar, key, value); err != nil {
			return fmt.Errorf("snapshot: write scalar %s: %w", key, err)
		}
	}
	for key, items := range lists {
		if _, err := fmt.Fprintf(w, "%s %s", tagList, key); err != nil {
			return fmt.Errorf("snapshot: write list %s: %w", key, err)
		}
		for _, item := range items {
			if _, err := fmt.Fprintf(w, " %s", item); err != nil {
				return fmt.Errorf("snapshot: write list %s: %w", key, err)
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return fmt.Errorf("snapshot: write list %s: %w", key, err)
		}
	}
	for key, fields := range hashes {
		if _, err := fmt.Fprintf(w, "%s %s", tagHash, key); err != nil {
			return fmt.Errorf("snapshot: write hash %s: %w", key, err)
		}
		for field, value := range fields {
			if _, err := fmt.Fprintf(w, " %s:%s", field, value); err != nil {
				return fmt.Errorf("snapshot: write hash %s: %w", key, err)
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return fmt.Errorf("snapshot: write hash %s: %w", key, err)
		}
	}

	return w.Flush()
}

// Load replaces e's state with the contents of path. A malformed line is
// skipped rather than aborting the whole load; an unrecognized tag is
// skipped too. I/O failure opening the file returns an error without
// touching e's state at all.
func Load(e *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()

	scalars := make(map[string][]byte)
	lists := make(map[string][][]byte)
	hashes := make(map[string]map[string][]byte)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue // malformed: no key
		}

		switch fields[0] {
		case tagScalar:
			if len(fields) < 3 {
				continue // malformed: no value
			}
			scalars[fields[1]] = []byte(fields[2])
		case tagList:
			key := fields[1]
			items := make([][]byte, 0, len(fields)-2)
			for _, item := range fields[2:] {
				items = append(items, []byte(item))
			}
			lists[key] = items
		case tagHash:
			key := fields[1]
			h := make(map[string][]byte, len(fields)-2)
			for _, pair := range fields[2:] {
				field, value, ok := cutFirstColon(pair)
				if !ok {
					continue // malformed pair: skip it, keep the rest of the line
				}
				h[field] = []byte(value)
			}
			hashes[key] = h
		default:
			continue // unknown tag: skip
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("snapshot: read %s: %w", path, err)
	}

	e.Import(scalars, lists, hashes)
	return nil
}

// cutFirstColon splits s on its first ':' into field and value.
func cutFirstColon(s string) (field, value string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
