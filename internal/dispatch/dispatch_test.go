package dispatch

import (
	"testing"

	"github.com/edirooss/ramdb-server/internal/engine"
)

func dispatchStr(t *testing.T, e *engine.Engine, tokens ...string) string {
	t.Helper()
	return string(Dispatch(tokens, e))
}

func TestDispatchPing(t *testing.T) {
	e := engine.New()
	if got := dispatchStr(t, e, "PING"); got != "+PONG\r\n" {
		t.Fatalf("PING = %q, want +PONG\\r\\n", got)
	}
	// Verb is case-folded.
	if got := dispatchStr(t, e, "ping"); got != "+PONG\r\n" {
		t.Fatalf("ping = %q, want +PONG\\r\\n", got)
	}
}

func TestDispatchSetGet(t *testing.T) {
	e := engine.New()
	if got := dispatchStr(t, e, "SET", "foo", "bar"); got != "+OK\r\n" {
		t.Fatalf("SET = %q, want +OK\\r\\n", got)
	}
	if got := dispatchStr(t, e, "GET", "foo"); got != "$3\r\nbar\r\n" {
		t.Fatalf("GET foo = %q, want $3\\r\\nbar\\r\\n", got)
	}
	if got := dispatchStr(t, e, "GET", "missing"); got != "$-1\r\n" {
		t.Fatalf("GET missing = %q, want $-1\\r\\n", got)
	}
}

func TestDispatchEmptyCommand(t *testing.T) {
	e := engine.New()
	got := Dispatch(nil, e)
	if string(got) != "-Error: empty command\r\n" {
		t.Fatalf("Dispatch(nil) = %q", got)
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	e := engine.New()
	got := dispatchStr(t, e, "FROBNICATE", "x")
	want := "-Error: unknown command 'FROBNICATE'\r\n"
	if got != want {
		t.Fatalf("Dispatch(FROBNICATE) = %q, want %q", got, want)
	}
}

func TestDispatchArityError(t *testing.T) {
	e := engine.New()
	got := dispatchStr(t, e, "SET", "onlykey")
	if got[:8] != "-Error: " {
		t.Fatalf("SET with one arg = %q, want an error reply", got)
	}
}

func TestDispatchDelAliases(t *testing.T) {
	for _, verb := range []string{"DEL", "DELETE", "UNLINK"} {
		e := engine.New()
		dispatchStr(t, e, "SET", "k", "v")
		if got := dispatchStr(t, e, verb, "k"); got != ":1\r\n" {
			t.Fatalf("%s k = %q, want :1\\r\\n", verb, got)
		}
		if got := dispatchStr(t, e, verb, "k"); got != ":0\r\n" {
			t.Fatalf("second %s k = %q, want :0\\r\\n", verb, got)
		}
	}
}

func TestDispatchRPushLRange(t *testing.T) {
	e := engine.New()
	if got := dispatchStr(t, e, "RPUSH", "L", "a", "b", "c"); got != ":3\r\n" {
		t.Fatalf("RPUSH = %q, want :3\\r\\n", got)
	}
	got := dispatchStr(t, e, "LRANGE", "L", "0", "-1")
	want := "*3\r\n$1\r\na\r\n$1\r\nb\r\n$1\r\nc\r\n"
	if got != want {
		t.Fatalf("LRANGE = %q, want %q", got, want)
	}
}

func TestDispatchLSetMissingKey(t *testing.T) {
	e := engine.New()
	got := dispatchStr(t, e, "LSET", "nope", "0", "x")
	want := "-Error: Failed to set list element\r\n"
	if got != want {
		t.Fatalf("LSET nope = %q, want %q", got, want)
	}
}

func TestDispatchHMSetHGet(t *testing.T) {
	e := engine.New()
	if got := dispatchStr(t, e, "HMSET", "H", "f1", "v1", "f2", "v2"); got != "+OK\r\n" {
		t.Fatalf("HMSET = %q, want +OK\\r\\n", got)
	}
	if got := dispatchStr(t, e, "HGET", "H", "f2"); got != "$2\r\nv2\r\n" {
		t.Fatalf("HGET H f2 = %q, want $2\\r\\nv2\\r\\n", got)
	}
}

func TestDispatchHMSetOddArity(t *testing.T) {
	e := engine.New()
	got := dispatchStr(t, e, "HMSET", "H", "f1", "v1", "f2")
	if got[:8] != "-Error: " {
		t.Fatalf("HMSET odd arity = %q, want an error reply", got)
	}
}

func TestDispatchLIndexNonNumericIndex(t *testing.T) {
	// A non-numeric index is an argument parse error, reported as an error
	// reply rather than as absence.
	e := engine.New()
	got := dispatchStr(t, e, "LINDEX", "k", "not-a-number")
	if got != "-Error: Invalid index\r\n" {
		t.Fatalf("LINDEX with non-numeric index = %q, want -Error: Invalid index\\r\\n", got)
	}
}
