// Package conformance checks that this server's wire replies are
// byte-compatible with what a real RESP client expects — the highest-value
// check available for a hand-rolled protocol implementation. It dials the
// server's own net.Listener with go-redis/v9, the teacher's domain
// dependency for the exact protocol this repository now serves instead of
// consumes.
package conformance

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/edirooss/ramdb-server/internal/engine"
	"github.com/edirooss/ramdb-server/internal/server"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func startServer(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	e := engine.New()
	s := server.New(e, zap.NewNop(), false)
	ctx, cancel := context.WithCancel(context.Background())

	go func() { _ = s.Serve(ctx, ln) }()
	t.Cleanup(cancel)

	return ln.Addr().String()
}

func newClient(t *testing.T, addr string) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr: addr,
		// Pin RESP2: this server implements the §6.1 five-shape reply
		// grammar only, not the RESP3 HELLO handshake.
		Protocol:    2,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGoRedisPing(t *testing.T) {
	addr := startServer(t)
	c := newClient(t, addr)
	ctx := context.Background()

	got, err := c.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("PING: %v", err)
	}
	if got != "PONG" {
		t.Fatalf("PING = %q, want PONG", got)
	}
}

func TestGoRedisSetGet(t *testing.T) {
	addr := startServer(t)
	c := newClient(t, addr)
	ctx := context.Background()

	if err := c.Set(ctx, "foo", "bar", 0).Err(); err != nil {
		t.Fatalf("SET: %v", err)
	}
	got, err := c.Get(ctx, "foo").Result()
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if got != "bar" {
		t.Fatalf("GET foo = %q, want bar", got)
	}

	if _, err := c.Get(ctx, "missing").Result(); err != redis.Nil {
		t.Fatalf("GET missing = %v, want redis.Nil", err)
	}
}

func TestGoRedisRPushLRange(t *testing.T) {
	addr := startServer(t)
	c := newClient(t, addr)
	ctx := context.Background()

	if err := c.RPush(ctx, "L", "a", "b", "c").Err(); err != nil {
		t.Fatalf("RPUSH: %v", err)
	}
	got, err := c.LRange(ctx, "L", 0, -1).Result()
	if err != nil {
		t.Fatalf("LRANGE: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("LRANGE = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("LRANGE[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGoRedisHSetHGet(t *testing.T) {
	addr := startServer(t)
	c := newClient(t, addr)
	ctx := context.Background()

	// This server answers HSET with +OK rather than an integer, so it is
	// issued through Do, which accepts any reply shape.
	if err := c.Do(ctx, "HSET", "H", "f1", "v1").Err(); err != nil {
		t.Fatalf("HSET: %v", err)
	}
	got, err := c.HGet(ctx, "H", "f1").Result()
	if err != nil {
		t.Fatalf("HGET: %v", err)
	}
	if got != "v1" {
		t.Fatalf("HGET H f1 = %q, want v1", got)
	}
}

func TestGoRedisDel(t *testing.T) {
	addr := startServer(t)
	c := newClient(t, addr)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET: %v", err)
	}
	n, err := c.Del(ctx, "k").Result()
	if err != nil {
		t.Fatalf("DEL: %v", err)
	}
	if n != 1 {
		t.Fatalf("DEL = %d, want 1", n)
	}
	if _, err := c.Get(ctx, "k").Result(); err != redis.Nil {
		t.Fatalf("GET after DEL = %v, want redis.Nil", err)
	}
}
