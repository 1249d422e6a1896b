// Package server implements the TCP accept loop and per-connection I/O
// driver spec.md §6.3 describes as an external collaborator: it reads a
// request buffer, hands it to internal/resp.Parse, hands the tokens to
// internal/dispatch.Dispatch, and writes the reply bytes back. One goroutine
// per accepted connection keeps that connection's commands executing in
// issue order (§5), which is all the ordering guarantee the engine's coarse
// mutex needs from its caller.
package server

import (
	"bufio"
	"context"
	"errors"
	"net"

	"github.com/edirooss/ramdb-server/internal/dispatch"
	"github.com/edirooss/ramdb-server/internal/engine"
	"github.com/edirooss/ramdb-server/internal/resp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// requestBufferSize bounds a single read from a connection before Parse is
// invoked on it; pipelined or oversized requests spanning more than one
// read are out of scope for the core (spec.md §1).
const requestBufferSize = 64 * 1024

// Server accepts TCP connections and dispatches commands against a shared
// Engine. The zero value is not usable; construct with New.
type Server struct {
	engine *engine.Engine
	log    *zap.Logger
	debug  bool
}

// New constructs a Server bound to e, logging through log. When debug is
// true, every dispatched command is spew-dumped at Debug level (see
// internal/dispatch.DispatchDebug).
func New(e *engine.Engine, log *zap.Logger, debug bool) *Server {
	return &Server{engine: e, log: log.Named("server"), debug: debug}
}

// Serve runs the accept loop against ln until ctx is cancelled or ln is
// closed. Each accepted connection runs its read-parse-dispatch-write cycle
// on its own goroutine.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error("accept failed", zap.Error(err))
			return err
		}

		connID := uuid.New()
		connLog := s.log.With(zap.String("conn_id", connID.String()), zap.String("addr", conn.RemoteAddr().String()))
		connLog.Info("connection accepted")

		go s.handleConn(conn, connLog)
	}
}

// handleConn runs the read-parse-dispatch-write cycle for one connection
// until the client disconnects or a write fails. A panic inside a single
// command's dispatch is caught by dispatch.Dispatch itself; handleConn's
// own recover guards against the I/O loop besides, so one misbehaving
// connection never takes the whole process down (§7, extended per
// SPEC_FULL.md §2.2 to the whole connection rather than one bad command).
func (s *Server) handleConn(conn net.Conn, log *zap.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("connection panic recovered", zap.Any("panic", r))
		}
		_ = conn.Close()
		log.Info("connection closed")
	}()

	r := bufio.NewReaderSize(conn, requestBufferSize)
	buf := make([]byte, requestBufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			tokens := resp.Parse(buf[:n])
			reply := dispatch.Dispatch(tokens, s.engine)
			if s.debug {
				dispatch.DispatchDebug(tokens, reply, log)
			}
			if _, werr := conn.Write(reply); werr != nil {
				log.Warn("write failed", zap.Error(werr))
				return
			}
		}
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Debug("connection read ended", zap.Error(err))
			}
			return
		}
	}
}
