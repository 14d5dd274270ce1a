// Package server implements the TCP frontend: one accept loop, one reader
// goroutine and one serialized writer per connection, and the per-message
// dispatch spec.md §4.5 describes. Shared state is three explicitly ordered
// locks — tables, then connections, then bank — enforced by
// github.com/sasha-s/go-deadlock so a lock-order mistake panics in
// development instead of deadlocking in production.
package server

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	deadlock "github.com/sasha-s/go-deadlock"

	"pokerd/internal/bank"
	"pokerd/internal/protocol"
	"pokerd/internal/table"
)

// Server owns the listener, the table registry, and every live connection.
// Lock order, always acquired in this sequence when more than one is held:
// tablesMu -> connsMu -> bankMu. bank.FileBank also guards itself
// internally, so bankMu here only serializes the read-modify-write sequences
// (buyin-then-seat) that span multiple Bank calls.
type Server struct {
	tablesMu deadlock.Mutex
	registry *table.Registry

	connsMu deadlock.Mutex
	conns   map[protocol.ConnID]*connection

	bankMu deadlock.Mutex
	bank   bank.Bank

	log zerolog.Logger
}

func New(registry *table.Registry, bk bank.Bank, log zerolog.Logger) *Server {
	return &Server{
		registry: registry,
		conns:    make(map[protocol.ConnID]*connection),
		bank:     bk,
		log:      log.With().Str("component", "server").Logger(),
	}
}

// Run listens on addr until ctx is canceled, starting one reader goroutine
// per connection; writes to a connection are serialized by its write mutex
// rather than by a separate writer goroutine.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.log.Info().Str("addr", addr).Msg("listening")

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.log.Error().Err(err).Msg("accept")
				continue
			}
		}
		c := s.newConnection(conn)
		go c.readLoop(ctx)
	}
}

func (s *Server) addConn(c *connection) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	s.conns[c.id] = c
}

func (s *Server) removeConn(id protocol.ConnID) {
	s.connsMu.Lock()
	c, ok := s.conns[id]
	delete(s.conns, id)
	s.connsMu.Unlock()
	if ok {
		c.close()
	}
}

func (s *Server) connByID(id protocol.ConnID) (*connection, bool) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	c, ok := s.conns[id]
	return c, ok
}

// withTable runs fn with the tables lock held and the requested room
// resolved, returning false if the table id is unknown.
func (s *Server) withTable(id string, fn func(*table.TableRoom)) bool {
	s.tablesMu.Lock()
	defer s.tablesMu.Unlock()
	room, ok := s.registry.Get(id)
	if !ok {
		return false
	}
	fn(room)
	return true
}

const writeTimeout = 10 * time.Second
