package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"pokerd/internal/engine"
	"pokerd/internal/player"
	"pokerd/internal/protocol"
	"pokerd/internal/table"
	"pokerd/internal/wire"
)

// connection is one TCP client's state. The reader goroutine owns decoding
// and dispatch; writeMu serializes the handful of goroutines (reader,
// fanout) that may write to conn concurrently.
type connection struct {
	id   protocol.ConnID
	conn net.Conn
	srv  *Server

	writeMu sync.Mutex

	username string
	tableID  string
	seat     engine.Seat
	seated   bool

	// remote is non-nil only while seated in an ActiveGame this connection
	// is a human player of; the reader forwards "action" messages to it.
	remote *player.RemotePlayer
	active *table.ActiveGame
}

func (s *Server) newConnection(conn net.Conn) *connection {
	c := &connection{id: protocol.NewConnID(), conn: conn, srv: s}
	s.addConn(c)
	return c
}

func (c *connection) close() {
	c.conn.Close()
}

// writeFrame is the connection's fanout.Sink: it serializes frame writes
// against the reader's own direct replies (Welcome, Error, ...).
func (c *connection) writeFrame(frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, err := c.conn.Write(frame)
	return err
}

func (c *connection) send(msg any) {
	frame, err := wire.Encode(msg)
	if err != nil {
		c.srv.log.Error().Err(err).Msg("encode reply")
		return
	}
	if err := c.writeFrame(frame); err != nil {
		c.srv.log.Debug().Err(err).Str("conn", string(c.id)).Msg("write reply")
	}
}

func (c *connection) sendError(format string, args ...any) {
	c.send(protocol.NewError(format, args...))
}

// readLoop decodes length-prefixed frames off conn until it closes, then
// unwinds the connection's table/game membership and removes it from the
// server's connection map.
func (c *connection) readLoop(ctx context.Context) {
	defer c.srv.handleDisconnect(c)
	defer c.srv.removeConn(c.id)

	r := bufio.NewReader(c.conn)
	dec := &wire.Decoder{}
	buf := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
			for {
				body, ok, derr := dec.TryDecode()
				if derr != nil {
					c.srv.log.Warn().Err(derr).Str("conn", string(c.id)).Msg("frame decode, resetting connection")
					return
				}
				if !ok {
					break
				}
				c.dispatch(body)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.srv.log.Debug().Err(err).Str("conn", string(c.id)).Msg("read")
			}
			return
		}
	}
}

func (c *connection) dispatch(body []byte) {
	msg, err := protocol.DecodeClient(body)
	if err != nil {
		c.sendError("malformed message: %v", err)
		return
	}
	switch m := msg.(type) {
	case protocol.Login:
		c.srv.handleLogin(c, m)
	case protocol.ListTables:
		c.srv.handleListTables(c)
	case protocol.JoinTable:
		c.srv.handleJoinTable(c, m)
	case protocol.LeaveTable:
		c.srv.handleLeaveTable(c)
	case protocol.Ready:
		c.srv.handleReady(c)
	case protocol.AddAI:
		c.srv.handleAddAI(c)
	case protocol.RemoveAI:
		c.srv.handleRemoveAI(c, m)
	case protocol.ActionMsg:
		c.srv.handleAction(c, m)
	case protocol.Chat:
		c.srv.handleChat(c, m)
	default:
		c.sendError("unsupported message type")
	}
}
