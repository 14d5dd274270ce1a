package server

import (
	"math/rand"
	"strings"
	"time"

	"pokerd/internal/engine"
	"pokerd/internal/protocol"
	"pokerd/internal/table"
)

func (s *Server) handleLogin(c *connection, m protocol.Login) {
	name := strings.TrimSpace(m.Username)
	if name == "" || len(name) > protocol.MaxUsernameLen {
		c.sendError("username must be 1-%d characters", protocol.MaxUsernameLen)
		return
	}
	s.bankMu.Lock()
	err := s.bank.EnsureExists(name)
	var bankroll int64
	if err == nil {
		bankroll, err = s.bank.Get(name)
	}
	s.bankMu.Unlock()
	if err != nil {
		c.sendError("login failed: %v", err)
		return
	}
	c.username = name
	c.send(protocol.Welcome{Type: protocol.SWelcome, Username: name, Message: "welcome to pokerd", Bankroll: bankroll})
}

func (s *Server) handleListTables(c *connection) {
	s.tablesMu.Lock()
	tables := s.registry.List()
	s.tablesMu.Unlock()
	c.send(protocol.LobbyState{Type: protocol.SLobbyState, Tables: tables})
}

func (s *Server) handleJoinTable(c *connection, m protocol.JoinTable) {
	if c.username == "" {
		c.sendError("login required")
		return
	}
	if c.seated {
		c.sendError("already seated at a table")
		return
	}
	if len(m.TableID) == 0 || len(m.TableID) > protocol.MaxTableIDLen {
		c.sendError("invalid table id")
		return
	}

	var (
		seat    engine.Seat
		info    protocol.TableInfo
		players []protocol.PlayerInfo
		joinErr error
		found   bool
	)
	s.tablesMu.Lock()
	s.registry.CleanupFinished()
	room, ok := s.registry.Get(m.TableID)
	if ok {
		found = true
		seat, joinErr = room.Join(protocol.ConnID(c.id), c.username)
		if joinErr == nil {
			info = room.Info()
			players = room.Players()
		}
	}
	s.tablesMu.Unlock()

	if !found {
		c.sendError("unknown table %q", m.TableID)
		return
	}
	if joinErr != nil {
		c.sendError("join table: %v", joinErr)
		return
	}

	c.tableID = m.TableID
	c.seat = seat
	c.seated = true

	c.send(protocol.TableJoined{
		Type:       protocol.STableJoined,
		TableID:    info.TableID,
		TableName:  info.Name,
		Seat:       seat,
		Players:    players,
		MinPlayers: info.MinPlayers,
		MaxPlayers: info.MaxPlayers,
	})
	s.broadcastTable(m.TableID, c.id, protocol.PlayerJoinedTable{Type: protocol.SPlayerJoinedTable, Seat: seat, Username: c.username})
}

func (s *Server) handleLeaveTable(c *connection) {
	if !c.seated {
		c.sendError("not seated at a table")
		return
	}
	tableID := c.tableID
	var (
		seat     engine.Seat
		username string
		leaveErr error
	)
	s.tablesMu.Lock()
	room, ok := s.registry.Get(tableID)
	if ok {
		seat, username, leaveErr = room.Leave(protocol.ConnID(c.id))
	}
	s.tablesMu.Unlock()

	c.seated = false
	c.tableID = ""
	if c.remote != nil {
		c.remote.Disconnect()
		c.remote = nil
	}
	c.active = nil

	if !ok || leaveErr != nil {
		c.sendError("leave table failed")
		return
	}
	c.send(protocol.TableLeft{Type: protocol.STableLeft})
	s.broadcastTable(tableID, c.id, protocol.PlayerLeftTable{Type: protocol.SPlayerLeftTable, Seat: seat, Username: username})
}

func (s *Server) handleReady(c *connection) {
	if !c.seated {
		c.sendError("not seated at a table")
		return
	}
	tableID := c.tableID
	var (
		seat     engine.Seat
		allReady bool
		readyErr error
		room     *table.TableRoom
		ok       bool
	)
	s.tablesMu.Lock()
	room, ok = s.registry.Get(tableID)
	if ok {
		seat, allReady, readyErr = room.SetReady(protocol.ConnID(c.id))
		if ok && readyErr == nil && allReady {
			s.startGame(tableID, room)
		}
	}
	s.tablesMu.Unlock()
	if !ok || readyErr != nil {
		c.sendError("ready failed")
		return
	}
	s.broadcastTable(tableID, "", protocol.PlayerReady{Type: protocol.SPlayerReady, Seat: seat})
}

func (s *Server) handleAddAI(c *connection) {
	if !c.seated {
		c.sendError("not seated at a table")
		return
	}
	tableID := c.tableID
	var (
		seat   engine.Seat
		ai     *table.SeatedAI
		aiErr  error
	)
	s.tablesMu.Lock()
	room, ok := s.registry.Get(tableID)
	if ok {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		seat, ai, aiErr = room.AddAI(rng)
	}
	s.tablesMu.Unlock()
	if !ok || aiErr != nil {
		c.sendError("add ai failed: %v", aiErr)
		return
	}
	s.broadcastTable(tableID, "", protocol.AIAdded{Type: protocol.SAIAdded, Seat: seat, Name: ai.Name})
}

func (s *Server) handleRemoveAI(c *connection, m protocol.RemoveAI) {
	if !c.seated {
		c.sendError("not seated at a table")
		return
	}
	tableID := c.tableID
	var rmErr error
	s.tablesMu.Lock()
	room, ok := s.registry.Get(tableID)
	if ok {
		rmErr = room.RemoveAI(m.Seat)
	}
	s.tablesMu.Unlock()
	if !ok || rmErr != nil {
		c.sendError("remove ai failed: %v", rmErr)
		return
	}
	s.broadcastTable(tableID, "", protocol.AIRemoved{Type: protocol.SAIRemoved, Seat: m.Seat})
}

func (s *Server) handleAction(c *connection, m protocol.ActionMsg) {
	if c.remote == nil {
		c.sendError("no action expected")
		return
	}
	c.remote.Submit(m.ToPlayerAction())
}

// handleChat is a reserved no-op per spec.md §4.5: the message is
// size-validated and otherwise discarded, never broadcast.
func (s *Server) handleChat(c *connection, m protocol.Chat) {
	if len(m.Text) == 0 || len(m.Text) > protocol.MaxChatLen {
		c.sendError("chat message must be 1-%d characters", protocol.MaxChatLen)
		return
	}
}

// handleDisconnect runs once, from readLoop's defer, when a connection's
// socket closes for any reason: it leaves the connection's table the same
// way an explicit leave_table would, notifying the rest of the table.
func (s *Server) handleDisconnect(c *connection) {
	if !c.seated {
		return
	}
	tableID := c.tableID
	var (
		seat     engine.Seat
		username string
		leaveErr error
	)
	s.tablesMu.Lock()
	room, ok := s.registry.Get(tableID)
	if ok {
		seat, username, leaveErr = room.Leave(protocol.ConnID(c.id))
	}
	s.tablesMu.Unlock()
	c.seated = false
	if c.remote != nil {
		c.remote.Disconnect()
	}
	if ok && leaveErr == nil {
		s.broadcastTable(tableID, c.id, protocol.PlayerLeftTable{Type: protocol.SPlayerLeftTable, Seat: seat, Username: username})
	}
}

// broadcastTable writes msg to every connection currently seated at
// tableID, skipping skip (the connection that already got a direct reply,
// if any — pass "" to skip none).
func (s *Server) broadcastTable(tableID string, skip protocol.ConnID, msg any) {
	s.connsMu.Lock()
	targets := make([]*connection, 0, len(s.conns))
	for _, conn := range s.conns {
		if conn.seated && conn.tableID == tableID && conn.id != skip {
			targets = append(targets, conn)
		}
	}
	s.connsMu.Unlock()
	for _, conn := range targets {
		conn.send(msg)
	}
}
