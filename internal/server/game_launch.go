package server

import (
	"pokerd/internal/aiplayer"
	"pokerd/internal/engine"
	"pokerd/internal/fanout"
	"pokerd/internal/player"
	"pokerd/internal/protocol"
	"pokerd/internal/table"
)

// startGame runs the buy-in-then-launch transition spec.md §4.4 describes:
// every seated human and AI is debited MinBuyin atomically (any failure
// rolls back every prior debit and resets readiness rather than seating a
// partially-funded table), then the engine and fan-out threads are started.
// Called by handleReady with s.tablesMu held; it acquires bankMu and
// briefly connsMu itself, in that order, consistent with the server's
// tablesMu -> connsMu -> bankMu lock order.
func (s *Server) startGame(tableID string, room *table.TableRoom) {
	type debit struct {
		id     string
		amount int64
	}
	var debits []debit

	rollback := func() {
		s.bankMu.Lock()
		for _, d := range debits {
			s.bank.Cashout(d.id, d.amount)
		}
		s.bank.Save()
		s.bankMu.Unlock()
		room.ResetReady()
		s.broadcastTable(tableID, "", protocol.NewError("table %s: buy-in failed, not everyone could be seated", tableID))
	}

	s.bankMu.Lock()
	for _, h := range room.Humans {
		if err := s.bank.EnsureExists(h.Username); err != nil {
			s.bankMu.Unlock()
			rollback()
			return
		}
		if err := s.bank.Buyin(h.Username, room.Cfg.MinBuyin, room.Cfg.ID); err != nil {
			s.bankMu.Unlock()
			rollback()
			return
		}
		debits = append(debits, debit{id: h.Username, amount: room.Cfg.MinBuyin})
	}
	for _, a := range room.AI {
		if err := s.bank.EnsureExists(a.BankID); err != nil {
			s.bankMu.Unlock()
			rollback()
			return
		}
		if err := s.bank.Buyin(a.BankID, room.Cfg.MinBuyin, room.Cfg.ID); err != nil {
			s.bankMu.Unlock()
			rollback()
			return
		}
		debits = append(debits, debit{id: a.BankID, amount: room.Cfg.MinBuyin})
	}
	if err := s.bank.Save(); err != nil {
		s.bankMu.Unlock()
		rollback()
		return
	}
	s.bankMu.Unlock()

	game := engine.NewGame(engine.ConfigFromTable(room.Cfg))
	requesters := make(map[engine.Seat]engine.ActionRequester)
	conns := make(map[protocol.ConnID]engine.Seat)
	sinks := make(map[engine.Seat]fanout.Sink)

	seed := room.Cfg.Seed
	if seed == 0 {
		seed = 1
	}

	for seat, h := range room.Humans {
		game.Sit(seat, room.Cfg.MinBuyin)
		rp := player.NewRemotePlayer()
		requesters[seat] = rp
		conns[h.Conn] = seat
		if c, ok := s.connByID(h.Conn); ok {
			c.remote = rp
			sinks[seat] = c.writeFrame
		}
	}
	for seat, a := range room.AI {
		game.Sit(seat, room.Cfg.MinBuyin)
		requesters[seat] = aiplayer.NewRulesPlayer(a.Name, seed, s.log)
	}

	active := table.NewActiveGame(game, requesters, conns)
	room.Active = active
	room.Status = table.StatusInProgress

	for _, h := range room.Humans {
		if c, ok := s.connByID(h.Conn); ok {
			c.active = active
		}
	}

	s.broadcastTable(tableID, "", protocol.GameStarting{Type: protocol.SGameStarting, Countdown: 3, TableConfig: room.Cfg})

	go active.Run()
	go fanout.Run(active, room, sinks, s.bank, s.log)
}
