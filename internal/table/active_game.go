package table

import (
	"sync/atomic"

	"pokerd/internal/engine"
	"pokerd/internal/protocol"
)

// ActiveGame is the handle to one room's running engine, per spec.md §3:
// it exclusively owns the per-seat action-channel senders (wrapped here as
// engine.ActionRequester) and tracks which human seats have disconnected
// mid-game without ending the hand for everyone else.
type ActiveGame struct {
	Game        *engine.Game
	Requesters  map[engine.Seat]engine.ActionRequester
	Conns       map[protocol.ConnID]engine.Seat
	Events      chan engine.GameEvent

	sittingOut  map[engine.Seat]bool
	finished    atomic.Bool
	quitSignal  atomic.Bool
}

// NewActiveGame wires a freshly-constructed engine.Game to its seats'
// action requesters and a buffered event channel for the fan-out thread to
// drain.
func NewActiveGame(game *engine.Game, requesters map[engine.Seat]engine.ActionRequester, conns map[protocol.ConnID]engine.Seat) *ActiveGame {
	return &ActiveGame{
		Game:       game,
		Requesters: requesters,
		Conns:      conns,
		Events:     make(chan engine.GameEvent, 64),
		sittingOut: make(map[engine.Seat]bool),
	}
}

// MarkSittingOut adds seat to the sitting-out set (a disconnected human) so
// future hands skip dealing it in, and removes its requester so the
// engine's current request_action for that seat (if any) times out instead
// of hanging — per spec.md §5, dropping the send end of a human's action
// channel is how mid-turn disconnects are observed by the engine.
func (a *ActiveGame) MarkSittingOut(seat engine.Seat) {
	a.sittingOut[seat] = true
	a.Game.SetSittingOut(seat, true)
	if rp, ok := a.Requesters[seat].(interface{ Disconnect() }); ok {
		rp.Disconnect()
	}
	delete(a.Requesters, seat)
}

// IsSittingOut reports whether seat has disconnected mid-game.
func (a *ActiveGame) IsSittingOut(seat engine.Seat) bool { return a.sittingOut[seat] }

// RaiseQuitSignal asks the run loop to end the game after the hand in
// progress completes (no humans remain seated).
func (a *ActiveGame) RaiseQuitSignal() { a.quitSignal.Store(true) }

func (a *ActiveGame) quitRequested() bool { return a.quitSignal.Load() }

// Finished reports whether the run loop has ended and fan-out has finished
// draining Events.
func (a *ActiveGame) Finished() bool { return a.finished.Load() }

// MarkFinished is called by the fan-out thread once it has processed the
// terminal GameEnded event.
func (a *ActiveGame) MarkFinished() { a.finished.Store(true) }

// Run drives the engine thread: plays hands back-to-back until the quit
// signal is raised, fewer than two eligible seats remain, or the table's
// configured hand cap is reached, then closes Events so fan-out knows to
// stop reading after draining the final GameEnded.
func (a *ActiveGame) Run() {
	defer close(a.Events)
	for {
		if a.quitRequested() {
			a.emitGameEnded(engine.ReasonHostTerminated)
			return
		}
		if a.Game.Cfg.MaxHands > 0 && a.Game.HandNumber >= uint64(a.Game.Cfg.MaxHands) {
			a.emitGameEnded(engine.ReasonMaxHands)
			return
		}
		played, err := a.Game.PlayHand(a.Events, a.Requesters)
		if err != nil || !played {
			a.emitGameEnded(engine.ReasonWinner)
			return
		}
	}
}

func (a *ActiveGame) emitGameEnded(reason engine.GameEndReason) {
	type standing struct {
		seat  engine.Seat
		stack int64
	}
	var standings []standing
	for seat, s := range a.Game.Seats {
		standings = append(standings, standing{seat: seat, stack: s.Stack})
	}
	// stable highest-stack-first ordering; ties broken by seat ascending
	for i := 1; i < len(standings); i++ {
		for j := i; j > 0 && (standings[j].stack > standings[j-1].stack ||
			(standings[j].stack == standings[j-1].stack && standings[j].seat < standings[j-1].seat)); j-- {
			standings[j], standings[j-1] = standings[j-1], standings[j]
		}
	}
	out := make([]engine.Standing, 0, len(standings))
	for i, s := range standings {
		out = append(out, engine.Standing{Seat: s.seat, Stack: s.stack, Position: i + 1})
	}
	a.Events <- engine.GameEnded{Type: engine.EvGameEnded, Reason: reason, Standings: out}
}
