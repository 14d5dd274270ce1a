// Package fanout implements the per-ActiveGame broadcast thread spec.md
// §4.6 describes: read the engine's event stream, write a per-seat
// filtered copy to every seated human's socket, paced by a fixed
// per-event-type delay, and reconcile the bank once the game ends.
package fanout

import (
	"time"

	"github.com/rs/zerolog"

	"pokerd/internal/bank"
	"pokerd/internal/engine"
	"pokerd/internal/protocol"
	"pokerd/internal/table"
	"pokerd/internal/view"
	"pokerd/internal/wire"
	"pokerd/pkg/types"
)

// showdownRevealDelay and potAwardedDelay are fixed per spec.md §4.6 (not
// configurable per table, unlike ActionTaken/StreetChanged/HandEnded).
const (
	showdownRevealDelay = 500 * time.Millisecond
	potAwardedDelay     = 1500 * time.Millisecond
)

// Sink writes one already-framed wire message to a seat's socket.
// internal/server wires this to the connection's serialized writer;
// skipping a sitting-out seat's sink is the caller's responsibility to
// avoid broken-pipe storms, per spec.md §4.6.
type Sink func(frame []byte) error

// Run drains active.Events to completion, writing a filtered copy of each
// event to every human seat's sink, then reconciles the bank on
// GameEnded. Blocks until the event channel closes; call it from its own
// goroutine per ActiveGame.
func Run(active *table.ActiveGame, room *table.TableRoom, sinks map[engine.Seat]Sink, bk bank.Bank, log zerolog.Logger) {
	log = log.With().Str("component", "fanout").Str("table_id", room.Cfg.ID).Logger()
	for ev := range active.Events {
		broadcast(ev, active, sinks, log)
		directActionRequest(ev, active, sinks, log)
		if ge, ok := ev.(engine.GameEnded); ok {
			reconcile(ge, room, bk, log)
		}
		time.Sleep(eventDelay(ev, room.Cfg))
	}
	active.MarkFinished()
}

func broadcast(ev engine.GameEvent, active *table.ActiveGame, sinks map[engine.Seat]Sink, log zerolog.Logger) {
	for seat, sink := range sinks {
		if active.IsSittingOut(seat) {
			continue
		}
		filtered := view.Project(seat, ev)
		msg, err := protocol.NewGameEventMsg(filtered)
		if err != nil {
			log.Error().Err(err).Msg("marshal game event")
			continue
		}
		writeFrame(sink, msg, log)
	}
}

// directActionRequest additionally writes a directed ActionRequest message
// to the acting seat's own socket, per spec.md §4.6, so the client knows
// it's their turn without inspecting the generic event stream.
func directActionRequest(ev engine.GameEvent, active *table.ActiveGame, sinks map[engine.Seat]Sink, log zerolog.Logger) {
	ar, ok := ev.(engine.ActionRequest)
	if !ok {
		return
	}
	sink, ok := sinks[ar.Seat]
	if !ok || active.IsSittingOut(ar.Seat) {
		return
	}
	msg := protocol.ActionRequestMsg{Type: protocol.SActionRequest, ValidActions: ar.Valid, TimeLimit: ar.TimeLimit}
	writeFrame(sink, msg, log)
}

func writeFrame(sink Sink, msg any, log zerolog.Logger) {
	frame, err := wire.Encode(msg)
	if err != nil {
		log.Error().Err(err).Msg("encode frame")
		return
	}
	if err := sink(frame); err != nil {
		log.Warn().Err(err).Msg("write to socket")
	}
}

func eventDelay(ev engine.GameEvent, cfg types.TableConfig) time.Duration {
	switch ev.(type) {
	case engine.ActionTaken:
		return cfg.ActionDelay
	case engine.StreetChanged:
		return cfg.StreetDelay
	case engine.ShowdownReveal:
		return showdownRevealDelay
	case engine.HandEnded:
		return cfg.HandEndDelay
	case engine.PotAwarded:
		return potAwardedDelay
	default:
		return 0
	}
}

// reconcile settles bankrolls for the finished game's final standings: Cash
// tables cash out each standing's final stack; SitNGo tables pay the
// configured prize schedule by finish position. The bank is saved once
// afterward.
func reconcile(ge engine.GameEnded, room *table.TableRoom, bk bank.Bank, log zerolog.Logger) {
	idFor := func(seat engine.Seat) (string, bool) {
		if h, ok := room.Humans[seat]; ok {
			return h.Username, true
		}
		if a, ok := room.AI[seat]; ok {
			return a.BankID, true
		}
		return "", false
	}

	switch room.Cfg.Format {
	case types.FormatSitNGo:
		numPlayers := len(ge.Standings)
		pool := room.Cfg.MinBuyin * int64(numPlayers)
		for _, s := range ge.Standings {
			id, ok := idFor(s.Seat)
			if !ok {
				continue
			}
			percent := payoutPercent(room.Cfg.Payouts, s.Position)
			if percent <= 0 {
				continue
			}
			prize := int64(float64(pool) * percent)
			if err := bk.AwardPrize(id, prize); err != nil {
				log.Error().Err(err).Str("id", id).Msg("award prize")
			}
		}
	default: // types.FormatCash
		for _, s := range ge.Standings {
			id, ok := idFor(s.Seat)
			if !ok {
				continue
			}
			if err := bk.Cashout(id, s.Stack); err != nil {
				log.Error().Err(err).Str("id", id).Msg("cashout")
			}
		}
	}

	if err := bk.Save(); err != nil {
		log.Error().Err(err).Msg("save bank")
	}
}

func payoutPercent(steps []types.PayoutStep, position int) float64 {
	for _, p := range steps {
		if p.Position == position {
			return p.Percent
		}
	}
	return 0
}
