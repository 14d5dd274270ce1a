// Package view implements the per-seat event filter spec.md §4.7 calls for:
// a pure (seat, Event) -> Event fold that hides opponents' hole cards until
// showdown. internal/fanout calls Project once per seated human before
// writing each event to that human's socket.
package view

import "pokerd/internal/engine"

// Project returns the copy of ev that seat is allowed to see. Every event
// type round-trips unchanged except HoleCardsDealt, where another seat's
// cards are replaced with the face-down sentinel. ShowdownReveal is always
// sent in full since by that point the hand is contested and every
// remaining hand is shown.
func Project(seat engine.Seat, ev engine.GameEvent) engine.GameEvent {
	switch e := ev.(type) {
	case engine.HoleCardsDealt:
		if e.Seat == seat {
			return e
		}
		e.Cards = [2]engine.Card{engine.FaceDownCard, engine.FaceDownCard}
		return e
	case *engine.HoleCardsDealt:
		if e.Seat == seat {
			return e
		}
		hidden := *e
		hidden.Cards = [2]engine.Card{engine.FaceDownCard, engine.FaceDownCard}
		return &hidden
	default:
		return ev
	}
}
