// Package player implements the two concrete PlayerPort shapes spec.md §4.2
// names: a remote human behind a channel with a timeout, and (in
// internal/aiplayer) a synchronous rule-based bot.
package player

import (
	"sync"
	"time"

	"pokerd/internal/engine"
)

// ActionTimeout is how long RemotePlayer waits for a human's decision
// before substituting a Timeout response, per spec.md §4.2.
const ActionTimeout = 120 * time.Second

// Port is a seat-less form of the engine's decision call. Both
// RemotePlayer and aiplayer.RulesPlayer implement engine.ActionRequester
// directly; neither implements Port, and nothing in the module uses it.
type Port interface {
	RequestAction(valid engine.ValidActions, snap engine.Snapshot) engine.ActionResponse
}

// RemotePlayer pops a decision from a one-slot action channel fed by the
// connection's reader thread, with a 120-second timeout. The per-seat
// narration a human sees is delivered separately by internal/fanout, which
// reads the hand's event channel directly rather than going through this
// port.
type RemotePlayer struct {
	Actions   chan engine.PlayerAction
	closeOnce sync.Once
}

// NewRemotePlayer allocates the action channel with a buffer of exactly one
// pending action; the channel is not unbounded.
func NewRemotePlayer() *RemotePlayer {
	return &RemotePlayer{Actions: make(chan engine.PlayerAction, 1)}
}

// RequestAction blocks until an action arrives on Actions, the channel is
// closed (the connection dropped), or ActionTimeout elapses.
func (r *RemotePlayer) RequestAction(seat engine.Seat, valid engine.ValidActions, snap engine.Snapshot) engine.ActionResponse {
	select {
	case a, ok := <-r.Actions:
		if !ok {
			return engine.ActionResponse{TimedOut: true}
		}
		return engine.ActionResponse{Action: a}
	case <-time.After(ActionTimeout):
		return engine.ActionResponse{TimedOut: true}
	}
}

// Submit enqueues a human's decoded action. Non-blocking: the channel is
// buffered for exactly one pending action. An action submitted while no
// RequestAction is waiting is held in that slot and answers the next
// request; an action submitted while the slot is already full is dropped
// silently.
func (r *RemotePlayer) Submit(a engine.PlayerAction) {
	select {
	case r.Actions <- a:
	default:
	}
}

// Disconnect closes the action channel so any in-flight RequestAction
// unblocks immediately with a Timeout response, per spec.md §5's
// mid-turn-disconnect behavior. Calls after the first do nothing, so both
// ActiveGame.MarkSittingOut and the connection's leave path may call it.
func (r *RemotePlayer) Disconnect() {
	r.closeOnce.Do(func() { close(r.Actions) })
}

var _ engine.ActionRequester = (*RemotePlayer)(nil)
