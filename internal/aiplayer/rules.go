// Package aiplayer implements RulesPlayer, the deterministic rule-based bot
// spec.md §4.2 names as the second concrete PlayerPort. Decisions are a
// synchronous function of the snapshot and the bot's hole cards — no
// channel, no timeout — grounded on the hand-strength/pot-odds heuristics
// other_examples' lox-pokerforbots "complex" bot builds from equity and
// street context.
package aiplayer

import (
	"math/rand"

	"github.com/rs/zerolog"

	"pokerd/internal/engine"
	"pokerd/pkg/types"
)

// RulesPlayer is a deterministic bot: given the
// same seed and the same sequence of snapshots, it always returns the same
// action.
type RulesPlayer struct {
	name string
	rng  *rand.Rand
	log  zerolog.Logger
}

// NewRulesPlayer seeds the bot's own RNG from the table's hand seed mixed
// with the bot's name, so multiple bots at one table never share a
// decision stream.
func NewRulesPlayer(name string, seed int64, log zerolog.Logger) *RulesPlayer {
	mix := seed
	for _, c := range name {
		mix = mix*31 + int64(c)
	}
	if mix == 0 {
		mix = 1
	}
	return &RulesPlayer{
		name: name,
		rng:  rand.New(rand.NewSource(mix)),
		log:  log.With().Str("component", "aiplayer").Str("bot", name).Logger(),
	}
}

var _ types.Strategy = (*RulesPlayer)(nil)
var _ engine.ActionRequester = (*RulesPlayer)(nil)

// Name implements types.Strategy.
func (r *RulesPlayer) Name() string { return r.name }

// RequestAction implements engine.ActionRequester.
func (r *RulesPlayer) RequestAction(seat engine.Seat, valid engine.ValidActions, snap engine.Snapshot) engine.ActionResponse {
	strength := handStrength(snap)
	action := r.decide(strength, snap, valid)
	r.log.Debug().Int("seat", int(seat)).Float64("strength", strength).Str("action", action.String()).Msg("decision")
	return engine.ActionResponse{Action: action}
}

// decide applies a simple threshold strategy: strong hands raise/bet 60% of
// the way from the minimum to the maximum legal raise, medium hands call,
// weak hands check if free and fold otherwise, with a small chance of a
// smaller (30%) bluff raise to keep the bot from being perfectly
// exploitable.
func (r *RulesPlayer) decide(strength float64, snap engine.Snapshot, valid engine.ValidActions) engine.PlayerAction {
	const (
		strongThreshold = 0.70
		mediumThreshold = 0.40
		bluffChance     = 0.06
	)

	if strength >= strongThreshold && valid.Raise.Kind != engine.RaiseNone {
		return r.raiseTo(valid, 0.6)
	}
	if strength < mediumThreshold && r.rng.Float64() < bluffChance && valid.Raise.Kind != engine.RaiseNone {
		return r.raiseTo(valid, 0.3)
	}
	if strength >= mediumThreshold {
		if valid.CanCall {
			return engine.PlayerAction{Kind: engine.ActionCall, Amount: valid.CallAmount}
		}
		if valid.CanCheck {
			return engine.PlayerAction{Kind: engine.ActionCheck}
		}
		if valid.CanAllIn {
			return engine.PlayerAction{Kind: engine.ActionAllIn, Amount: valid.AllInAmount}
		}
	}
	if valid.CanCheck {
		return engine.PlayerAction{Kind: engine.ActionCheck}
	}
	return engine.PlayerAction{Kind: engine.ActionFold}
}

// raiseTo picks a raise-to amount a fraction of the way from min to max in
// a variable window, or the fixed amount in a fixed-limit window.
func (r *RulesPlayer) raiseTo(valid engine.ValidActions, frac float64) engine.PlayerAction {
	switch valid.Raise.Kind {
	case engine.RaiseFixed:
		return engine.PlayerAction{Kind: engine.ActionRaise, Amount: valid.Raise.Amount}
	case engine.RaiseVariable:
		span := valid.Raise.Max - valid.Raise.Min
		amount := valid.Raise.Min + int64(float64(span)*frac)
		return engine.PlayerAction{Kind: engine.ActionRaise, Amount: amount}
	default:
		return engine.PlayerAction{Kind: engine.ActionCheck}
	}
}

// handStrength is a coarse [0,1] heuristic: preflop it scores the hole
// cards by rank/suitedness/pair; postflop it scores the best five-card
// category the bot can currently make.
func handStrength(snap engine.Snapshot) float64 {
	if len(snap.HoleCards) < 2 {
		return 0
	}
	if snap.Street == engine.Preflop || len(snap.Board) == 0 {
		return preflopStrength(snap.HoleCards[0], snap.HoleCards[1])
	}
	val, _ := engine.BestHand7(snap.Board, snap.HoleCards)
	return float64(val.Cat) / float64(engine.CatStraightFlush)
}

func preflopStrength(a, b engine.Card) float64 {
	hi, lo := a.Rank, b.Rank
	if hi < lo {
		hi, lo = lo, hi
	}
	score := float64(hi-2) / 12.0 * 0.6
	if a.Rank == b.Rank {
		score += 0.35
	}
	if a.Suit == b.Suit {
		score += 0.08
	}
	gap := int(hi) - int(lo)
	if gap <= 2 && a.Rank != b.Rank {
		score += 0.05
	}
	if score > 1 {
		score = 1
	}
	return score
}
