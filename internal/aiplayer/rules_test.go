package aiplayer

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"pokerd/internal/engine"
)

func newTestBot(seed int64) *RulesPlayer {
	return NewRulesPlayer("bot", seed, zerolog.Nop())
}

func TestDecideRaisesAStrongHandWhenRaisingIsLegal(t *testing.T) {
	r := newTestBot(1)
	r.rng = rand.New(rand.NewSource(1))
	valid := engine.ValidActions{
		Raise: engine.RaiseOptions{Kind: engine.RaiseVariable, Min: 20, Max: 1000},
	}
	a := r.decide(0.9, engine.Snapshot{}, valid)
	assert.Equal(t, engine.ActionRaise, a.Kind)
	assert.GreaterOrEqual(t, a.Amount, valid.Raise.Min)
	assert.LessOrEqual(t, a.Amount, valid.Raise.Max)
}

func TestDecideNeverRaisesWhenRaisingIsIllegal(t *testing.T) {
	r := newTestBot(1)
	valid := engine.ValidActions{CanCall: true, CallAmount: 50, Raise: engine.RaiseOptions{Kind: engine.RaiseNone}}
	a := r.decide(0.95, engine.Snapshot{}, valid)
	assert.NotEqual(t, engine.ActionRaise, a.Kind, "a RaiseNone window must never be offered a raise")
	assert.Equal(t, engine.ActionCall, a.Kind)
}

func TestDecideChecksWeakHandWhenFree(t *testing.T) {
	r := newTestBot(1)
	// Raise.Kind left at RaiseNone so the bluff-raise branch can never fire,
	// regardless of the RNG draw.
	valid := engine.ValidActions{CanCheck: true, Raise: engine.RaiseOptions{Kind: engine.RaiseNone}}
	a := r.decide(0.1, engine.Snapshot{}, valid)
	assert.Equal(t, engine.ActionCheck, a.Kind)
}

func TestDecideFoldsWeakHandWhenFacingABet(t *testing.T) {
	r := newTestBot(1)
	valid := engine.ValidActions{Raise: engine.RaiseOptions{Kind: engine.RaiseNone}}
	a := r.decide(0.1, engine.Snapshot{}, valid)
	assert.Equal(t, engine.ActionFold, a.Kind)
}

func TestDecideRaiseToRespectsFixedLimitAmount(t *testing.T) {
	r := newTestBot(1)
	valid := engine.ValidActions{Raise: engine.RaiseOptions{Kind: engine.RaiseFixed, Amount: 20}}
	a := r.raiseTo(valid, 0.6)
	assert.Equal(t, int64(20), a.Amount)
}

func TestTwoBotsWithDifferentNamesDoNotShareADecisionStream(t *testing.T) {
	a := NewRulesPlayer("alice-bot", 7, zerolog.Nop())
	b := NewRulesPlayer("bob-bot", 7, zerolog.Nop())
	assert.NotEqual(t, a.rng.Int63(), b.rng.Int63())
}

func TestPreflopStrengthRanksPocketAcesAboveLowOffsuit(t *testing.T) {
	aces := engine.Snapshot{
		Street:    engine.Preflop,
		HoleCards: []engine.Card{{Rank: engine.RankAce, Suit: engine.SuitSpades}, {Rank: engine.RankAce, Suit: engine.SuitHearts}},
	}
	trash := engine.Snapshot{
		Street:    engine.Preflop,
		HoleCards: []engine.Card{{Rank: engine.RankSeven, Suit: engine.SuitSpades}, {Rank: engine.RankTwo, Suit: engine.SuitHearts}},
	}
	assert.Greater(t, handStrength(aces), handStrength(trash))
}
