package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerd/internal/engine"
	"pokerd/internal/protocol"
	"pokerd/pkg/types"
)

func newActiveGameForTest() (*ActiveGame, engine.Seat, engine.Seat) {
	g := engine.NewGame(engine.Config{SmallBlind: 5, BigBlind: 10, Structure: types.NoLimit, Seed: 1})
	g.Sit(0, 1000)
	g.Sit(1, 1000)
	requesters := map[engine.Seat]engine.ActionRequester{
		0: fakeRequester{},
		1: fakeRequester{},
	}
	conns := map[protocol.ConnID]engine.Seat{"c0": 0, "c1": 1}
	return NewActiveGame(g, requesters, conns), 0, 1
}

type fakeRequester struct{}

func (fakeRequester) RequestAction(seat engine.Seat, valid engine.ValidActions, snap engine.Snapshot) engine.ActionResponse {
	if valid.CanCheck {
		return engine.ActionResponse{Action: engine.PlayerAction{Kind: engine.ActionCheck}}
	}
	return engine.ActionResponse{Action: engine.PlayerAction{Kind: engine.ActionFold}}
}

func TestMarkSittingOutRemovesRequesterAndFlagsSeat(t *testing.T) {
	active, seat0, _ := newActiveGameForTest()
	active.MarkSittingOut(seat0)

	assert.True(t, active.IsSittingOut(seat0))
	_, ok := active.Requesters[seat0]
	assert.False(t, ok, "a sitting-out seat's requester must be removed so in-flight requests time out")
	assert.True(t, active.Game.Seats[seat0].SittingOut)
}

func TestRaiseQuitSignalEndsRunAfterCurrentHand(t *testing.T) {
	active, _, _ := newActiveGameForTest()
	active.RaiseQuitSignal()

	active.Run()

	var sawEnded bool
	for e := range active.Events {
		if ge, ok := e.(engine.GameEnded); ok {
			sawEnded = true
			assert.Equal(t, engine.ReasonHostTerminated, ge.Reason)
		}
	}
	assert.True(t, sawEnded)
}

func TestRunEndsWhenFewerThanTwoEligibleSeatsRemain(t *testing.T) {
	g := engine.NewGame(engine.Config{SmallBlind: 5, BigBlind: 10, Structure: types.NoLimit, Seed: 1})
	g.Sit(0, 1000)
	active := NewActiveGame(g, map[engine.Seat]engine.ActionRequester{0: fakeRequester{}}, map[protocol.ConnID]engine.Seat{})

	active.Run()

	var ended *engine.GameEnded
	for e := range active.Events {
		if ge, ok := e.(engine.GameEnded); ok {
			ended = &ge
		}
	}
	require.NotNil(t, ended)
	assert.Equal(t, engine.ReasonWinner, ended.Reason)
}

func TestMarkFinishedAndFinished(t *testing.T) {
	active, _, _ := newActiveGameForTest()
	assert.False(t, active.Finished())
	active.MarkFinished()
	assert.True(t, active.Finished())
}
