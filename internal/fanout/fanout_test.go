package fanout

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerd/internal/engine"
	"pokerd/internal/protocol"
	"pokerd/internal/table"
	"pokerd/pkg/types"
)

type fakeBank struct {
	cashouts map[string]int64
	prizes   map[string]int64
	saved    int
}

func newFakeBank() *fakeBank {
	return &fakeBank{cashouts: map[string]int64{}, prizes: map[string]int64{}}
}

func (f *fakeBank) EnsureExists(id string) error               { return nil }
func (f *fakeBank) Get(id string) (int64, error)                { return 0, nil }
func (f *fakeBank) Buyin(id string, amount int64, tableID string) error { return nil }
func (f *fakeBank) Cashout(id string, amount int64) error {
	f.cashouts[id] += amount
	return nil
}
func (f *fakeBank) AwardPrize(id string, amount int64) error {
	f.prizes[id] += amount
	return nil
}
func (f *fakeBank) Save() error { f.saved++; return nil }

func newTestRoom(format types.GameFormat) *table.TableRoom {
	cfg := types.TableConfig{
		ID:         "main",
		Format:     format,
		MinPlayers: 2,
		MaxPlayers: 4,
		MinBuyin:   1000,
		Payouts: []types.PayoutStep{
			{Position: 1, Percent: 0.7},
			{Position: 2, Percent: 0.3},
		},
	}
	room := table.NewTableRoom(cfg, zerolog.Nop())
	room.Humans[0] = &table.Seated{Conn: "c0", Username: "alice"}
	room.Humans[1] = &table.Seated{Conn: "c1", Username: "bob"}
	return room
}

func TestReconcileCashPaysOutFinalStacks(t *testing.T) {
	room := newTestRoom(types.FormatCash)
	bk := newFakeBank()
	ge := engine.GameEnded{
		Type:   engine.EvGameEnded,
		Reason: engine.ReasonWinner,
		Standings: []engine.Standing{
			{Seat: 0, Stack: 1800, Position: 1},
			{Seat: 1, Stack: 200, Position: 2},
		},
	}
	reconcile(ge, room, bk, zerolog.Nop())

	assert.Equal(t, int64(1800), bk.cashouts["alice"])
	assert.Equal(t, int64(200), bk.cashouts["bob"])
	assert.Equal(t, 1, bk.saved)
}

func TestReconcileSitNGoPaysConfiguredSchedule(t *testing.T) {
	room := newTestRoom(types.FormatSitNGo)
	bk := newFakeBank()
	ge := engine.GameEnded{
		Type:   engine.EvGameEnded,
		Reason: engine.ReasonWinner,
		Standings: []engine.Standing{
			{Seat: 0, Stack: 2000, Position: 1},
			{Seat: 1, Stack: 0, Position: 2},
		},
	}
	reconcile(ge, room, bk, zerolog.Nop())

	pool := room.Cfg.MinBuyin * 2
	assert.Equal(t, int64(float64(pool)*0.7), bk.prizes["alice"])
	assert.Equal(t, int64(float64(pool)*0.3), bk.prizes["bob"])
}

func TestReconcileSkipsUnknownSeats(t *testing.T) {
	room := newTestRoom(types.FormatCash)
	bk := newFakeBank()
	ge := engine.GameEnded{
		Type:      engine.EvGameEnded,
		Standings: []engine.Standing{{Seat: 9, Stack: 500, Position: 1}},
	}
	reconcile(ge, room, bk, zerolog.Nop())
	assert.Empty(t, bk.cashouts)
}

func TestEventDelayMatchesConfiguredPacingPerEventType(t *testing.T) {
	cfg := types.TableConfig{ActionDelay: 500 * time.Millisecond, StreetDelay: 700 * time.Millisecond, HandEndDelay: 2 * time.Second}
	assert.Equal(t, cfg.ActionDelay, eventDelay(engine.ActionTaken{}, cfg))
	assert.Equal(t, cfg.StreetDelay, eventDelay(engine.StreetChanged{}, cfg))
	assert.Equal(t, cfg.HandEndDelay, eventDelay(engine.HandEnded{}, cfg))
	assert.Equal(t, showdownRevealDelay, eventDelay(engine.ShowdownReveal{}, cfg))
	assert.Equal(t, potAwardedDelay, eventDelay(engine.PotAwarded{}, cfg))
	assert.Equal(t, time.Duration(0), eventDelay(engine.GameStarted{}, cfg))
}

func TestBroadcastSkipsSittingOutSeatsAndProjectsPerSeat(t *testing.T) {
	g := engine.NewGame(engine.Config{SmallBlind: 5, BigBlind: 10, Structure: types.NoLimit})
	g.Sit(0, 1000)
	g.Sit(1, 1000)
	active := table.NewActiveGame(g, map[engine.Seat]engine.ActionRequester{}, map[protocol.ConnID]engine.Seat{})
	active.MarkSittingOut(1)

	var seat0Frames, seat1Frames [][]byte
	sink0 := func(f []byte) error { seat0Frames = append(seat0Frames, f); return nil }
	sink1 := func(f []byte) error { seat1Frames = append(seat1Frames, f); return nil }

	ev := engine.HoleCardsDealt{Type: engine.EvHoleCardsDealt, Seat: 0, Cards: [2]engine.Card{{Rank: engine.RankAce, Suit: engine.SuitSpades}, {Rank: engine.RankKing, Suit: engine.SuitSpades}}}
	broadcast(ev, active, map[engine.Seat]Sink{0: sink0, 1: sink1}, zerolog.Nop())

	assert.Len(t, seat0Frames, 1, "seat0 is not sitting out and must receive the event")
	assert.Empty(t, seat1Frames, "a sitting-out seat must not receive broadcasts")
}

func TestDirectActionRequestOnlyWritesToActingSeat(t *testing.T) {
	g := engine.NewGame(engine.Config{SmallBlind: 5, BigBlind: 10, Structure: types.NoLimit})
	g.Sit(0, 1000)
	g.Sit(1, 1000)
	active := table.NewActiveGame(g, map[engine.Seat]engine.ActionRequester{}, map[protocol.ConnID]engine.Seat{})

	var seat0Frames, seat1Frames [][]byte
	sink0 := func(f []byte) error { seat0Frames = append(seat0Frames, f); return nil }
	sink1 := func(f []byte) error { seat1Frames = append(seat1Frames, f); return nil }

	ev := engine.ActionRequest{Type: engine.EvActionRequest, Seat: 0, Valid: engine.ValidActions{CanCheck: true}, TimeLimit: 120}
	directActionRequest(ev, active, map[engine.Seat]Sink{0: sink0, 1: sink1}, zerolog.Nop())

	require.Len(t, seat0Frames, 1)
	assert.Empty(t, seat1Frames)
}
