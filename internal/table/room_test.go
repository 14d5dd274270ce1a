package table

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerd/internal/protocol"
	"pokerd/pkg/types"
)

func testCfg() types.TableConfig {
	return types.TableConfig{
		ID:         "main",
		Name:       "Main Table",
		MinPlayers: 2,
		MaxPlayers: 4,
		SmallBlind: 5,
		BigBlind:   10,
		MinBuyin:   1000,
		Roster: []types.AIRosterEntry{
			{ID: "bot1", Name: "Bot One", BankID: "bot1", JoinProbability: 1},
			{ID: "bot2", Name: "Bot Two", BankID: "bot2", JoinProbability: 1},
		},
	}
}

func TestJoinAssignsLowestEmptySeat(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	seat, err := r.Join(protocol.NewConnID(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint8(0), uint8(seat))

	seat2, err := r.Join(protocol.NewConnID(), "bob")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), uint8(seat2))
}

func TestJoinRejectsDuplicateConn(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	conn := protocol.NewConnID()
	_, err := r.Join(conn, "alice")
	require.NoError(t, err)
	_, err = r.Join(conn, "alice")
	assert.ErrorIs(t, err, ErrAlreadySeated)
}

func TestJoinRejectsFullTable(t *testing.T) {
	cfg := testCfg()
	cfg.MaxPlayers = 1
	r := NewTableRoom(cfg, zerolog.Nop())
	_, err := r.Join(protocol.NewConnID(), "alice")
	require.NoError(t, err)
	_, err = r.Join(protocol.NewConnID(), "bob")
	assert.ErrorIs(t, err, ErrTableFull)
}

func TestJoinRejectsCaseInsensitiveNameCollisionWithAHuman(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	_, err := r.Join(protocol.NewConnID(), "Alice")
	require.NoError(t, err)
	_, err = r.Join(protocol.NewConnID(), "alice")
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestJoinRejectsCaseInsensitiveNameCollisionWithAnAI(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	_, _, err := r.AddAI(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	seated := r.AI
	var aiName string
	for _, a := range seated {
		aiName = a.Name
	}
	_, err = r.Join(protocol.NewConnID(), strings.ToUpper(aiName))
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestJoinRejectsGameInProgress(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	r.Status = StatusInProgress
	_, err := r.Join(protocol.NewConnID(), "alice")
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestLeaveResetsAIWhenTableEmpties(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	conn := protocol.NewConnID()
	_, err := r.Join(conn, "alice")
	require.NoError(t, err)
	_, _, err = r.AddAI(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, r.AI, 1)

	seat, username, err := r.Leave(conn)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, uint8(0), uint8(seat))
	assert.Empty(t, r.AI, "an emptied waiting table drops its AI seats too")
}

func TestLeaveUnseatedConnErrors(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	_, _, err := r.Leave(protocol.NewConnID())
	assert.ErrorIs(t, err, ErrNotSeated)
}

func TestSetReadyRequiresMinPlayersAndAllReady(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	connA, connB := protocol.NewConnID(), protocol.NewConnID()
	_, err := r.Join(connA, "alice")
	require.NoError(t, err)

	_, allReady, err := r.SetReady(connA)
	require.NoError(t, err)
	assert.False(t, allReady, "below min players, never ready")

	_, err = r.Join(connB, "bob")
	require.NoError(t, err)
	_, allReady, err = r.SetReady(connA)
	require.NoError(t, err)
	assert.False(t, allReady, "bob has not readied yet")

	_, allReady, err = r.SetReady(connB)
	require.NoError(t, err)
	assert.True(t, allReady)
}

func TestResetReadyClearsEveryHuman(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	connA, connB := protocol.NewConnID(), protocol.NewConnID()
	_, _ = r.Join(connA, "alice")
	_, _ = r.Join(connB, "bob")
	_, _, _ = r.SetReady(connA)
	_, _, _ = r.SetReady(connB)

	r.ResetReady()
	for _, h := range r.Humans {
		assert.False(t, h.Ready)
	}
}

func TestAddAIPicksUnusedRosterEntry(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	seat1, ai1, err := r.AddAI(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	seat2, ai2, err := r.AddAI(rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.NotEqual(t, seat1, seat2)
	assert.NotEqual(t, ai1.RosterID, ai2.RosterID, "each AddAI call must seat a distinct roster entry")
}

func TestAddAIRejectsWhenRosterExhausted(t *testing.T) {
	cfg := testCfg()
	cfg.Roster = cfg.Roster[:1]
	r := NewTableRoom(cfg, zerolog.Nop())
	_, _, err := r.AddAI(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	_, _, err = r.AddAI(rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrRosterExhausted)
}

func TestRemoveAIVacatesSeat(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	seat, _, err := r.AddAI(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.NoError(t, r.RemoveAI(seat))
	assert.Empty(t, r.AI)
}

func TestRemoveAIUnknownSeatErrors(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	assert.Error(t, r.RemoveAI(3))
}

func TestResetClearsEverything(t *testing.T) {
	r := NewTableRoom(testCfg(), zerolog.Nop())
	conn := protocol.NewConnID()
	_, _ = r.Join(conn, "alice")
	_, _, _ = r.AddAI(rand.New(rand.NewSource(1)))
	r.Status = StatusInProgress

	r.Reset()
	assert.Empty(t, r.Humans)
	assert.Empty(t, r.AI)
	assert.Nil(t, r.Active)
	assert.Equal(t, StatusWaiting, r.Status)
}
