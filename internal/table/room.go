// Package table implements the lobby-join-ready-play lifecycle manager for
// one table room, per spec.md §4.4: a named waiting area that becomes an
// active game once every seat is ready, and resets back to waiting once
// that game finishes.
package table

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"pokerd/internal/engine"
	"pokerd/internal/protocol"
	"pokerd/pkg/types"
)

// Status is a TableRoom's lifecycle state.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

var (
	ErrTableFull       = errors.New("table: full")
	ErrAlreadySeated   = errors.New("table: connection already seated")
	ErrNotSeated       = errors.New("table: connection not seated at this table")
	ErrGameInProgress  = errors.New("table: game already in progress")
	ErrNoHumansLeft    = errors.New("table: no human players remain")
	ErrRosterExhausted = errors.New("table: no available AI roster entry")
	ErrNameTaken       = errors.New("table: username already taken at this table")
)

// Seated is one human's bookkeeping within a room.
type Seated struct {
	Conn     protocol.ConnID
	Username string
	Ready    bool
}

// SeatedAI is one AI's bookkeeping within a room.
type SeatedAI struct {
	RosterID string
	Name     string
	BankID   string
}

// TableRoom owns one table's lobby state and, once started, its ActiveGame.
// Not safe for concurrent use on its own — internal/server serializes
// access to a room under its tables lock.
type TableRoom struct {
	Cfg    types.TableConfig
	Status Status

	Humans map[engine.Seat]*Seated
	AI     map[engine.Seat]*SeatedAI
	Active *ActiveGame

	log zerolog.Logger
}

func NewTableRoom(cfg types.TableConfig, log zerolog.Logger) *TableRoom {
	return &TableRoom{
		Cfg:    cfg,
		Status: StatusWaiting,
		Humans: make(map[engine.Seat]*Seated),
		AI:     make(map[engine.Seat]*SeatedAI),
		log:    log.With().Str("component", "table").Str("table_id", cfg.ID).Logger(),
	}
}

// NumSeated is the count of humans plus AI presently seated.
func (r *TableRoom) NumSeated() int { return len(r.Humans) + len(r.AI) }

// lowestEmptySeat scans seats 0..MaxPlayers-1 for the first unused index,
// per spec.md's pinned Open Question resolution (not max(existing)+1).
func (r *TableRoom) lowestEmptySeat() (engine.Seat, bool) {
	for s := engine.Seat(0); int(s) < r.Cfg.MaxPlayers; s++ {
		if _, human := r.Humans[s]; human {
			continue
		}
		if _, ai := r.AI[s]; ai {
			continue
		}
		return s, true
	}
	return 0, false
}

// Join seats a human connection at the lowest empty seat. Usernames must be
// unique at a table case-insensitively, across both humans and AI display
// names, per spec.md §3 Invariant 2.
func (r *TableRoom) Join(conn protocol.ConnID, username string) (engine.Seat, error) {
	if r.Status == StatusInProgress {
		return 0, ErrGameInProgress
	}
	for _, s := range r.Humans {
		if s.Conn == conn {
			return 0, ErrAlreadySeated
		}
	}
	if r.nameTaken(username) {
		return 0, ErrNameTaken
	}
	seat, ok := r.lowestEmptySeat()
	if !ok {
		return 0, ErrTableFull
	}
	r.Humans[seat] = &Seated{Conn: conn, Username: username}
	r.log.Info().Int("seat", int(seat)).Str("username", username).Msg("player joined")
	return seat, nil
}

// nameTaken reports whether username collides case-insensitively with any
// seated human or AI display name.
func (r *TableRoom) nameTaken(username string) bool {
	for _, h := range r.Humans {
		if strings.EqualFold(h.Username, username) {
			return true
		}
	}
	for _, a := range r.AI {
		if strings.EqualFold(a.Name, username) {
			return true
		}
	}
	return false
}

// Leave removes conn's seat. During Waiting with no humans left it also
// clears AI slots (a fully-empty table resets entirely). During
// InProgress it marks the seat sitting-out in the ActiveGame and, if no
// humans remain, raises the quit signal so the engine ends after the
// current hand. Returns the vacated seat and the username for the caller
// to broadcast PlayerLeftTable / emit a PlayerLeft game event.
func (r *TableRoom) Leave(conn protocol.ConnID) (engine.Seat, string, error) {
	var seat engine.Seat
	var found *Seated
	for s, h := range r.Humans {
		if h.Conn == conn {
			seat, found = s, h
			break
		}
	}
	if found == nil {
		return 0, "", ErrNotSeated
	}
	delete(r.Humans, seat)

	if r.Status == StatusInProgress && r.Active != nil {
		r.Active.MarkSittingOut(seat)
		if len(r.Humans) == 0 {
			r.Active.RaiseQuitSignal()
		}
	}
	if r.Status == StatusWaiting && len(r.Humans) == 0 {
		r.AI = make(map[engine.Seat]*SeatedAI)
	}
	r.log.Info().Int("seat", int(seat)).Str("username", found.Username).Msg("player left")
	return seat, found.Username, nil
}

// SetReady marks conn's seat ready and reports whether the room is now
// eligible to start (every seat ready, min player count met). The caller
// (internal/server) drives the buy-in/start transition itself since that
// requires the bank, which TableRoom does not hold.
func (r *TableRoom) SetReady(conn protocol.ConnID) (engine.Seat, bool, error) {
	for seat, h := range r.Humans {
		if h.Conn == conn {
			h.Ready = true
			return seat, r.allReady(), nil
		}
	}
	return 0, false, ErrNotSeated
}

func (r *TableRoom) allReady() bool {
	if r.NumSeated() < r.Cfg.MinPlayers {
		return false
	}
	for _, h := range r.Humans {
		if !h.Ready {
			return false
		}
	}
	return true
}

// ResetReady clears every human's ready flag (AI remain implicitly ready),
// used when a buy-in atomically fails for one or more seats.
func (r *TableRoom) ResetReady() {
	for _, h := range r.Humans {
		h.Ready = false
	}
}

// HumanIDs returns every seated human's bank profile id in seat order —
// the bank treats a connection's lowercased username as its profile id.
func (r *TableRoom) HumanIDs() []string {
	var seats []engine.Seat
	for s := range r.Humans {
		seats = append(seats, s)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	ids := make([]string, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, r.Humans[s].Username)
	}
	return ids
}

// AddAI seats a roster entry not already used at this table, biased by
// join_probability; if no entry satisfies its roll, falls back to the
// first unused entry. Only legal during Waiting.
func (r *TableRoom) AddAI(rng *rand.Rand) (engine.Seat, *SeatedAI, error) {
	if r.Status != StatusWaiting {
		return 0, nil, ErrGameInProgress
	}
	seat, ok := r.lowestEmptySeat()
	if !ok {
		return 0, nil, ErrTableFull
	}
	used := make(map[string]bool, len(r.AI))
	for _, a := range r.AI {
		used[a.RosterID] = true
	}
	var fallback *types.AIRosterEntry
	var chosen *types.AIRosterEntry
	for i := range r.Cfg.Roster {
		entry := &r.Cfg.Roster[i]
		if used[entry.ID] {
			continue
		}
		if fallback == nil {
			fallback = entry
		}
		if rng.Float64() < entry.JoinProbability {
			chosen = entry
			break
		}
	}
	if chosen == nil {
		chosen = fallback
	}
	if chosen == nil {
		return 0, nil, ErrRosterExhausted
	}
	ai := &SeatedAI{RosterID: chosen.ID, Name: chosen.Name, BankID: chosen.BankID}
	r.AI[seat] = ai
	r.log.Info().Int("seat", int(seat)).Str("name", ai.Name).Msg("ai seated")
	return seat, ai, nil
}

// RemoveAI vacates seat's AI slot. Only legal during Waiting.
func (r *TableRoom) RemoveAI(seat engine.Seat) error {
	if r.Status != StatusWaiting {
		return ErrGameInProgress
	}
	if _, ok := r.AI[seat]; !ok {
		return fmt.Errorf("table: no ai at seat %d", seat)
	}
	delete(r.AI, seat)
	return nil
}

// Reset clears seats and readiness and drops the ActiveGame, used by
// cleanup_finished_games once an ActiveGame reports finished.
func (r *TableRoom) Reset() {
	r.Humans = make(map[engine.Seat]*Seated)
	r.AI = make(map[engine.Seat]*SeatedAI)
	r.Active = nil
	r.Status = StatusWaiting
}

func (r *TableRoom) Info() protocol.TableInfo {
	status := string(r.Status)
	return protocol.TableInfo{
		TableID:    r.Cfg.ID,
		Name:       r.Cfg.Name,
		Status:     status,
		NumSeated:  r.NumSeated(),
		MinPlayers: r.Cfg.MinPlayers,
		MaxPlayers: r.Cfg.MaxPlayers,
	}
}

func (r *TableRoom) Players() []protocol.PlayerInfo {
	var out []protocol.PlayerInfo
	for seat, h := range r.Humans {
		out = append(out, protocol.PlayerInfo{Seat: seat, Username: h.Username, Ready: h.Ready})
	}
	for seat, a := range r.AI {
		out = append(out, protocol.PlayerInfo{Seat: seat, Username: a.Name, IsAI: true, Ready: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}
