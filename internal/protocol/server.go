package protocol

import (
	"encoding/json"
	"fmt"

	"pokerd/internal/engine"
	"pokerd/pkg/types"
)

// ServerMsgType tags a ServerMessage's wire variant, per spec.md §6.
type ServerMsgType string

const (
	SWelcome           ServerMsgType = "welcome"
	SError             ServerMsgType = "error"
	SLobbyState        ServerMsgType = "lobby_state"
	STableJoined       ServerMsgType = "table_joined"
	STableLeft         ServerMsgType = "table_left"
	SPlayerJoinedTable ServerMsgType = "player_joined_table"
	SPlayerLeftTable   ServerMsgType = "player_left_table"
	SPlayerReady       ServerMsgType = "player_ready"
	SAIAdded           ServerMsgType = "ai_added"
	SAIRemoved         ServerMsgType = "ai_removed"
	SGameStarting      ServerMsgType = "game_starting"
	SGameEvent         ServerMsgType = "game_event"
	SActionRequest     ServerMsgType = "action_request"
)

// ServerMessage is any message the server may write to a connected client.
type ServerMessage interface {
	ServerType() ServerMsgType
}

// TableInfo summarizes one table room for lobby_state.
type TableInfo struct {
	TableID     string `json:"table_id"`
	Name        string `json:"name"`
	Status      string `json:"status"` // waiting | in_progress | finished
	NumSeated   int    `json:"num_seated"`
	MinPlayers  int    `json:"min_players"`
	MaxPlayers  int    `json:"max_players"`
}

// PlayerInfo summarizes one seated player for table_joined.
type PlayerInfo struct {
	Seat     engine.Seat `json:"seat"`
	Username string      `json:"username"`
	IsAI     bool        `json:"is_ai"`
	Ready    bool        `json:"ready"`
}

type Welcome struct {
	Type     ServerMsgType `json:"type"`
	Username string        `json:"username"`
	Message  string        `json:"message"`
	Bankroll int64         `json:"bankroll"`
}

func (m Welcome) ServerType() ServerMsgType { return SWelcome }

type Error struct {
	Type    ServerMsgType `json:"type"`
	Message string        `json:"message"`
}

func (m Error) ServerType() ServerMsgType { return SError }

func NewError(format string, args ...any) Error {
	return Error{Type: SError, Message: fmt.Sprintf(format, args...)}
}

type LobbyState struct {
	Type   ServerMsgType `json:"type"`
	Tables []TableInfo   `json:"tables"`
}

func (m LobbyState) ServerType() ServerMsgType { return SLobbyState }

type TableJoined struct {
	Type       ServerMsgType `json:"type"`
	TableID    string        `json:"table_id"`
	TableName  string        `json:"table_name"`
	Seat       engine.Seat   `json:"seat"`
	Players    []PlayerInfo  `json:"players"`
	MinPlayers int           `json:"min_players"`
	MaxPlayers int           `json:"max_players"`
}

func (m TableJoined) ServerType() ServerMsgType { return STableJoined }

type TableLeft struct {
	Type ServerMsgType `json:"type"`
}

func (m TableLeft) ServerType() ServerMsgType { return STableLeft }

type PlayerJoinedTable struct {
	Type     ServerMsgType `json:"type"`
	Seat     engine.Seat   `json:"seat"`
	Username string        `json:"username"`
}

func (m PlayerJoinedTable) ServerType() ServerMsgType { return SPlayerJoinedTable }

type PlayerLeftTable struct {
	Type     ServerMsgType `json:"type"`
	Seat     engine.Seat   `json:"seat"`
	Username string        `json:"username"`
}

func (m PlayerLeftTable) ServerType() ServerMsgType { return SPlayerLeftTable }

type PlayerReady struct {
	Type ServerMsgType `json:"type"`
	Seat engine.Seat   `json:"seat"`
}

func (m PlayerReady) ServerType() ServerMsgType { return SPlayerReady }

type AIAdded struct {
	Type ServerMsgType `json:"type"`
	Seat engine.Seat   `json:"seat"`
	Name string        `json:"name"`
}

func (m AIAdded) ServerType() ServerMsgType { return SAIAdded }

type AIRemoved struct {
	Type ServerMsgType `json:"type"`
	Seat engine.Seat   `json:"seat"`
}

func (m AIRemoved) ServerType() ServerMsgType { return SAIRemoved }

type GameStarting struct {
	Type        ServerMsgType     `json:"type"`
	Countdown   int               `json:"countdown"`
	TableConfig types.TableConfig `json:"table_config"`
}

func (m GameStarting) ServerType() ServerMsgType { return SGameStarting }

// GameEventMsg wraps an engine.GameEvent for the wire: the outer envelope
// carries type "game_event", the inner Event carries the event's own type
// tag (hand_started, action_taken, ...).
type GameEventMsg struct {
	Type  ServerMsgType   `json:"type"`
	Event json.RawMessage `json:"event"`
}

// NewGameEventMsg marshals ev into a GameEventMsg envelope.
func NewGameEventMsg(ev engine.GameEvent) (GameEventMsg, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return GameEventMsg{}, fmt.Errorf("protocol: marshal game event: %w", err)
	}
	return GameEventMsg{Type: SGameEvent, Event: raw}, nil
}

func (m GameEventMsg) ServerType() ServerMsgType { return SGameEvent }

// DecodeEvent unwraps the inner GameEvent, dispatching on its own type tag.
func (m GameEventMsg) DecodeEvent() (engine.GameEvent, error) {
	return engine.DecodeEvent(m.Event)
}

type ActionRequestMsg struct {
	Type        ServerMsgType       `json:"type"`
	ValidActions engine.ValidActions `json:"valid_actions"`
	TimeLimit   int                 `json:"time_limit_seconds"`
}

func (m ActionRequestMsg) ServerType() ServerMsgType { return SActionRequest }

// DecodeServer dispatches a frame body to its concrete ServerMessage by
// peeking the type tag. Used by tests asserting on what the server wrote.
func DecodeServer(body []byte) (ServerMessage, error) {
	t, err := PeekType(body)
	if err != nil {
		return nil, err
	}
	var msg ServerMessage
	switch ServerMsgType(t) {
	case SWelcome:
		var m Welcome
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SError:
		var m Error
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SLobbyState:
		var m LobbyState
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case STableJoined:
		var m TableJoined
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case STableLeft:
		var m TableLeft
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SPlayerJoinedTable:
		var m PlayerJoinedTable
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SPlayerLeftTable:
		var m PlayerLeftTable
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SPlayerReady:
		var m PlayerReady
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SAIAdded:
		var m AIAdded
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SAIRemoved:
		var m AIRemoved
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SGameStarting:
		var m GameStarting
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SGameEvent:
		var m GameEventMsg
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case SActionRequest:
		var m ActionRequestMsg
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	default:
		return nil, fmt.Errorf("protocol: unknown server message type %q", t)
	}
	return msg, nil
}
