package protocol

import (
	"encoding/json"
	"fmt"

	"pokerd/internal/engine"
)

// ClientMsgType tags a ClientMessage's wire variant, per spec.md §6.
type ClientMsgType string

const (
	CLogin      ClientMsgType = "login"
	CListTables ClientMsgType = "list_tables"
	CJoinTable  ClientMsgType = "join_table"
	CLeaveTable ClientMsgType = "leave_table"
	CReady      ClientMsgType = "ready"
	CAddAI      ClientMsgType = "add_ai"
	CRemoveAI   ClientMsgType = "remove_ai"
	CAction     ClientMsgType = "action"
	CChat       ClientMsgType = "chat"
)

// ClientMessage is any message a connected client may send.
type ClientMessage interface {
	ClientType() ClientMsgType
}

// MaxUsernameLen, MaxTableIDLen, MaxChatLen bound the corresponding string
// fields per spec.md §4.1.
const (
	MaxUsernameLen = 32
	MaxTableIDLen  = 64
	MaxChatLen     = 500
)

type Login struct {
	Type     ClientMsgType `json:"type"`
	Username string        `json:"username"`
}

func (m Login) ClientType() ClientMsgType { return CLogin }

type ListTables struct {
	Type ClientMsgType `json:"type"`
}

func (m ListTables) ClientType() ClientMsgType { return CListTables }

type JoinTable struct {
	Type    ClientMsgType `json:"type"`
	TableID string        `json:"table_id"`
}

func (m JoinTable) ClientType() ClientMsgType { return CJoinTable }

type LeaveTable struct {
	Type ClientMsgType `json:"type"`
}

func (m LeaveTable) ClientType() ClientMsgType { return CLeaveTable }

type Ready struct {
	Type ClientMsgType `json:"type"`
}

func (m Ready) ClientType() ClientMsgType { return CReady }

type AddAI struct {
	Type ClientMsgType `json:"type"`
}

func (m AddAI) ClientType() ClientMsgType { return CAddAI }

type RemoveAI struct {
	Type ClientMsgType `json:"type"`
	Seat engine.Seat   `json:"seat"`
}

func (m RemoveAI) ClientType() ClientMsgType { return CRemoveAI }

// ActionMsg carries a PlayerAction flattened into the message body, per
// spec.md §6 ("action payload flattened into the body").
type ActionMsg struct {
	Type   ClientMsgType      `json:"type"`
	Kind   engine.ActionKind  `json:"kind"`
	Amount int64              `json:"amount,omitempty"`
}

func (m ActionMsg) ClientType() ClientMsgType { return CAction }

func (m ActionMsg) ToPlayerAction() engine.PlayerAction {
	return engine.PlayerAction{Kind: m.Kind, Amount: m.Amount}
}

type Chat struct {
	Type ClientMsgType `json:"type"`
	Text string        `json:"text"`
}

func (m Chat) ClientType() ClientMsgType { return CChat }

// DecodeClient dispatches a frame body to its concrete ClientMessage by
// peeking the type tag.
func DecodeClient(body []byte) (ClientMessage, error) {
	t, err := PeekType(body)
	if err != nil {
		return nil, err
	}
	var msg ClientMessage
	switch ClientMsgType(t) {
	case CLogin:
		var m Login
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CListTables:
		var m ListTables
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CJoinTable:
		var m JoinTable
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CLeaveTable:
		var m LeaveTable
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CReady:
		var m Ready
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CAddAI:
		var m AddAI
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CRemoveAI:
		var m RemoveAI
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CAction:
		var m ActionMsg
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	case CChat:
		var m Chat
		if err := json.Unmarshal(body, &m); err != nil {
			return nil, err
		}
		msg = m
	default:
		return nil, fmt.Errorf("protocol: unknown client message type %q", t)
	}
	return msg, nil
}
