package engine

import (
	"encoding/json"
	"fmt"
)

type eventTypeTag struct {
	Type EventType `json:"type"`
}

// DecodeEvent unmarshals a single JSON-encoded GameEvent into its concrete
// type, dispatching on the "type" discriminator. Used by internal/protocol
// to unwrap a game_event server message body and by tests asserting on
// specific event fields after a round trip through the wire codec.
func DecodeEvent(body []byte) (GameEvent, error) {
	var tag eventTypeTag
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, fmt.Errorf("engine: decode event type: %w", err)
	}
	var ev GameEvent
	switch tag.Type {
	case EvGameCreated:
		var e GameCreated
		ev = &e
	case EvPlayerJoined:
		var e PlayerJoined
		ev = &e
	case EvPlayerLeft:
		var e PlayerLeft
		ev = &e
	case EvGameStarted:
		var e GameStarted
		ev = &e
	case EvHandStarted:
		var e HandStarted
		ev = &e
	case EvHoleCardsDealt:
		var e HoleCardsDealt
		ev = &e
	case EvBlindPosted:
		var e BlindPosted
		ev = &e
	case EvStreetChanged:
		var e StreetChanged
		ev = &e
	case EvActionRequest:
		var e ActionRequest
		ev = &e
	case EvActionTaken:
		var e ActionTaken
		ev = &e
	case EvPotAwarded:
		var e PotAwarded
		ev = &e
	case EvShowdownReveal:
		var e ShowdownReveal
		ev = &e
	case EvHandEnded:
		var e HandEnded
		ev = &e
	case EvGameEnded:
		var e GameEnded
		ev = &e
	case EvChatMessage:
		var e ChatMessage
		ev = &e
	case EvAdminAction:
		var e AdminAction
		ev = &e
	default:
		return nil, fmt.Errorf("engine: unknown event type %q", tag.Type)
	}
	if err := json.Unmarshal(body, ev); err != nil {
		return nil, fmt.Errorf("engine: decode %s: %w", tag.Type, err)
	}
	return ev, nil
}
