package engine

import (
	"encoding/json"
	"fmt"
)

// ActionKind tags a PlayerAction's variant.
type ActionKind string

const (
	ActionFold    ActionKind = "fold"
	ActionCheck   ActionKind = "check"
	ActionCall    ActionKind = "call"
	ActionBet     ActionKind = "bet"
	ActionRaise   ActionKind = "raise"
	ActionAllIn   ActionKind = "all_in"
	ActionTimeout ActionKind = "timeout"
)

// PlayerAction is the tagged union a seat returns from request_action.
// Amount is the target street-total for Bet/Raise/AllIn (not a delta) and
// is ignored for Fold/Check/Timeout; Call's Amount is informational only,
// the engine always uses the live call price.
type PlayerAction struct {
	Kind   ActionKind `json:"type"`
	Amount int64      `json:"amount,omitempty"`
}

func (a PlayerAction) String() string {
	if a.Amount != 0 {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Amount)
	}
	return string(a.Kind)
}

func (a PlayerAction) MarshalJSON() ([]byte, error) {
	type alias PlayerAction
	return json.Marshal(alias(a))
}

// RaiseKind tags whether a ValidActions' raise window is absent, a single
// fixed amount (FixedLimit), or a variable range (NoLimit/PotLimit).
type RaiseKind string

const (
	RaiseNone     RaiseKind = "none"
	RaiseFixed    RaiseKind = "fixed"
	RaiseVariable RaiseKind = "variable"
)

// RaiseOptions describes the legal raise-to window for the acting seat.
type RaiseOptions struct {
	Kind   RaiseKind `json:"kind"`
	Amount int64     `json:"amount,omitempty"`  // RaiseFixed: the single raise-to amount
	Min    int64     `json:"min,omitempty"`     // RaiseVariable: minimum raise-to
	Max    int64     `json:"max,omitempty"`     // RaiseVariable: maximum raise-to (stack cap)
}

// ValidActions is the mask computed for the acting seat before each
// request_action call.
type ValidActions struct {
	CanFold      bool         `json:"can_fold"`
	CanCheck     bool         `json:"can_check"`
	CanCall      bool         `json:"can_call"`
	CallAmount   int64        `json:"call_amount,omitempty"`
	Raise        RaiseOptions `json:"raise"`
	CanAllIn     bool         `json:"can_all_in"`
	AllInAmount  int64        `json:"all_in_amount,omitempty"`
}
