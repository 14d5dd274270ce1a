package engine

import "pokerd/pkg/types"

// validActionsFor computes the legal action mask for the seat about to act,
// per spec.md §4.2 and the table's configured betting structure.
func (h *hand) validActionsFor(seat Seat) ValidActions {
	st := h.seats[seat]
	toCall := h.currentBet - st.Street
	if toCall < 0 {
		toCall = 0
	}
	va := ValidActions{CanFold: toCall > 0}

	if toCall == 0 {
		va.CanCheck = true
	} else {
		if toCall >= st.Stack {
			va.CanCall = false
		} else {
			va.CanCall = true
			va.CallAmount = toCall
		}
	}

	va.CanAllIn = st.Stack > 0
	va.AllInAmount = st.Street + st.Stack

	if h.raiseCapReached() {
		va.Raise = RaiseOptions{Kind: RaiseNone}
		return va
	}

	switch h.cfg.Structure {
	case types.FixedLimit:
		step := h.fixedLimitStep()
		raiseTo := h.currentBet + step
		if raiseTo-st.Street < st.Stack {
			va.Raise = RaiseOptions{Kind: RaiseFixed, Amount: raiseTo}
		} else {
			va.Raise = RaiseOptions{Kind: RaiseNone}
		}
	case types.PotLimit:
		minRaiseTo := h.currentBet + h.lastRaiseSize
		if h.currentBet == 0 {
			minRaiseTo = h.cfg.BigBlind
		}
		maxRaiseTo := h.currentBet + h.pot + 2*toCall
		if allIn := st.Street + st.Stack; maxRaiseTo > allIn {
			maxRaiseTo = allIn
		}
		if minRaiseTo > maxRaiseTo {
			va.Raise = RaiseOptions{Kind: RaiseNone}
		} else {
			va.Raise = RaiseOptions{Kind: RaiseVariable, Min: minRaiseTo, Max: maxRaiseTo}
		}
	default: // NoLimit: a variable raise-to window capped only by the stack
		minRaiseTo := h.currentBet + h.lastRaiseSize
		if h.currentBet == 0 {
			minRaiseTo = h.cfg.BigBlind
		}
		maxRaiseTo := st.Street + st.Stack
		if minRaiseTo > maxRaiseTo {
			va.Raise = RaiseOptions{Kind: RaiseNone}
		} else {
			va.Raise = RaiseOptions{Kind: RaiseVariable, Min: minRaiseTo, Max: maxRaiseTo}
		}
	}
	return va
}

func (h *hand) raiseCapReached() bool {
	return h.cfg.MaxRaises > 0 && h.raisesRound >= h.cfg.MaxRaises
}

func (h *hand) fixedLimitStep() int64 {
	if h.street == Preflop || h.street == Flop {
		return h.cfg.BigBlind
	}
	return h.cfg.BigBlind * 2
}

// normalizeAction clamps a requester's response into a legal action,
// defaulting to fold-or-check on timeout or an illegal response.
func (h *hand) normalizeAction(resp ActionResponse, valid ValidActions) PlayerAction {
	if resp.TimedOut {
		if valid.CanCheck {
			return PlayerAction{Kind: ActionCheck}
		}
		return PlayerAction{Kind: ActionFold}
	}
	a := resp.Action
	switch a.Kind {
	case ActionFold:
		if valid.CanCheck {
			return PlayerAction{Kind: ActionCheck}
		}
		return PlayerAction{Kind: ActionFold}
	case ActionCheck:
		if valid.CanCheck {
			return a
		}
		return h.normalizeAction(ActionResponse{TimedOut: true}, valid)
	case ActionCall:
		if valid.CanCall {
			return PlayerAction{Kind: ActionCall, Amount: valid.CallAmount}
		}
		if valid.CanAllIn {
			return PlayerAction{Kind: ActionAllIn, Amount: valid.AllInAmount}
		}
		return h.normalizeAction(ActionResponse{TimedOut: true}, valid)
	case ActionBet, ActionRaise:
		if valid.Raise.Kind == RaiseNone {
			return h.normalizeAction(ActionResponse{TimedOut: true}, valid)
		}
		amount := a.Amount
		switch valid.Raise.Kind {
		case RaiseFixed:
			amount = valid.Raise.Amount
		case RaiseVariable:
			if amount < valid.Raise.Min {
				amount = valid.Raise.Min
			}
			if amount > valid.Raise.Max {
				amount = valid.Raise.Max
			}
		}
		if amount >= valid.AllInAmount {
			return PlayerAction{Kind: ActionAllIn, Amount: valid.AllInAmount}
		}
		return PlayerAction{Kind: a.Kind, Amount: amount}
	case ActionAllIn:
		if valid.CanAllIn {
			return PlayerAction{Kind: ActionAllIn, Amount: valid.AllInAmount}
		}
		return h.normalizeAction(ActionResponse{TimedOut: true}, valid)
	default:
		return h.normalizeAction(ActionResponse{TimedOut: true}, valid)
	}
}

// apply commits action's effect to seat's state and the hand's pot/betting
// bookkeeping, then advances to the next actor.
func (h *hand) apply(seat Seat, action PlayerAction) {
	st := h.seats[seat]
	switch action.Kind {
	case ActionFold:
		st.Folded = true
	case ActionCheck:
		// no chip movement
	case ActionCall:
		h.commit(seat, st.Street+action.Amount)
	case ActionBet, ActionRaise:
		h.commit(seat, action.Amount)
		size := action.Amount - h.currentBet
		h.currentBet = action.Amount
		if size > h.lastRaiseSize {
			h.lastRaiseSize = size
		}
		h.raisesRound++
		h.reopenAction(seat)
	case ActionAllIn:
		wasRaise := action.Amount > h.currentBet
		h.commit(seat, action.Amount)
		if wasRaise {
			size := action.Amount - h.currentBet
			h.currentBet = action.Amount
			if size > h.lastRaiseSize {
				h.lastRaiseSize = size
			}
			h.raisesRound++
			h.reopenAction(seat)
		}
	}
	h.acted[seat] = true
	h.advanceActor()
}

// commit moves seat's street contribution up to target (a street-total, not
// a delta), deducting the difference from its stack and adding it to the
// pot. target is clamped to the seat's stack by normalizeAction already.
func (h *hand) commit(seat Seat, target int64) {
	st := h.seats[seat]
	delta := target - st.Street
	if delta < 0 {
		delta = 0
	}
	if delta >= st.Stack {
		delta = st.Stack
		st.AllIn = true
	}
	st.Stack -= delta
	st.Street += delta
	h.totalCommit[seat] += delta
	h.pot += delta
}

// reopenAction clears every other seat's acted flag so a raise forces the
// table back around; the raiser's own acted flag is set by apply.
func (h *hand) reopenAction(raiser Seat) {
	for _, seat := range h.order {
		if seat == raiser {
			continue
		}
		h.acted[seat] = false
	}
}
