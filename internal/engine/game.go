package engine

import "sort"

// PersistentSeat is the stack state that survives across hands at a table.
type PersistentSeat struct {
	Stack      int64
	SittingOut bool
}

// Game is the persistent, cross-hand engine state for one table: seat
// stacks, dealer rotation, and hand numbering. A hand is played by calling
// PlayHand, which mutates Game's seat stacks in place and returns once the
// hand (or the whole game, on a terminal condition) ends.
type Game struct {
	Cfg        Config
	Seats      map[Seat]*PersistentSeat
	dealerSeat Seat
	dealerSet  bool
	HandNumber uint64
}

func NewGame(cfg Config) *Game {
	return &Game{Cfg: cfg, Seats: make(map[Seat]*PersistentSeat)}
}

func (g *Game) Sit(seat Seat, stack int64) {
	g.Seats[seat] = &PersistentSeat{Stack: stack}
}

func (g *Game) Remove(seat Seat) { delete(g.Seats, seat) }

func (g *Game) SetSittingOut(seat Seat, out bool) {
	if s, ok := g.Seats[seat]; ok {
		s.SittingOut = out
	}
}

func (g *Game) Stack(seat Seat) int64 {
	if s, ok := g.Seats[seat]; ok {
		return s.Stack
	}
	return 0
}

// eligibleSeats returns, in ascending seat order, every seat with a
// positive stack that is not sitting out — candidates to be dealt into the
// next hand.
func (g *Game) eligibleSeats() []Seat {
	var out []Seat
	for seat, s := range g.Seats {
		if s.SittingOut || s.Stack <= 0 {
			continue
		}
		out = append(out, seat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// rotateDealer advances the dealer button to the next eligible seat after
// the previous dealer (or the first eligible seat on the first hand).
func (g *Game) rotateDealer(order []Seat) Seat {
	if len(order) == 0 {
		return 0
	}
	if !g.dealerSet {
		g.dealerSet = true
		g.dealerSeat = order[0]
		return g.dealerSeat
	}
	// find the first seat strictly after the previous dealer; wrap to the
	// smallest seat if the previous dealer was the largest or has left.
	idx := 0
	found := -1
	for i, s := range order {
		if s > g.dealerSeat {
			found = i
			break
		}
	}
	if found == -1 {
		idx = 0
	} else {
		idx = found
	}
	g.dealerSeat = order[idx]
	return g.dealerSeat
}
