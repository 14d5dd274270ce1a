package engine

import "sort"

// Pot is one side pot (or the main pot): an amount and the seats eligible
// to win it.
type Pot struct {
	Amount   int64
	Eligible []Seat
}

// buildPots splits total contributions into a main pot and side pots by
// ascending all-in contribution level, per spec.md's side-pot algorithm:
// each layer is shared by every seat that contributed at least that level
// and has not folded; folded seats' chips still fund the layer but they
// are never eligible to win it.
func buildPots(order []Seat, commit map[Seat]int64, folded map[Seat]bool) []Pot {
	levels := make(map[int64]bool)
	for _, seat := range order {
		if c := commit[seat]; c > 0 {
			levels[c] = true
		}
	}
	var sorted []int64
	for lvl := range levels {
		sorted = append(sorted, lvl)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var pots []Pot
	var prev int64
	for _, lvl := range sorted {
		layer := lvl - prev
		if layer <= 0 {
			continue
		}
		var amount int64
		var eligible []Seat
		for _, seat := range order {
			c := commit[seat]
			if c <= prev {
				continue
			}
			contrib := layer
			if c-prev < layer {
				contrib = c - prev
			}
			amount += contrib
			if c >= lvl && !folded[seat] {
				eligible = append(eligible, seat)
			}
		}
		if amount > 0 && len(eligible) > 0 {
			pots = append(pots, Pot{Amount: amount, Eligible: eligible})
		} else if amount > 0 {
			// every contributor to this layer folded: merge its chips into
			// the previous pot. resolve passes the raw commitments, so a
			// raiser's uncalled excess is not stripped beforehand; it forms
			// its own layer with the raiser as the only eligible seat.
			if len(pots) > 0 {
				pots[len(pots)-1].Amount += amount
			}
		}
		prev = lvl
	}
	return pots
}
