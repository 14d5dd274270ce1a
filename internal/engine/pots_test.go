package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPotsSplitsByAllInLevel(t *testing.T) {
	order := []Seat{0, 1, 2}
	commit := map[Seat]int64{0: 100, 1: 300, 2: 300}
	folded := map[Seat]bool{}

	pots := buildPots(order, commit, folded)

	assert := assert.New(t)
	if assert.Len(pots, 2) {
		assert.Equal(int64(300), pots[0].Amount)
		assert.ElementsMatch([]Seat{0, 1, 2}, pots[0].Eligible)
		assert.Equal(int64(400), pots[1].Amount)
		assert.ElementsMatch([]Seat{1, 2}, pots[1].Eligible)
	}

	var total int64
	for _, p := range pots {
		total += p.Amount
	}
	assert.Equal(int64(700), total)
}

func TestBuildPotsExcludesFoldedSeatsFromEligibilityButNotFunding(t *testing.T) {
	order := []Seat{0, 1, 2}
	commit := map[Seat]int64{0: 100, 1: 50, 2: 300}
	folded := map[Seat]bool{1: true}

	pots := buildPots(order, commit, folded)

	var total int64
	for _, p := range pots {
		total += p.Amount
		for _, s := range p.Eligible {
			assert.NotEqual(t, Seat(1), s, "a folded seat must never be eligible to win a pot")
		}
	}
	assert.Equal(t, int64(450), total, "the folded seat's chips still fund the pots")
}

func TestBuildPotsSingleLevelIsOnePot(t *testing.T) {
	order := []Seat{0, 1}
	commit := map[Seat]int64{0: 20, 1: 20}
	pots := buildPots(order, commit, map[Seat]bool{})
	if assert.Len(t, pots, 1) {
		assert.Equal(t, int64(40), pots[0].Amount)
		assert.ElementsMatch(t, []Seat{0, 1}, pots[0].Eligible)
	}
}
