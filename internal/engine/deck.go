package engine

import "math/rand"

// NewDeck returns a freshly Fisher-Yates-shuffled 52-card deck drawn from r.
func NewDeck(r *rand.Rand) []Card {
	deck := make([]Card, 0, 52)
	for s := SuitClubs; s <= SuitSpades; s++ {
		for rnk := RankTwo; rnk <= RankAce; rnk++ {
			deck = append(deck, Card{Rank: rnk, Suit: s})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

// RNGForHand derives a per-hand deterministic source: if seed is nonzero it
// is mixed with the hand number so repeated hands at the same table don't
// all deal identically, satisfying invariant 7 (same seed + same inputs =>
// byte-identical event stream) while still varying hand to hand. A zero
// seed falls back to a process-random source.
func RNGForHand(seed int64, handNumber uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	mixed := seed*31 + int64(handNumber)
	return rand.New(rand.NewSource(mixed))
}
