// Package types holds the configuration shapes the core consumes
// already-parsed. Nothing in this package touches TOML, the filesystem, or
// any other external resource — see internal/config and internal/bank for
// the adapters that produce these values.
package types

import "time"

// GameFormat selects how a table reconciles its bankroll at GameEnded.
type GameFormat string

const (
	FormatCash  GameFormat = "cash"
	FormatSitNGo GameFormat = "sit_n_go"
)

// BettingStructure selects the raise-sizing rules the hand engine enforces.
type BettingStructure string

const (
	NoLimit    BettingStructure = "no_limit"
	PotLimit   BettingStructure = "pot_limit"
	FixedLimit BettingStructure = "fixed_limit"
)

// AIRosterEntry describes one reusable AI opponent a table may seat.
// JoinProbability biases add_ai's pick among roster entries not already
// seated at the table; entries that fail their roll are skipped in favor of
// the first entry that passes, or the first unused entry if none pass.
type AIRosterEntry struct {
	ID              string
	Name            string
	StrategyID      string
	BankID          string
	JoinProbability float64
}

// PayoutStep is one entry of a Sit-N-Go payout schedule: the finisher in
// Position receives Percent of the prize pool (MinBuyin * number of players
// in the final standings).
type PayoutStep struct {
	Position int
	Percent  float64
}

// TableConfig is the static, process-lifetime configuration for one table
// room. It is read once from tables.toml (internal/config) and handed to
// the core unchanged.
type TableConfig struct {
	ID          string
	Name        string
	Order       int
	Format      GameFormat
	Structure   BettingStructure
	MinPlayers  int
	MaxPlayers  int
	SmallBlind  int64
	BigBlind    int64
	MinBuyin    int64
	MaxBuyin    int64
	MaxRaises   int // 0 = uncapped
	RakePercent float64
	RakeCap     int64 // <=0 means no cap
	NoFlopNoDrop bool
	MaxHands    int // 0 = unlimited
	Seed        int64 // 0 means a process-random shuffle every hand, see engine.RNGForHand
	Payouts     []PayoutStep
	Roster      []AIRosterEntry

	// UI pacing, all with teacher-style defaults applied by internal/config
	// when the TOML value is zero.
	ActionDelay  time.Duration
	StreetDelay  time.Duration
	HandEndDelay time.Duration
}

// StrategyStore resolves a strategy id (as named in an AIRosterEntry) to a
// Strategy; the store's internal strategy logic is an external
// collaborator per spec.md, not part of the core. Nothing in this module
// implements it: the server builds each AI seat's aiplayer.RulesPlayer
// directly.
type StrategyStore interface {
	Strategy(id string) (Strategy, bool)
}

// Strategy is the minimal capability a rule-based bot exposes here: a name
// for display. Decisions go through engine.ActionRequester. Defined here
// (rather than in internal/engine) so pkg/types stays the single leaf
// package both internal/engine and internal/aiplayer can depend on without
// a cycle.
type Strategy interface {
	Name() string
}
