// Package config loads tables.toml into []types.TableConfig. This is the
// only place in the module that knows the on-disk TOML shape; the core
// consumes pkg/types.TableConfig values it never has to parse itself, per
// spec.md's Non-goals excluding a config-format decision from the core.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"pokerd/pkg/types"
)

// Defaults applied to a tables.toml entry that leaves a pacing field at
// zero, matching the teacher's convention of defaulting timing knobs rather
// than requiring every table to restate them.
const (
	defaultActionDelay  = 500 * time.Millisecond
	defaultStreetDelay  = 700 * time.Millisecond
	defaultHandEndDelay = 2000 * time.Millisecond
)

type rosterEntry struct {
	ID              string  `toml:"id"`
	Name            string  `toml:"name"`
	StrategyID      string  `toml:"strategy_id"`
	BankID          string  `toml:"bank_id"`
	JoinProbability float64 `toml:"join_probability"`
}

type payoutStep struct {
	Position int     `toml:"position"`
	Percent  float64 `toml:"percent"`
}

type tableEntry struct {
	ID           string       `toml:"id"`
	Name         string       `toml:"name"`
	Order        int          `toml:"order"`
	Format       string       `toml:"format"` // "cash" | "sit_n_go"
	Structure    string       `toml:"structure"` // "no_limit" | "pot_limit" | "fixed_limit"
	MinPlayers   int          `toml:"min_players"`
	MaxPlayers   int          `toml:"max_players"`
	SmallBlind   int64        `toml:"small_blind"`
	BigBlind     int64        `toml:"big_blind"`
	MinBuyin     int64        `toml:"min_buyin"`
	MaxBuyin     int64        `toml:"max_buyin"`
	MaxRaises    int          `toml:"max_raises"`
	RakePercent  float64      `toml:"rake_percent"`
	RakeCap      int64        `toml:"rake_cap"`
	NoFlopNoDrop bool         `toml:"no_flop_no_drop"`
	MaxHands     int          `toml:"max_hands"`
	Seed         int64        `toml:"seed"`
	ActionDelayMs  int64      `toml:"action_delay_ms"`
	StreetDelayMs  int64      `toml:"street_delay_ms"`
	HandEndDelayMs int64      `toml:"hand_end_delay_ms"`
	Payouts      []payoutStep  `toml:"payouts"`
	Roster       []rosterEntry `toml:"roster"`
}

type file struct {
	Tables []tableEntry `toml:"tables"`
}

// Load parses path into a validated slice of types.TableConfig, in the
// order tables.toml declares them.
func Load(path string) ([]types.TableConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f file
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(f.Tables) == 0 {
		return nil, fmt.Errorf("config: %s declares no tables", path)
	}

	out := make([]types.TableConfig, 0, len(f.Tables))
	seen := make(map[string]bool, len(f.Tables))
	for i, t := range f.Tables {
		if t.ID == "" {
			return nil, fmt.Errorf("config: table at index %d missing id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("config: duplicate table id %q", t.ID)
		}
		seen[t.ID] = true
		if t.MinPlayers < 2 {
			return nil, fmt.Errorf("config: table %q: min_players must be >= 2", t.ID)
		}
		if t.MaxPlayers < t.MinPlayers {
			return nil, fmt.Errorf("config: table %q: max_players must be >= min_players", t.ID)
		}
		if t.SmallBlind <= 0 || t.BigBlind <= t.SmallBlind {
			return nil, fmt.Errorf("config: table %q: big_blind must exceed small_blind > 0", t.ID)
		}
		if t.MinBuyin <= 0 {
			return nil, fmt.Errorf("config: table %q: min_buyin must be > 0", t.ID)
		}

		cfg := types.TableConfig{
			ID:           t.ID,
			Name:         t.Name,
			Order:        t.Order,
			Format:       types.GameFormat(defaultStr(t.Format, string(types.FormatCash))),
			Structure:    types.BettingStructure(defaultStr(t.Structure, string(types.NoLimit))),
			MinPlayers:   t.MinPlayers,
			MaxPlayers:   t.MaxPlayers,
			SmallBlind:   t.SmallBlind,
			BigBlind:     t.BigBlind,
			MinBuyin:     t.MinBuyin,
			MaxBuyin:     t.MaxBuyin,
			MaxRaises:    t.MaxRaises,
			RakePercent:  t.RakePercent,
			RakeCap:      t.RakeCap,
			NoFlopNoDrop: t.NoFlopNoDrop,
			MaxHands:     t.MaxHands,
			Seed:         t.Seed,
			ActionDelay:  durationOrDefault(t.ActionDelayMs, defaultActionDelay),
			StreetDelay:  durationOrDefault(t.StreetDelayMs, defaultStreetDelay),
			HandEndDelay: durationOrDefault(t.HandEndDelayMs, defaultHandEndDelay),
		}
		for _, p := range t.Payouts {
			cfg.Payouts = append(cfg.Payouts, types.PayoutStep{Position: p.Position, Percent: p.Percent})
		}
		for _, r := range t.Roster {
			cfg.Roster = append(cfg.Roster, types.AIRosterEntry{
				ID:              r.ID,
				Name:            r.Name,
				StrategyID:      r.StrategyID,
				BankID:          r.BankID,
				JoinProbability: r.JoinProbability,
			})
		}
		out = append(out, cfg)
	}
	return out, nil
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func durationOrDefault(ms int64, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
