package engine

import "pokerd/pkg/types"

// Config is fixed at engine construction, per spec.md §4.3.
type Config struct {
	SmallBlind    int64
	BigBlind      int64
	StartStack    int64 // copied from the table's MinBuyin; the engine does not read it (stacks come from Game.Sit and carry over hand to hand)
	Structure     types.BettingStructure
	MaxRaises     int // 0 = uncapped
	RakePercent   float64
	RakeCap       int64 // <=0 means uncapped
	NoFlopNoDrop  bool
	MaxHands      int // 0 = unlimited
	Seed          int64
}

func ConfigFromTable(t types.TableConfig) Config {
	return Config{
		SmallBlind:   t.SmallBlind,
		BigBlind:     t.BigBlind,
		StartStack:   t.MinBuyin,
		Structure:    t.Structure,
		MaxRaises:    t.MaxRaises,
		RakePercent:  t.RakePercent,
		RakeCap:      t.RakeCap,
		NoFlopNoDrop: t.NoFlopNoDrop,
		MaxHands:     t.MaxHands,
		Seed:         t.Seed,
	}
}
