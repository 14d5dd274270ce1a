// Package bank persists player bankrolls to a single TOML file, per
// spec.md §6: "<app>/profiles.toml", containing default_bankroll and a map
// of lowercase id -> {bankroll}. Writes are whole-file replaces.
package bank

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrInsufficientFunds is returned by Buyin when a profile's bankroll
	// cannot cover the requested amount.
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	// ErrUnknownProfile is returned by Cashout/AwardPrize for an id that
	// was never created via EnsureExists.
	ErrUnknownProfile = errors.New("bank: unknown profile")
)

// Bank is the bankroll ledger interface the core consumes; spec.md keeps
// persistence an external collaborator, so only this interface is part of
// the core's surface.
type Bank interface {
	EnsureExists(id string) error
	Get(id string) (int64, error)
	Buyin(id string, amount int64, tableID string) error
	Cashout(id string, amount int64) error
	AwardPrize(id string, amount int64) error
	Save() error
}

// profile is one id's persisted state.
type profile struct {
	Bankroll int64 `toml:"bankroll"`
}

// file is the on-disk shape of profiles.toml.
type file struct {
	DefaultBankroll int64              `toml:"default_bankroll"`
	Profiles        map[string]profile `toml:"profiles"`
}

// FileBank is the TOML-file-backed Bank implementation. Safe for concurrent
// use; internal/server calls it under its own bank lock, but FileBank
// guards itself too since tests exercise it directly.
type FileBank struct {
	mu              sync.Mutex
	path            string
	defaultBankroll int64
	profiles        map[string]profile
	log             zerolog.Logger
}

// Load reads profiles.toml at path, creating an empty ledger with the
// given default bankroll if the file does not yet exist.
func Load(path string, defaultBankroll int64, log zerolog.Logger) (*FileBank, error) {
	b := &FileBank{
		path:            path,
		defaultBankroll: defaultBankroll,
		profiles:        make(map[string]profile),
		log:             log.With().Str("component", "bank").Logger(),
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		b.log.Info().Str("path", path).Msg("no existing profiles file, starting fresh")
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bank: read %s: %w", path, err)
	}
	var f file
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("bank: parse %s: %w", path, err)
	}
	if f.DefaultBankroll > 0 {
		b.defaultBankroll = f.DefaultBankroll
	}
	if f.Profiles != nil {
		b.profiles = f.Profiles
	}
	return b, nil
}

func normalize(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// EnsureExists creates id's profile at the default bankroll if absent.
func (b *FileBank) EnsureExists(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	id = normalize(id)
	if id == "" {
		return fmt.Errorf("bank: empty profile id")
	}
	if _, ok := b.profiles[id]; !ok {
		b.profiles[id] = profile{Bankroll: b.defaultBankroll}
		b.log.Info().Str("id", id).Int64("bankroll", b.defaultBankroll).Msg("profile created")
	}
	return nil
}

// Get returns id's current bankroll.
func (b *FileBank) Get(id string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.profiles[normalize(id)]
	if !ok {
		return 0, ErrUnknownProfile
	}
	return p.Bankroll, nil
}

// Buyin debits amount from id's bankroll to seat it for tableID. Fails
// without mutating state if the bankroll cannot cover amount.
func (b *FileBank) Buyin(id string, amount int64, tableID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := normalize(id)
	p, ok := b.profiles[key]
	if !ok {
		return ErrUnknownProfile
	}
	if p.Bankroll < amount {
		return fmt.Errorf("%w: id=%s have=%d need=%d", ErrInsufficientFunds, key, p.Bankroll, amount)
	}
	p.Bankroll -= amount
	b.profiles[key] = p
	b.log.Info().Str("id", key).Str("table", tableID).Int64("amount", amount).Msg("buyin")
	return nil
}

// Cashout credits amount back to id's bankroll — a Cash-format table's
// stack-out at GameEnded.
func (b *FileBank) Cashout(id string, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := normalize(id)
	if _, ok := b.profiles[key]; !ok {
		return ErrUnknownProfile
	}
	p := b.profiles[key]
	p.Bankroll += amount
	b.profiles[key] = p
	b.log.Info().Str("id", key).Int64("amount", amount).Msg("cashout")
	return nil
}

// AwardPrize credits amount to id's bankroll — a SitNGo-format table's
// payout-schedule prize at GameEnded. Kept distinct from Cashout per
// original_source's bank.rs, which the SitNGo settlement path mirrors.
func (b *FileBank) AwardPrize(id string, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := normalize(id)
	if _, ok := b.profiles[key]; !ok {
		return ErrUnknownProfile
	}
	p := b.profiles[key]
	p.Bankroll += amount
	b.profiles[key] = p
	b.log.Info().Str("id", key).Int64("amount", amount).Msg("prize awarded")
	return nil
}

// Save whole-file-replaces profiles.toml with the current in-memory state.
func (b *FileBank) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := file{DefaultBankroll: b.defaultBankroll, Profiles: b.profiles}
	raw, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("bank: marshal: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("bank: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("bank: replace %s: %w", b.path, err)
	}
	return nil
}
