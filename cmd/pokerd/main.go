// Command pokerd runs the poker table server: it loads tables.toml and
// profiles.toml from -data-dir, then listens for client connections on
// -listen until terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"pokerd/internal/applog"
	"pokerd/internal/bank"
	"pokerd/internal/config"
	"pokerd/internal/server"
	"pokerd/internal/table"
)

func main() {
	listen := flag.String("listen", "127.0.0.1:9999", "tcp listen address")
	dataDir := flag.String("data-dir", ".", "directory containing tables.toml and profiles.toml")
	defaultBankroll := flag.Int64("default-bankroll", 10000, "starting bankroll for a newly-seen profile")
	flag.Parse()

	log, closer, err := applog.Open(*dataDir, zerolog.InfoLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pokerd:", err)
		os.Exit(1)
	}
	defer closer.Close()

	tablesPath := filepath.Join(*dataDir, "tables.toml")
	cfgs, err := config.Load(tablesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load tables.toml")
	}

	profilesPath := filepath.Join(*dataDir, "profiles.toml")
	bk, err := bank.Load(profilesPath, *defaultBankroll, log)
	if err != nil {
		log.Fatal().Err(err).Msg("load profiles.toml")
	}

	registry := table.NewRegistry(cfgs, log)
	srv := server.New(registry, bk, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Int("tables", len(cfgs)).Str("listen", *listen).Msg("starting pokerd")
	if err := srv.Run(ctx, *listen); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
