package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/heilocal/heilocal/internal/api"
	"github.com/heilocal/heilocal/internal/auth"
	"github.com/heilocal/heilocal/internal/locations"
	"github.com/heilocal/heilocal/internal/session"
	"github.com/heilocal/heilocal/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	client := api.NewClient(api.Opts{
		BaseURL: config.API.BaseURL,
		Session: openSession(config, logger),
		Logger:  logger,
	})

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Client:    client,
		Auth:      auth.NewManager(client, logger),
		Locations: locations.NewService(client, logger),
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "heilocal",
		Usage:    "Browse, like and map local spots from the hei!local service",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Warn("not signed in, run `heilocal auth login` first")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// openSession opens the on-disk token store, falling back to an
// in-memory store when the database is unavailable. Tokens then last
// for the process only.
func openSession(config *shared.Config, logger *log.Logger) session.Store {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Warn("session database unavailable, tokens will not persist", "error", err)
		return session.NewMemoryStore()
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		logger.Warn("session schema migration failed, tokens will not persist", "error", err)
		db.Close()
		return session.NewMemoryStore()
	}

	return session.NewSQLiteStore(db)
}
