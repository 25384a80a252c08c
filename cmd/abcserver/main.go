// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command abcserver runs the reference auth-server: the HTTP surface that
// internal/serverclient talks to and internal/loginserver implements.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/abcwallet/abc-core/internal/config"
	"github.com/abcwallet/abc-core/internal/logger"
	"github.com/abcwallet/abc-core/internal/loginserver"
	"github.com/abcwallet/abc-core/internal/server"
	"github.com/abcwallet/abc-core/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("abcserver")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().Msg("starting abcserver")
	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := connectDB(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repos := store.NewRepositories(db)
	h := loginserver.NewHandler(repos, log)

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// connectDB dispatches to the PostgreSQL or SQLite backend based on the
// DSN's scheme: a "postgres://" or "postgresql://" DSN opens a pgx
// connection, anything else (a bare path or "file:" DSN) opens the
// embedded SQLite backend.
func connectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return store.NewConnectPostgres(ctx, cfg, log)
	}
	return store.NewConnectSQLite(ctx, cfg, log)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
