package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/arca-digital/complaints-book-backend/pkg/db"
	"github.com/arca-digital/complaints-book-backend/pkg/jobs"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	config.Load()
	closer := config.ConfigureLogging()
	defer closer.Close()

	err := db.Connect()
	if err != nil {
		log.Panic().Err(err).Msg("Failed to connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:     "jobs",
		Usage:    "maintenance jobs of the complaints book backend",
		Commands: jobs.Commands(),
	}
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Job failed")
		stop()
		os.Exit(1)
	}
}
