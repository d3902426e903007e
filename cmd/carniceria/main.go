package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/elmatadero/carniceria-client/internal/cli"
	"github.com/elmatadero/carniceria-client/internal/config"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stderr, "[carniceria] ", log.LstdFlags)

	app, err := cli.NewApp(cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatalf("startup error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
