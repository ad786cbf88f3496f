package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gateguard/internal/buildinfo"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/server"
	"github.com/dmitrijs2005/gateguard/internal/server/config"
)

func main() {
	fmt.Fprintln(os.Stdout, "GateGuard directory", buildinfo.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, logging.Config{Level: cfg.LogLevel, Format: "json", Service: "gateguard-directory"})

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "cannot start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		stop()
		_ = app.Close()
		os.Exit(1)
	}
}
