package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gateguard/internal/buildinfo"
	"github.com/dmitrijs2005/gateguard/internal/client/cli"
	"github.com/dmitrijs2005/gateguard/internal/client/config"
	"github.com/dmitrijs2005/gateguard/internal/logging"
)

func main() {
	fmt.Fprintln(os.Stdout, "GateGuard", buildinfo.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.New(os.Stderr, logging.Config{Level: cfg.LogLevel, Service: "gateguard"})

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "cannot start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
