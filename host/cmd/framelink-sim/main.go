package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"framelink/host/config"
	"framelink/host/logging"
)

var configPath = flag.String("config", "", "Path to framelink.toml (built-in defaults when empty)")

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	// stdout may carry protocol frames, so logs always go to stderr
	log, err := logging.Stderr("framelink-sim", cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := newRunner(cfg, log, os.Stdin, os.Stdout)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("device stopped", "error", err)
		os.Exit(1)
	}
}
