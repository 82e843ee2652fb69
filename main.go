package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"secrethitler/internal/config"
	"secrethitler/internal/engine"
	"secrethitler/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	flag.IntVar(&cfg.Port, "port", cfg.Port, "server port")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "shuffle seed (0 = clock)")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := cfg.Logger()
	board := engine.NewBoard(engine.WithRand(engine.NewSeededRand(cfg.Seed)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, board, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
