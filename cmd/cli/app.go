package main

import (
	"fmt"

	"portfolio-tracker-go/internal/alerts"
	"portfolio-tracker-go/internal/config"
	"portfolio-tracker-go/internal/database"
	"portfolio-tracker-go/internal/logger"
	"portfolio-tracker-go/internal/portfolio"
	"portfolio-tracker-go/internal/pricing"
	"portfolio-tracker-go/internal/store"
	"portfolio-tracker-go/internal/valuation"

	"go.uber.org/zap"
)

// app holds the wired-up core shared by all subcommands.
type app struct {
	cfg config.Config
	log *zap.Logger
	svc *portfolio.Service
}

// newApp loads configuration and wires the core components together:
// config -> logger -> database -> store -> price clients -> valuation -> alerts.
func newApp(configPath string) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return nil, fmt.Errorf("could not initialize logger: %w", err)
	}

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	ts := store.NewTradeStore(db, log)
	resolver := pricing.NewResolver(
		&cfg.Pricing,
		pricing.NewBinanceClient(&cfg.Pricing, log),
		pricing.NewYahooClient(log),
		log,
	)
	vs := valuation.NewService(ts, resolver, cfg.Pricing.Workers, log)
	ae := alerts.NewEngine(vs, log)

	return &app{
		cfg: cfg,
		log: log,
		svc: portfolio.NewService(ts, vs, ae, log),
	}, nil
}
