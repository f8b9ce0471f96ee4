package main

import (
	"fmt"
	"os"

	"portfolio-tracker-go/internal/alerts"
	"portfolio-tracker-go/internal/config"
	"portfolio-tracker-go/internal/database"
	"portfolio-tracker-go/internal/logger"
	"portfolio-tracker-go/internal/portfolio"
	"portfolio-tracker-go/internal/pricing"
	"portfolio-tracker-go/internal/store"
	"portfolio-tracker-go/internal/valuation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Wire the core
	ts := store.NewTradeStore(db, log)
	resolver := pricing.NewResolver(
		&cfg.Pricing,
		pricing.NewBinanceClient(&cfg.Pricing, log),
		pricing.NewYahooClient(log),
		log,
	)
	vs := valuation.NewService(ts, resolver, cfg.Pricing.Workers, log)
	ae := alerts.NewEngine(vs, log)
	svc := portfolio.NewService(ts, vs, ae, log)

	h := NewAPIHandler(log, svc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		api.GET("/trades", h.ListTrades)
		api.POST("/trades", h.CreateTrade)
		api.DELETE("/trades/:id", h.DeleteTrade)
		api.GET("/metrics", h.Metrics)
		api.GET("/valuation", h.Valuation)
		api.GET("/alerts", h.ListAlerts)
		api.POST("/alerts", h.SetAlert)
		api.GET("/alerts/check", h.CheckAlerts)
	}

	router.StaticFile("/", "web/templates/index.html")

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting web dashboard", zap.String("address", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("Web server failed", zap.Error(err))
	}
}
