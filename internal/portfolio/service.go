package portfolio

import (
	"context"
	"time"

	"portfolio-tracker-go/internal/alerts"
	"portfolio-tracker-go/internal/metrics"
	"portfolio-tracker-go/internal/models"
	"portfolio-tracker-go/internal/store"
	"portfolio-tracker-go/internal/valuation"

	"go.uber.org/zap"
)

// Service is the single entry point for the presentation shells. It owns
// the trade store, the valuation service and the alert engine; shells never
// reach past it into the component packages.
type Service struct {
	store     *store.TradeStore
	valuation *valuation.Service
	alerts    *alerts.Engine
	logger    *zap.Logger
}

// NewService wires the core components together.
func NewService(ts *store.TradeStore, vs *valuation.Service, ae *alerts.Engine, logger *zap.Logger) *Service {
	return &Service{
		store:     ts,
		valuation: vs,
		alerts:    ae,
		logger:    logger,
	}
}

// CreateTrade records a new buy. A zero date means "now".
func (s *Service) CreateTrade(symbol string, quantity, price float64, date time.Time) (*models.Trade, error) {
	return s.store.Create(symbol, quantity, price, date)
}

// ListTrades returns all trades ordered by date, or only those of one
// symbol when symbol is non-empty.
func (s *Service) ListTrades(symbol string) ([]models.Trade, error) {
	if symbol == "" {
		return s.store.ListAll()
	}
	return s.store.ListBySymbol(symbol)
}

// DeleteTrade removes a trade by id and reports whether it existed.
func (s *Service) DeleteTrade(id uint) (bool, error) {
	return s.store.Delete(id)
}

// ComputeMetrics returns the per-symbol aggregation without live prices.
func (s *Service) ComputeMetrics() ([]metrics.SymbolMetrics, error) {
	trades, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}
	return metrics.Compute(trades), nil
}

// ComputeValuedMetrics returns the per-symbol aggregation annotated with
// current prices and ROI. Symbols whose price lookup failed still appear,
// with unresolved price and ROI.
func (s *Service) ComputeValuedMetrics(ctx context.Context) ([]valuation.ValuedMetrics, error) {
	return s.valuation.ComputeValued(ctx)
}

// SetPriceAlert registers (or replaces) a threshold alert for a symbol.
func (s *Service) SetPriceAlert(symbol string, threshold float64) {
	s.alerts.SetRule(symbol, threshold)
}

// AlertRules returns a snapshot of the registered alert rules.
func (s *Service) AlertRules() map[string]float64 {
	return s.alerts.Rules()
}

// CheckAlerts evaluates every registered rule against a fresh valuation.
func (s *Service) CheckAlerts(ctx context.Context) ([]string, error) {
	return s.alerts.Check(ctx)
}
