package valuation

import (
	"context"
	"encoding/json"
	"math"
	"sync"

	"portfolio-tracker-go/internal/metrics"
	"portfolio-tracker-go/internal/models"

	"go.uber.org/zap"
)

// PriceResolver resolves a symbol to its current market price.
type PriceResolver interface {
	Resolve(ctx context.Context, symbol string) (price float64, ok bool)
}

// ValuedMetrics extends SymbolMetrics with the live market price and the
// percentage return against the cost-weighted average purchase price.
// CurrentPrice and ROIPct are NaN when the price could not be resolved.
type ValuedMetrics struct {
	metrics.SymbolMetrics
	CurrentPrice float64
	ROIPct       float64
}

// Resolved reports whether a live price was obtained for this row.
func (v ValuedMetrics) Resolved() bool {
	return !math.IsNaN(v.CurrentPrice)
}

// MarshalJSON emits null for unresolved price and ROI values, since JSON
// has no NaN literal.
func (v ValuedMetrics) MarshalJSON() ([]byte, error) {
	row := struct {
		Symbol       string   `json:"symbol"`
		AvgPrice     float64  `json:"avg_price"`
		TotalQty     float64  `json:"total_qty"`
		TotalCost    float64  `json:"total_cost"`
		CurrentPrice *float64 `json:"current_price"`
		ROIPct       *float64 `json:"roi_pct"`
	}{
		Symbol:    v.Symbol,
		AvgPrice:  v.AvgPrice,
		TotalQty:  v.TotalQty,
		TotalCost: v.TotalCost,
	}
	if v.Resolved() {
		row.CurrentPrice = &v.CurrentPrice
		row.ROIPct = &v.ROIPct
	}
	return json.Marshal(row)
}

// TradeSource supplies the trade records to value.
type TradeSource interface {
	ListAll() ([]models.Trade, error)
}

// Service combines aggregated trade metrics with live prices.
type Service struct {
	trades   TradeSource
	resolver PriceResolver
	workers  int
	logger   *zap.Logger
}

// NewService creates a new valuation Service. workers bounds the number of
// concurrent price lookups; values below one fall back to sequential lookups.
func NewService(trades TradeSource, resolver PriceResolver, workers int, logger *zap.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		trades:   trades,
		resolver: resolver,
		workers:  workers,
		logger:   logger,
	}
}

// ComputeValued aggregates all stored trades per symbol and annotates each
// row with its current price and ROI. Price lookups run concurrently, one
// per symbol, bounded by the worker count; a failed lookup marks only its
// own row as unresolved and never affects the others.
func (s *Service) ComputeValued(ctx context.Context) ([]ValuedMetrics, error) {
	trades, err := s.trades.ListAll()
	if err != nil {
		return nil, err
	}

	grouped := metrics.Compute(trades)
	valued := make([]ValuedMetrics, len(grouped))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.workers)

	for i, m := range grouped {
		wg.Add(1)
		go func(i int, m metrics.SymbolMetrics) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			row := ValuedMetrics{
				SymbolMetrics: m,
				CurrentPrice:  math.NaN(),
				ROIPct:        math.NaN(),
			}
			if price, ok := s.resolver.Resolve(ctx, m.Symbol); ok {
				row.CurrentPrice = price
				row.ROIPct = (price - m.AvgPrice) / m.AvgPrice * 100
			} else {
				s.logger.Debug("Price unresolved for symbol", zap.String("symbol", m.Symbol))
			}
			valued[i] = row
		}(i, m)
	}
	wg.Wait()

	return valued, nil
}
