package alerts

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"portfolio-tracker-go/internal/store"
	"portfolio-tracker-go/internal/valuation"

	"go.uber.org/zap"
)

// Valuer produces fresh ROI-annotated metrics for all held symbols.
type Valuer interface {
	ComputeValued(ctx context.Context) ([]valuation.ValuedMetrics, error)
}

// Engine holds the in-memory registry of price alert rules: one threshold
// per symbol, overwritten on re-registration, discarded on process exit.
// Alerts are level-triggered; a rule fires on every check while its
// condition holds, with no memory of earlier firings.
type Engine struct {
	mu     sync.RWMutex
	rules  map[string]float64
	valuer Valuer
	logger *zap.Logger
}

// NewEngine creates a new alert Engine.
func NewEngine(valuer Valuer, logger *zap.Logger) *Engine {
	return &Engine{
		rules:  make(map[string]float64),
		valuer: valuer,
		logger: logger,
	}
}

// SetRule registers an alert for symbol at the given threshold, replacing
// any previous rule for that symbol.
func (e *Engine) SetRule(symbol string, threshold float64) {
	sym := store.NormalizeSymbol(symbol)

	e.mu.Lock()
	e.rules[sym] = threshold
	e.mu.Unlock()

	e.logger.Info("Alert rule set", zap.String("symbol", sym), zap.Float64("threshold", threshold))
}

// Rules returns a snapshot of the registered rules.
func (e *Engine) Rules() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snapshot := make(map[string]float64, len(e.rules))
	for sym, th := range e.rules {
		snapshot[sym] = th
	}
	return snapshot
}

// Check recomputes the valuation and returns one message per rule whose
// symbol currently trades at or above its threshold, ordered by symbol.
// Rules whose symbol has no trades or no resolved price are skipped.
func (e *Engine) Check(ctx context.Context) ([]string, error) {
	rules := e.Rules()
	if len(rules) == 0 {
		return nil, nil
	}

	valued, err := e.valuer.ComputeValued(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to value portfolio for alert check: %w", err)
	}

	bySymbol := make(map[string]valuation.ValuedMetrics, len(valued))
	for _, row := range valued {
		bySymbol[row.Symbol] = row
	}

	symbols := make([]string, 0, len(rules))
	for sym := range rules {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var messages []string
	for _, sym := range symbols {
		row, ok := bySymbol[sym]
		if !ok || !row.Resolved() {
			continue
		}
		threshold := rules[sym]
		if row.CurrentPrice >= threshold {
			messages = append(messages,
				fmt.Sprintf("%s crossed %.2f: current price %.2f", sym, threshold, row.CurrentPrice))
		}
	}

	if len(messages) > 0 {
		e.logger.Info("Alerts triggered", zap.Int("count", len(messages)))
	}
	return messages, nil
}
