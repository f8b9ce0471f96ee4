package metrics

import (
	"sort"

	"portfolio-tracker-go/internal/models"
)

// SymbolMetrics aggregates the trades of one symbol.
type SymbolMetrics struct {
	Symbol    string  `json:"symbol"`
	AvgPrice  float64 `json:"avg_price"`
	TotalQty  float64 `json:"total_qty"`
	TotalCost float64 `json:"total_cost"`
}

// Compute groups trades by symbol and aggregates quantity, cost and the
// cost-weighted average price (total cost over total quantity, which differs
// from the arithmetic mean of trade prices when quantities vary).
// It is a pure function: no I/O, deterministic for a given input. The result
// is sorted by symbol for stable presentation, but callers must not depend
// on group ordering for correctness.
func Compute(trades []models.Trade) []SymbolMetrics {
	grouped := make(map[string]*SymbolMetrics)
	for _, t := range trades {
		m, ok := grouped[t.Symbol]
		if !ok {
			m = &SymbolMetrics{Symbol: t.Symbol}
			grouped[t.Symbol] = m
		}
		m.TotalQty += t.Quantity
		m.TotalCost += t.Cost()
	}

	result := make([]SymbolMetrics, 0, len(grouped))
	for _, m := range grouped {
		if m.TotalQty > 0 {
			m.AvgPrice = m.TotalCost / m.TotalQty
		}
		result = append(result, *m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Symbol < result[j].Symbol
	})
	return result
}
