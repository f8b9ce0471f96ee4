package metrics

import (
	"testing"
	"time"

	"portfolio-tracker-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func trade(symbol string, qty, price float64) models.Trade {
	return models.Trade{Symbol: symbol, Quantity: qty, Price: price, Date: time.Now()}
}

func TestCompute_WeightedAverage(t *testing.T) {
	// Two buys of AAA at different prices with equal quantities.
	trades := []models.Trade{
		trade("AAA", 2, 100),
		trade("AAA", 2, 200),
	}

	result := Compute(trades)

	assert.Len(t, result, 1)
	m := result[0]
	assert.Equal(t, "AAA", m.Symbol)
	assert.Equal(t, 150.0, m.AvgPrice)
	assert.Equal(t, 4.0, m.TotalQty)
	assert.Equal(t, 600.0, m.TotalCost)
}

func TestCompute_WeightedNotArithmetic(t *testing.T) {
	// Uneven quantities: the cost-weighted average must differ from the
	// plain mean of the two trade prices (which would be 150).
	trades := []models.Trade{
		trade("AAA", 9, 100),
		trade("AAA", 1, 200),
	}

	result := Compute(trades)

	assert.Len(t, result, 1)
	assert.InDelta(t, 110.0, result[0].AvgPrice, 1e-9)
	assert.Equal(t, 10.0, result[0].TotalQty)
	assert.Equal(t, 1100.0, result[0].TotalCost)
}

func TestCompute_GroupsBySymbol(t *testing.T) {
	trades := []models.Trade{
		trade("BTC", 0.5, 40000),
		trade("SAN", 100, 3.5),
		trade("BTC", 0.5, 50000),
	}

	result := Compute(trades)

	assert.Len(t, result, 2)
	// Sorted by symbol.
	assert.Equal(t, "BTC", result[0].Symbol)
	assert.Equal(t, "SAN", result[1].Symbol)

	assert.Equal(t, 1.0, result[0].TotalQty)
	assert.Equal(t, 45000.0, result[0].TotalCost)
	assert.Equal(t, 45000.0, result[0].AvgPrice)

	assert.Equal(t, 100.0, result[1].TotalQty)
	assert.Equal(t, 350.0, result[1].TotalCost)
}

func TestCompute_EmptyInput(t *testing.T) {
	result := Compute(nil)
	assert.Empty(t, result)

	result = Compute([]models.Trade{})
	assert.Empty(t, result)
}

func TestCompute_Deterministic(t *testing.T) {
	trades := []models.Trade{
		trade("ETH", 1, 2000),
		trade("BTC", 1, 30000),
		trade("ETH", 2, 1700),
	}

	first := Compute(trades)
	second := Compute(trades)

	assert.Equal(t, first, second)
}
