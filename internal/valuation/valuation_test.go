package valuation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"portfolio-tracker-go/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeTrades is an in-memory TradeSource.
type fakeTrades struct {
	trades []models.Trade
	err    error
}

func (f *fakeTrades) ListAll() ([]models.Trade, error) {
	return f.trades, f.err
}

// fakeResolver resolves from a fixed price table; missing symbols are unresolved.
type fakeResolver struct {
	prices map[string]float64
}

func (f *fakeResolver) Resolve(ctx context.Context, symbol string) (float64, bool) {
	price, ok := f.prices[symbol]
	return price, ok
}

func trade(symbol string, qty, price float64) models.Trade {
	return models.Trade{Symbol: symbol, Quantity: qty, Price: price, Date: time.Now()}
}

func TestComputeValued_ROI(t *testing.T) {
	// Arrange: AAA bought at weighted average 150, now trading at 180.
	src := &fakeTrades{trades: []models.Trade{
		trade("AAA", 2, 100),
		trade("AAA", 2, 200),
	}}
	resolver := &fakeResolver{prices: map[string]float64{"AAA": 180}}
	svc := NewService(src, resolver, 4, zap.NewNop())

	// Act
	rows, err := svc.ComputeValued(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "AAA", row.Symbol)
	assert.Equal(t, 150.0, row.AvgPrice)
	assert.True(t, row.Resolved())
	assert.Equal(t, 180.0, row.CurrentPrice)
	assert.InDelta(t, 20.0, row.ROIPct, 1e-9)
}

func TestComputeValued_UnresolvedRowStillAppears(t *testing.T) {
	// Arrange: BBB has no live price; its row must survive with NaN values.
	src := &fakeTrades{trades: []models.Trade{
		trade("AAA", 1, 100),
		trade("BBB", 1, 50),
	}}
	resolver := &fakeResolver{prices: map[string]float64{"AAA": 110}}
	svc := NewService(src, resolver, 4, zap.NewNop())

	// Act
	rows, err := svc.ComputeValued(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	bySymbol := map[string]ValuedMetrics{}
	for _, r := range rows {
		bySymbol[r.Symbol] = r
	}

	assert.True(t, bySymbol["AAA"].Resolved())
	assert.InDelta(t, 10.0, bySymbol["AAA"].ROIPct, 1e-9)

	bbb := bySymbol["BBB"]
	assert.False(t, bbb.Resolved())
	assert.True(t, math.IsNaN(bbb.CurrentPrice))
	assert.True(t, math.IsNaN(bbb.ROIPct))
	// The aggregation itself is untouched by the failed lookup.
	assert.Equal(t, 50.0, bbb.TotalCost)
}

func TestComputeValued_EmptyStore(t *testing.T) {
	svc := NewService(&fakeTrades{}, &fakeResolver{}, 4, zap.NewNop())

	rows, err := svc.ComputeValued(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestComputeValued_StoreErrorIsFatal(t *testing.T) {
	src := &fakeTrades{err: errors.New("disk gone")}
	svc := NewService(src, &fakeResolver{}, 4, zap.NewNop())

	rows, err := svc.ComputeValued(context.Background())

	assert.Error(t, err)
	assert.Nil(t, rows)
}

func TestComputeValued_ManySymbolsBounded(t *testing.T) {
	// Arrange: more symbols than workers; every row must still come back
	// in its slot with the right price.
	var trades []models.Trade
	prices := map[string]float64{}
	symbols := []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG", "HHH"}
	for i, sym := range symbols {
		trades = append(trades, trade(sym, 1, float64(100+i)))
		prices[sym] = float64(200 + i)
	}
	svc := NewService(&fakeTrades{trades: trades}, &fakeResolver{prices: prices}, 2, zap.NewNop())

	// Act
	rows, err := svc.ComputeValued(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, rows, len(symbols))
	for _, row := range rows {
		assert.Equal(t, prices[row.Symbol], row.CurrentPrice)
	}
}

func TestValuedMetrics_MarshalJSON(t *testing.T) {
	t.Run("Resolved", func(t *testing.T) {
		v := ValuedMetrics{CurrentPrice: 110, ROIPct: 10}
		v.Symbol = "AAA"
		v.AvgPrice = 100
		v.TotalQty = 1
		v.TotalCost = 100

		data, err := v.MarshalJSON()

		assert.NoError(t, err)
		assert.JSONEq(t, `{"symbol":"AAA","avg_price":100,"total_qty":1,"total_cost":100,"current_price":110,"roi_pct":10}`, string(data))
	})

	t.Run("Unresolved", func(t *testing.T) {
		v := ValuedMetrics{CurrentPrice: math.NaN(), ROIPct: math.NaN()}
		v.Symbol = "BBB"
		v.AvgPrice = 50
		v.TotalQty = 2
		v.TotalCost = 100

		data, err := v.MarshalJSON()

		assert.NoError(t, err)
		assert.JSONEq(t, `{"symbol":"BBB","avg_price":50,"total_qty":2,"total_cost":100,"current_price":null,"roi_pct":null}`, string(data))
	})
}
