package store

import (
	"testing"
	"time"

	"portfolio-tracker-go/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupStore creates a TradeStore backed by a fresh in-memory database.
func setupStore(t *testing.T) *TradeStore {
	// Use a new, non-shared in-memory database for each test to ensure isolation.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Trade{})
	assert.NoError(t, err)

	return NewTradeStore(db, zap.NewNop())
}

func TestCreate(t *testing.T) {
	t.Run("NormalizesSymbol", func(t *testing.T) {
		s := setupStore(t)

		trade, err := s.Create(" btc ", 0.5, 30000, time.Time{})

		assert.NoError(t, err)
		assert.Equal(t, "BTC", trade.Symbol)
		assert.NotZero(t, trade.ID)
	})

	t.Run("DefaultsDateToNow", func(t *testing.T) {
		s := setupStore(t)
		before := time.Now().UTC()

		trade, err := s.Create("AAA", 1, 100, time.Time{})

		assert.NoError(t, err)
		assert.False(t, trade.Date.Before(before))
		assert.False(t, trade.Date.After(time.Now().UTC()))
	})

	t.Run("KeepsExplicitDate", func(t *testing.T) {
		s := setupStore(t)
		date := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

		trade, err := s.Create("AAA", 1, 100, date)

		assert.NoError(t, err)
		assert.True(t, trade.Date.Equal(date))
	})

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		s := setupStore(t)

		cases := []struct {
			name     string
			symbol   string
			quantity float64
			price    float64
		}{
			{"EmptySymbol", "  ", 1, 100},
			{"ZeroQuantity", "AAA", 0, 100},
			{"NegativeQuantity", "AAA", -1, 100},
			{"ZeroPrice", "AAA", 1, 0},
			{"NegativePrice", "AAA", 1, -5},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.Create(tc.symbol, tc.quantity, tc.price, time.Time{})
				assert.ErrorIs(t, err, ErrInvalidTrade)
			})
		}

		// Nothing was persisted.
		trades, err := s.ListAll()
		assert.NoError(t, err)
		assert.Empty(t, trades)
	})
}

func TestListAll_OrderedByDateThenID(t *testing.T) {
	s := setupStore(t)
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	// Inserted out of date order on purpose.
	_, err := s.Create("BBB", 1, 10, day(3))
	assert.NoError(t, err)
	_, err = s.Create("AAA", 1, 10, day(1))
	assert.NoError(t, err)
	_, err = s.Create("CCC", 1, 10, day(1)) // same date as AAA, higher id
	assert.NoError(t, err)

	trades, err := s.ListAll()

	assert.NoError(t, err)
	assert.Len(t, trades, 3)
	assert.Equal(t, []string{"AAA", "CCC", "BBB"}, []string{trades[0].Symbol, trades[1].Symbol, trades[2].Symbol})
}

func TestListAll_Idempotent(t *testing.T) {
	s := setupStore(t)
	_, err := s.Create("AAA", 2, 100, time.Time{})
	assert.NoError(t, err)

	first, err := s.ListAll()
	assert.NoError(t, err)
	second, err := s.ListAll()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListBySymbol_CaseInsensitive(t *testing.T) {
	s := setupStore(t)
	_, err := s.Create("eth", 1, 2000, time.Time{})
	assert.NoError(t, err)
	_, err = s.Create("BTC", 1, 30000, time.Time{})
	assert.NoError(t, err)

	trades, err := s.ListBySymbol("Eth")

	assert.NoError(t, err)
	assert.Len(t, trades, 1)
	assert.Equal(t, "ETH", trades[0].Symbol)
}

func TestDelete_Idempotent(t *testing.T) {
	s := setupStore(t)
	trade, err := s.Create("AAA", 1, 100, time.Time{})
	assert.NoError(t, err)

	removed, err := s.Delete(trade.ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	// Second delete of the same id is a no-op returning false.
	removed, err = s.Delete(trade.ID)
	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestDelete_UnknownID(t *testing.T) {
	s := setupStore(t)
	_, err := s.Create("AAA", 1, 100, time.Time{})
	assert.NoError(t, err)

	removed, err := s.Delete(99999)

	assert.NoError(t, err)
	assert.False(t, removed)

	// Trade count unchanged.
	trades, err := s.ListAll()
	assert.NoError(t, err)
	assert.Len(t, trades, 1)
}
