package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-tracker-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidTrade is returned when a trade fails validation before persistence.
var ErrInvalidTrade = errors.New("invalid trade")

// TradeStore is the durable record of trade events.
// Each operation is a single short-lived unit of work against the database.
type TradeStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(db *gorm.DB, logger *zap.Logger) *TradeStore {
	return &TradeStore{db: db, logger: logger}
}

// NormalizeSymbol maps any user-supplied symbol spelling to its stored form.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Create validates, normalizes and persists a new trade record.
// The date defaults to the current time when the zero value is passed.
func (s *TradeStore) Create(symbol string, quantity, price float64, date time.Time) (*models.Trade, error) {
	sym := NormalizeSymbol(symbol)
	if sym == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidTrade)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidTrade, quantity)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %v", ErrInvalidTrade, price)
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	trade := models.Trade{
		Symbol:   sym,
		Quantity: quantity,
		Price:    price,
		Date:     date,
	}

	if err := s.db.Create(&trade).Error; err != nil {
		s.logger.Error("Failed to save trade record", zap.String("symbol", sym), zap.Error(err))
		return nil, fmt.Errorf("failed to save trade: %w", err)
	}

	s.logger.Info("Trade recorded",
		zap.Uint("id", trade.ID),
		zap.String("symbol", trade.Symbol),
		zap.Float64("quantity", trade.Quantity),
		zap.Float64("price", trade.Price),
	)
	return &trade, nil
}

// ListAll returns every trade ordered by date ascending, ties broken by id.
func (s *TradeStore) ListAll() ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.Order("date asc, id asc").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

// ListBySymbol returns the trades of one symbol in the same ordering as ListAll.
// The symbol is normalized before matching, so lookups are case-insensitive.
func (s *TradeStore) ListBySymbol(symbol string) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.db.
		Where("symbol = ?", NormalizeSymbol(symbol)).
		Order("date asc, id asc").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for %s: %w", symbol, err)
	}
	return trades, nil
}

// Delete removes the trade with the given id. It reports whether a record
// was found and removed; deleting an unknown id is a no-op, not an error.
func (s *TradeStore) Delete(id uint) (bool, error) {
	res := s.db.Delete(&models.Trade{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete trade %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.logger.Info("Trade deleted", zap.Uint("id", id))
	return true, nil
}
