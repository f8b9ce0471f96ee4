package models

import (
	"time"

	"gorm.io/gorm"
)

// Trade represents a single buy-side trade record.
// A trade is immutable once stored; the only mutation is deletion by id.
type Trade struct {
	gorm.Model
	Symbol   string    `gorm:"index;not null" json:"symbol"`
	Quantity float64   `gorm:"not null" json:"quantity"`
	Price    float64   `gorm:"not null" json:"price"`
	Date     time.Time `gorm:"index;not null" json:"date"`
}

// Cost returns the total cost of the trade (quantity times unit price).
func (t *Trade) Cost() float64 {
	return t.Quantity * t.Price
}
