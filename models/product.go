package models

import (
	"time"
)

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Category    string  `gorm:"size:60;index" json:"category"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	// Prices are stored in minor units (cents) to keep totals exact.
	PriceCents    int64 `gorm:"not null" json:"price_cents"`
	StockQuantity int   `gorm:"not null;default:0" json:"stock_quantity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
