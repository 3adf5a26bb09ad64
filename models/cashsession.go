package models

import "time"

type CashSession struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Status string `gorm:"size:10;not null;default:'open'" json:"status"` // open | closed

	OpeningCashCents int64      `gorm:"not null" json:"opening_cash_cents"`
	TotalCashInCents int64      `json:"total_cash_in_cents"`
	TotalChangeCents int64      `json:"total_change_cents"`
	ExpectedCents    int64      `json:"expected_cents"`
	ClosingCashCents *int64     `json:"closing_cash_cents,omitempty"`
	DifferenceCents  *int64     `json:"difference_cents,omitempty"`
	OpenedAt         time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt         *time.Time `json:"closed_at,omitempty"`
}
