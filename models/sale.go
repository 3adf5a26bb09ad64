package models

import (
	"time"
)

// PaymentMethod is a closed set; the old string-typed columns allowed
// "Cash" and "cash" to coexist in the same table.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleVoided    SaleStatus = "voided"
)

// Sale is immutable once committed, except for the status flip to voided.
// FinalCents is derived from subtotal and discount at checkout and is never
// recomputed from the catalog afterwards.
type Sale struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReferenceNo string    `gorm:"size:36;uniqueIndex;not null" json:"reference_no"`
	CustomerID  *uint     `gorm:"index" json:"customer_id,omitempty"`
	Customer    *Customer `json:"customer,omitempty"`
	SaleDate    time.Time `gorm:"not null;index" json:"sale_date"`

	SubtotalCents int64         `gorm:"not null" json:"subtotal_cents"`
	DiscountCents int64         `gorm:"not null;default:0" json:"discount_cents"`
	FinalCents    int64         `gorm:"not null" json:"final_cents"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Status        SaleStatus    `gorm:"size:20;not null;default:'completed'" json:"status"`

	// Present only for cash sales; absent, not zero, otherwise.
	CashReceivedCents *int64 `json:"cash_received_cents,omitempty"`
	ChangeGivenCents  *int64 `json:"change_given_cents,omitempty"`

	CreatedBy uint    `gorm:"not null" json:"created_by"`
	Notes     *string `gorm:"type:text" json:"notes,omitempty"`

	Items []SaleLineItem `gorm:"foreignKey:SaleID" json:"items"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// SaleLineItem carries name and unit price snapshots taken at checkout so
// later catalog edits never change a recorded sale.
type SaleLineItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index;not null" json:"sale_id"`

	ProductID         uint   `gorm:"index;not null" json:"product_id"`
	ProductName       string `gorm:"size:120;not null" json:"product_name"`
	UnitPriceCents    int64  `gorm:"not null" json:"unit_price_cents"`
	Quantity          int    `gorm:"not null" json:"quantity"`
	LineDiscountCents int64  `gorm:"not null;default:0" json:"line_discount_cents"`
	LineTotalCents    int64  `gorm:"not null" json:"line_total_cents"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
