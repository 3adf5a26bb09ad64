package models

import "time"

type Customer struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	FullName      string  `gorm:"size:120;not null" json:"full_name"`
	Contact       string  `gorm:"size:60" json:"contact"`
	Email         *string `gorm:"size:120" json:"email,omitempty"`
	LoyaltyPoints int     `gorm:"not null;default:0" json:"loyalty_points"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
