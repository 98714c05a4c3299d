package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	PageSlug string `gorm:"size:100;index;not null" json:"page_slug"`

	ServiceName string          `gorm:"size:255" json:"service_name"`
	TotalValue  decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_value"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`
	CustomerID    string `gorm:"size:64" json:"customer_id,omitempty"`
	CustomerEmail string `gorm:"size:120" json:"customer_email,omitempty"`
	CustomerPhoto string `gorm:"size:255" json:"customer_photo,omitempty"`

	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) DurationMinutes() int {
	return int(a.EndAt.Sub(a.StartAt) / time.Minute)
}
