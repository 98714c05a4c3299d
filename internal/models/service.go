package models

import "time"

type Service struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	PageID uint `gorm:"index" json:"page_id"`

	Title           string `gorm:"size:100;not null" json:"title"`
	Price           string `gorm:"size:20" json:"price"`
	DurationMinutes int    `gorm:"default:30" json:"duration_minutes"`
	Category        string `gorm:"size:50" json:"category"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration falls back to 30 minutes when the stored value is not positive.
func (s Service) Duration() int {
	if s.DurationMinutes <= 0 {
		return 30
	}
	return s.DurationMinutes
}
