package models

import "time"

// Page is a tenant: a public booking page addressed by its slug.
type Page struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	PixKey   string `gorm:"size:120" json:"pix_key"`
	Timezone string `gorm:"size:64" json:"timezone"`

	Theme         string `gorm:"size:30" json:"theme"`
	BackgroundURL string `gorm:"size:255" json:"background_url"`

	Plan          string     `gorm:"size:10;default:'free'" json:"plan"`
	TrialDeadline *time.Time `json:"trial_deadline"`

	// Schedule, HH:MM local time. Empty open/close means the default day.
	OpenTime   string `gorm:"size:5" json:"open_time"`
	CloseTime  string `gorm:"size:5" json:"close_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`

	// Comma separated weekdays (0 = Sunday). Empty means every day.
	WorkingDays string `gorm:"size:20" json:"working_days"`

	Services []Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
