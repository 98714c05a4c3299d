package dto

import (
	"time"

	"github.com/BruksfildServices01/page-scheduler/internal/domain/plan"
)

type ServiceDTO struct {
	Title           string `json:"title"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	Category        string `json:"category,omitempty"`
}

type ScheduleDTO struct {
	Open        string `json:"open"`
	Close       string `json:"close"`
	LunchStart  string `json:"lunch_start,omitempty"`
	LunchEnd    string `json:"lunch_end,omitempty"`
	WorkingDays []int  `json:"working_days,omitempty"`
}

// PublicPageDTO carries only what the effective plan allows.
type PublicPageDTO struct {
	Slug          string       `json:"slug"`
	Name          string       `json:"name"`
	Phone         string       `json:"phone,omitempty"`
	Address       string       `json:"address,omitempty"`
	PixKey        string       `json:"pix_key,omitempty"`
	Theme         string       `json:"theme"`
	BackgroundURL string       `json:"background_url,omitempty"`
	Plan          plan.Plan    `json:"plan"`
	Coupons       bool         `json:"coupons"`
	Schedule      ScheduleDTO  `json:"schedule"`
	Services      []ServiceDTO `json:"services"`
}

type PlanDTO struct {
	Stored        plan.Plan     `json:"stored"`
	Effective     plan.Plan     `json:"effective"`
	TrialDeadline *time.Time    `json:"trial_deadline,omitempty"`
	TrialActive   bool          `json:"trial_active"`
	Features      plan.Features `json:"features"`
}
