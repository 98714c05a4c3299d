package dto

import (
	"time"

	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID              string     `json:"id"`
	ServiceName     string     `json:"service_name"`
	TotalValue      string     `json:"total_value"`
	DurationMinutes int        `json:"duration_minutes"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerEmail   string     `json:"customer_email,omitempty"`
	CustomerPhoto   string     `json:"customer_photo,omitempty"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           time.Time  `json:"end_at"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewAppointmentDTO(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		ServiceName:     ap.ServiceName,
		TotalValue:      ap.TotalValue.StringFixed(2),
		DurationMinutes: ap.DurationMinutes(),
		CustomerName:    ap.CustomerName,
		CustomerPhone:   ap.CustomerPhone,
		CustomerEmail:   ap.CustomerEmail,
		CustomerPhoto:   ap.CustomerPhoto,
		StartAt:         ap.StartAt,
		EndAt:           ap.EndAt,
		Status:          ap.Status,
		Notes:           ap.Notes,
		ConfirmedAt:     ap.ConfirmedAt,
		CancelledAt:     ap.CancelledAt,
		CompletedAt:     ap.CompletedAt,
		CreatedAt:       ap.CreatedAt,
	}
}

func NewAppointmentList(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentDTO(ap))
	}
	return out
}

// BookingConfirmationDTO is what a customer sees after booking.
type BookingConfirmationDTO struct {
	ID          string    `json:"id"`
	ServiceName string    `json:"service_name"`
	TotalValue  string    `json:"total_value"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	PixKey      string    `json:"pix_key,omitempty"`
}
