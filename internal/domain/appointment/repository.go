package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

// Store is the appointment ledger. CreateAppointment must recheck overlap
// and insert as one atomic step; a losing racer gets a ConflictError.
type Store interface {
	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) (string, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// startAt in [start, end], cancelled excluded, unordered.
	GetAppointmentsByDateRange(
		ctx context.Context,
		pageSlug string,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// startAt >= since, any status, ascending.
	GetUpcomingAppointments(
		ctx context.Context,
		pageSlug string,
		since time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointmentStatus(
		ctx context.Context,
		id string,
		status Status,
		now time.Time,
	) (*models.Appointment, error)
}

type PageReader interface {
	GetPageBySlug(
		ctx context.Context,
		slug string,
	) (*models.Page, error)
}
