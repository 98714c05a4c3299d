package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewAppointmentGormRepository builds the Postgres ledger. lockTimeout caps
// how long a booking waits on the tenant's row locks; zero means no cap.
func NewAppointmentGormRepository(db *gorm.DB, lockTimeout time.Duration) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, lockTimeout: lockTimeout}
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment serializes writers per tenant with a transaction-scoped
// advisory lock, rechecks overlap under FOR UPDATE and inserts. The
// exclusion constraint on the table backs this up.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) (string, error) {

	if !ap.EndAt.After(ap.StartAt) {
		return "", httperr.ErrValidation("invalid_duration")
	}
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setLockTimeout(tx); err != nil {
			return err
		}

		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			ap.PageSlug,
		).Error; err != nil {
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"page_slug = ? AND status <> ? AND start_at < ? AND end_at > ?",
				ap.PageSlug, string(domain.StatusCancelled), ap.EndAt, ap.StartAt,
			).
			Limit(1).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil {
		return "", mapWriteError(err)
	}
	return ap.ID, nil
}

// mapWriteError turns Postgres rejections of a booking into the conflict
// codes the API reports.
func mapWriteError(err error) error {
	switch {
	case httperr.IsExclusionConflict(err):
		return httperr.ErrConflict("time_conflict")
	case httperr.IsLockTimeout(err):
		return httperr.ErrConflict("tenant_busy")
	default:
		return err
	}
}

func (r *AppointmentGormRepository) setLockTimeout(tx *gorm.DB) error {
	if r.lockTimeout <= 0 {
		return nil
	}
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFound(err, id)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentsByDateRange(
	ctx context.Context,
	pageSlug string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where(
			"page_slug = ? AND status <> ? AND start_at >= ? AND start_at <= ?",
			pageSlug, string(domain.StatusCancelled), start, end,
		).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetUpcomingAppointments(
	ctx context.Context,
	pageSlug string,
	since time.Time,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where("page_slug = ? AND start_at >= ?", pageSlug, since).
		Order("start_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	status domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.setLockTimeout(tx); err != nil {
			return err
		}

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&ap).Error; err != nil {
			return notFound(err, id)
		}

		if err := domain.Transition(&ap, status, now); err != nil {
			return err
		}
		ap.UpdatedAt = now

		return tx.
			Model(&ap).
			Select("status", "confirmed_at", "cancelled_at", "completed_at", "updated_at").
			Updates(&ap).Error
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	return &ap, nil
}

func notFound(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound("appointment", id)
	}
	return err
}

// Compile-time check
var _ domain.Store = (*AppointmentGormRepository)(nil)
