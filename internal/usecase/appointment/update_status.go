package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

// UpdateStatus applies a tenant-triggered status change. Appointments of
// other pages read as not found.
type UpdateStatus struct {
	store   domain.Store
	clock   timezone.Clock
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewUpdateStatus(
	store domain.Store,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
	log *zap.Logger,
) *UpdateStatus {
	return &UpdateStatus{
		store:   store,
		clock:   clock,
		audit:   audit,
		metrics: m,
		log:     log.With(zap.String("usecase", "update_status")),
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	pageSlug string,
	appointmentID string,
	rawStatus string,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	current, err := uc.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if current.PageSlug != pageSlug {
		return nil, httperr.ErrNotFound("appointment", appointmentID)
	}

	updated, err := uc.store.UpdateAppointmentStatus(ctx, appointmentID, status, uc.clock.Now())
	if err != nil {
		uc.metrics.Transition(string(status), false)
		if httperr.IsInvalidTransition(err) {
			uc.log.Warn("invalid transition",
				zap.String("page", pageSlug),
				zap.String("appointment", appointmentID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	uc.metrics.Transition(string(status), true)
	uc.audit.Dispatch(audit.Event{
		PageSlug: pageSlug,
		Actor:    audit.ActorTenant,
		Action:   audit.ActionAppointmentStatusChanged,
		Entity:   "appointment",
		EntityID: appointmentID,
		Metadata: map[string]string{"from": current.Status, "to": updated.Status},
	})

	return updated, nil
}
