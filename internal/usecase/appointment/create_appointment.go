package appointment

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
	"github.com/BruksfildServices01/page-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PageSlug string   `json:"-"`
	Services []string `json:"services" validate:"required,min=1,dive,required,max=100"`

	Date string `json:"date" validate:"required,isodate"`
	Time string `json:"time" validate:"required,hhmm"`

	CustomerName  string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,phone"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=120"`
	CustomerID    string `json:"customer_id" validate:"omitempty,max=64"`
	CustomerPhoto string `json:"customer_photo" validate:"omitempty,url,max=255"`
	Notes         string `json:"notes" validate:"max=255"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	pages    domain.PageReader
	store    domain.Store
	locker   lock.Locker
	lockWait time.Duration
	clock    timezone.Clock
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	log      *zap.Logger

	freeCatalogLimit int
	policy           *bluemonday.Policy
}

type CreateAppointmentDeps struct {
	Pages            domain.PageReader
	Store            domain.Store
	Locker           lock.Locker
	LockWait         time.Duration
	Clock            timezone.Clock
	Audit            *audit.Dispatcher
	Metrics          *metrics.Metrics
	Log              *zap.Logger
	FreeCatalogLimit int
}

func NewCreateAppointment(d CreateAppointmentDeps) *CreateAppointment {
	return &CreateAppointment{
		pages:            d.Pages,
		store:            d.Store,
		locker:           d.Locker,
		lockWait:         d.LockWait,
		clock:            d.Clock,
		audit:            d.Audit,
		metrics:          d.Metrics,
		log:              d.Log.With(zap.String("usecase", "create_appointment")),
		freeCatalogLimit: d.FreeCatalogLimit,
		policy:           bluemonday.StrictPolicy(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	in = uc.sanitize(in)
	if err := validators.Struct(in); err != nil {
		uc.metrics.Booking("rejected")
		return nil, err
	}

	now := uc.clock.Now()

	// --------------------------------------------------
	// 2️⃣ Página, plano e catálogo
	// --------------------------------------------------
	t, err := loadTenant(ctx, uc.pages, in.PageSlug, now, uc.freeCatalogLimit)
	if err != nil {
		return nil, err
	}

	cart, err := catalog.Resolve(catalog.Visible(t.page.Services, t.features), in.Services)
	if err != nil {
		uc.metrics.Booking("rejected")
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Data / hora no fuso da página
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time, t.loc)
	if err != nil {
		uc.metrics.Booking("rejected")
		return nil, httperr.ErrInvalidField("time", "invalid_date_or_time")
	}
	end := start.Add(time.Duration(cart.DurationMinutes) * time.Minute)

	if start.Before(now) {
		uc.metrics.Booking("rejected")
		return nil, httperr.ErrInvalidField("time", "in_the_past")
	}

	// --------------------------------------------------
	// 4️⃣ Expediente + almoço
	// --------------------------------------------------
	if err := t.schedule.Fits(start, end); err != nil {
		uc.metrics.Booking("rejected")
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Lock por página
	// --------------------------------------------------
	unlock, err := uc.acquire(ctx, t.page.Slug)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// --------------------------------------------------
	// 6️⃣ Criação (recheca conflito de forma atômica)
	// --------------------------------------------------
	ap := &models.Appointment{
		PageSlug:      t.page.Slug,
		ServiceName:   cart.Name(),
		TotalValue:    cart.Total,
		CustomerName:  in.CustomerName,
		CustomerPhone: validators.NormalizePhone(in.CustomerPhone),
		CustomerID:    in.CustomerID,
		CustomerEmail: validators.NormalizeEmail(in.CustomerEmail),
		CustomerPhoto: in.CustomerPhoto,
		StartAt:       start,
		EndAt:         end,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	id, err := uc.store.CreateAppointment(ctx, ap)
	if err != nil {
		if httperr.IsConflict(err) {
			uc.metrics.Booking("conflict")
			uc.log.Warn("booking conflict",
				zap.String("page", t.page.Slug),
				zap.Time("start", start),
				zap.Time("end", end),
			)
			uc.audit.Dispatch(audit.Event{
				PageSlug: t.page.Slug,
				Actor:    audit.ActorCustomer,
				Action:   audit.ActionAppointmentConflict,
				Entity:   "appointment",
				Metadata: map[string]any{"start": start, "end": end},
			})
			return nil, err
		}

		uc.metrics.Booking("error")
		uc.log.Error("create appointment", zap.String("page", t.page.Slug), zap.Error(err))
		return nil, err
	}
	ap.ID = id

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.metrics.Booking("created")
	uc.audit.Dispatch(audit.Event{
		PageSlug: t.page.Slug,
		Actor:    audit.ActorCustomer,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: id,
		Metadata: map[string]any{"service": ap.ServiceName, "start": start},
	})

	return ap, nil
}

func (uc *CreateAppointment) acquire(ctx context.Context, slug string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, uc.lockWait)
	defer cancel()

	started := time.Now()
	unlock, err := uc.locker.Lock(lockCtx, "booking:"+slug)
	uc.metrics.LockWait(time.Since(started))

	if errors.Is(err, lock.ErrNotAcquired) {
		uc.metrics.Booking("conflict")
		uc.log.Warn("page busy", zap.String("page", slug), zap.Error(err))
		return nil, httperr.ErrConflict("tenant_busy")
	}
	if err != nil {
		uc.metrics.Booking("error")
		return nil, err
	}
	return unlock, nil
}

// sanitize strips markup from free text and trims whitespace. Entities
// escaped by the policy are decoded back; the result is stored as text.
func (uc *CreateAppointment) sanitize(in CreateAppointmentInput) CreateAppointmentInput {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(uc.policy.Sanitize(s)))
	}

	in.CustomerName = clean(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.CustomerPhoto = strings.TrimSpace(in.CustomerPhoto)
	in.Notes = clean(in.Notes)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)

	var services []string
	for _, s := range in.Services {
		if s = strings.TrimSpace(s); s != "" {
			services = append(services, s)
		}
	}
	in.Services = services

	return in
}
