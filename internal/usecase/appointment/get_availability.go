package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

type GetAvailabilityInput struct {
	PageSlug string
	Date     string // YYYY-MM-DD
	Services []string
}

type Availability struct {
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}

type GetAvailability struct {
	pages            domain.PageReader
	store            domain.Store
	clock            timezone.Clock
	metrics          *metrics.Metrics
	log              *zap.Logger
	freeCatalogLimit int
}

func NewGetAvailability(
	pages domain.PageReader,
	store domain.Store,
	clock timezone.Clock,
	m *metrics.Metrics,
	log *zap.Logger,
	freeCatalogLimit int,
) *GetAvailability {
	return &GetAvailability{
		pages:            pages,
		store:            store,
		clock:            clock,
		metrics:          m,
		log:              log.With(zap.String("usecase", "get_availability")),
		freeCatalogLimit: freeCatalogLimit,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*Availability, error) {

	now := uc.clock.Now()

	t, err := loadTenant(ctx, uc.pages, in.PageSlug, now, uc.freeCatalogLimit)
	if err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(in.Date, t.loc)
	if err != nil {
		return nil, httperr.ErrInvalidField("date", "invalid_date")
	}

	cart, err := catalog.Resolve(catalog.Visible(t.page.Services, t.features), in.Services)
	if err != nil {
		return nil, err
	}

	dayStart := timezone.StartOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	busy, err := uc.store.GetAppointmentsByDateRange(ctx, t.page.Slug, dayStart, dayEnd)
	if err != nil {
		uc.log.Error("load day ledger", zap.String("page", t.page.Slug), zap.Error(err))
		return nil, err
	}

	slots, err := domain.GenerateSlots(date, cart.DurationMinutes, busy, t.schedule, now)
	if err != nil {
		return nil, err
	}

	uc.metrics.SlotsOffered(len(slots))

	return &Availability{
		Date:            in.Date,
		DurationMinutes: cart.DurationMinutes,
		Slots:           slots,
	}, nil
}
