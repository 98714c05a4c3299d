package appointment

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

// MaxRangeDays bounds a tenant range query.
const MaxRangeDays = 93

// ======================================================
// UPCOMING
// ======================================================

// ListUpcoming returns every appointment from local midnight today on,
// cancelled included, ascending.
type ListUpcoming struct {
	pages domain.PageReader
	store domain.Store
	clock timezone.Clock
	log   *zap.Logger
}

func NewListUpcoming(
	pages domain.PageReader,
	store domain.Store,
	clock timezone.Clock,
	log *zap.Logger,
) *ListUpcoming {
	return &ListUpcoming{
		pages: pages,
		store: store,
		clock: clock,
		log:   log.With(zap.String("usecase", "list_upcoming")),
	}
}

func (uc *ListUpcoming) Execute(ctx context.Context, pageSlug string) ([]models.Appointment, error) {
	page, err := uc.pages.GetPageBySlug(ctx, pageSlug)
	if err != nil {
		return nil, err
	}

	today := timezone.StartOfDay(uc.clock.Now().In(timezone.Location(page.Timezone)))

	aps, err := uc.store.GetUpcomingAppointments(ctx, page.Slug, today)
	if err != nil {
		uc.log.Error("list upcoming", zap.String("page", page.Slug), zap.Error(err))
		return nil, err
	}
	return aps, nil
}

// ======================================================
// RANGE
// ======================================================

type ListByRangeInput struct {
	PageSlug string
	From     string // YYYY-MM-DD
	To       string // YYYY-MM-DD, inclusive
}

// ListByRange returns non-cancelled appointments starting within the
// calendar days [From, To], ascending.
type ListByRange struct {
	pages domain.PageReader
	store domain.Store
	log   *zap.Logger
}

func NewListByRange(
	pages domain.PageReader,
	store domain.Store,
	log *zap.Logger,
) *ListByRange {
	return &ListByRange{
		pages: pages,
		store: store,
		log:   log.With(zap.String("usecase", "list_by_range")),
	}
}

func (uc *ListByRange) Execute(ctx context.Context, in ListByRangeInput) ([]models.Appointment, error) {
	page, err := uc.pages.GetPageBySlug(ctx, in.PageSlug)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(page.Timezone)

	from, err := timezone.ParseDate(in.From, loc)
	if err != nil {
		return nil, httperr.ErrInvalidField("from", "invalid_date")
	}
	to := from
	if in.To != "" {
		if to, err = timezone.ParseDate(in.To, loc); err != nil {
			return nil, httperr.ErrInvalidField("to", "invalid_date")
		}
	}

	if to.Before(from) {
		return nil, httperr.ErrInvalidField("to", "range_inverted")
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return nil, httperr.ErrInvalidField("to", "range_too_large")
	}

	end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)

	aps, err := uc.store.GetAppointmentsByDateRange(ctx, page.Slug, from, end)
	if err != nil {
		uc.log.Error("list range", zap.String("page", page.Slug), zap.Error(err))
		return nil, err
	}

	sort.Slice(aps, func(i, j int) bool {
		return aps[i].StartAt.Before(aps[j].StartAt)
	})
	return aps, nil
}
