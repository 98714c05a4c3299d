package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

// tenant is a page resolved for one request: its location, schedule and
// the plan in force right now.
type tenant struct {
	page     *models.Page
	loc      *time.Location
	schedule domain.Schedule
	plan     plan.Plan
	features plan.Features
}

func loadTenant(
	ctx context.Context,
	pages domain.PageReader,
	slug string,
	now time.Time,
	freeCatalogLimit int,
) (*tenant, error) {

	page, err := pages.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	sched, err := domain.ScheduleFromPage(page)
	if err != nil {
		return nil, err
	}

	effective := plan.Effective(plan.Normalize(page.Plan), page.TrialDeadline, now)

	return &tenant{
		page:     page,
		loc:      timezone.Location(page.Timezone),
		schedule: sched,
		plan:     effective,
		features: plan.FeaturesFor(effective, freeCatalogLimit),
	}, nil
}
