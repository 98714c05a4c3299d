package page

import (
	"context"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/page-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/page-scheduler/internal/dto"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
)

const defaultTheme = "default"

// ======================================================
// PUBLIC PAGE
// ======================================================

// GetPublicPage renders a page as customers see it: fields and catalog size
// follow the effective plan.
type GetPublicPage struct {
	pages            domain.PageReader
	clock            timezone.Clock
	freeCatalogLimit int
}

func NewGetPublicPage(pages domain.PageReader, clock timezone.Clock, freeCatalogLimit int) *GetPublicPage {
	return &GetPublicPage{pages: pages, clock: clock, freeCatalogLimit: freeCatalogLimit}
}

func (uc *GetPublicPage) Execute(ctx context.Context, slug string) (*dto.PublicPageDTO, error) {
	p, err := uc.pages.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	sched, err := domain.ScheduleFromPage(p)
	if err != nil {
		return nil, err
	}

	effective := plan.Effective(plan.Normalize(p.Plan), p.TrialDeadline, uc.clock.Now())
	features := plan.FeaturesFor(effective, uc.freeCatalogLimit)

	out := &dto.PublicPageDTO{
		Slug:     p.Slug,
		Name:     p.Name,
		Phone:    p.Phone,
		Theme:    defaultTheme,
		Plan:     effective,
		Coupons:  features.Coupons,
		Schedule: scheduleDTO(sched),
		Services: servicesDTO(catalog.Visible(p.Services, features)),
	}

	if features.ShowAddress {
		out.Address = p.Address
	}
	if features.ShowPixKey {
		out.PixKey = p.PixKey
	}
	if features.CustomTheme {
		if p.Theme != "" {
			out.Theme = p.Theme
		}
		out.BackgroundURL = p.BackgroundURL
	}

	return out, nil
}

func scheduleDTO(s domain.Schedule) dto.ScheduleDTO {
	out := dto.ScheduleDTO{
		Open:        s.Open.String(),
		Close:       s.Close.String(),
		WorkingDays: s.WorkingDays,
	}
	if s.HasLunch() {
		out.LunchStart = s.LunchStart.String()
		out.LunchEnd = s.LunchEnd.String()
	}
	return out
}

func servicesDTO(services []models.Service) []dto.ServiceDTO {
	out := make([]dto.ServiceDTO, 0, len(services))
	for _, s := range services {
		price := s.Price
		if d, err := catalog.ParsePrice(s.Price); err == nil {
			price = d.StringFixed(2)
		}
		out = append(out, dto.ServiceDTO{
			Title:           s.Title,
			Price:           price,
			DurationMinutes: s.Duration(),
			Category:        s.Category,
		})
	}
	return out
}

// ======================================================
// PLAN
// ======================================================

type GetPlan struct {
	pages            domain.PageReader
	clock            timezone.Clock
	freeCatalogLimit int
}

func NewGetPlan(pages domain.PageReader, clock timezone.Clock, freeCatalogLimit int) *GetPlan {
	return &GetPlan{pages: pages, clock: clock, freeCatalogLimit: freeCatalogLimit}
}

func (uc *GetPlan) Execute(ctx context.Context, slug string) (*dto.PlanDTO, error) {
	p, err := uc.pages.GetPageBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	stored := plan.Normalize(p.Plan)
	effective := plan.Effective(stored, p.TrialDeadline, now)

	return &dto.PlanDTO{
		Stored:        stored,
		Effective:     effective,
		TrialDeadline: p.TrialDeadline,
		TrialActive:   plan.TrialActive(stored, p.TrialDeadline, now),
		Features:      plan.FeaturesFor(effective, uc.freeCatalogLimit),
	}, nil
}
