package page_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/page-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
	"github.com/BruksfildServices01/page-scheduler/internal/usecase/page"
)

var (
	now      = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	lapsed   = now.Add(-time.Hour)
	upcoming = now.Add(72 * time.Hour)
)

func studio(planName string, deadline *time.Time) models.Page {
	return models.Page{
		Slug:          "studio-ana",
		Name:          "Studio Ana",
		Address:       "Rua A, 10",
		PixKey:        "ana@pix",
		Theme:         "rose",
		BackgroundURL: "https://cdn.example/bg.jpg",
		Plan:          planName,
		TrialDeadline: deadline,
		OpenTime:      "08:00",
		CloseTime:     "18:00",
		LunchStart:    "12:00",
		LunchEnd:      "13:00",
		WorkingDays:   "1,2,3,4,5",
		Services: []models.Service{
			{Title: "Corte", Price: "35,5", DurationMinutes: 30, Active: true},
			{Title: "Barba", Price: "25", DurationMinutes: 45, Active: true},
			{Title: "Pintura", Price: "80", DurationMinutes: 90, Active: true},
		},
	}
}

func TestGetPublicPage_ProShowsEverything(t *testing.T) {
	pages := memstore.NewPageStore(studio("pro", &upcoming))
	uc := page.NewGetPublicPage(pages, timezone.FixedClock{T: now}, 2)

	out, err := uc.Execute(context.Background(), "studio-ana")
	require.NoError(t, err)

	assert.Equal(t, plan.Pro, out.Plan)
	assert.Equal(t, "Rua A, 10", out.Address)
	assert.Equal(t, "ana@pix", out.PixKey)
	assert.Equal(t, "rose", out.Theme)
	assert.True(t, out.Coupons)
	assert.Len(t, out.Services, 3)
	assert.Equal(t, "35.50", out.Services[0].Price)
	assert.Equal(t, "12:00", out.Schedule.LunchStart)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out.Schedule.WorkingDays)
}

func TestGetPublicPage_LapsedTrialIsGated(t *testing.T) {
	pages := memstore.NewPageStore(studio("pro", &lapsed))
	uc := page.NewGetPublicPage(pages, timezone.FixedClock{T: now}, 2)

	out, err := uc.Execute(context.Background(), "studio-ana")
	require.NoError(t, err)

	assert.Equal(t, plan.Free, out.Plan)
	assert.Empty(t, out.Address)
	assert.Empty(t, out.PixKey)
	assert.Empty(t, out.BackgroundURL)
	assert.Equal(t, "default", out.Theme)
	assert.False(t, out.Coupons)
	assert.Len(t, out.Services, 2)

	// storage still says pro
	stored, err := pages.GetPageBySlug(context.Background(), "studio-ana")
	require.NoError(t, err)
	assert.Equal(t, "pro", stored.Plan)
}

func TestGetPublicPage_NotFound(t *testing.T) {
	uc := page.NewGetPublicPage(memstore.NewPageStore(), timezone.FixedClock{T: now}, 2)

	_, err := uc.Execute(context.Background(), "nobody")
	assert.True(t, httperr.IsNotFound(err))
}

func TestGetPlan(t *testing.T) {
	pages := memstore.NewPageStore(studio("pro", &lapsed))
	uc := page.NewGetPlan(pages, timezone.FixedClock{T: now}, 4)

	out, err := uc.Execute(context.Background(), "studio-ana")
	require.NoError(t, err)

	assert.Equal(t, plan.Pro, out.Stored)
	assert.Equal(t, plan.Free, out.Effective)
	assert.False(t, out.TrialActive)
	assert.Equal(t, 4, out.Features.MaxServices)

	pages.PutPage(studio("pro", &upcoming))
	out, err = uc.Execute(context.Background(), "studio-ana")
	require.NoError(t, err)
	assert.Equal(t, plan.Pro, out.Effective)
	assert.True(t, out.TrialActive)
}
