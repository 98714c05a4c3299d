package appointment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/page-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
	"github.com/BruksfildServices01/page-scheduler/internal/timezone"
	uc "github.com/BruksfildServices01/page-scheduler/internal/usecase/appointment"
)

// Monday, 08:00 UTC.
var now = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	pages  *memstore.PageStore
	store  *memstore.AppointmentStore
	clock  timezone.FixedClock
	create *uc.CreateAppointment
	avail  *uc.GetAvailability
	status *uc.UpdateStatus
	upcom  *uc.ListUpcoming
	ranged *uc.ListByRange
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		pages: memstore.NewPageStore(
			models.Page{
				Slug:        "studio-ana",
				Name:        "Studio Ana",
				Timezone:    "UTC",
				Plan:        "free",
				OpenTime:    "09:00",
				CloseTime:   "17:00",
				LunchStart:  "12:00",
				LunchEnd:    "13:00",
				WorkingDays: "1,2,3,4,5",
				Services: []models.Service{
					{Title: "Corte", Price: "35", DurationMinutes: 30, Active: true},
					{Title: "Barba", Price: "25,50", DurationMinutes: 60, Active: true},
					{Title: "Escova", Price: "50", DurationMinutes: 90, Active: true},
				},
			},
			models.Page{Slug: "barbearia-leo", Name: "Leo", Timezone: "UTC"},
		),
		store: memstore.NewAppointmentStore(),
		clock: timezone.FixedClock{T: now},
	}

	log := zap.NewNop()
	m := metrics.New(prometheus.NewRegistry())

	f.create = uc.NewCreateAppointment(uc.CreateAppointmentDeps{
		Pages:            f.pages,
		Store:            f.store,
		Locker:           lock.NewLocal(),
		LockWait:         time.Second,
		Clock:            f.clock,
		Metrics:          m,
		Log:              log,
		FreeCatalogLimit: 2,
	})
	f.avail = uc.NewGetAvailability(f.pages, f.store, f.clock, m, log, 2)
	f.status = uc.NewUpdateStatus(f.store, f.clock, nil, m, log)
	f.upcom = uc.NewListUpcoming(f.pages, f.store, f.clock, log)
	f.ranged = uc.NewListByRange(f.pages, f.store, log)
	return f
}

func booking(date, hhmm string, services ...string) uc.CreateAppointmentInput {
	return uc.CreateAppointmentInput{
		PageSlug:      "studio-ana",
		Services:      services,
		Date:          date,
		Time:          hhmm,
		CustomerName:  "Maria Souza",
		CustomerPhone: "(11) 99999-0000",
	}
}

// ======================================================
// Availability
// ======================================================

func TestGetAvailability_ReflectsLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, booking("2025-03-10", "10:00", "Barba"))
	require.NoError(t, err)

	out, err := f.avail.Execute(ctx, uc.GetAvailabilityInput{
		PageSlug: "studio-ana",
		Date:     "2025-03-10",
		Services: []string{"Barba"},
	})
	require.NoError(t, err)

	assert.Equal(t, 60, out.DurationMinutes)
	assert.Equal(t, []string{"09:00", "11:00", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00"}, out.Slots)
}

func TestGetAvailability_CartDuration(t *testing.T) {
	f := newFixture(t)

	out, err := f.avail.Execute(context.Background(), uc.GetAvailabilityInput{
		PageSlug: "studio-ana",
		Date:     "2025-03-10",
		Services: []string{"Corte", "Barba"},
	})
	require.NoError(t, err)

	assert.Equal(t, 90, out.DurationMinutes)
	assert.Contains(t, out.Slots, "10:30")
	assert.NotContains(t, out.Slots, "11:00")
	assert.Equal(t, "15:30", out.Slots[len(out.Slots)-1])
}

func TestGetAvailability_ClosedDayAndErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.avail.Execute(ctx, uc.GetAvailabilityInput{
		PageSlug: "studio-ana", Date: "2025-03-09", Services: []string{"Corte"},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Slots)

	_, err = f.avail.Execute(ctx, uc.GetAvailabilityInput{
		PageSlug: "studio-ana", Date: "09/03/2025", Services: []string{"Corte"},
	})
	assert.True(t, httperr.IsValidation(err))

	// hidden by the free catalog limit
	_, err = f.avail.Execute(ctx, uc.GetAvailabilityInput{
		PageSlug: "studio-ana", Date: "2025-03-10", Services: []string{"Escova"},
	})
	assert.True(t, httperr.IsNotFound(err))

	_, err = f.avail.Execute(ctx, uc.GetAvailabilityInput{
		PageSlug: "nobody", Date: "2025-03-10", Services: []string{"Corte"},
	})
	assert.True(t, httperr.IsNotFound(err))
}

// ======================================================
// Create
// ======================================================

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture(t)

	ap, err := f.create.Execute(context.Background(), booking("2025-03-10", "09:00", "Corte", "Barba"))
	require.NoError(t, err)

	assert.NotEmpty(t, ap.ID)
	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, "Corte + Barba", ap.ServiceName)
	assert.Equal(t, "60.5", ap.TotalValue.String())
	assert.Equal(t, "11999990000", ap.CustomerPhone)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC), ap.EndAt)
	assert.Equal(t, 90, ap.DurationMinutes())
}

func TestCreateAppointment_SanitizesText(t *testing.T) {
	f := newFixture(t)

	in := booking("2025-03-10", "09:00", "Corte")
	in.CustomerName = "<b>Maria</b> D'Ávila"
	in.Notes = `<script>alert(1)</script>chegar cedo`

	ap, err := f.create.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "Maria D'Ávila", ap.CustomerName)
	assert.Equal(t, "chegar cedo", ap.Notes)
}

func TestCreateAppointment_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   uc.CreateAppointmentInput
		code string
	}{
		{"in the past", booking("2025-03-10", "07:30", "Corte"), "in_the_past"},
		{"closed day", booking("2025-03-15", "10:00", "Corte"), "closed_day"},
		{"before open", booking("2025-03-11", "08:30", "Corte"), "outside_working_hours"},
		{"past close", booking("2025-03-11", "16:30", "Barba"), "outside_working_hours"},
		{"lunch", booking("2025-03-11", "11:30", "Barba"), "lunch_break"},
		{"bad time", booking("2025-03-11", "9h", "Corte"), "invalid_time"},
		{"no service", booking("2025-03-11", "10:00"), "required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.create.Execute(context.Background(), tc.in)

			require.True(t, httperr.IsValidation(err), "%v", err)
			assert.Equal(t, tc.code, httperr.Code(err))
		})
	}
}

func TestCreateAppointment_MissingCustomer(t *testing.T) {
	f := newFixture(t)

	in := booking("2025-03-11", "10:00", "Corte")
	in.CustomerName = "<i></i>"

	_, err := f.create.Execute(context.Background(), in)

	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "customer_name", ve.Field)
}

func TestCreateAppointment_Conflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, booking("2025-03-11", "10:00", "Barba"))
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, booking("2025-03-11", "10:30", "Corte"))
	assert.True(t, httperr.IsConflict(err))

	// back to back is fine
	_, err = f.create.Execute(ctx, booking("2025-03-11", "11:00", "Corte"))
	assert.NoError(t, err)
}

func TestCreateAppointment_ConcurrentExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hhmm := "10:00"
			if i%2 == 1 {
				hhmm = "10:30"
			}
			_, err := f.create.Execute(ctx, booking("2025-03-11", hhmm, "Barba"))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if httperr.IsConflict(err) {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 15, conflicts)
}

func TestCreateAppointment_BookedSlotDisappears(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := uc.GetAvailabilityInput{PageSlug: "studio-ana", Date: "2025-03-11", Services: []string{"Corte"}}

	before, err := f.avail.Execute(ctx, in)
	require.NoError(t, err)

	for _, slot := range before.Slots {
		_, err := f.create.Execute(ctx, booking("2025-03-11", slot, "Corte"))
		require.NoError(t, err, slot)
	}

	after, err := f.avail.Execute(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, after.Slots)
}

// ======================================================
// Status
// ======================================================

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ap, err := f.create.Execute(ctx, booking("2025-03-11", "10:00", "Corte"))
	require.NoError(t, err)

	updated, err := f.status.Execute(ctx, "studio-ana", ap.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	_, err = f.status.Execute(ctx, "studio-ana", ap.ID, "pending")
	assert.True(t, httperr.IsInvalidTransition(err))

	_, err = f.status.Execute(ctx, "studio-ana", ap.ID, "archived")
	assert.True(t, httperr.IsValidation(err))

	// another tenant cannot see it
	_, err = f.status.Execute(ctx, "barbearia-leo", ap.ID, "cancelled")
	assert.True(t, httperr.IsNotFound(err))

	stored, err := f.store.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", stored.Status)

	_, err = f.status.Execute(ctx, "studio-ana", ap.ID, "cancelled")
	require.NoError(t, err)

	// cancelled range is free again
	_, err = f.create.Execute(ctx, booking("2025-03-11", "10:00", "Corte"))
	assert.NoError(t, err)
}

// ======================================================
// Listing
// ======================================================

func TestListUpcomingAndRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// seeded directly: yesterday is not bookable through the use case
	_, err := f.store.CreateAppointment(ctx, &models.Appointment{
		PageSlug: "studio-ana",
		StartAt:  now.Add(-22 * time.Hour),
		EndAt:    now.Add(-21 * time.Hour),
	})
	require.NoError(t, err)

	wed, err := f.create.Execute(ctx, booking("2025-03-12", "09:00", "Corte"))
	require.NoError(t, err)
	mon, err := f.create.Execute(ctx, booking("2025-03-10", "09:00", "Corte"))
	require.NoError(t, err)
	tue, err := f.create.Execute(ctx, booking("2025-03-11", "09:00", "Corte"))
	require.NoError(t, err)

	_, err = f.status.Execute(ctx, "studio-ana", tue.ID, "cancelled")
	require.NoError(t, err)

	upcoming, err := f.upcom.Execute(ctx, "studio-ana")
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, []string{mon.ID, tue.ID, wed.ID}, ids(upcoming))

	ranged, err := f.ranged.Execute(ctx, uc.ListByRangeInput{PageSlug: "studio-ana", From: "2025-03-10", To: "2025-03-12"})
	require.NoError(t, err)
	assert.Equal(t, []string{mon.ID, wed.ID}, ids(ranged))

	single, err := f.ranged.Execute(ctx, uc.ListByRangeInput{PageSlug: "studio-ana", From: "2025-03-12"})
	require.NoError(t, err)
	assert.Equal(t, []string{wed.ID}, ids(single))

	_, err = f.ranged.Execute(ctx, uc.ListByRangeInput{PageSlug: "studio-ana", From: "2025-03-12", To: "2025-03-10"})
	assert.True(t, httperr.IsValidation(err))

	_, err = f.ranged.Execute(ctx, uc.ListByRangeInput{PageSlug: "studio-ana", From: "2025-01-01", To: "2025-12-31"})
	assert.True(t, httperr.IsValidation(err))
}

func ids(aps []models.Appointment) []string {
	out := make([]string, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ap.ID)
	}
	return out
}
