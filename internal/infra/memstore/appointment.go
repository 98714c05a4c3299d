package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

// AppointmentStore keeps each tenant's ledger behind its own mutex, so the
// overlap check and the insert happen as one step per tenant while
// different tenants never contend.
type AppointmentStore struct {
	mu      sync.RWMutex
	ledgers map[string]*ledger
	owners  map[string]string // appointment id -> page slug

	now func() time.Time
}

type ledger struct {
	mu    sync.Mutex
	items map[string]*models.Appointment
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{
		ledgers: make(map[string]*ledger),
		owners:  make(map[string]string),
		now:     time.Now,
	}
}

func (s *AppointmentStore) ledger(slug string) *ledger {
	s.mu.RLock()
	lg, ok := s.ledgers[slug]
	s.mu.RUnlock()
	if ok {
		return lg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if lg, ok = s.ledgers[slug]; !ok {
		lg = &ledger{items: make(map[string]*models.Appointment)}
		s.ledgers[slug] = lg
	}
	return lg
}

func (s *AppointmentStore) owner(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slug, ok := s.owners[id]
	return slug, ok
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (s *AppointmentStore) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ap.PageSlug == "" {
		return "", httperr.ErrInvalidField("page_slug", "required")
	}
	if !ap.EndAt.After(ap.StartAt) {
		return "", httperr.ErrValidation("invalid_duration")
	}

	lg := s.ledger(ap.PageSlug)
	lg.mu.Lock()
	defer lg.mu.Unlock()

	for _, existing := range lg.items {
		if domain.Status(existing.Status).Blocks() &&
			domain.Overlaps(ap.StartAt, ap.EndAt, existing.StartAt, existing.EndAt) {
			return "", httperr.ErrConflict("time_conflict")
		}
	}

	now := s.now()
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}
	ap.CreatedAt = now
	ap.UpdatedAt = now

	stored := *ap
	lg.items[ap.ID] = &stored

	s.mu.Lock()
	s.owners[ap.ID] = ap.PageSlug
	s.mu.Unlock()

	return ap.ID, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (s *AppointmentStore) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	slug, ok := s.owner(id)
	if !ok {
		return nil, httperr.ErrNotFound("appointment", id)
	}

	lg := s.ledger(slug)
	lg.mu.Lock()
	defer lg.mu.Unlock()

	out := *lg.items[id]
	return &out, nil
}

func (s *AppointmentStore) GetAppointmentsByDateRange(
	ctx context.Context,
	pageSlug string,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	return s.collect(pageSlug, func(ap *models.Appointment) bool {
		return domain.Status(ap.Status).Blocks() &&
			!ap.StartAt.Before(start) && !ap.StartAt.After(end)
	}), nil
}

func (s *AppointmentStore) GetUpcomingAppointments(
	ctx context.Context,
	pageSlug string,
	since time.Time,
) ([]models.Appointment, error) {

	out := s.collect(pageSlug, func(ap *models.Appointment) bool {
		return !ap.StartAt.Before(since)
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out, nil
}

func (s *AppointmentStore) collect(slug string, keep func(*models.Appointment) bool) []models.Appointment {
	lg := s.ledger(slug)
	lg.mu.Lock()
	defer lg.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range lg.items {
		if keep(ap) {
			out = append(out, *ap)
		}
	}
	return out
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (s *AppointmentStore) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	status domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	slug, ok := s.owner(id)
	if !ok {
		return nil, httperr.ErrNotFound("appointment", id)
	}

	lg := s.ledger(slug)
	lg.mu.Lock()
	defer lg.mu.Unlock()

	next := *lg.items[id]
	if err := domain.Transition(&next, status, now); err != nil {
		return nil, err
	}
	next.UpdatedAt = now
	lg.items[id] = &next

	out := next
	return &out, nil
}

// Compile-time check
var _ domain.Store = (*AppointmentStore)(nil)
