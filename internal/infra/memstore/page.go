package memstore

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/page-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

type PageStore struct {
	mu    sync.RWMutex
	pages map[string]models.Page
}

func NewPageStore(pages ...models.Page) *PageStore {
	s := &PageStore{pages: make(map[string]models.Page)}
	for _, p := range pages {
		s.PutPage(p)
	}
	return s
}

func (s *PageStore) PutPage(p models.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Services = append([]models.Service(nil), p.Services...)
	s.pages[p.Slug] = p
}

func (s *PageStore) GetPageBySlug(ctx context.Context, slug string) (*models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pages[slug]
	if !ok {
		return nil, httperr.ErrNotFound("page", slug)
	}
	p.Services = append([]models.Service(nil), p.Services...)
	return &p, nil
}

var _ domain.PageReader = (*PageStore)(nil)
