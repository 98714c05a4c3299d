package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/page-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

// Cart is one or more services booked back to back as a single appointment.
type Cart struct {
	Services        []models.Service
	DurationMinutes int
	Total           decimal.Decimal
}

// Name joins the service titles with " + ".
func (c Cart) Name() string {
	titles := make([]string, 0, len(c.Services))
	for _, s := range c.Services {
		titles = append(titles, s.Title)
	}
	return strings.Join(titles, " + ")
}

// Visible returns the active services a page exposes under f, in catalog
// order.
func Visible(services []models.Service, f plan.Features) []models.Service {
	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if !s.Active {
			continue
		}
		if f.MaxServices > 0 && len(out) == f.MaxServices {
			break
		}
		out = append(out, s)
	}
	return out
}

// Resolve matches titles against services. Titles are compared exactly
// after trimming surrounding whitespace.
func Resolve(services []models.Service, titles []string) (Cart, error) {
	var cart Cart

	byTitle := make(map[string]models.Service, len(services))
	for _, s := range services {
		byTitle[strings.TrimSpace(s.Title)] = s
	}

	for _, raw := range titles {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}

		s, ok := byTitle[title]
		if !ok {
			return Cart{}, httperr.ErrNotFound("service", title)
		}

		price, err := ParsePrice(s.Price)
		if err != nil {
			return Cart{}, err
		}

		cart.Services = append(cart.Services, s)
		cart.DurationMinutes += s.Duration()
		cart.Total = cart.Total.Add(price)
	}

	if len(cart.Services) == 0 {
		return Cart{}, httperr.ErrInvalidField("service", "service_required")
	}
	return cart, nil
}
