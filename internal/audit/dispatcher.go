package audit

import (
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/page-scheduler/internal/metrics"
)

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentConflict      = "appointment_conflict"
	ActionAppointmentStatusChanged = "appointment_status_changed"

	ActorCustomer = "customer"
	ActorTenant   = "tenant"
)

type Event struct {
	PageSlug string
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Dispatcher writes events off the request path. A full queue drops the
// event; audit never fails a request.
type Dispatcher struct {
	sink    Sink
	log     *zap.Logger
	metrics *metrics.Metrics

	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sink Sink, log *zap.Logger, m *metrics.Metrics, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		sink:    sink,
		log:     log.With(zap.String("component", "audit")),
		metrics: m,
		queue:   make(chan Event, size),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("page", ev.PageSlug),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.metrics.AuditDropped()
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
		<-d.done
	})
}
