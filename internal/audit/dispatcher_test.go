package audit

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (s *memorySink) Log(ev Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcher_DeliversOnClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink, zap.NewNop(), nil, 10)

	d.Dispatch(Event{PageSlug: "ana", Action: ActionAppointmentCreated, EntityID: "1"})
	d.Dispatch(Event{PageSlug: "ana", Action: ActionAppointmentStatusChanged, EntityID: "1"})
	d.Close()
	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, ActionAppointmentCreated, sink.events[0].Action)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &memorySink{block: make(chan struct{})}
	d := NewDispatcher(sink, zap.NewNop(), nil, 1)

	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Action: ActionAppointmentConflict})
	}
	close(sink.block)
	d.Close()

	// one in flight, one queued
	assert.LessOrEqual(t, len(sink.events), 2)
	assert.GreaterOrEqual(t, len(sink.events), 1)
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink, zap.NewNop(), nil, 10)

	d.Dispatch(Event{Action: ActionAppointmentCreated})
	d.Dispatch(Event{Action: ActionAppointmentCreated})
	d.Close()

	assert.Len(t, sink.events, 2)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{}) })
}
