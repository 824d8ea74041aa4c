package infra

import (
	"context"
	"sync"

	"landing-countdown/countdown/domain"
)

type Counters struct {
	Started   int64
	Completed int64
	Stopped   int64
}

func (c *Counters) add(kind domain.EventKind) {
	switch kind {
	case domain.EventStarted:
		c.Started++
	case domain.EventCompleted:
		c.Completed++
	case domain.EventStopped:
		c.Stopped++
	}
}

// MemoryEventStore guarda contadores de eventos de contagem em memória.
// Útil para testes, para o CLI e para desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryEventStore struct {
	mu       sync.Mutex
	total    Counters
	byTarget map[string]Counters
	events   []domain.Event

	keepEvents bool
}

type MemoryEventsOption func(*MemoryEventStore)

// WithKeepEvents guarda também a lista de eventos na ordem de gravação.
func WithKeepEvents(keep bool) MemoryEventsOption {
	return func(s *MemoryEventStore) { s.keepEvents = keep }
}

func NewMemoryEventStore(opts ...MemoryEventsOption) *MemoryEventStore {
	s := &MemoryEventStore{
		byTarget: make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryEventStore) Record(_ context.Context, ev domain.Event) error {
	target := targetField(ev.Target)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total.add(ev.Kind)
	c := s.byTarget[target]
	c.add(ev.Kind)
	s.byTarget[target] = c

	if s.keepEvents {
		s.events = append(s.events, ev)
	}
	return nil
}

func (s *MemoryEventStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryEventStore) ByTarget() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byTarget))
	for k, v := range s.byTarget {
		out[k] = v
	}
	return out
}

func (s *MemoryEventStore) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}
