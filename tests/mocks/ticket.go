package mocks

import (
	"context"
	"sync"
	"time"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
	"github.com/google/uuid"
)

// InMemoryTicketRepo simula TicketRepository. Cancelar es un Update,
// igual que en los adaptadores reales.
type InMemoryTicketRepo struct {
	Tickets map[string]*ticketDomain.Ticket
	mu      sync.Mutex
}

func NewInMemoryTicketRepo() *InMemoryTicketRepo {
	return &InMemoryTicketRepo{
		Tickets: make(map[string]*ticketDomain.Ticket),
	}
}

func (r *InMemoryTicketRepo) Create(ctx context.Context, t *ticketDomain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *t
	r.Tickets[t.TicketID] = &copia
	return nil
}

func (r *InMemoryTicketRepo) GetByID(ctx context.Context, id string) (*ticketDomain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Tickets[id]
	if !ok {
		return nil, ticketDomain.ErrTicketNotFound
	}
	copia := *t
	return &copia, nil
}

func (r *InMemoryTicketRepo) Update(ctx context.Context, t *ticketDomain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Tickets[t.TicketID]; !ok {
		return ticketDomain.ErrTicketNotFound
	}
	copia := *t
	r.Tickets[t.TicketID] = &copia
	return nil
}

func (r *InMemoryTicketRepo) ExistsByEventID(ctx context.Context, eventID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.Tickets {
		if t.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

// Len es un helper para asserts.
func (r *InMemoryTicketRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Tickets)
}

// ------------------- SequenceGenerator -------------------

// InMemorySequence imita el contador atómico del store: valores únicos
// y crecientes bajo concurrencia, primer valor 1.
type InMemorySequence struct {
	counters map[string]int64
	Err      error
	mu       sync.Mutex
}

func NewInMemorySequence() *InMemorySequence {
	return &InMemorySequence{counters: make(map[string]int64)}
}

func (s *InMemorySequence) Next(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	s.counters[name]++
	return s.counters[name], nil
}

// ------------------- EventFinder -------------------

// FakeEventFinder sirve resúmenes de evento desde un mapa; los IDs no
// registrados devuelven ErrEventNotFound como el cliente real.
type FakeEventFinder struct {
	Events map[uuid.UUID]*ticketDomain.EventSummary
	Err    error
	mu     sync.Mutex
}

func NewFakeEventFinder() *FakeEventFinder {
	return &FakeEventFinder{
		Events: make(map[uuid.UUID]*ticketDomain.EventSummary),
	}
}

func (f *FakeEventFinder) GetEventByID(ctx context.Context, id uuid.UUID) (*ticketDomain.EventSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	summary, ok := f.Events[id]
	if !ok {
		return nil, ticketDomain.ErrEventNotFound
	}
	copia := *summary
	return &copia, nil
}

// ------------------- NotificationPublisher -------------------

// DummyNotifier acumula los mensajes publicados como evidencia.
type DummyNotifier struct {
	Messages []string
	Err      error
	mu       sync.Mutex
}

func (p *DummyNotifier) Publish(ctx context.Context, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, message)
	return nil
}

func (p *DummyNotifier) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Messages...)
}

// ------------------- TicketAnalytics -------------------

// DummyAnalytics registra las entradas para poder esperar por ellas.
type DummyAnalytics struct {
	Issued    []string
	Cancelled []string
	mu        sync.Mutex
}

func (a *DummyAnalytics) LogIssued(ctx context.Context, t *ticketDomain.Ticket, at time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Issued = append(a.Issued, t.TicketID)
	return nil
}

func (a *DummyAnalytics) LogCancelled(ctx context.Context, t *ticketDomain.Ticket, at time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Cancelled = append(a.Cancelled, t.TicketID)
	return nil
}

// Counts devuelve (emitidos, cancelados) de forma segura para asserts.
func (a *DummyAnalytics) Counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Issued), len(a.Cancelled)
}
