package mocks

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	eventDomain "github.com/davicafu/eventix/internal/event/domain"
	"github.com/google/uuid"
)

// ErrUnknownCEP lo devuelve FakeAddressLookup para CEPs no registrados.
var ErrUnknownCEP = errors.New("cep desconocido")

// InMemoryEventRepo simula EventRepository con un mapa protegido por mutex.
type InMemoryEventRepo struct {
	Events map[uuid.UUID]*eventDomain.Event
	mu     sync.Mutex
}

func NewInMemoryEventRepo() *InMemoryEventRepo {
	return &InMemoryEventRepo{
		Events: make(map[uuid.UUID]*eventDomain.Event),
	}
}

func (r *InMemoryEventRepo) Create(ctx context.Context, e *eventDomain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *e
	r.Events[e.ID] = &copia
	return nil
}

func (r *InMemoryEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Events[id]
	if !ok {
		return nil, eventDomain.ErrEventNotFound
	}
	copia := *e
	return &copia, nil
}

func (r *InMemoryEventRepo) List(ctx context.Context, sortedByName bool) ([]*eventDomain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]*eventDomain.Event, 0, len(r.Events))
	for _, e := range r.Events {
		copia := *e
		list = append(list, &copia)
	}

	if sortedByName {
		sort.Slice(list, func(i, j int) bool {
			return list[i].EventName < list[j].EventName
		})
	}
	return list, nil
}

func (r *InMemoryEventRepo) Update(ctx context.Context, e *eventDomain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Events[e.ID]; !ok {
		return eventDomain.ErrEventNotFound
	}
	copia := *e
	r.Events[e.ID] = &copia
	return nil
}

func (r *InMemoryEventRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Events[id]; !ok {
		return eventDomain.ErrEventNotFound
	}
	delete(r.Events, id)
	return nil
}

// ------------------- AddressLookup -------------------

// FakeAddressLookup resuelve CEPs desde un mapa fijo; los desconocidos
// devuelven el error configurado.
type FakeAddressLookup struct {
	Addresses map[string]eventDomain.Address
	Err       error
	Calls     int
	mu        sync.Mutex
}

func NewFakeAddressLookup() *FakeAddressLookup {
	return &FakeAddressLookup{
		Addresses: map[string]eventDomain.Address{
			"01020-000": {
				Logradouro: "Rua Fulano",
				Bairro:     "Centro",
				Localidade: "Cidade FloriTest",
				UF:         "FT",
			},
		},
	}
}

func (f *FakeAddressLookup) GetAddressByCEP(ctx context.Context, cep string) (eventDomain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++

	if f.Err != nil {
		return eventDomain.Address{}, f.Err
	}
	addr, ok := f.Addresses[cep]
	if !ok {
		return eventDomain.Address{}, ErrUnknownCEP
	}
	return addr, nil
}

// ------------------- AddressCache -------------------

// DummyAddressCache guarda valores serializados, como haría Redis.
type DummyAddressCache struct {
	store map[string][]byte
	mu    sync.Mutex
}

func NewDummyAddressCache() *DummyAddressCache {
	return &DummyAddressCache{store: make(map[string][]byte)}
}

func (c *DummyAddressCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyAddressCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *DummyAddressCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// ------------------- TicketChecker -------------------

// FakeTicketChecker responde con un valor fijo por evento.
type FakeTicketChecker struct {
	HasTickets map[uuid.UUID]bool
	Err        error
	mu         sync.Mutex
}

func NewFakeTicketChecker() *FakeTicketChecker {
	return &FakeTicketChecker{HasTickets: make(map[uuid.UUID]bool)}
}

func (f *FakeTicketChecker) HasTicketsForEvent(ctx context.Context, eventID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return false, f.Err
	}
	return f.HasTickets[eventID], nil
}
