package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/eventix/internal/event/domain"
	"github.com/davicafu/eventix/internal/shared/utils"
)

// EventService define los casos de uso relacionados con Event.
type EventService struct {
	repo      domain.EventRepository
	addresses domain.AddressLookup
	cache     domain.AddressCache
	tickets   domain.TicketChecker
	log       *zap.Logger
}

// NewEventService constructor
func NewEventService(repo domain.EventRepository, addresses domain.AddressLookup, cache domain.AddressCache, tickets domain.TicketChecker, log *zap.Logger) *EventService {
	return &EventService{
		repo:      repo,
		addresses: addresses,
		cache:     cache,
		tickets:   tickets,
		log:       log,
	}
}

// resolveAddress obtiene la dirección para un CEP, primero desde cache.
// Un fallo del lookup bloquea la mutación que lo pidió.
func (s *EventService) resolveAddress(ctx context.Context, cep string) (domain.Address, error) {
	if s.cache != nil {
		var a domain.Address
		if ok, _ := s.cache.Get(ctx, domain.AddressCacheKey(cep), &a); ok {
			return a, nil
		}
	}

	addr, err := s.addresses.GetAddressByCEP(ctx, cep)
	if err != nil {
		return domain.Address{}, fmt.Errorf("address lookup for cep %s: %w", cep, err)
	}

	if s.cache != nil {
		go func(a domain.Address) {
			ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = s.cache.Set(ctxCache, domain.AddressCacheKey(cep), a, 3600)
		}(addr)
	}

	return addr, nil
}

// CreateEvent resuelve la dirección desde el CEP y persiste el evento.
func (s *EventService) CreateEvent(ctx context.Context, name string, dateTime time.Time, cep string) (*domain.Event, error) {
	s.log.Info("Creando un nuevo evento", zap.String("event_name", name))

	addr, err := s.resolveAddress(ctx, cep)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:        uuid.New(),
		EventName: name,
		DateTime:  dateTime,
		CEP:       cep,
		CreatedAt: time.Now().UTC(),
	}
	event.ApplyAddress(addr)

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("Evento creado", zap.String("event_id", event.ID.String()))
	return event, nil
}

// GetEvent obtiene un evento por ID, con reintentos sobre el repo.
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event *domain.Event
	err := utils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		event, err = s.repo.GetByID(ctx, id)
		if err == domain.ErrEventNotFound {
			return nil // no reintentar un not found
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// ListEvents devuelve todos los eventos, opcionalmente ordenados por nombre.
func (s *EventService) ListEvents(ctx context.Context, sortedByName bool) ([]*domain.Event, error) {
	return s.repo.List(ctx, sortedByName)
}

// UpdateEvent re-resuelve la dirección desde el CEP (posiblemente nuevo) y
// consulta al servicio de tickets antes de tocar nada. La comprobación y la
// mutación no son atómicas entre los dos servicios: la ventana se mantiene
// mínima, no se elimina.
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, name string, dateTime time.Time, cep string) (*domain.Event, error) {
	s.log.Info("Actualizando evento", zap.String("event_id", id.String()))

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addr, err := s.resolveAddress(ctx, cep)
	if err != nil {
		return nil, err
	}

	hasTickets, err := s.tickets.HasTicketsForEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ticket check for event %s: %w", id, err)
	}
	if hasTickets {
		s.log.Warn("Evento con ingresos vendidos, update bloqueado", zap.String("event_id", id.String()))
		return nil, domain.ErrEventHasTickets
	}

	event.Rename(name)
	event.Reschedule(dateTime)
	event.CEP = cep
	event.ApplyAddress(addr)

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("Evento actualizado", zap.String("event_id", event.ID.String()))
	return event, nil
}

// DeleteEvent borra físicamente el evento, solo si el servicio de tickets
// confirma que no hay ingresos que lo referencien.
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	s.log.Info("Borrando evento", zap.String("event_id", id.String()))

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	hasTickets, err := s.tickets.HasTicketsForEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("ticket check for event %s: %w", id, err)
	}
	if hasTickets {
		s.log.Warn("Evento con ingresos vendidos, delete bloqueado", zap.String("event_id", id.String()))
		return domain.ErrEventHasTickets
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.log.Info("Evento borrado", zap.String("event_id", id.String()))
	return nil
}
