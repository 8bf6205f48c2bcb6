package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrEventNotFound = errors.New("event not found")
	// ErrEventHasTickets bloquea update/delete mientras existan ingresos
	// vendidos para el evento.
	ErrEventHasTickets = errors.New("event has tickets sold")
)

// ---------- Interfaces (Ports) ----------

// EventRepository define las operaciones persistentes para Event.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error

	// Debe devolver ErrEventNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// List devuelve todos los eventos; con sortedByName los ordena
	// alfabéticamente por nombre.
	List(ctx context.Context, sortedByName bool) ([]*Event, error)

	// Debe devolver ErrEventNotFound si el evento no existe.
	Update(ctx context.Context, e *Event) error

	// Debe devolver ErrEventNotFound si el evento no existe.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// AddressLookup traduce un CEP (formato 00000-000) en una dirección.
// Un fallo aquí bloquea la mutación que lo necesitaba.
type AddressLookup interface {
	GetAddressByCEP(ctx context.Context, cep string) (Address, error)
}

// AddressCache guarda direcciones ya resueltas, keyed por CEP.
type AddressCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error
	Delete(ctx context.Context, key string) error
}

// TicketChecker consulta al servicio de tickets si existe algún ingreso
// que referencie al evento. Llamada síncrona, sin retry ni caché.
type TicketChecker interface {
	HasTicketsForEvent(ctx context.Context, eventID uuid.UUID) (bool, error)
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// AddressCacheKey forma una key consistente para el cache de direcciones.
func AddressCacheKey(cep string) string {
	return fmt.Sprintf("address:cep:%s", cep)
}
