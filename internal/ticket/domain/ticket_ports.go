package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrEventNotFound  = errors.New("event not found")
)

// TicketSequenceName es el contador compartido del que salen los IDs.
const TicketSequenceName = "ticket_sequence"

// EventSummary son los datos autoritativos del evento, obtenidos del
// servicio de eventos en el momento de emitir el ticket.
type EventSummary struct {
	ID         string
	EventName  string
	DateTime   string
	Logradouro string
	Bairro     string
	Cidade     string
	UF         string
}

// ---------- Interfaces (Ports) ----------

// TicketRepository define las operaciones persistentes para Ticket.
// Los tickets nunca se borran físicamente: cancelar es un Update.
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error

	// Debe devolver ErrTicketNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Ticket, error)

	// Debe devolver ErrTicketNotFound si el ticket no existe.
	Update(ctx context.Context, t *Ticket) error

	// ExistsByEventID responde si algún ticket referencia al evento,
	// sin importar su estado.
	ExistsByEventID(ctx context.Context, eventID uuid.UUID) (bool, error)
}

// SequenceGenerator emite valores únicos y crecientes para un contador
// con nombre. La atomicidad la garantiza el store, no la aplicación:
// N llamadas concurrentes reciben N valores distintos.
type SequenceGenerator interface {
	// Next incrementa y devuelve el nuevo valor; si el contador no
	// existe se crea y el primer valor es 1. Si el store no responde,
	// el error impide emitir el ticket.
	Next(ctx context.Context, name string) (int64, error)
}

// EventFinder obtiene el evento referenciado desde el servicio de
// eventos. Debe devolver ErrEventNotFound si no existe.
type EventFinder interface {
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventSummary, error)
}

// NotificationPublisher envía el mensaje de confirmación a la cola.
// Es fire-and-forget: el orquestador ignora fallos tras persistir.
type NotificationPublisher interface {
	Publish(ctx context.Context, message string) error
}

// TicketAnalytics registra ventas para análisis. Opcional y best-effort,
// igual que la notificación.
type TicketAnalytics interface {
	LogIssued(ctx context.Context, t *Ticket, at time.Time) error
	LogCancelled(ctx context.Context, t *Ticket, at time.Time) error
}
