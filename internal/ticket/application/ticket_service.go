package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/eventix/internal/shared/money"
	"github.com/davicafu/eventix/internal/shared/utils"
	"github.com/davicafu/eventix/internal/ticket/domain"
)

// TicketReceipt es el resultado de emitir un ticket: la entidad persistida,
// el resumen autoritativo del evento y los importes ya formateados.
type TicketReceipt struct {
	Ticket       *domain.Ticket
	Event        *domain.EventSummary
	BRLFormatted string
	USDFormatted string
}

// TicketService define los casos de uso relacionados con Ticket.
type TicketService struct {
	repo      domain.TicketRepository
	sequences domain.SequenceGenerator
	events    domain.EventFinder
	notifier  domain.NotificationPublisher
	analytics domain.TicketAnalytics
	log       *zap.Logger
}

// NewTicketService constructor. analytics puede ser nil (deshabilitado).
func NewTicketService(repo domain.TicketRepository, sequences domain.SequenceGenerator, events domain.EventFinder, notifier domain.NotificationPublisher, analytics domain.TicketAnalytics, log *zap.Logger) *TicketService {
	return &TicketService{
		repo:      repo,
		sequences: sequences,
		events:    events,
		notifier:  notifier,
		analytics: analytics,
		log:       log,
	}
}

// IssueTicket orquesta la emisión completa: secuencia → evento → persistir →
// formatear → notificar. Hasta persistir, cualquier fallo aborta sin estado
// parcial; después de persistir el ticket ya está emitido y el publish es
// best-effort.
func (s *TicketService) IssueTicket(ctx context.Context, draft *domain.Ticket) (*TicketReceipt, error) {
	s.log.Info("Iniciando la emisión de un ticket", zap.String("event_id", draft.EventID.String()))

	// 1. Identificador desde el contador atómico. Sin avance durable del
	// contador no se emite ningún ticket.
	seq, err := s.sequences.Next(ctx, domain.TicketSequenceName)
	if err != nil {
		return nil, fmt.Errorf("sequence %s: %w", domain.TicketSequenceName, err)
	}

	// 2. Datos autoritativos del evento. ErrEventNotFound se propaga tal cual.
	event, err := s.events.GetEventByID(ctx, draft.EventID)
	if err != nil {
		return nil, err
	}
	s.log.Info("Evento encontrado para el ticket", zap.String("event_name", event.EventName))

	// 3. Sellar el ticket.
	draft.TicketID = strconv.FormatInt(seq, 10)
	draft.EventName = event.EventName
	draft.Status = domain.TicketCompleted
	draft.CreatedAt = time.Now().UTC()

	// 4. Punto de durabilidad.
	if err := s.repo.Create(ctx, draft); err != nil {
		return nil, err
	}

	// 5-6. Importes formateados y mensaje de confirmación.
	brlFormatted := money.FormatBRL(draft.BRLAmount)
	usdFormatted := money.FormatUSD(draft.USDAmount)
	message := buildConfirmationMessage(draft, event, brlFormatted, usdFormatted)

	// 7. Publicación fire-and-forget: un fallo aquí no deshace el ticket.
	if err := s.notifier.Publish(ctx, message); err != nil {
		s.log.Warn("Fallo al publicar la notificación, el ticket queda emitido",
			zap.String("ticket_id", draft.TicketID), zap.Error(err))
	} else {
		s.log.Info("Notificación publicada", zap.String("ticket_id", draft.TicketID))
	}

	s.logAnalytics(draft, domain.TicketCompleted)

	s.log.Info("Ticket emitido", zap.String("ticket_id", draft.TicketID))
	return &TicketReceipt{
		Ticket:       draft,
		Event:        event,
		BRLFormatted: brlFormatted,
		USDFormatted: usdFormatted,
	}, nil
}

// buildConfirmationMessage arma el texto multilínea que viaja por la cola.
func buildConfirmationMessage(t *domain.Ticket, e *domain.EventSummary, brlAmount, usdAmount string) string {
	return fmt.Sprintf(
		"🎉 Ei %s, seu ingresso está confirmado! 🎟️\n"+
			"Detalhes:\n"+
			"🎤 Evento: %s\n"+
			"📅 Data: %s\n"+
			"📍 Local: %s, %s - %s/%s\n"+
			"💰 Valor: %s (ou %s)\n\n"+
			"Aproveite o show e não esqueça de contar pros amigos! 🤩",
		t.CustomerName,
		e.EventName,
		e.DateTime,
		e.Logradouro,
		e.Bairro,
		e.Cidade,
		e.UF,
		brlAmount,
		usdAmount,
	)
}

// GetTicket obtiene un ticket por ID, con reintentos sobre el repo.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	var ticket *domain.Ticket
	err := utils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		ticket, err = s.repo.GetByID(ctx, id)
		if err == domain.ErrTicketNotFound {
			return nil // no reintentar un not found
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}

// UpdateTicket reemplaza los campos del cliente y los importes. El
// identificador, el evento y el estado no se tocan.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, name, cpf, mail string, brl, usd float64) (*domain.Ticket, error) {
	s.log.Info("Actualizando ticket", zap.String("ticket_id", id))

	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.UpdateCustomer(name, cpf, mail, brl, usd)

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CancelTicket hace el soft-delete del ticket. Cancelar un ticket ya
// cancelado vuelve a aplicar el estado sin error.
func (s *TicketService) CancelTicket(ctx context.Context, id string) error {
	s.log.Info("Cancelando ticket", zap.String("ticket_id", id))

	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ticket.Cancel()
	if err := s.repo.Update(ctx, ticket); err != nil {
		return err
	}

	s.logAnalytics(ticket, domain.TicketCancelled)

	s.log.Info("Ticket cancelado", zap.String("ticket_id", id))
	return nil
}

// CheckTicketsByEvent responde si existe algún ticket (en cualquier estado)
// que referencie al evento. Es la cara expuesta al guard del otro servicio.
func (s *TicketService) CheckTicketsByEvent(ctx context.Context, eventID uuid.UUID) (bool, error) {
	hasTickets, err := s.repo.ExistsByEventID(ctx, eventID)
	if err != nil {
		return false, err
	}
	s.log.Info("Verificación de tickets por evento",
		zap.String("event_id", eventID.String()), zap.Bool("has_tickets", hasTickets))
	return hasTickets, nil
}

// logAnalytics registra la venta en background si hay sink configurado.
func (s *TicketService) logAnalytics(t *domain.Ticket, status domain.TicketStatus) {
	if s.analytics == nil {
		return
	}
	snapshot := *t
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		var err error
		if status == domain.TicketCancelled {
			err = s.analytics.LogCancelled(ctx, &snapshot, time.Now().UTC())
		} else {
			err = s.analytics.LogIssued(ctx, &snapshot, time.Now().UTC())
		}
		if err != nil {
			s.log.Warn("Fallo al registrar analítica de ventas", zap.Error(err))
		}
	}()
}
