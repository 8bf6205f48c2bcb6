package application

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/davicafu/eventix/internal/ticket/domain"
	"github.com/davicafu/eventix/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTicketFixture() (*TicketService, *mocks.InMemoryTicketRepo, *mocks.FakeEventFinder, *mocks.DummyNotifier, uuid.UUID) {
	repo := mocks.NewInMemoryTicketRepo()
	finder := mocks.NewFakeEventFinder()
	notifier := &mocks.DummyNotifier{}

	eventID := uuid.New()
	finder.Events[eventID] = &domain.EventSummary{
		ID:         eventID.String(),
		EventName:  "Rock in Rio",
		DateTime:   "2026-12-31T20:00:00",
		Logradouro: "Rua Fulano",
		Bairro:     "Centro",
		Cidade:     "Cidade FloriTest",
		UF:         "FT",
	}

	service := NewTicketService(repo, mocks.NewInMemorySequence(), finder, notifier, nil, zap.NewNop())
	return service, repo, finder, notifier, eventID
}

func draftFor(eventID uuid.UUID) *domain.Ticket {
	return &domain.Ticket{
		CustomerName: "Maria Silva",
		CPF:          "12345678901",
		CustomerMail: "maria@example.com",
		EventID:      eventID,
		BRLAmount:    1234.56,
		USDAmount:    100.0,
	}
}

func TestIssueTicket_Success(t *testing.T) {
	service, repo, _, notifier, eventID := newTicketFixture()

	receipt, err := service.IssueTicket(context.Background(), draftFor(eventID))
	assert.NoError(t, err)
	assert.NotNil(t, receipt)

	// Primer valor de la secuencia
	assert.Equal(t, "1", receipt.Ticket.TicketID)
	assert.Equal(t, domain.TicketCompleted, receipt.Ticket.Status)
	assert.Equal(t, "Rock in Rio", receipt.Ticket.EventName)
	assert.Equal(t, "R$ 1.234,56", receipt.BRLFormatted)
	assert.Equal(t, "$100.00", receipt.USDFormatted)
	assert.Equal(t, "Rock in Rio", receipt.Event.EventName)

	// Persistido
	got, err := repo.GetByID(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, "Maria Silva", got.CustomerName)

	// La notificación lleva ambos importes formateados y el nombre del cliente
	published := notifier.Published()
	assert.Len(t, published, 1)
	assert.Contains(t, published[0], "Maria Silva")
	assert.Contains(t, published[0], "Rock in Rio")
	assert.Contains(t, published[0], "R$ 1.234,56")
	assert.Contains(t, published[0], "$100.00")
	assert.Contains(t, published[0], "Rua Fulano, Centro - Cidade FloriTest/FT")
}

func TestIssueTicket_EventNotFound(t *testing.T) {
	service, repo, _, notifier, _ := newTicketFixture()

	_, err := service.IssueTicket(context.Background(), draftFor(uuid.New()))
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	// Nada persistido, nada publicado
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, notifier.Published())
}

func TestIssueTicket_SequenceFailureAborts(t *testing.T) {
	repo := mocks.NewInMemoryTicketRepo()
	finder := mocks.NewFakeEventFinder()
	notifier := &mocks.DummyNotifier{}
	sequences := mocks.NewInMemorySequence()
	sequences.Err = assert.AnError

	eventID := uuid.New()
	finder.Events[eventID] = &domain.EventSummary{ID: eventID.String(), EventName: "Evento"}

	service := NewTicketService(repo, sequences, finder, notifier, nil, zap.NewNop())

	_, err := service.IssueTicket(context.Background(), draftFor(eventID))
	assert.Error(t, err)
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, notifier.Published())
}

func TestIssueTicket_NotifierFailureKeepsTicket(t *testing.T) {
	service, repo, _, notifier, eventID := newTicketFixture()
	notifier.Err = assert.AnError

	receipt, err := service.IssueTicket(context.Background(), draftFor(eventID))
	assert.NoError(t, err, "el fallo del publish no deshace la emisión")
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, domain.TicketCompleted, receipt.Ticket.Status)
}

func TestIssueTicket_SequentialIDs(t *testing.T) {
	service, _, _, _, eventID := newTicketFixture()

	for i := 1; i <= 3; i++ {
		receipt, err := service.IssueTicket(context.Background(), draftFor(eventID))
		assert.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), receipt.Ticket.TicketID)
	}
}

func TestIssueTicket_ConcurrentDistinctIDs(t *testing.T) {
	service, repo, _, _, eventID := newTicketFixture()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := service.IssueTicket(context.Background(), draftFor(eventID))
			assert.NoError(t, err)
			ids <- receipt.Ticket.TicketID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "id duplicado: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, repo.Len())
}

func TestGetTicket_NotFound(t *testing.T) {
	service, _, _, _, _ := newTicketFixture()

	_, err := service.GetTicket(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestUpdateTicket_Success(t *testing.T) {
	service, repo, _, _, eventID := newTicketFixture()

	receipt, _ := service.IssueTicket(context.Background(), draftFor(eventID))

	updated, err := service.UpdateTicket(context.Background(), receipt.Ticket.TicketID,
		"Joana Souza", "10987654321", "joana@example.com", 200.0, 40.0)
	assert.NoError(t, err)
	assert.Equal(t, "Joana Souza", updated.CustomerName)
	assert.Equal(t, 200.0, updated.BRLAmount)

	// Identificador, evento y estado no se tocan
	assert.Equal(t, receipt.Ticket.TicketID, updated.TicketID)
	assert.Equal(t, eventID, updated.EventID)
	assert.Equal(t, domain.TicketCompleted, updated.Status)

	got, _ := repo.GetByID(context.Background(), receipt.Ticket.TicketID)
	assert.Equal(t, "Joana Souza", got.CustomerName)
}

func TestUpdateTicket_NotFound(t *testing.T) {
	service, _, _, _, _ := newTicketFixture()

	_, err := service.UpdateTicket(context.Background(), "404", "Nadie", "00000000000", "n@example.com", 1, 1)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestCancelTicket_SoftDelete(t *testing.T) {
	service, repo, _, _, eventID := newTicketFixture()

	receipt, _ := service.IssueTicket(context.Background(), draftFor(eventID))

	err := service.CancelTicket(context.Background(), receipt.Ticket.TicketID)
	assert.NoError(t, err)

	// El ticket sigue existiendo, cancelado
	got, err := repo.GetByID(context.Background(), receipt.Ticket.TicketID)
	assert.NoError(t, err)
	assert.Equal(t, domain.TicketCancelled, got.Status)

	// Idempotente
	err = service.CancelTicket(context.Background(), receipt.Ticket.TicketID)
	assert.NoError(t, err)
}

func TestCancelTicket_NotFound(t *testing.T) {
	service, _, _, _, _ := newTicketFixture()

	err := service.CancelTicket(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestCheckTicketsByEvent(t *testing.T) {
	service, _, _, _, eventID := newTicketFixture()

	hasTickets, err := service.CheckTicketsByEvent(context.Background(), eventID)
	assert.NoError(t, err)
	assert.False(t, hasTickets)

	_, err = service.IssueTicket(context.Background(), draftFor(eventID))
	assert.NoError(t, err)

	hasTickets, err = service.CheckTicketsByEvent(context.Background(), eventID)
	assert.NoError(t, err)
	assert.True(t, hasTickets)
}

func TestCheckTicketsByEvent_CancelledStillCounts(t *testing.T) {
	service, _, _, _, eventID := newTicketFixture()

	receipt, _ := service.IssueTicket(context.Background(), draftFor(eventID))
	assert.NoError(t, service.CancelTicket(context.Background(), receipt.Ticket.TicketID))

	hasTickets, err := service.CheckTicketsByEvent(context.Background(), eventID)
	assert.NoError(t, err)
	assert.True(t, hasTickets, "un ticket cancelado sigue referenciando al evento")
}

func TestIssueAndCancel_AnalyticsRecorded(t *testing.T) {
	repo := mocks.NewInMemoryTicketRepo()
	finder := mocks.NewFakeEventFinder()
	analytics := &mocks.DummyAnalytics{}

	eventID := uuid.New()
	finder.Events[eventID] = &domain.EventSummary{ID: eventID.String(), EventName: "Evento"}

	service := NewTicketService(repo, mocks.NewInMemorySequence(), finder, &mocks.DummyNotifier{}, analytics, zap.NewNop())

	receipt, err := service.IssueTicket(context.Background(), draftFor(eventID))
	assert.NoError(t, err)
	assert.NoError(t, service.CancelTicket(context.Background(), receipt.Ticket.TicketID))

	// El registro es asíncrono y best-effort
	assert.Eventually(t, func() bool {
		issued, cancelled := analytics.Counts()
		return issued == 1 && cancelled == 1
	}, time.Second, 10*time.Millisecond)
}
