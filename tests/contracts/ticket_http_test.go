package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	ticketApp "github.com/davicafu/eventix/internal/ticket/application"
	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
	ticketHttp "github.com/davicafu/eventix/internal/ticket/infra/inbound/http"
	"github.com/davicafu/eventix/tests/mocks"
)

func newTicketEngine(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	finder := mocks.NewFakeEventFinder()
	eventID := uuid.New()
	finder.Events[eventID] = &ticketDomain.EventSummary{
		ID:         eventID.String(),
		EventName:  "Rock in Rio",
		DateTime:   "2026-12-31T20:00:00",
		Logradouro: "Rua Fulano",
		Bairro:     "Centro",
		Cidade:     "Cidade FloriTest",
		UF:         "FT",
	}

	service := ticketApp.NewTicketService(
		mocks.NewInMemoryTicketRepo(),
		mocks.NewInMemorySequence(),
		finder,
		&mocks.DummyNotifier{},
		nil,
		zap.NewNop(),
	)

	engine := gin.New()
	ticketHttp.RegisterTicketRoutes(engine, ticketHttp.NewTicketHandler(service))
	return engine, eventID
}

func issuePayload(eventID uuid.UUID) string {
	return fmt.Sprintf(`{
		"customerName": "Maria Silva",
		"cpf": "12345678901",
		"customerMail": "maria@example.com",
		"eventId": %q,
		"brlAmount": 1234.56,
		"usdAmount": 100.0
	}`, eventID)
}

func TestIssueTicket_ReceiptContract(t *testing.T) {
	engine, eventID := newTicketEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewBufferString(issuePayload(eventID)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var receipt struct {
		TicketID     string `json:"ticketId"`
		CPF          string `json:"cpf"`
		CustomerName string `json:"customerName"`
		CustomerMail string `json:"customerMail"`
		Event        struct {
			EventID       string `json:"eventId"`
			EventName     string `json:"eventName"`
			EventDateTime string `json:"eventDateTime"`
			Logradouro    string `json:"logradouro"`
			Bairro        string `json:"bairro"`
			Cidade        string `json:"cidade"`
			UF            string `json:"uf"`
		} `json:"event"`
		BRLTotalAmount string `json:"brlTotalAmount"`
		USDTotalAmount string `json:"usdTotalAmount"`
		Status         string `json:"status"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))

	assert.Equal(t, "1", receipt.TicketID)
	assert.Equal(t, "Maria Silva", receipt.CustomerName)
	assert.Equal(t, "Concluído", receipt.Status)
	assert.Equal(t, "R$ 1.234,56", receipt.BRLTotalAmount)
	assert.Equal(t, "$100.00", receipt.USDTotalAmount)
	assert.Equal(t, eventID.String(), receipt.Event.EventID)
	assert.Equal(t, "Rock in Rio", receipt.Event.EventName)
	assert.Equal(t, "2026-12-31T20:00:00", receipt.Event.EventDateTime)
	assert.Equal(t, "Cidade FloriTest", receipt.Event.Cidade)
}

func TestIssueTicket_ValidationContract(t *testing.T) {
	engine, eventID := newTicketEngine(t)

	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			name: "cpf con menos de 11 dígitos",
			payload: fmt.Sprintf(`{"customerName": "Maria Silva", "cpf": "12345", "customerMail": "maria@example.com",
				"eventId": %q, "brlAmount": 10, "usdAmount": 2}`, eventID),
			field: "cpf",
		},
		{
			name: "e-mail inválido",
			payload: fmt.Sprintf(`{"customerName": "Maria Silva", "cpf": "12345678901", "customerMail": "no-es-mail",
				"eventId": %q, "brlAmount": 10, "usdAmount": 2}`, eventID),
			field: "CustomerMail",
		},
		{
			name: "importe negativo",
			payload: fmt.Sprintf(`{"customerName": "Maria Silva", "cpf": "12345678901", "customerMail": "maria@example.com",
				"eventId": %q, "brlAmount": -5, "usdAmount": 2}`, eventID),
			field: "BRLAmount",
		},
		{
			name: "eventId que no es uuid",
			payload: `{"customerName": "Maria Silva", "cpf": "12345678901", "customerMail": "maria@example.com",
				"eventId": "no-un-uuid", "brlAmount": 10, "usdAmount": 2}`,
			field: "eventId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewBufferString(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body struct {
				Errors map[string]string `json:"errors"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body.Errors, tt.field)
		})
	}
}

func TestCheckTicketsByEvent_HTTPContract(t *testing.T) {
	engine, eventID := newTicketEngine(t)

	// En frío: sin tickets
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tickets/check-by-event/"+eventID.String(), nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var check struct {
		EventID    string `json:"eventId"`
		HasTickets bool   `json:"hasTickets"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.Equal(t, eventID.String(), check.EventID)
	assert.False(t, check.HasTickets)

	// Emitir y volver a consultar
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewBufferString(issuePayload(eventID)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/tickets/check-by-event/"+eventID.String(), nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	assert.True(t, check.HasTickets)
}
