package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	eventDomain "github.com/davicafu/eventix/internal/event/domain"
	"github.com/google/uuid"
)

// TicketClient consulta al servicio de tickets si un evento tiene ingresos
// vendidos. Llamada síncrona sin retry, circuit-breaking ni caché: un fallo
// de transporte se propaga y aborta la operación que lo pidió.
type TicketClient struct {
	baseURL string
	client  *http.Client
}

func NewTicketClient(baseURL string) *TicketClient {
	return &TicketClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type checkTicketsResponse struct {
	EventID    string `json:"eventId"`
	HasTickets bool   `json:"hasTickets"`
}

func (c *TicketClient) HasTicketsForEvent(ctx context.Context, eventID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/tickets/check-by-event/%s", c.baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("ticket service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("ticket service returned status %d for event %s", resp.StatusCode, eventID)
	}

	var body checkTicketsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("ticket service decode: %w", err)
	}
	return body.HasTickets, nil
}

// Verificación estática
var _ eventDomain.TicketChecker = (*TicketClient)(nil)
