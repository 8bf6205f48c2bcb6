// Package rest contiene el cliente HTTP síncrono hacia el servicio de
// eventos, la superficie de acoplamiento entre los dos servicios.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
	"github.com/google/uuid"
)

// EventClient obtiene los datos autoritativos de un evento. Llamada
// síncrona sin retry ni caché; un 404 se traduce a ErrEventNotFound y
// cualquier otro fallo se propaga como error genérico.
type EventClient struct {
	baseURL string
	client  *http.Client
}

func NewEventClient(baseURL string) *EventClient {
	return &EventClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type eventResponse struct {
	ID         string `json:"id"`
	EventName  string `json:"eventName"`
	DateTime   string `json:"dateTime"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

func (c *EventClient) GetEventByID(ctx context.Context, id uuid.UUID) (*ticketDomain.EventSummary, error) {
	url := fmt.Sprintf("%s/events/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("event service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ticketDomain.ErrEventNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event service returned status %d for event %s", resp.StatusCode, id)
	}

	var body eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("event service decode: %w", err)
	}

	return &ticketDomain.EventSummary{
		ID:         body.ID,
		EventName:  body.EventName,
		DateTime:   body.DateTime,
		Logradouro: body.Logradouro,
		Bairro:     body.Bairro,
		Cidade:     body.Cidade,
		UF:         body.UF,
	}, nil
}

// Verificación estática
var _ ticketDomain.EventFinder = (*EventClient)(nil)
