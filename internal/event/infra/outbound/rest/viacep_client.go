// Package rest contiene los clientes HTTP síncronos del servicio de
// eventos: el lookup de CEP y la consulta al servicio de tickets.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	eventDomain "github.com/davicafu/eventix/internal/event/domain"
)

// ViaCepClient resuelve un CEP contra la API pública de ViaCEP.
type ViaCepClient struct {
	baseURL string
	client  *http.Client
}

func NewViaCepClient(baseURL string) *ViaCepClient {
	return &ViaCepClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type viaCepResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// GetAddressByCEP hace GET {base}/{cep}/json. ViaCEP responde 200 con
// {"erro": true} para CEPs bien formados pero inexistentes.
func (c *ViaCepClient) GetAddressByCEP(ctx context.Context, cep string) (eventDomain.Address, error) {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eventDomain.Address{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return eventDomain.Address{}, fmt.Errorf("viacep request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eventDomain.Address{}, fmt.Errorf("viacep returned status %d for cep %s", resp.StatusCode, cep)
	}

	var body viaCepResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return eventDomain.Address{}, fmt.Errorf("viacep decode: %w", err)
	}
	if body.Erro {
		return eventDomain.Address{}, fmt.Errorf("viacep: unknown cep %s", cep)
	}

	return eventDomain.Address{
		Logradouro: body.Logradouro,
		Bairro:     body.Bairro,
		Localidade: body.Localidade,
		UF:         body.UF,
	}, nil
}

// Verificación estática
var _ eventDomain.AddressLookup = (*ViaCepClient)(nil)
