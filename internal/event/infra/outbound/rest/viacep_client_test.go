package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestViaCepClient_GetAddressByCEP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01020-000/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "01020-000",
			"logradouro": "Rua Fulano",
			"bairro": "Centro",
			"localidade": "Cidade FloriTest",
			"uf": "FT"
		}`))
	}))
	defer server.Close()

	client := NewViaCepClient(server.URL)

	addr, err := client.GetAddressByCEP(context.Background(), "01020-000")
	assert.NoError(t, err)
	assert.Equal(t, "Rua Fulano", addr.Logradouro)
	assert.Equal(t, "Centro", addr.Bairro)
	assert.Equal(t, "Cidade FloriTest", addr.Localidade)
	assert.Equal(t, "FT", addr.UF)
}

func TestViaCepClient_UnknownCEP(t *testing.T) {
	// ViaCEP responde 200 con {"erro": true} para CEPs inexistentes
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer server.Close()

	client := NewViaCepClient(server.URL)

	_, err := client.GetAddressByCEP(context.Background(), "99999-999")
	assert.Error(t, err)
}

func TestViaCepClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewViaCepClient(server.URL)

	_, err := client.GetAddressByCEP(context.Background(), "01020-000")
	assert.Error(t, err)
}

func TestTicketClient_HasTicketsForEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"eventId": "ignored", "hasTickets": true}`))
	}))
	defer server.Close()

	client := NewTicketClient(server.URL)

	hasTickets, err := client.HasTicketsForEvent(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.True(t, hasTickets)
}

func TestTicketClient_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewTicketClient(server.URL)

	_, err := client.HasTicketsForEvent(context.Background(), uuid.New())
	assert.Error(t, err)
}
