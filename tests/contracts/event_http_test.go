package contracts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	eventApp "github.com/davicafu/eventix/internal/event/application"
	eventHttp "github.com/davicafu/eventix/internal/event/infra/inbound/http"
	"github.com/davicafu/eventix/tests/mocks"
)

// eventHTTPResponse define el contrato JSON que consume el otro servicio.
type eventHTTPResponse struct {
	ID         string `json:"id"`
	EventName  string `json:"eventName"`
	DateTime   string `json:"dateTime"`
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

func newEventEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := eventApp.NewEventService(
		mocks.NewInMemoryEventRepo(),
		mocks.NewFakeAddressLookup(),
		mocks.NewDummyAddressCache(),
		mocks.NewFakeTicketChecker(),
		zap.NewNop(),
	)

	engine := gin.New()
	eventHttp.RegisterEventRoutes(engine, eventHttp.NewEventHandler(service))
	return engine
}

func TestGetEvent_HTTPContract(t *testing.T) {
	engine := newEventEngine()

	// Crear vía POST para pasar por el flujo completo
	payload := `{"eventName": "Rock in Rio", "dateTime": "2026-12-31T20:00:00", "cep": "01020-000"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created eventHTTPResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// GET devuelve el DTO plano, sin wrapper
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/events/"+created.ID, nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var got eventHTTPResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Rock in Rio", got.EventName)
	assert.Equal(t, "2026-12-31T20:00:00", got.DateTime)
	assert.Equal(t, "01020-000", got.CEP)
	assert.Equal(t, "Rua Fulano", got.Logradouro)
	assert.Equal(t, "Centro", got.Bairro)
	assert.Equal(t, "Cidade FloriTest", got.Cidade)
	assert.Equal(t, "FT", got.UF)

	// El dateTime del wire es re-parseable con el mismo layout
	_, err := time.Parse("2006-01-02T15:04:05", got.DateTime)
	assert.NoError(t, err)
}

func TestGetEvent_NotFoundContract(t *testing.T) {
	engine := newEventEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events/"+uuid.NewString(), nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEvent_ValidationContract(t *testing.T) {
	engine := newEventEngine()

	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			name:    "nombre demasiado corto",
			payload: `{"eventName": "ab", "dateTime": "2026-12-31T20:00:00", "cep": "01020-000"}`,
			field:   "EventName",
		},
		{
			name:    "cep sin guión",
			payload: `{"eventName": "Rock in Rio", "dateTime": "2026-12-31T20:00:00", "cep": "01020000"}`,
			field:   "cep",
		},
		{
			name:    "dateTime con zona",
			payload: `{"eventName": "Rock in Rio", "dateTime": "2026-12-31T20:00:00Z", "cep": "01020-000"}`,
			field:   "dateTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.payload))
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
