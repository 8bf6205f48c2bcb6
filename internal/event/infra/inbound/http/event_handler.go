package http

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/eventix/internal/event/application"
	"github.com/davicafu/eventix/internal/event/domain"
	"github.com/davicafu/eventix/pkg/utils"
)

// Layout sin zona, como viaja el dateTime por el API.
const dateTimeLayout = "2006-01-02T15:04:05"

var cepPattern = regexp.MustCompile(`^\d{5}-\d{3}$`)

// EventHandler encapsula los endpoints HTTP relacionados con Event
type EventHandler struct {
	service *application.EventService
}

// NewEventHandler crea un nuevo EventHandler
func NewEventHandler(service *application.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// eventRequest es el payload de create/update.
type eventRequest struct {
	EventName string `json:"eventName" binding:"required,min=3,max=100"`
	DateTime  string `json:"dateTime" binding:"required"` // ej: 2025-12-31T20:00:00
	CEP       string `json:"cep" binding:"required"`
}

// parse valida el formato del CEP y del dateTime, devolviendo errores
// campo → mensaje como el resto de la validación.
func (r *eventRequest) parse() (time.Time, map[string]string) {
	fields := make(map[string]string)

	if !cepPattern.MatchString(r.CEP) {
		fields["cep"] = "el CEP debe tener el formato 00000-000"
	}

	dateTime, err := time.Parse(dateTimeLayout, r.DateTime)
	if err != nil {
		fields["dateTime"] = "formato inválido, usar YYYY-MM-DDTHH:MM:SS"
	}

	if len(fields) > 0 {
		return time.Time{}, fields
	}
	return dateTime, nil
}

type eventResponse struct {
	ID         string `json:"id"`
	EventName  string `json:"eventName"`
	DateTime   string `json:"dateTime"`
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	UF         string `json:"uf"`
}

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:         e.ID.String(),
		EventName:  e.EventName,
		DateTime:   e.DateTime.Format(dateTimeLayout),
		CEP:        e.CEP,
		Logradouro: e.Logradouro,
		Bairro:     e.Bairro,
		Cidade:     e.Cidade,
		UF:         e.UF,
	}
}

// ---------------- Handlers ----------------

// CreateEvent endpoint POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	dateTime, fields := req.parse()
	if fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	event, err := h.service.CreateEvent(c.Request.Context(), req.EventName, dateTime, req.CEP)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(event))
}

// GetEvent endpoint GET /events/:id
// Es también la cara del lookup cross-service que consume el servicio
// de tickets al emitir.
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid event id")
		return
	}

	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			utils.SendNotFound(c, "evento no encontrado: "+id.String())
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

// ListEvents endpoint GET /events?sorted=true
func (h *EventHandler) ListEvents(c *gin.Context) {
	sorted := c.Query("sorted") == "true"

	events, err := h.service.ListEvents(c.Request.Context(), sorted)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toEventResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateEvent endpoint PUT /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid event id")
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	dateTime, fields := req.parse()
	if fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	event, err := h.service.UpdateEvent(c.Request.Context(), id, req.EventName, dateTime, req.CEP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			utils.SendNotFound(c, "evento no encontrado: "+id.String())
		case errors.Is(err, domain.ErrEventHasTickets):
			utils.SendConflict(c, "el evento no puede actualizarse porque tiene ingresos vendidos")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

// DeleteEvent endpoint DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid event id")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			utils.SendNotFound(c, "evento no encontrado: "+id.String())
		case errors.Is(err, domain.ErrEventHasTickets):
			utils.SendConflict(c, "el evento no puede borrarse porque tiene ingresos vendidos")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	c.Status(http.StatusNoContent)
}
