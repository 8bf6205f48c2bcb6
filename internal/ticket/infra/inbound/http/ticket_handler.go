package http

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/eventix/internal/ticket/application"
	"github.com/davicafu/eventix/internal/ticket/domain"
	"github.com/davicafu/eventix/pkg/utils"
)

var cpfPattern = regexp.MustCompile(`^\d{11}$`)

// TicketHandler encapsula los endpoints HTTP relacionados con Ticket
type TicketHandler struct {
	service *application.TicketService
}

// NewTicketHandler crea un nuevo TicketHandler
func NewTicketHandler(service *application.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// issueTicketRequest es el payload de emisión.
type issueTicketRequest struct {
	CustomerName string  `json:"customerName" binding:"required,min=3,max=100"`
	CPF          string  `json:"cpf" binding:"required"`
	CustomerMail string  `json:"customerMail" binding:"required,email"`
	EventID      string  `json:"eventId" binding:"required"`
	BRLAmount    float64 `json:"brlAmount" binding:"required,gt=0"`
	USDAmount    float64 `json:"usdAmount" binding:"required,gt=0"`
}

// updateTicketRequest no admite cambiar evento ni estado.
type updateTicketRequest struct {
	CustomerName string  `json:"customerName" binding:"required,min=3,max=100"`
	CPF          string  `json:"cpf" binding:"required"`
	CustomerMail string  `json:"customerMail" binding:"required,email"`
	BRLAmount    float64 `json:"brlAmount" binding:"required,gt=0"`
	USDAmount    float64 `json:"usdAmount" binding:"required,gt=0"`
}

type ticketResponse struct {
	TicketID     string  `json:"ticketId"`
	CustomerName string  `json:"customerName"`
	CPF          string  `json:"cpf"`
	CustomerMail string  `json:"customerMail"`
	EventID      string  `json:"eventId"`
	EventName    string  `json:"eventName"`
	BRLAmount    float64 `json:"brlAmount"`
	USDAmount    float64 `json:"usdAmount"`
	Status       string  `json:"status"`
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	return ticketResponse{
		TicketID:     t.TicketID,
		CustomerName: t.CustomerName,
		CPF:          t.CPF,
		CustomerMail: t.CustomerMail,
		EventID:      t.EventID.String(),
		EventName:    t.EventName,
		BRLAmount:    t.BRLAmount,
		USDAmount:    t.USDAmount,
		Status:       string(t.Status),
	}
}

// receiptResponse es el recibo de emisión, con el resumen del evento
// anidado y los importes ya formateados.
type receiptResponse struct {
	TicketID       string               `json:"ticketId"`
	CPF            string               `json:"cpf"`
	CustomerName   string               `json:"customerName"`
	CustomerMail   string               `json:"customerMail"`
	Event          receiptEventResponse `json:"event"`
	BRLTotalAmount string               `json:"brlTotalAmount"`
	USDTotalAmount string               `json:"usdTotalAmount"`
	Status         string               `json:"status"`
}

type receiptEventResponse struct {
	EventID       string `json:"eventId"`
	EventName     string `json:"eventName"`
	EventDateTime string `json:"eventDateTime"`
	Logradouro    string `json:"logradouro"`
	Bairro        string `json:"bairro"`
	Cidade        string `json:"cidade"`
	UF            string `json:"uf"`
}

// ---------------- Handlers ----------------

// IssueTicket endpoint POST /tickets
func (h *TicketHandler) IssueTicket(c *gin.Context) {
	var req issueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	fields := make(map[string]string)
	if !cpfPattern.MatchString(req.CPF) {
		fields["cpf"] = "el CPF debe contener 11 dígitos numéricos"
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		fields["eventId"] = "identificador de evento inválido"
	}
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	draft := &domain.Ticket{
		CustomerName: req.CustomerName,
		CPF:          req.CPF,
		CustomerMail: req.CustomerMail,
		EventID:      eventID,
		BRLAmount:    req.BRLAmount,
		USDAmount:    req.USDAmount,
	}

	receipt, err := h.service.IssueTicket(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			utils.SendNotFound(c, "evento no encontrado: "+req.EventID)
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, receiptResponse{
		TicketID:     receipt.Ticket.TicketID,
		CPF:          receipt.Ticket.CPF,
		CustomerName: receipt.Ticket.CustomerName,
		CustomerMail: receipt.Ticket.CustomerMail,
		Event: receiptEventResponse{
			EventID:       receipt.Event.ID,
			EventName:     receipt.Event.EventName,
			EventDateTime: receipt.Event.DateTime,
			Logradouro:    receipt.Event.Logradouro,
			Bairro:        receipt.Event.Bairro,
			Cidade:        receipt.Event.Cidade,
			UF:            receipt.Event.UF,
		},
		BRLTotalAmount: receipt.BRLFormatted,
		USDTotalAmount: receipt.USDFormatted,
		Status:         string(receipt.Ticket.Status),
	})
}

// GetTicket endpoint GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id := c.Param("id")

	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			utils.SendNotFound(c, "ticket no encontrado: "+id)
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// UpdateTicket endpoint PUT /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id := c.Param("id")

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err)
		return
	}

	if !cpfPattern.MatchString(req.CPF) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"cpf": "el CPF debe contener 11 dígitos numéricos"}})
		return
	}

	ticket, err := h.service.UpdateTicket(c.Request.Context(), id,
		req.CustomerName, req.CPF, req.CustomerMail, req.BRLAmount, req.USDAmount)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			utils.SendNotFound(c, "ticket no encontrado: "+id)
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// CancelTicket endpoint DELETE /tickets/:id (soft-delete)
func (h *TicketHandler) CancelTicket(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.CancelTicket(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			utils.SendNotFound(c, "ticket no encontrado: "+id)
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckTicketsByEvent endpoint GET /tickets/check-by-event/:eventId
// Es la cara del guard cross-service: el servicio de eventos la consulta
// antes de mutar o borrar un evento.
func (h *TicketHandler) CheckTicketsByEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		utils.SendBadRequest(c, "invalid event id")
		return
	}

	hasTickets, err := h.service.CheckTicketsByEvent(c.Request.Context(), eventID)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventId":    eventID.String(),
		"hasTickets": hasTickets,
	})
}
