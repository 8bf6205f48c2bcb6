package domain

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	// Los estados conservan los literales en portugués que viajan por el API.
	TicketCompleted TicketStatus = "Concluído"
	TicketCancelled TicketStatus = "Cancelado"
)

// Ticket representa un ingreso vendido contra un evento.
// El TicketID es la representación en string de un contador monotónico
// y es inmutable una vez asignado.
type Ticket struct {
	TicketID     string
	CustomerName string
	CPF          string
	CustomerMail string
	EventID      uuid.UUID
	EventName    string
	BRLAmount    float64
	USDAmount    float64
	Status       TicketStatus
	CreatedAt    time.Time
}

// --- Métodos de dominio ---

// Cancel es un soft-delete: solo cambia el estado, nunca se borra el
// documento. Re-aplicarlo sobre un ticket ya cancelado es válido.
func (t *Ticket) Cancel() {
	t.Status = TicketCancelled
}

// UpdateCustomer reemplaza los campos mutables; TicketID, EventID,
// EventName y Status quedan intactos.
func (t *Ticket) UpdateCustomer(name, cpf, mail string, brl, usd float64) {
	t.CustomerName = name
	t.CPF = cpf
	t.CustomerMail = mail
	t.BRLAmount = brl
	t.USDAmount = usd
}
