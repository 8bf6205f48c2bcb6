package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event representa un evento con su dirección resuelta a partir del CEP.
type Event struct {
	ID        uuid.UUID
	EventName string
	DateTime  time.Time
	CEP       string
	// Campos de dirección: siempre derivados del CEP en el último
	// create/update exitoso, nunca introducidos directamente.
	Logradouro string
	Bairro     string
	Cidade     string
	UF         string
	CreatedAt  time.Time
}

// Address es la dirección estructurada devuelta por el lookup de CEP.
type Address struct {
	Logradouro string
	Bairro     string
	Localidade string
	UF         string
}

// ApplyAddress sobrescribe los campos de dirección con el resultado del lookup.
func (e *Event) ApplyAddress(a Address) {
	e.Logradouro = a.Logradouro
	e.Bairro = a.Bairro
	e.Cidade = a.Localidade
	e.UF = a.UF
}

// --- Métodos de dominio ---

func (e *Event) Rename(name string) {
	e.EventName = name
}

func (e *Event) Reschedule(dateTime time.Time) {
	e.DateTime = dateTime
}
