package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_ApplyAddress(t *testing.T) {
	event := &Event{
		EventName:  "Rock in Rio",
		CEP:        "01020-000",
		Logradouro: "Rua Vieja",
		Bairro:     "Sur",
		Cidade:     "Antigua",
		UF:         "AN",
	}

	event.ApplyAddress(Address{
		Logradouro: "Rua Fulano",
		Bairro:     "Centro",
		Localidade: "Cidade FloriTest",
		UF:         "FT",
	})

	assert.Equal(t, "Rua Fulano", event.Logradouro)
	assert.Equal(t, "Centro", event.Bairro)
	assert.Equal(t, "Cidade FloriTest", event.Cidade)
	assert.Equal(t, "FT", event.UF)
	// El CEP no lo toca el lookup
	assert.Equal(t, "01020-000", event.CEP)
}
