package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 100,00", FormatBRL(100.0))
	assert.Equal(t, "R$ 0,50", FormatBRL(0.5))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(1234.56))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$100.00", FormatUSD(100.0))
	assert.Equal(t, "$0.50", FormatUSD(0.5))
	assert.Equal(t, "$1,234.56", FormatUSD(1234.56))
}
