package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitMajor(t *testing.T) {
	tests := []struct {
		name      string
		lineTotal int64
		quantity  int64
		want      float64
	}{
		{"two units", 4998, 2, 24.99},
		{"single unit", 19900, 1, 199.00},
		{"zero quantity floors to one", 1500, 0, 15.00},
		{"negative quantity floors to one", 1500, -3, 15.00},
		{"uneven split keeps fraction", 1000, 3, 10.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, UnitMajor(tt.lineTotal, tt.quantity), 0.0001)
		})
	}
}

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "$24.99", FormatMinor("aud", 2499))
	assert.Equal(t, "$5.00", FormatMinor("USD", 500))
	assert.Equal(t, "€10.50", FormatMinor("eur", 1050))
	assert.Equal(t, "£0.99", FormatMinor("gbp", 99))
	assert.Equal(t, "12.00 JPY", FormatMinor("jpy", 1200))
}
