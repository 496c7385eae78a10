package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestRecordSales(t *testing.T) {
	tests := []struct {
		name      string
		price     decimal.NullDecimal
		quantity  decimal.NullDecimal
		wantValid bool
		want      string
	}{
		{"both present", nd("2.5"), nd("4"), true, "10"},
		{"cents", nd("3.00"), nd("2"), true, "6"},
		{"missing price", decimal.NullDecimal{}, nd("4"), false, ""},
		{"missing quantity", nd("2.5"), decimal.NullDecimal{}, false, ""},
		{"both missing", decimal.NullDecimal{}, decimal.NullDecimal{}, false, ""},
	}
	for _, tt := range tests {
		r := Record{Price: tt.price, Quantity: tt.quantity}
		got := r.Sales()
		assert.Equal(t, tt.wantValid, got.Valid, tt.name)
		if tt.wantValid {
			assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), "%s: got %s", tt.name, got.Decimal)
		}
	}
}

func TestRecordOutput(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Record{
		Product:  "pink morsel",
		Price:    nd("1.50"),
		Quantity: nd("3"),
		Date:     d,
		Region:   "north",
		Source:   "a.csv",
		Line:     2,
	}

	out := r.Output()
	assert.True(t, out.Sales.Valid)
	assert.Equal(t, "4.5", out.Sales.Decimal.String())
	assert.True(t, d.Equal(out.Date))
	assert.Equal(t, "north", out.Region)
}
