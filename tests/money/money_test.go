package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/solstice-events/bookings-api/internal/money"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		line money.Line
		want string
	}{
		{
			name: "quantity times unit price",
			line: money.Line{Quantity: d("2"), UnitPrice: d("100")},
			want: "200",
		},
		{
			name: "zero quantity defaults to one",
			line: money.Line{Quantity: decimal.Zero, UnitPrice: d("49.99")},
			want: "49.99",
		},
		{
			name: "override wins over computed",
			line: money.Line{Quantity: d("3"), UnitPrice: d("100"), Override: dp("250")},
			want: "250",
		},
		{
			name: "fractional result rounds to two places",
			line: money.Line{Quantity: d("3"), UnitPrice: d("33.333")},
			want: "100",
		},
		{
			name: "override rounds too",
			line: money.Line{Quantity: d("1"), UnitPrice: d("1"), Override: dp("10.005")},
			want: "10.01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.LineTotal(tt.line)
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCompute(t *testing.T) {
	t.Run("standard vat on two lines", func(t *testing.T) {
		// 2 x 100 + 1 x 50 at 20% VAT.
		totals := money.Compute([]decimal.Decimal{d("200"), d("50")}, dp("0.2"))

		assert.True(t, totals.Subtotal.Equal(d("250")), "subtotal %s", totals.Subtotal)
		assert.True(t, totals.VATAmount.Equal(d("50")), "vat %s", totals.VATAmount)
		assert.True(t, totals.Total.Equal(d("300")), "total %s", totals.Total)
	})

	t.Run("nil rate uses the default", func(t *testing.T) {
		totals := money.Compute([]decimal.Decimal{d("100")}, nil)

		assert.True(t, totals.VATRate.Equal(money.DefaultVATRate))
		assert.True(t, totals.VATAmount.Equal(d("20")))
		assert.True(t, totals.Total.Equal(d("120")))
	})

	t.Run("zero rate yields no vat", func(t *testing.T) {
		totals := money.Compute([]decimal.Decimal{d("99.99")}, dp("0"))

		assert.True(t, totals.VATAmount.IsZero())
		assert.True(t, totals.Total.Equal(d("99.99")))
	})

	t.Run("vat applied at document level", func(t *testing.T) {
		// Two lines of 10.005 would each round to 2.00 VAT per line at
		// 20%; document-level VAT rounds once on the summed subtotal.
		totals := money.Compute([]decimal.Decimal{d("10.01"), d("10.01")}, dp("0.2"))

		assert.True(t, totals.Subtotal.Equal(d("20.02")))
		assert.True(t, totals.VATAmount.Equal(d("4")), "vat %s", totals.VATAmount)
	})

	t.Run("no lines", func(t *testing.T) {
		totals := money.Compute(nil, dp("0.2"))

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.Total.IsZero())
	})
}

func TestAmountDue(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		payments []string
		want     string
	}{
		{"no payments", "300", nil, "300"},
		{"partial payment", "300", []string{"100"}, "200"},
		{"several payments", "300", []string{"100", "150"}, "50"},
		{"exact settlement", "300", []string{"300"}, "0"},
		{"overpayment floors at zero", "300", []string{"200", "200"}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := make([]decimal.Decimal, len(tt.payments))
			for i, p := range tt.payments {
				payments[i] = d(p)
			}
			due := money.AmountDue(d(tt.total), payments)
			assert.True(t, due.Equal(d(tt.want)), "got %s, want %s", due, tt.want)
		})
	}
}
