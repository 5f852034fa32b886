// Package money holds the monetary arithmetic for quotes and invoices.
// All amounts are decimal with two-place rounding at each step.
package money

import "github.com/shopspring/decimal"

// DefaultVATRate is applied when a document carries no explicit rate.
var DefaultVATRate = decimal.NewFromFloat(0.20)

// Totals is the document-level monetary breakdown.
type Totals struct {
	Subtotal  decimal.Decimal
	VATRate   decimal.Decimal
	VATAmount decimal.Decimal
	Total     decimal.Decimal
}

// Line is the input to a line total calculation.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	// Override, when set, replaces the computed quantity x unitPrice.
	Override *decimal.Decimal
}

// LineTotal computes a single line's total, rounded to two places.
func LineTotal(l Line) decimal.Decimal {
	if l.Override != nil {
		return l.Override.Round(2)
	}
	qty := l.Quantity
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	return qty.Mul(l.UnitPrice).Round(2)
}

// Compute derives document totals from line totals. VAT is applied at
// the document level: subtotal x rate, not summed per-line.
func Compute(lineTotals []decimal.Decimal, vatRate *decimal.Decimal) Totals {
	rate := DefaultVATRate
	if vatRate != nil {
		rate = *vatRate
	}
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}
	subtotal = subtotal.Round(2)
	vatAmount := subtotal.Mul(rate).Round(2)
	return Totals{
		Subtotal:  subtotal,
		VATRate:   rate,
		VATAmount: vatAmount,
		Total:     subtotal.Add(vatAmount).Round(2),
	}
}

// AmountDue recomputes the outstanding balance from completed payments.
// It never goes below zero.
func AmountDue(total decimal.Decimal, completedPayments []decimal.Decimal) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range completedPayments {
		paid = paid.Add(p)
	}
	due := total.Sub(paid).Round(2)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}
