package service_test

import (
	"context"
	"testing"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSentInvoice(t *testing.T, f *fixture, total string) *domain.InvoiceDTO {
	t.Helper()
	dto, err := f.invoices.Create(context.Background(), &domain.CreateInvoiceRequest{
		Title:   "Event invoice",
		DueDate: "2026-10-01",
		VATRate: ptr(dec("0")),
		Status:  domain.InvoiceStatusSent,
		LineItems: []domain.LineItemInput{
			{Description: "Performance fee", UnitPrice: dec(total)},
		},
	})
	require.NoError(t, err)
	return dto
}

func TestInvoiceCreateComputesTotals(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.invoices.Create(context.Background(), &domain.CreateInvoiceRequest{
		Title:   "Wedding balance",
		DueDate: "2026-10-01",
		LineItems: []domain.LineItemInput{
			{Description: "Band", Quantity: ptr(dec("2")), UnitPrice: dec("100")},
			{Description: "Travel", UnitPrice: dec("50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-", dto.InvoiceNumber[:4])
	assert.Equal(t, domain.InvoiceStatusDraft, dto.Status)
	assert.True(t, dto.Subtotal.Equal(dec("250")))
	assert.True(t, dto.VATAmount.Equal(dec("50")))
	assert.True(t, dto.Total.Equal(dec("300")))
	// A fresh invoice owes its full total.
	assert.True(t, dto.AmountDue.Equal(dec("300")))
}

func TestInvoicePartialPayment(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	invoice := createSentInvoice(t, f, "300")

	paid, err := f.invoices.RecordPayment(context.Background(), invoice.ID, &domain.RecordPaymentRequest{
		Amount: dec("100"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusPartial, paid.Status)
	assert.True(t, paid.AmountDue.Equal(dec("200")), "amountDue %s", paid.AmountDue)
	require.Len(t, paid.Payments, 1)
	assert.Equal(t, domain.PaymentStatusCompleted, paid.Payments[0].Status)
}

func TestInvoiceFullSettlement(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()
	invoice := createSentInvoice(t, f, "300")

	_, err := f.invoices.RecordPayment(ctx, invoice.ID, &domain.RecordPaymentRequest{Amount: dec("100")})
	require.NoError(t, err)
	settled, err := f.invoices.RecordPayment(ctx, invoice.ID, &domain.RecordPaymentRequest{Amount: dec("200")})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusPaid, settled.Status)
	assert.True(t, settled.AmountDue.IsZero())
}

func TestInvoiceOverpaymentFloorsAtZero(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	invoice := createSentInvoice(t, f, "300")

	settled, err := f.invoices.RecordPayment(context.Background(), invoice.ID, &domain.RecordPaymentRequest{
		Amount: dec("500"),
	})
	require.NoError(t, err)

	assert.True(t, settled.AmountDue.IsZero())
	assert.Equal(t, domain.InvoiceStatusPaid, settled.Status)
}

func TestInvoicePendingPaymentDoesNotSettle(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	invoice := createSentInvoice(t, f, "300")

	after, err := f.invoices.RecordPayment(context.Background(), invoice.ID, &domain.RecordPaymentRequest{
		Amount: dec("300"),
		Status: domain.PaymentStatusPending,
	})
	require.NoError(t, err)

	// Only completed payments count toward the balance.
	assert.Equal(t, domain.InvoiceStatusSent, after.Status)
	assert.True(t, after.AmountDue.Equal(dec("300")))
}

func TestInvoicePaymentStatusChangeResettles(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()
	invoice := createSentInvoice(t, f, "300")

	pending, err := f.invoices.RecordPayment(ctx, invoice.ID, &domain.RecordPaymentRequest{
		Amount: dec("300"),
		Status: domain.PaymentStatusPending,
	})
	require.NoError(t, err)
	require.Len(t, pending.Payments, 1)

	settled, err := f.invoices.UpdatePaymentStatus(ctx, invoice.ID, pending.Payments[0].ID, &domain.UpdatePaymentStatusRequest{
		Status: domain.PaymentStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusPaid, settled.Status)
	assert.True(t, settled.AmountDue.IsZero())
}

func TestInvoiceRefundRestoresBalanceButNotStatus(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()
	invoice := createSentInvoice(t, f, "300")

	paid, err := f.invoices.RecordPayment(ctx, invoice.ID, &domain.RecordPaymentRequest{Amount: dec("300")})
	require.NoError(t, err)
	require.Equal(t, domain.InvoiceStatusPaid, paid.Status)

	refunded, err := f.invoices.UpdatePaymentStatus(ctx, invoice.ID, paid.Payments[0].ID, &domain.UpdatePaymentStatusRequest{
		Status: domain.PaymentStatusRefunded,
	})
	require.NoError(t, err)

	// The balance reopens, but PAID is terminal and never rewritten.
	assert.True(t, refunded.AmountDue.Equal(dec("300")))
	assert.Equal(t, domain.InvoiceStatusPaid, refunded.Status)
}

func TestInvoiceRejectsNonPositivePayment(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	invoice := createSentInvoice(t, f, "300")

	_, err := f.invoices.RecordPayment(context.Background(), invoice.ID, &domain.RecordPaymentRequest{
		Amount: dec("0"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = f.invoices.RecordPayment(context.Background(), invoice.ID, &domain.RecordPaymentRequest{
		Amount: dec("-10"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestInvoiceStatusTransitionEnforced(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	dto, err := f.invoices.Create(ctx, &domain.CreateInvoiceRequest{
		Title:   "Draft invoice",
		DueDate: "2026-10-01",
	})
	require.NoError(t, err)

	// DRAFT cannot jump straight to PAID.
	_, err = f.invoices.Update(ctx, dto.ID, &domain.UpdateInvoiceRequest{
		Status: ptr(domain.InvoiceStatusPaid),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	sent, err := f.invoices.Update(ctx, dto.ID, &domain.UpdateInvoiceRequest{
		Status: ptr(domain.InvoiceStatusSent),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, sent.Status)
}
