package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestQuoteCreateComputesTotals(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title: "Wedding package",
		LineItems: []domain.LineItemInput{
			{Description: "DJ set", Quantity: ptr(dec("2")), UnitPrice: dec("100")},
			{Description: "Lighting rig", UnitPrice: dec("50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "QT-", dto.QuoteNumber[:3])
	assert.Equal(t, domain.QuoteStatusDraft, dto.Status)
	assert.Equal(t, "GBP", dto.Currency)
	assert.True(t, dto.Subtotal.Equal(dec("250")), "subtotal %s", dto.Subtotal)
	assert.True(t, dto.VATAmount.Equal(dec("50")), "vat %s", dto.VATAmount)
	assert.True(t, dto.Total.Equal(dec("300")), "total %s", dto.Total)

	require.Len(t, dto.LineItems, 2)
	assert.Equal(t, "DJ set", dto.LineItems[0].Description)
	assert.True(t, dto.LineItems[0].Total.Equal(dec("200")))
	assert.Equal(t, 0, dto.LineItems[0].SortOrder)
	assert.Equal(t, 1, dto.LineItems[1].SortOrder)
	// The omitted quantity defaults to one.
	assert.True(t, dto.LineItems[1].Quantity.Equal(dec("1")))
}

func TestQuoteCreateCustomVATRate(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:   "Zero rated",
		VATRate: ptr(dec("0")),
		LineItems: []domain.LineItemInput{
			{Description: "Charity event", UnitPrice: dec("500")},
		},
	})
	require.NoError(t, err)

	assert.True(t, dto.VATAmount.IsZero())
	assert.True(t, dto.Total.Equal(dec("500")))
}

func TestQuoteLineItemOverride(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title: "Negotiated",
		LineItems: []domain.LineItemInput{
			{
				Description: "Full weekend",
				Quantity:    ptr(dec("3")),
				UnitPrice:   dec("400"),
				Total:       ptr(dec("1000")),
			},
		},
	})
	require.NoError(t, err)

	// The caller-supplied total wins over quantity x unit price.
	assert.True(t, dto.Subtotal.Equal(dec("1000")), "subtotal %s", dto.Subtotal)
}

func TestQuoteNumbersIncrement(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	first, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{Title: "First"})
	require.NoError(t, err)
	second, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{Title: "Second"})
	require.NoError(t, err)

	assert.NotEqual(t, first.QuoteNumber, second.QuoteNumber)
}

func TestQuoteStatusLifecycle(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{Title: "Lifecycle"})
	require.NoError(t, err)

	// DRAFT cannot be accepted without being sent.
	_, err = f.quotes.Update(ctx, created.ID, &domain.UpdateQuoteRequest{
		Status: ptr(domain.QuoteStatusAccepted),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	sent, err := f.quotes.Update(ctx, created.ID, &domain.UpdateQuoteRequest{
		Status: ptr(domain.QuoteStatusSent),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, sent.Status)

	accepted, err := f.quotes.Update(ctx, created.ID, &domain.UpdateQuoteRequest{
		Status: ptr(domain.QuoteStatusAccepted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusAccepted, accepted.Status)
}

func TestQuoteReplaceLineItemsRecomputes(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{
		Title: "Replaceable",
		LineItems: []domain.LineItemInput{
			{Description: "Initial", UnitPrice: dec("100")},
		},
	})
	require.NoError(t, err)
	assert.True(t, created.Total.Equal(dec("120")))

	updated, err := f.quotes.ReplaceLineItems(ctx, created.ID, []domain.LineItemInput{
		{Description: "Replacement A", UnitPrice: dec("300")},
		{Description: "Replacement B", Quantity: ptr(dec("2")), UnitPrice: dec("50")},
	})
	require.NoError(t, err)

	require.Len(t, updated.LineItems, 2)
	assert.True(t, updated.Subtotal.Equal(dec("400")), "subtotal %s", updated.Subtotal)
	assert.True(t, updated.VATAmount.Equal(dec("80")), "vat %s", updated.VATAmount)
	assert.True(t, updated.Total.Equal(dec("480")), "total %s", updated.Total)
}

func TestQuoteUpdateDoesNotTouchTotals(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{
		Title: "Totals stay",
		LineItems: []domain.LineItemInput{
			{Description: "Fixed", UnitPrice: dec("100")},
		},
	})
	require.NoError(t, err)

	updated, err := f.quotes.Update(ctx, created.ID, &domain.UpdateQuoteRequest{
		Title: ptr("Renamed"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Total.Equal(created.Total))
	assert.Equal(t, created.QuoteNumber, updated.QuoteNumber)
	require.Len(t, updated.LineItems, 1)
}
