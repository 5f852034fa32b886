package domain_test

import (
	"testing"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEnquiryStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.EnquiryStatus
		to      domain.EnquiryStatus
		allowed bool
	}{
		{"new to contacted", domain.EnquiryStatusNew, domain.EnquiryStatusContacted, true},
		{"new to quoted", domain.EnquiryStatusNew, domain.EnquiryStatusQuoted, true},
		{"new to won", domain.EnquiryStatusNew, domain.EnquiryStatusWon, false},
		{"quoted to won", domain.EnquiryStatusQuoted, domain.EnquiryStatusWon, true},
		{"negotiating back to quoted", domain.EnquiryStatusNegotiating, domain.EnquiryStatusQuoted, true},
		{"lost reopened", domain.EnquiryStatusLost, domain.EnquiryStatusContacted, true},
		{"won to archived", domain.EnquiryStatusWon, domain.EnquiryStatusArchived, true},
		{"won back to quoted", domain.EnquiryStatusWon, domain.EnquiryStatusQuoted, false},
		{"archived is terminal", domain.EnquiryStatusArchived, domain.EnquiryStatusNew, false},
		{"self transition", domain.EnquiryStatusQuoted, domain.EnquiryStatusQuoted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestQuoteStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.QuoteStatus
		to      domain.QuoteStatus
		allowed bool
	}{
		{"draft to sent", domain.QuoteStatusDraft, domain.QuoteStatusSent, true},
		{"draft to accepted", domain.QuoteStatusDraft, domain.QuoteStatusAccepted, false},
		{"sent to accepted", domain.QuoteStatusSent, domain.QuoteStatusAccepted, true},
		{"sent to rejected", domain.QuoteStatusSent, domain.QuoteStatusRejected, true},
		{"accepted to converted", domain.QuoteStatusAccepted, domain.QuoteStatusConverted, true},
		{"rejected resent", domain.QuoteStatusRejected, domain.QuoteStatusSent, true},
		{"expired resent", domain.QuoteStatusExpired, domain.QuoteStatusSent, true},
		{"converted is terminal", domain.QuoteStatusConverted, domain.QuoteStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      domain.BookingStatus
		allowed bool
	}{
		{"pending to confirmed", domain.BookingStatusPending, domain.BookingStatusConfirmed, true},
		{"pending to completed", domain.BookingStatusPending, domain.BookingStatusCompleted, false},
		{"confirmed to in progress", domain.BookingStatusConfirmed, domain.BookingStatusInProgress, true},
		{"confirmed to no show", domain.BookingStatusConfirmed, domain.BookingStatusNoShow, true},
		{"in progress to completed", domain.BookingStatusInProgress, domain.BookingStatusCompleted, true},
		{"completed is terminal", domain.BookingStatusCompleted, domain.BookingStatusCancelled, false},
		{"cancelled is terminal", domain.BookingStatusCancelled, domain.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.InvoiceStatus
		to      domain.InvoiceStatus
		allowed bool
	}{
		{"draft to sent", domain.InvoiceStatusDraft, domain.InvoiceStatusSent, true},
		{"draft to paid", domain.InvoiceStatusDraft, domain.InvoiceStatusPaid, false},
		{"sent to partial", domain.InvoiceStatusSent, domain.InvoiceStatusPartial, true},
		{"sent to paid", domain.InvoiceStatusSent, domain.InvoiceStatusPaid, true},
		{"sent to overdue", domain.InvoiceStatusSent, domain.InvoiceStatusOverdue, true},
		{"overdue to paid", domain.InvoiceStatusOverdue, domain.InvoiceStatusPaid, true},
		{"paid is terminal", domain.InvoiceStatusPaid, domain.InvoiceStatusSent, false},
		{"written off is terminal", domain.InvoiceStatusWrittenOff, domain.InvoiceStatusSent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestContractStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ContractStatus
		to      domain.ContractStatus
		allowed bool
	}{
		{"draft to sent", domain.ContractStatusDraft, domain.ContractStatusSent, true},
		{"draft to signed", domain.ContractStatusDraft, domain.ContractStatusSigned, false},
		{"sent to signed", domain.ContractStatusSent, domain.ContractStatusSigned, true},
		{"declined resent", domain.ContractStatusDeclined, domain.ContractStatusSent, true},
		{"signed to cancelled", domain.ContractStatusSigned, domain.ContractStatusCancelled, true},
		{"cancelled is terminal", domain.ContractStatusCancelled, domain.ContractStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, domain.EnquiryStatusNew.IsValid())
	assert.False(t, domain.EnquiryStatus("BOGUS").IsValid())
	assert.True(t, domain.QuoteStatusDraft.IsValid())
	assert.False(t, domain.QuoteStatus("").IsValid())
	assert.True(t, domain.BookingStatusNoShow.IsValid())
	assert.False(t, domain.BookingStatus("DONE").IsValid())
	assert.True(t, domain.InvoiceStatusWrittenOff.IsValid())
	assert.False(t, domain.InvoiceStatus("VOID").IsValid())
	assert.True(t, domain.ContractStatusDeclined.IsValid())
	assert.False(t, domain.ContractStatus("SIGNED_OFF").IsValid())
	assert.True(t, domain.PaymentStatusRefunded.IsValid())
	assert.False(t, domain.PaymentStatus("CHARGEBACK").IsValid())
	assert.True(t, domain.CalendarEventTypeUnavailable.IsValid())
	assert.False(t, domain.CalendarEventType("HOLIDAY").IsValid())
}

func TestDocumentKindPrefix(t *testing.T) {
	tests := []struct {
		kind   domain.DocumentKind
		prefix string
	}{
		{domain.DocumentKindQuote, "QT"},
		{domain.DocumentKindBooking, "BK"},
		{domain.DocumentKindInvoice, "INV"},
		{domain.DocumentKindContract, "CON"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.prefix, tt.kind.Prefix())
		assert.True(t, tt.kind.IsValid())
	}
	assert.False(t, domain.DocumentKind("receipt").IsValid())
}

func TestPriorityWeight(t *testing.T) {
	assert.Greater(t, domain.PriorityUrgent.Weight(), domain.PriorityHigh.Weight())
	assert.Greater(t, domain.PriorityHigh.Weight(), domain.PriorityMedium.Weight())
	assert.Greater(t, domain.PriorityMedium.Weight(), domain.PriorityLow.Weight())
	assert.Equal(t, 0, domain.Priority("CRITICAL").Weight())
	assert.False(t, domain.Priority("CRITICAL").IsValid())
}
