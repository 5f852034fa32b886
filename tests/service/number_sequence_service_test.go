package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNumberSequenceService(t *testing.T) *service.NumberSequenceService {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	return service.NewNumberSequenceService(repo, zap.NewNop())
}

func TestGenerateFormat(t *testing.T) {
	svc := newNumberSequenceService(t)
	ctx := context.Background()

	number, err := svc.GenerateForYear(ctx, domain.DocumentKindQuote, 2026)
	require.NoError(t, err)
	assert.Equal(t, "QT-2026-00001", number)

	number, err = svc.GenerateForYear(ctx, domain.DocumentKindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00001", number)
}

func TestGenerateMonotonic(t *testing.T) {
	svc := newNumberSequenceService(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		number, err := svc.GenerateForYear(ctx, domain.DocumentKindBooking, 2026)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("BK-2026-%05d", i), number)
	}
}

func TestGenerateKindsCountIndependently(t *testing.T) {
	svc := newNumberSequenceService(t)
	ctx := context.Background()

	_, err := svc.GenerateForYear(ctx, domain.DocumentKindQuote, 2026)
	require.NoError(t, err)
	_, err = svc.GenerateForYear(ctx, domain.DocumentKindQuote, 2026)
	require.NoError(t, err)

	number, err := svc.GenerateForYear(ctx, domain.DocumentKindContract, 2026)
	require.NoError(t, err)
	assert.Equal(t, "CON-2026-00001", number)
}

func TestGenerateYearsCountIndependently(t *testing.T) {
	svc := newNumberSequenceService(t)
	ctx := context.Background()

	_, err := svc.GenerateForYear(ctx, domain.DocumentKindQuote, 2025)
	require.NoError(t, err)

	number, err := svc.GenerateForYear(ctx, domain.DocumentKindQuote, 2026)
	require.NoError(t, err)
	assert.Equal(t, "QT-2026-00001", number)

	number, err = svc.GenerateForYear(ctx, domain.DocumentKindQuote, 2025)
	require.NoError(t, err)
	assert.Equal(t, "QT-2025-00002", number)
}

func TestGenerateUnknownKind(t *testing.T) {
	svc := newNumberSequenceService(t)

	_, err := svc.GenerateForYear(context.Background(), domain.DocumentKind("receipt"), 2026)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestGenerateUsesCurrentYear(t *testing.T) {
	svc := newNumberSequenceService(t)

	number, err := svc.Generate(context.Background(), domain.DocumentKindQuote)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("QT-%d-00001", time.Now().Year()), number)
}

func TestInitializeSequence(t *testing.T) {
	svc := newNumberSequenceService(t)
	ctx := context.Background()

	require.NoError(t, svc.InitializeSequence(ctx, domain.DocumentKindInvoice, 2026, 41))

	number, err := svc.GenerateForYear(ctx, domain.DocumentKindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-00042", number)

	// Re-initializing to a lower value never rewinds the counter.
	require.NoError(t, svc.InitializeSequence(ctx, domain.DocumentKindInvoice, 2026, 10))
	current, err := svc.GetCurrentSequence(ctx, domain.DocumentKindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, 42, current)
}

func TestGetCurrentSequenceEmpty(t *testing.T) {
	svc := newNumberSequenceService(t)

	current, err := svc.GetCurrentSequence(context.Background(), domain.DocumentKindQuote, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
}

func TestValidateNumber(t *testing.T) {
	svc := newNumberSequenceService(t)

	tests := []struct {
		number string
		valid  bool
	}{
		{"QT-2026-00001", true},
		{"BK-2026-12345", true},
		{"INV-2026-00042", true},
		{"CON-2026-99999", true},
		{"XX-2026-00001", false},
		{"QT-26-00001", false},
		{"QT-2026-001", false},
		{"qt-2026-00001", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.valid, svc.ValidateNumber(tt.number))
		})
	}
}
