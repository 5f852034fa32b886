package service_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)

	booking := testutil.CreateTestBooking(t, db, nil, "Gala dinner", time.Now().AddDate(0, 1, 0))
	dto, err := f.contracts.Create(context.Background(), &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "Performance agreement",
	})
	require.NoError(t, err)

	assert.Equal(t, "CON-", dto.ContractNumber[:4])
	assert.Equal(t, domain.ContractStatusDraft, dto.Status)
	assert.Equal(t, booking.ID, dto.BookingID)
	assert.False(t, dto.HasDocument)
	assert.Nil(t, dto.SignedAt)
}

func TestContractOnePerBooking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	booking := testutil.CreateTestBooking(t, db, nil, "One contract only", time.Now().AddDate(0, 1, 0))
	_, err := f.contracts.Create(ctx, &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "First",
	})
	require.NoError(t, err)

	_, err = f.contracts.Create(ctx, &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "Second",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestContractSignStampsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	booking := testutil.CreateTestBooking(t, db, nil, "Signable", time.Now().AddDate(0, 1, 0))
	created, err := f.contracts.Create(ctx, &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "To sign",
		Status:    domain.ContractStatusSent,
	})
	require.NoError(t, err)

	signed, err := f.contracts.Update(ctx, created.ID, &domain.UpdateContractRequest{
		Status: ptr(domain.ContractStatusSigned),
	})
	require.NoError(t, err)
	assert.NotNil(t, signed.SignedAt)
}

func TestContractStatusTransitionEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	booking := testutil.CreateTestBooking(t, db, nil, "Strict", time.Now().AddDate(0, 1, 0))
	created, err := f.contracts.Create(ctx, &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "Draft stays draft",
	})
	require.NoError(t, err)

	// DRAFT cannot be signed without being sent.
	_, err = f.contracts.Update(ctx, created.ID, &domain.UpdateContractRequest{
		Status: ptr(domain.ContractStatusSigned),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestContractDocumentRoundtrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	booking := testutil.CreateTestBooking(t, db, nil, "Documented", time.Now().AddDate(0, 1, 0))
	created, err := f.contracts.Create(ctx, &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "With paperwork",
	})
	require.NoError(t, err)

	content := "signed agreement body"
	uploaded, err := f.contracts.UploadDocument(ctx, created.ID, "agreement.pdf", "application/pdf", strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, uploaded.HasDocument)

	reader, filename, err := f.contracts.DownloadDocument(ctx, created.ID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
}

func TestContractDownloadWithoutDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	booking := testutil.CreateTestBooking(t, db, nil, "Paperless", time.Now().AddDate(0, 1, 0))
	created, err := f.contracts.Create(ctx, &domain.CreateContractRequest{
		BookingID: booking.ID,
		Title:     "No document",
	})
	require.NoError(t, err)

	_, _, err = f.contracts.DownloadDocument(ctx, created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
