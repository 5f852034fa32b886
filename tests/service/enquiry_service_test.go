package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnquiryCreateDefaults(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.enquiries.Create(context.Background(), &domain.CreateEnquiryRequest{
		Subject: "Barn wedding, August",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EnquiryStatusNew, dto.Status)
	assert.Equal(t, domain.PriorityMedium, dto.Priority)
	assert.Equal(t, "WEDDING", dto.EnquiryType)
}

func TestEnquiryCreateRejectsDeadReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Gone Ltd")
	require.NoError(t, f.companies.Delete(ctx, company.ID))

	_, err := f.enquiries.Create(ctx, &domain.CreateEnquiryRequest{
		Subject:   "Should fail",
		CompanyID: &company.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestEnquiryContactMustBelongToCompany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)

	companyA := testutil.CreateTestCompany(t, db, "Company A")
	companyB := testutil.CreateTestCompany(t, db, "Company B")
	contactB := testutil.CreateTestContact(t, db, companyB.ID, "Wrong", "Company", false)

	_, err := f.enquiries.Create(context.Background(), &domain.CreateEnquiryRequest{
		Subject:   "Mismatched refs",
		CompanyID: &companyA.ID,
		ContactID: &contactB.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestEnquiryStatusTransitionEnforced(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.enquiries.Create(ctx, &domain.CreateEnquiryRequest{Subject: "Lifecycle"})
	require.NoError(t, err)

	// NEW cannot jump straight to WON.
	_, err = f.enquiries.Update(ctx, created.ID, &domain.UpdateEnquiryRequest{
		Status: ptr(domain.EnquiryStatusWon),
	})
	require.Error(t, err)
	var trErr *service.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "enquiry", trErr.Entity)

	// NEW -> QUOTED -> WON is a legal path.
	updated, err := f.enquiries.Update(ctx, created.ID, &domain.UpdateEnquiryRequest{
		Status: ptr(domain.EnquiryStatusQuoted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryStatusQuoted, updated.Status)

	updated, err = f.enquiries.Update(ctx, created.ID, &domain.UpdateEnquiryRequest{
		Status: ptr(domain.EnquiryStatusWon),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryStatusWon, updated.Status)
}

func TestEnquiryNotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "Sam Porter")
	created, err := f.enquiries.Create(ctx, &domain.CreateEnquiryRequest{Subject: "With notes"})
	require.NoError(t, err)

	note, err := f.enquiries.AddNote(ctx, created.ID, &user.ID, &domain.CreateNoteRequest{
		Body: "Called the client, awaiting venue confirmation.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Called the client, awaiting venue confirmation.", note.Body)
	require.NotNil(t, note.CreatedBy)
	assert.Equal(t, "Sam Porter", note.CreatedBy.Name)

	_, err = f.enquiries.AddNote(ctx, created.ID, nil, &domain.CreateNoteRequest{
		Body: "System note without an author.",
	})
	require.NoError(t, err)

	notes, err := f.enquiries.ListNotes(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestEnquiryNoteOnMissingEnquiry(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	_, err := f.enquiries.AddNote(context.Background(), uuid.New(), nil, &domain.CreateNoteRequest{
		Body: "orphan",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestEnquiryDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	created, err := f.enquiries.Create(ctx, &domain.CreateEnquiryRequest{Subject: "Detailed"})
	require.NoError(t, err)

	_, err = f.quotes.Create(ctx, &domain.CreateQuoteRequest{
		EnquiryID: &created.ID,
		Title:     "Band and PA hire",
	})
	require.NoError(t, err)

	detail, err := f.enquiries.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Quotes, 1)
	assert.Empty(t, detail.Bookings)
	assert.Empty(t, detail.OpenTasks)
}
