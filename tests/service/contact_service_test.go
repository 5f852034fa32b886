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

func TestContactCreateRequiresCompany(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	_, err := f.contacts.Create(context.Background(), &domain.CreateContactRequest{
		CompanyID: uuid.New(),
		FirstName: "No",
		LastName:  "Company",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	var refErr *service.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "companyId", refErr.Field)
}

func TestContactPrimaryPromotionOnCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Two Contacts Ltd")
	first, err := f.contacts.Create(ctx, &domain.CreateContactRequest{
		CompanyID: company.ID,
		FirstName: "First",
		LastName:  "Person",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)

	second, err := f.contacts.Create(ctx, &domain.CreateContactRequest{
		CompanyID: company.ID,
		FirstName: "Second",
		LastName:  "Person",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsPrimary)

	// The older primary is demoted and the company backlink moves.
	refetched, err := f.contacts.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, refetched.IsPrimary)

	companyDTO, err := f.companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, companyDTO.PrimaryContactID)
	assert.Equal(t, second.ID, *companyDTO.PrimaryContactID)
}

func TestContactPromoteViaUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Promotion Ltd")
	primary := testutil.CreateTestContact(t, db, company.ID, "Old", "Primary", true)
	require.NoError(t, db.Model(company).Update("primary_contact_id", primary.ID).Error)
	other := testutil.CreateTestContact(t, db, company.ID, "New", "Primary", false)

	updated, err := f.contacts.Update(ctx, other.ID, &domain.UpdateContactRequest{
		IsPrimary: ptr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPrimary)

	demoted, err := f.contacts.GetByID(ctx, primary.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsPrimary)

	companyDTO, err := f.companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	require.NotNil(t, companyDTO.PrimaryContactID)
	assert.Equal(t, other.ID, *companyDTO.PrimaryContactID)
}

func TestContactDeletePrimaryClearsBacklink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Backlink Ltd")
	primary := testutil.CreateTestContact(t, db, company.ID, "Sole", "Primary", true)
	require.NoError(t, db.Model(company).Update("primary_contact_id", primary.ID).Error)

	require.NoError(t, f.contacts.Delete(ctx, primary.ID))

	companyDTO, err := f.companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, companyDTO.PrimaryContactID)
}

func TestContactUpdatePatchesFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Patch Ltd")
	contact := testutil.CreateTestContact(t, db, company.ID, "Jo", "Smith", false)

	updated, err := f.contacts.Update(ctx, contact.ID, &domain.UpdateContactRequest{
		JobTitle: ptr("Events Manager"),
		Email:    ptr("jo@patch.example"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Events Manager", updated.JobTitle)
	assert.Equal(t, "jo@patch.example", updated.Email)
	assert.Equal(t, "Jo Smith", updated.FullName)
}
