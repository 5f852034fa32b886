package repository_test

import (
	"context"
	"testing"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyListPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	names := []string{"Aurora Hall", "Birchwood Barn", "Cedar Club", "Dockside Venue", "Elm Gardens"}
	for _, name := range names {
		testutil.CreateTestCompany(t, db, name)
	}

	page1, total, err := repo.ListWithFilters(ctx, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Aurora Hall", page1[0].Name)
	assert.Equal(t, "Birchwood Barn", page1[1].Name)

	page3, total, err := repo.ListWithFilters(ctx, 3, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page3, 1)
	assert.Equal(t, "Elm Gardens", page3[0].Name)

	// A page past the end is empty data, not an error.
	page9, total, err := repo.ListWithFilters(ctx, 9, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, page9)
}

func TestCompanyStatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	testutil.CreateTestCompany(t, db, "Active One")
	prospect := testutil.CreateTestCompany(t, db, "Maybe Later Ltd")
	require.NoError(t, db.Model(prospect).Update("status", domain.CompanyStatusProspect).Error)

	status := domain.CompanyStatusProspect
	companies, total, err := repo.ListWithFilters(ctx, 1, 20, &repository.CompanyFilters{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, companies, 1)
	assert.Equal(t, "Maybe Later Ltd", companies[0].Name)
}

func TestCompanySearchFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	bristol := testutil.CreateTestCompany(t, db, "Harbour Events")
	require.NoError(t, db.Model(bristol).Update("city", "Bristol").Error)
	testutil.CreateTestCompany(t, db, "Leeds Functions")

	// Case-insensitive match across name, email and city.
	companies, total, err := repo.ListWithFilters(ctx, 1, 20, &repository.CompanyFilters{Search: "bristol"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, companies, 1)
	assert.Equal(t, "Harbour Events", companies[0].Name)
}

func TestCompanyIncludeDeleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	keep := testutil.CreateTestCompany(t, db, "Keeper Ltd")
	gone := testutil.CreateTestCompany(t, db, "Gone Ltd")
	require.NoError(t, repo.Delete(ctx, gone.ID))

	_, total, err := repo.ListWithFilters(ctx, 1, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.ListWithFilters(ctx, 1, 20, &repository.CompanyFilters{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Exists only sees live rows.
	ok, err := repo.Exists(ctx, keep.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, gone.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompanyGetByIDUnscoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCompanyRepository(db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Archived Ltd")
	require.NoError(t, repo.Delete(ctx, company.ID))

	_, err := repo.GetByID(ctx, company.ID)
	require.Error(t, err)

	recovered, err := repo.GetByIDUnscoped(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Archived Ltd", recovered.Name)
}
