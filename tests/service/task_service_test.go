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

func TestTaskCreateDefaults(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.tasks.Create(context.Background(), &domain.CreateTaskRequest{
		Title: "Chase venue deposit",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityMedium, dto.Priority)
	assert.False(t, dto.IsCompleted)
	assert.Nil(t, dto.CompletedAt)
}

func TestTaskCreateRejectsUnknownPriority(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	_, err := f.tasks.Create(context.Background(), &domain.CreateTaskRequest{
		Title:    "Broken priority",
		Priority: domain.Priority("CRITICAL"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTaskCompletionStampsTimestamp(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.tasks.Create(ctx, &domain.CreateTaskRequest{Title: "Send setlist"})
	require.NoError(t, err)

	completed, err := f.tasks.Update(ctx, created.ID, &domain.UpdateTaskRequest{
		IsCompleted: ptr(true),
	})
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	assert.NotNil(t, completed.CompletedAt)

	// Reopening clears the stamp.
	reopened, err := f.tasks.Update(ctx, created.ID, &domain.UpdateTaskRequest{
		IsCompleted: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
	assert.Nil(t, reopened.CompletedAt)
}

func TestTaskLinksToEnquiryAndBooking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	enquiry := testutil.CreateTestEnquiry(t, db, nil, "Linked enquiry")
	user := testutil.CreateTestUser(t, db, "Taylor Reed")

	dto, err := f.tasks.Create(ctx, &domain.CreateTaskRequest{
		Title:     "Follow up",
		EnquiryID: &enquiry.ID,
		UserID:    &user.ID,
		Priority:  domain.PriorityHigh,
		DueDate:   ptr("2026-06-01"),
	})
	require.NoError(t, err)

	require.NotNil(t, dto.Enquiry)
	assert.Equal(t, "Linked enquiry", dto.Enquiry.Subject)
	require.NotNil(t, dto.AssignedTo)
	assert.Equal(t, "Taylor Reed", dto.AssignedTo.Name)
	assert.NotNil(t, dto.DueDate)
}

func TestTaskCreateRejectsDeadEnquiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	enquiry := testutil.CreateTestEnquiry(t, db, nil, "Doomed")
	require.NoError(t, f.enquiries.Delete(ctx, enquiry.ID))

	_, err := f.tasks.Create(ctx, &domain.CreateTaskRequest{
		Title:     "Orphaned",
		EnquiryID: &enquiry.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
