package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNextNumberConcurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewNumberSequenceRepository(db)
	ctx := context.Background()

	const callers = 25

	var wg sync.WaitGroup
	results := make(chan int, callers)
	errs := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.GetNextNumber(ctx, domain.DocumentKindQuote, 2026)
			if err != nil {
				errs <- err
				return
			}
			results <- seq
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int]bool, callers)
	for seq := range results {
		assert.False(t, seen[seq], "sequence %d issued twice", seq)
		seen[seq] = true
	}
	require.Len(t, seen, callers)
	for i := 1; i <= callers; i++ {
		assert.True(t, seen[i], "sequence %d never issued", i)
	}

	current, err := repo.GetCurrentSequence(ctx, domain.DocumentKindQuote, 2026)
	require.NoError(t, err)
	assert.Equal(t, callers, current)
}
