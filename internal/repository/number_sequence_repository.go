package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

// NumberSequenceRepository handles database operations for document
// number sequences. Each document kind/year pair has its own counter,
// so quotes, bookings, invoices and contracts number independently.
type NumberSequenceRepository struct {
	db *gorm.DB
}

// NewNumberSequenceRepository creates a new NumberSequenceRepository
func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// GetNextNumber atomically retrieves and increments the sequence for a
// kind/year. The increment is a single upsert, so concurrent callers
// serialize on the row without an explicit lock. If no sequence exists
// for the kind/year, it creates one starting at 1.
//
// Returns the next sequence number to use (already incremented in DB).
func (r *NumberSequenceRepository) GetNextNumber(ctx context.Context, kind domain.DocumentKind, year int) (int, error) {
	now := time.Now()
	var nextSeq int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (kind, year, last_sequence, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT (kind, year) DO UPDATE
		SET last_sequence = number_sequences.last_sequence + 1,
		    updated_at = excluded.updated_at
		RETURNING last_sequence`,
		kind, year, now, now,
	).Scan(&nextSeq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to increment number sequence: %w", err)
	}
	return nextSeq, nil
}

// GetCurrentSequence retrieves the current sequence value without incrementing.
// Returns 0 if no sequence exists for the kind/year.
func (r *NumberSequenceRepository) GetCurrentSequence(ctx context.Context, kind domain.DocumentKind, year int) (int, error) {
	var seq domain.NumberSequence
	result := r.db.WithContext(ctx).
		Where("kind = ? AND year = ?", kind, year).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get number sequence: %w", result.Error)
	}

	return seq.LastSequence, nil
}

// SetSequence sets the sequence to a specific value. Useful for data
// migrations where existing documents already hold numbers. The value
// is the LAST USED sequence number; the next issued will be value+1.
// An existing higher counter is never reduced.
func (r *NumberSequenceRepository) SetSequence(ctx context.Context, kind domain.DocumentKind, year int, value int) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO number_sequences (kind, year, last_sequence, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (kind, year) DO UPDATE
		SET last_sequence = CASE
		        WHEN excluded.last_sequence > number_sequences.last_sequence
		        THEN excluded.last_sequence
		        ELSE number_sequences.last_sequence
		    END,
		    updated_at = excluded.updated_at`,
		kind, year, value, now, now,
	).Error
	if err != nil {
		return fmt.Errorf("failed to set number sequence: %w", err)
	}
	return nil
}

// ListSequences returns all sequences (useful for debugging/admin)
func (r *NumberSequenceRepository) ListSequences(ctx context.Context) ([]domain.NumberSequence, error) {
	var sequences []domain.NumberSequence
	err := r.db.WithContext(ctx).
		Order("kind ASC, year DESC").
		Find(&sequences).Error
	return sequences, err
}
