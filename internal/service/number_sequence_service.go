package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
)

// NumberSequenceService generates unique, formatted document numbers
// for quotes, bookings, invoices and contracts. Each document kind
// counts independently per calendar year.
//
// Format: {PREFIX}-{YEAR}-{SEQUENCE}
// Example: QT-2026-00001, INV-2026-00042
type NumberSequenceService struct {
	repo   *repository.NumberSequenceRepository
	logger *zap.Logger
}

// NewNumberSequenceService creates a new NumberSequenceService
func NewNumberSequenceService(
	repo *repository.NumberSequenceRepository,
	logger *zap.Logger,
) *NumberSequenceService {
	return &NumberSequenceService{
		repo:   repo,
		logger: logger,
	}
}

var numberFormat = regexp.MustCompile(`^(QT|BK|INV|CON)-\d{4}-\d{5}$`)

// Generate issues the next number for the given document kind using
// the current year. The underlying counter increment is atomic.
func (s *NumberSequenceService) Generate(ctx context.Context, kind domain.DocumentKind) (string, error) {
	return s.GenerateForYear(ctx, kind, time.Now().Year())
}

// GenerateForYear issues the next number for a kind in a specific year.
func (s *NumberSequenceService) GenerateForYear(ctx context.Context, kind domain.DocumentKind, year int) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, kind)
	}

	nextSeq, err := s.repo.GetNextNumber(ctx, kind, year)
	if err != nil {
		s.logger.Error("failed to get next sequence number",
			zap.String("kind", string(kind)),
			zap.Int("year", year),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate %s number: %w", kind, err)
	}

	// Zero-padded to 5 digits; sequences past 99999 widen naturally.
	number := fmt.Sprintf("%s-%d-%05d", kind.Prefix(), year, nextSeq)

	s.logger.Info("generated document number",
		zap.String("number", number),
		zap.String("kind", string(kind)),
		zap.Int("year", year),
		zap.Int("sequence", nextSeq))

	return number, nil
}

// GetCurrentSequence returns the current sequence value for a kind/year
// without incrementing it. Returns 0 if no sequence exists.
func (s *NumberSequenceService) GetCurrentSequence(ctx context.Context, kind domain.DocumentKind, year int) (int, error) {
	return s.repo.GetCurrentSequence(ctx, kind, year)
}

// InitializeSequence sets the sequence to a specific value. Useful for
// data migrations where numbered documents already exist. The value
// should be the LAST USED sequence number.
func (s *NumberSequenceService) InitializeSequence(ctx context.Context, kind domain.DocumentKind, year int, value int) error {
	return s.repo.SetSequence(ctx, kind, year, value)
}

// ValidateNumber checks a document number against the expected format.
func (s *NumberSequenceService) ValidateNumber(number string) bool {
	return numberFormat.MatchString(number)
}
