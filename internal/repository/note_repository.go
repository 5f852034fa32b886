package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		First(&note, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) ListByEnquiry(ctx context.Context, enquiryID uuid.UUID) ([]domain.Note, error) {
	var notes []domain.Note
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("enquiry_id = ?", enquiryID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Note{}, "id = ?", id).Error
}
