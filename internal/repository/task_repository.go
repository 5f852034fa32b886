package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Preload("Enquiry").
		Preload("Booking").
		Preload("AssignedTo").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskFilters holds filters for listing tasks
type TaskFilters struct {
	IsCompleted    *bool
	UserID         *uuid.UUID
	EnquiryID      *uuid.UUID
	BookingID      *uuid.UUID
	Priority       *domain.Priority
	DueBefore      *time.Time
	IncludeDeleted bool
}

// ListWithFilters returns tasks with filters and pagination. Open tasks
// come first, then earliest due date, then highest priority.
func (r *TaskRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *TaskFilters) ([]domain.Task, int64, error) {
	var tasks []domain.Task
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Task{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.IsCompleted != nil {
			query = query.Where("is_completed = ?", *filters.IsCompleted)
		}
		if filters.UserID != nil {
			query = query.Where("user_id = ?", *filters.UserID)
		}
		if filters.EnquiryID != nil {
			query = query.Where("enquiry_id = ?", *filters.EnquiryID)
		}
		if filters.BookingID != nil {
			query = query.Where("booking_id = ?", *filters.BookingID)
		}
		if filters.Priority != nil {
			query = query.Where("priority = ?", *filters.Priority)
		}
		if filters.DueBefore != nil {
			query = query.Where("due_date < ?", *filters.DueBefore)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Enquiry").
		Preload("Booking").
		Preload("AssignedTo").
		Order("is_completed ASC").
		Order("due_date ASC").
		Order(priorityWeightExpr + " DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&tasks).Error

	return tasks, total, err
}

// priorityWeightExpr maps the priority enum onto a sortable weight.
const priorityWeightExpr = "CASE priority " +
	"WHEN 'URGENT' THEN 4 " +
	"WHEN 'HIGH' THEN 3 " +
	"WHEN 'MEDIUM' THEN 2 " +
	"ELSE 1 END"

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}
