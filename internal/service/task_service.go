package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService handles business logic for follow-up tasks.
type TaskService struct {
	tasks  *repository.TaskRepository
	refs   *ReferenceResolver
	logger *zap.Logger
}

func NewTaskService(
	tasks *repository.TaskRepository,
	refs *ReferenceResolver,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:  tasks,
		refs:   refs,
		logger: logger,
	}
}

func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.TaskDTO, error) {
	if err := s.refs.Enquiry(ctx, req.EnquiryID); err != nil {
		return nil, err
	}
	if err := s.refs.Booking(ctx, req.BookingID); err != nil {
		return nil, err
	}
	if err := s.refs.User(ctx, req.UserID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}

	dueDate, err := parseDateTimePtr("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		EnquiryID:   req.EnquiryID,
		BookingID:   req.BookingID,
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, task.ID)
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskDTO, error) {
	return s.fetchDTO(ctx, id)
}

func (s *TaskService) List(ctx context.Context, page, pageSize int, filters *repository.TaskFilters) ([]domain.TaskDTO, int64, error) {
	tasks, total, err := s.tasks.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = mapper.ToTaskDTO(&tasks[i])
	}
	return dtos, total, nil
}

// Update patches task fields. Completing a task stamps completedAt;
// reopening it clears the stamp.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateTaskRequest) (*domain.TaskDTO, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *req.Priority)
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		dueDate, err := parseDateTimePtr("dueDate", req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = dueDate
	}
	if req.UserID != nil {
		if err := s.refs.User(ctx, req.UserID); err != nil {
			return nil, err
		}
		task.UserID = req.UserID
	}
	if req.IsCompleted != nil && *req.IsCompleted != task.IsCompleted {
		task.IsCompleted = *req.IsCompleted
		if task.IsCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}

	task.Enquiry = nil
	task.Booking = nil
	task.AssignedTo = nil
	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task", zap.String("taskID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.tasks.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func (s *TaskService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.TaskDTO, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToTaskDTO(task)
	return &dto, nil
}
