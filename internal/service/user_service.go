package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService exposes the staff directory used for assignments.
type UserService struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewUserService(users *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, *mapper.ToUserSummary(&users[i]))
	}
	return summaries, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserSummary, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return mapper.ToUserSummary(user), nil
}
