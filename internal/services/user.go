package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateOpenRouterKey(ctx context.Context, userID uuid.UUID, key string) error
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (us *userService) UpdateOpenRouterKey(ctx context.Context, userID uuid.UUID, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}
	if err := us.userRepo.UpdateOpenRouterKey(ctx, nil, userID, key); err != nil {
		return fmt.Errorf("update API key: %w", err)
	}
	us.log.Info("user API key updated", "user_id", userID.String())
	return nil
}
