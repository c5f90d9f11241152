package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid user ID")
	}
	return us.userRepo.GetUserByID(ctx, id)
}

// GetUserOrders returns the denormalized order history kept on the user
// document. Display only; bookings remain the pricing source of truth.
func (us *UserService) GetUserOrders(ctx context.Context, id uuid.UUID) ([]models.Order, error) {
	user, err := us.GetUserByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	if user.Orders == nil {
		return []models.Order{}, nil
	}
	return user.Orders, nil
}

func (us *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return us.userRepo.ListUsers(ctx, offset, limit)
}
