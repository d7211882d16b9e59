package userRepo

import (
	"context"

	"fitbook/models"
)

// UserRepository defines persistence for booking customers.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
