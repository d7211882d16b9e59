package sessionRepo

import (
	"context"

	"fitbook/models"
)

// SessionRepository defines persistence for session packages.
type SessionRepository interface {
	Create(ctx context.Context, session *models.SessionPackage) error
	GetByID(ctx context.Context, sessionID string) (*models.SessionPackage, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]models.SessionPackage, error)
	Delete(ctx context.Context, sessionID string) error
}
