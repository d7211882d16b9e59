package trainerRepo

import (
	"context"

	"fitbook/models"
)

// TrainerRepository defines persistence for trainer records.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *models.Trainer) error
	GetByID(ctx context.Context, trainerID string) (*models.Trainer, error)
	Update(ctx context.Context, trainer *models.Trainer) error
	Delete(ctx context.Context, trainerID string) error
	List(ctx context.Context) ([]models.Trainer, error)
}
