package trainerRepo

import (
	"context"
	"fmt"
	"time"

	"fitbook/database"
	"fitbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoTrainerRepo struct {
	coll *mongo.Collection
}

func NewMongoTrainerRepo() *MongoTrainerRepo {
	return &MongoTrainerRepo{coll: database.DB().Collection("trainers")}
}

func (r *MongoTrainerRepo) Create(ctx context.Context, trainer *models.Trainer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if trainer.ID == "" {
		trainer.ID = uuid.New().String()
	}
	trainer.CreatedAt = time.Now()
	trainer.UpdatedAt = trainer.CreatedAt
	if _, err := r.coll.InsertOne(ctx, trainer); err != nil {
		return fmt.Errorf("failed to create trainer: %w", err)
	}
	return nil
}

func (r *MongoTrainerRepo) GetByID(ctx context.Context, trainerID string) (*models.Trainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trainer models.Trainer
	err := r.coll.FindOne(ctx, bson.M{"id": trainerID}).Decode(&trainer)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trainer %s: %w", trainerID, err)
	}
	return &trainer, nil
}

func (r *MongoTrainerRepo) Update(ctx context.Context, trainer *models.Trainer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	trainer.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": trainer.ID}, trainer)
	if err != nil {
		return fmt.Errorf("failed to update trainer: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoTrainerRepo) Delete(ctx context.Context, trainerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": trainerID})
	if err != nil {
		return fmt.Errorf("failed to delete trainer: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoTrainerRepo) List(ctx context.Context) ([]models.Trainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	defer cursor.Close(ctx)

	var trainers []models.Trainer
	if err := cursor.All(ctx, &trainers); err != nil {
		return nil, fmt.Errorf("failed to decode trainers: %w", err)
	}
	return trainers, nil
}
