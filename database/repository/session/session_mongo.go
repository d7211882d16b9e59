package sessionRepo

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

type MongoSessionRepo struct {
	coll *mongo.Collection
}

func NewMongoSessionRepo() *MongoSessionRepo {
	return &MongoSessionRepo{coll: database.DB().Collection("session_packages")}
}

func (r *MongoSessionRepo) Create(ctx context.Context, session *models.SessionPackage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session package: %w", err)
	}
	return nil
}

func (r *MongoSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.SessionPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.SessionPackage
	err := r.coll.FindOne(ctx, bson.M{"id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session package %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *MongoSessionRepo) ListByTrainer(ctx context.Context, trainerID string) ([]models.SessionPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"trainerId": trainerID, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list session packages: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.SessionPackage
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode session packages: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete session package: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
