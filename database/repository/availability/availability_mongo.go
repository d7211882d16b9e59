package availabilityRepo

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

// MongoAvailabilityRepo is the MongoDB-backed implementation.
type MongoAvailabilityRepo struct {
	windowColl   *mongo.Collection
	overrideColl *mongo.Collection
}

func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	db := database.DB()
	return &MongoAvailabilityRepo{
		windowColl:   db.Collection("availability_windows"),
		overrideColl: db.Collection("slot_overrides"),
	}
}

// ReplaceWindows swaps a trainer's full availability configuration. The admin
// edit action always submits the whole week, so stale weekday records are
// removed before the new set is inserted.
func (r *MongoAvailabilityRepo) ReplaceWindows(ctx context.Context, trainerID string, windows []models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.windowColl.DeleteMany(ctx, bson.M{"trainerId": trainerID}); err != nil {
		return fmt.Errorf("failed to clear availability windows: %w", err)
	}
	if len(windows) == 0 {
		return nil
	}

	docs := make([]interface{}, len(windows))
	for i, w := range windows {
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		w.TrainerID = trainerID
		docs[i] = w
	}
	if _, err := r.windowColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert availability windows: %w", err)
	}
	return nil
}

func (r *MongoAvailabilityRepo) GetWindows(ctx context.Context, trainerID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.windowColl.Find(ctx, bson.M{"trainerId": trainerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("failed to decode availability windows: %w", err)
	}
	return windows, nil
}

func (r *MongoAvailabilityRepo) GetWindowForDay(ctx context.Context, trainerID, day string) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var window models.AvailabilityWindow
	err := r.windowColl.FindOne(ctx, bson.M{"trainerId": trainerID, "day": day}).Decode(&window)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability window: %w", err)
	}
	return &window, nil
}
