package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes backs the overlap queries with a compound index on the
// occurrence fields the $elemMatch filters touch.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "trainerId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "slots.date", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "checkoutSessionId", Value: 1}},
		},
	}
	if _, err := r.bookingColl.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
