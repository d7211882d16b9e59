package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"fitbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// overrideKey matches one stored override by its natural key.
func overrideKey(o models.SlotOverride) bson.M {
	return bson.M{
		"trainerId": o.TrainerID,
		"date":      o.Date,
		"startTime": o.StartTime,
		"endTime":   o.EndTime,
		"duration":  o.Duration,
	}
}

func (r *MongoAvailabilityRepo) UpsertOverride(ctx context.Context, override models.SlotOverride) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if override.ID == "" {
		override.ID = uuid.New().String()
	}
	update := bson.M{
		"$set":         bson.M{"isActive": override.IsActive},
		"$setOnInsert": bson.M{"id": override.ID},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.overrideColl.UpdateOne(ctx, overrideKey(override), update, opts); err != nil {
		return fmt.Errorf("failed to upsert slot override: %w", err)
	}
	return nil
}

func (r *MongoAvailabilityRepo) GetOverrides(ctx context.Context, trainerID, date string, duration int) ([]models.SlotOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"trainerId": trainerID, "date": date, "duration": duration}
	cursor, err := r.overrideColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot overrides: %w", err)
	}
	defer cursor.Close(ctx)

	var overrides []models.SlotOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode slot overrides: %w", err)
	}
	return overrides, nil
}

// ReplaceOverridesForDate applies a bulk "set all for date": every override in
// the new set is upserted, and stored overrides for the same date+duration
// that are absent from it are deleted (reverted to the default active state).
func (r *MongoAvailabilityRepo) ReplaceOverridesForDate(ctx context.Context, trainerID, date string, duration int, overrides []models.SlotOverride) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	keep := make([]bson.M, 0, len(overrides))
	for _, o := range overrides {
		o.TrainerID = trainerID
		o.Date = date
		o.Duration = duration
		if err := r.UpsertOverride(ctx, o); err != nil {
			return err
		}
		keep = append(keep, bson.M{"startTime": o.StartTime, "endTime": o.EndTime})
	}

	filter := bson.M{"trainerId": trainerID, "date": date, "duration": duration}
	if len(keep) > 0 {
		filter["$nor"] = keep
	}
	if _, err := r.overrideColl.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to prune superseded overrides: %w", err)
	}
	return nil
}
