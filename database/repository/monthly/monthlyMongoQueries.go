package monthlyRepo

import (
	"context"
	"fmt"
	"time"

	"fitbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoMonthlyRepo) CountHolders(ctx context.Context, trainerID, date, startTime, endTime string) (int, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.countHolders(ctx, trainerID, date, startTime, endTime)
}

// countHolders runs without its own timeout so it can execute on a session
// context inside the create transaction. Matching is tuple-exact.
func (r *MongoMonthlyRepo) countHolders(ctx context.Context, trainerID, date, startTime, endTime string) (int, []string, error) {
	filter := bson.M{
		"trainerId": trainerID,
		"status":    models.MonthlyBookingStatusConfirmed,
		"slots": bson.M{
			"$elemMatch": bson.M{
				"date":      date,
				"startTime": startTime,
				"endTime":   endTime,
			},
		},
	}
	cursor, err := r.monthlyColl.Find(ctx, filter)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to count slot holders: %w", err)
	}
	defer cursor.Close(ctx)

	var holders []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &holders); err != nil {
		return 0, nil, fmt.Errorf("failed to decode slot holders: %w", err)
	}
	ids := make([]string, len(holders))
	for i, h := range holders {
		ids[i] = h.ID
	}
	return len(ids), ids, nil
}

func (r *MongoMonthlyRepo) CountConfirmedOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"trainerId": trainerID,
		"status":    models.MonthlyBookingStatusConfirmed,
		"slots": bson.M{
			"$elemMatch": bson.M{
				"date":     date,
				"startMin": bson.M{"$lt": endMin},
				"endMin":   bson.M{"$gt": startMin},
			},
		},
	}
	n, err := r.monthlyColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping monthly bookings: %w", err)
	}
	return int(n), nil
}

// countWeeklyOverlapping counts exclusive bookings overlapping the range;
// exclusive bookings always block shared ones, and a pending checkout hold
// reserves its slots the same way.
func (r *MongoMonthlyRepo) countWeeklyOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int) (int, error) {
	filter := bson.M{
		"trainerId": trainerID,
		"status": bson.M{"$in": []string{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
		}},
		"slots": bson.M{
			"$elemMatch": bson.M{
				"date":     date,
				"startMin": bson.M{"$lt": endMin},
				"endMin":   bson.M{"$gt": startMin},
			},
		},
	}
	n, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping weekly bookings: %w", err)
	}
	return int(n), nil
}
