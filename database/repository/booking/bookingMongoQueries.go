package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"fitbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// overlapFilter matches weekly bookings with a slot occurrence on date whose
// half-open [startMin, endMin) range overlaps the requested one. Pending
// bookings count: a checkout hold reserves its slots until the payment
// completes or the checkout expires, so two buyers can never pay for the same
// exclusive slot.
func overlapFilter(trainerID, date string, startMin, endMin int) bson.M {
	return bson.M{
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
}

func (r *MongoBookingRepo) CountBlockingOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.countBlockingOverlapping(ctx, trainerID, date, startMin, endMin, excludeBookingID)
}

// countBlockingOverlapping runs without its own timeout so it can execute on
// a session context inside the create transaction.
func (r *MongoBookingRepo) countBlockingOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int, excludeBookingID string) (int, error) {
	filter := overlapFilter(trainerID, date, startMin, endMin)
	if excludeBookingID != "" {
		filter["id"] = bson.M{"$ne": excludeBookingID}
	}
	n, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return int(n), nil
}

// countMonthlyOverlapping counts confirmed monthly bookings overlapping the
// range. Any shared occupancy blocks an exclusive booking.
func (r *MongoBookingRepo) countMonthlyOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int) (int, error) {
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

func (r *MongoBookingRepo) GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"trainerId": trainerID,
		"status":    models.BookingStatusConfirmed,
		"slots":     bson.M{"$elemMatch": bson.M{"date": date}},
	}
	cursor, err := r.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for %s on %s: %w", trainerID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
