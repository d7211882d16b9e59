package monthlyRepo

import (
	"context"
	"fmt"
	"time"

	"fitbook/database"
	"fitbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMonthlyRepo is the MongoDB-backed implementation. The weekly bookings
// collection is held as well so the create transaction can verify exclusive
// bookings keep their precedence.
type MongoMonthlyRepo struct {
	monthlyColl *mongo.Collection
	bookingColl *mongo.Collection
}

func NewMongoMonthlyRepo() *MongoMonthlyRepo {
	db := database.DB()
	return &MongoMonthlyRepo{
		monthlyColl: db.Collection("monthly_bookings"),
		bookingColl: db.Collection("bookings"),
	}
}

func (r *MongoMonthlyRepo) GetByID(ctx context.Context, bookingID string) (*models.MonthlyBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.MonthlyBooking
	err := r.monthlyColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (r *MongoMonthlyRepo) ListBySubscription(ctx context.Context, subscriptionID string) ([]models.MonthlyBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.monthlyColl.Find(ctx, bson.M{"subscriptionId": subscriptionID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.MonthlyBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode monthly bookings: %w", err)
	}
	return bookings, nil
}

// Cancel flips the booking status; occupancy is released because capacity
// queries only count confirmed bookings.
func (r *MongoMonthlyRepo) Cancel(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": models.MonthlyBookingStatusCancelled, "updatedAt": time.Now()}}
	res, err := r.monthlyColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel monthly booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoMonthlyRepo) GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.MonthlyBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"trainerId": trainerID,
		"status":    models.MonthlyBookingStatusConfirmed,
		"slots":     bson.M{"$elemMatch": bson.M{"date": date}},
	}
	cursor, err := r.monthlyColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly bookings for %s on %s: %w", trainerID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.MonthlyBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode monthly bookings: %w", err)
	}
	return bookings, nil
}
