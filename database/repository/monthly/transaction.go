package monthlyRepo

import (
	"context"
	"fmt"

	"fitbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTransactionally inserts a monthly booking after re-checking, inside
// one Mongo transaction, that every slot is below the shared-occupancy
// ceiling and free of confirmed weekly bookings.
func (r *MongoMonthlyRepo) CreateTransactionally(ctx context.Context, booking *models.MonthlyBooking) error {
	client := r.monthlyColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, slot := range booking.Slots {
			weekly, err := r.countWeeklyOverlapping(sc, booking.TrainerID, slot.Date, slot.StartMin, slot.EndMin)
			if err != nil {
				return err
			}
			if weekly > 0 {
				return fmt.Errorf("%w: %s %s-%s", ErrSlotConflict, slot.Date, slot.StartTime, slot.EndTime)
			}
			count, _, err := r.countHolders(sc, booking.TrainerID, slot.Date, slot.StartTime, slot.EndTime)
			if err != nil {
				return err
			}
			if count >= models.MonthlySlotCapacity {
				return fmt.Errorf("%w: %s %s-%s", ErrCapacityExceeded, slot.Date, slot.StartTime, slot.EndTime)
			}
		}
		if _, err := r.monthlyColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert monthly booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
