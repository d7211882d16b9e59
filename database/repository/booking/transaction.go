package bookingRepo

import (
	"context"
	"fmt"

	"fitbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTransactionally inserts a weekly booking after re-checking every slot
// inside one Mongo transaction, so concurrent writers cannot both pass the
// advisory conflict check and commit overlapping reservations.
func (r *MongoBookingRepo) CreateTransactionally(ctx context.Context, booking *models.Booking) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, slot := range booking.Slots {
			n, err := r.countBlockingOverlapping(sc, booking.TrainerID, slot.Date, slot.StartMin, slot.EndMin, booking.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: %s %s-%s", ErrSlotConflict, slot.Date, slot.StartTime, slot.EndTime)
			}
			m, err := r.countMonthlyOverlapping(sc, booking.TrainerID, slot.Date, slot.StartMin, slot.EndMin)
			if err != nil {
				return err
			}
			if m > 0 {
				return fmt.Errorf("%w: %s %s-%s", ErrSlotConflict, slot.Date, slot.StartTime, slot.EndTime)
			}
		}
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
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
