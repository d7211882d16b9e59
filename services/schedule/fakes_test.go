package schedule

import (
	"context"
	"fmt"

	"fitbook/models"
)

// In-memory repository fakes mirroring the Mongo implementations' query
// semantics closely enough for the conflict and override logic under test.

type fakeAvailabilityRepo struct {
	windows   map[string]*models.AvailabilityWindow // keyed by weekday
	overrides []models.SlotOverride

	replacedDates []string // dates passed to ReplaceOverridesForDate
	lastReplaced  []models.SlotOverride
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{windows: make(map[string]*models.AvailabilityWindow)}
}

func (f *fakeAvailabilityRepo) ReplaceWindows(ctx context.Context, trainerID string, windows []models.AvailabilityWindow) error {
	f.windows = make(map[string]*models.AvailabilityWindow, len(windows))
	for i := range windows {
		w := windows[i]
		w.TrainerID = trainerID
		f.windows[w.Day] = &w
	}
	return nil
}

func (f *fakeAvailabilityRepo) GetWindows(ctx context.Context, trainerID string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		out = append(out, *w)
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) GetWindowForDay(ctx context.Context, trainerID, day string) (*models.AvailabilityWindow, error) {
	return f.windows[day], nil
}

func (f *fakeAvailabilityRepo) UpsertOverride(ctx context.Context, o models.SlotOverride) error {
	for i, existing := range f.overrides {
		if existing.Date == o.Date && existing.StartTime == o.StartTime &&
			existing.EndTime == o.EndTime && existing.Duration == o.Duration {
			f.overrides[i].IsActive = o.IsActive
			return nil
		}
	}
	f.overrides = append(f.overrides, o)
	return nil
}

func (f *fakeAvailabilityRepo) GetOverrides(ctx context.Context, trainerID, date string, duration int) ([]models.SlotOverride, error) {
	var out []models.SlotOverride
	for _, o := range f.overrides {
		if o.Date == date && o.Duration == duration {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ReplaceOverridesForDate(ctx context.Context, trainerID, date string, duration int, overrides []models.SlotOverride) error {
	kept := f.overrides[:0]
	for _, o := range f.overrides {
		if o.Date != date || o.Duration != duration {
			kept = append(kept, o)
		}
	}
	f.overrides = append(kept, overrides...)
	f.replacedDates = append(f.replacedDates, date)
	f.lastReplaced = overrides
	return nil
}

type fakeBookingRepo struct {
	bookings   []models.Booking
	failCreate error
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByCheckoutSession(ctx context.Context, sessID string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].CheckoutSessionID == sessID {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) GetByStripeSubscription(ctx context.Context, subID string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].StripeSubscriptionID == subID {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) SetStatus(ctx context.Context, id, status string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

func (f *fakeBookingRepo) SetStripeSubscription(ctx context.Context, id, stripeSubID string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].StripeSubscriptionID = stripeSubID
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", id)
}

func (f *fakeBookingRepo) CountBlockingOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int, excludeID string) (int, error) {
	count := 0
	for _, b := range f.bookings {
		blocking := b.Status == models.BookingStatusConfirmed || b.Status == models.BookingStatusPending
		if b.TrainerID != trainerID || !blocking || b.ID == excludeID {
			continue
		}
		for _, occ := range b.Slots {
			if occ.Date == date && Overlaps(startMin, endMin, occ.StartMin, occ.EndMin) {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TrainerID != trainerID || b.Status != models.BookingStatusConfirmed {
			continue
		}
		for _, occ := range b.Slots {
			if occ.Date == date {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CreateTransactionally(ctx context.Context, booking *models.Booking) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

type fakeMonthlyRepo struct {
	bookings   []models.MonthlyBooking
	failCreate error
}

func (f *fakeMonthlyRepo) GetByID(ctx context.Context, id string) (*models.MonthlyBooking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMonthlyRepo) ListBySubscription(ctx context.Context, subID string) ([]models.MonthlyBooking, error) {
	var out []models.MonthlyBooking
	for _, b := range f.bookings {
		if b.SubscriptionID == subID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeMonthlyRepo) Cancel(ctx context.Context, id string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = models.MonthlyBookingStatusCancelled
			return nil
		}
	}
	return fmt.Errorf("monthly booking %s not found", id)
}

func (f *fakeMonthlyRepo) CountHolders(ctx context.Context, trainerID, date, startTime, endTime string) (int, []string, error) {
	var ids []string
	for _, b := range f.bookings {
		if b.TrainerID != trainerID || b.Status != models.MonthlyBookingStatusConfirmed {
			continue
		}
		for _, occ := range b.Slots {
			if occ.Date == date && occ.StartTime == startTime && occ.EndTime == endTime {
				ids = append(ids, b.ID)
				break
			}
		}
	}
	return len(ids), ids, nil
}

func (f *fakeMonthlyRepo) CountConfirmedOverlapping(ctx context.Context, trainerID, date string, startMin, endMin int) (int, error) {
	count := 0
	for _, b := range f.bookings {
		if b.TrainerID != trainerID || b.Status != models.MonthlyBookingStatusConfirmed {
			continue
		}
		for _, occ := range b.Slots {
			if occ.Date == date && Overlaps(startMin, endMin, occ.StartMin, occ.EndMin) {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeMonthlyRepo) GetConfirmedOnDate(ctx context.Context, trainerID, date string) ([]models.MonthlyBooking, error) {
	var out []models.MonthlyBooking
	for _, b := range f.bookings {
		if b.TrainerID != trainerID || b.Status != models.MonthlyBookingStatusConfirmed {
			continue
		}
		for _, occ := range b.Slots {
			if occ.Date == date {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMonthlyRepo) CreateTransactionally(ctx context.Context, booking *models.MonthlyBooking) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

func weeklyBooking(id, trainerID, date, start, end string) models.Booking {
	startMin := mustClock(start)
	endMin := mustClock(end)
	return models.Booking{
		ID:        id,
		TrainerID: trainerID,
		Status:    models.BookingStatusConfirmed,
		Slots: []models.SlotOccurrence{
			{Date: date, StartTime: start, EndTime: end, StartMin: startMin, EndMin: endMin},
		},
	}
}

func monthlyBooking(id, trainerID, date, start, end string, duration int) models.MonthlyBooking {
	return models.MonthlyBooking{
		ID:        id,
		TrainerID: trainerID,
		Status:    models.MonthlyBookingStatusConfirmed,
		Slots: []models.MonthlySlotOccurrence{
			{Date: date, StartTime: start, EndTime: end, Duration: duration,
				StartMin: mustClock(start), EndMin: mustClock(end)},
		},
	}
}

func mustClock(s string) int {
	h, m := 0, 0
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		panic(err)
	}
	return h*60 + m
}
