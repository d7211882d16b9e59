package booking

import (
	"context"
	"fmt"
	"time"

	"fitbook/models"
	"fitbook/services/schedule"
)

// In-memory fakes for the repositories the writer touches. Overlap and
// capacity queries mirror the Mongo implementations' semantics.

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeTrainerRepo struct {
	trainers map[string]*models.Trainer
}

func (f *fakeTrainerRepo) Create(ctx context.Context, t *models.Trainer) error {
	f.trainers[t.ID] = t
	return nil
}

func (f *fakeTrainerRepo) GetByID(ctx context.Context, id string) (*models.Trainer, error) {
	return f.trainers[id], nil
}

func (f *fakeTrainerRepo) Update(ctx context.Context, t *models.Trainer) error {
	f.trainers[t.ID] = t
	return nil
}

func (f *fakeTrainerRepo) Delete(ctx context.Context, id string) error {
	delete(f.trainers, id)
	return nil
}

func (f *fakeTrainerRepo) List(ctx context.Context) ([]models.Trainer, error) {
	var out []models.Trainer
	for _, t := range f.trainers {
		out = append(out, *t)
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.SessionPackage
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *models.SessionPackage) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.SessionPackage, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionRepo) ListByTrainer(ctx context.Context, trainerID string) ([]models.SessionPackage, error) {
	var out []models.SessionPackage
	for _, s := range f.sessions {
		if s.TrainerID == trainerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

type fakeSubscriptionRepo struct {
	subs map[string]*models.Subscription
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *models.Subscription) error {
	f.subs[s.ID] = s
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	return f.subs[id], nil
}

func (f *fakeSubscriptionRepo) GetByStripeID(ctx context.Context, stripeID string) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.StripeSubscriptionID == stripeID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) SetStatus(ctx context.Context, id, status string) error {
	if s, ok := f.subs[id]; ok {
		s.Status = status
		return nil
	}
	return fmt.Errorf("subscription %s not found", id)
}

func (f *fakeSubscriptionRepo) SetResumeAt(ctx context.Context, id, resumeAt string) error {
	if s, ok := f.subs[id]; ok {
		s.ResumeAt = resumeAt
		return nil
	}
	return fmt.Errorf("subscription %s not found", id)
}

func (f *fakeSubscriptionRepo) SetEndDate(ctx context.Context, id, endDate string) error {
	if s, ok := f.subs[id]; ok {
		s.EndDate = endDate
		return nil
	}
	return fmt.Errorf("subscription %s not found", id)
}

func (f *fakeSubscriptionRepo) ListPausedDueForResume(ctx context.Context, today string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		if s.Status == models.SubscriptionStatusPaused && s.ResumeAt != "" && s.ResumeAt <= today {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ListActiveEnded(ctx context.Context, today string) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		if s.Status == models.SubscriptionStatusActive && s.EndDate != "" && s.EndDate < today {
			out = append(out, *s)
		}
	}
	return out, nil
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
			if occ.Date == date && schedule.Overlaps(startMin, endMin, occ.StartMin, occ.EndMin) {
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
			if occ.Date == date && schedule.Overlaps(startMin, endMin, occ.StartMin, occ.EndMin) {
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

type fakeNotifier struct {
	enqueued []string
	fail     error
}

func (f *fakeNotifier) EnqueueBookingEmails(ctx context.Context, bookingID string) error {
	if f.fail != nil {
		return f.fail
	}
	f.enqueued = append(f.enqueued, bookingID)
	return nil
}

type testEnv struct {
	svc      *DefaultBookingService
	users    *fakeUserRepo
	trainers *fakeTrainerRepo
	sessions *fakeSessionRepo
	subs     *fakeSubscriptionRepo
	bookings *fakeBookingRepo
	monthly  *fakeMonthlyRepo
	notifier *fakeNotifier
}

// testToday is the injected clock for every writer test. 2026-09-01 is a
// Tuesday.
var testToday = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	users := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Name: "Ava", Email: "ava@example.com"},
	}}
	trainers := &fakeTrainerRepo{trainers: map[string]*models.Trainer{
		"t1": {ID: "t1", Name: "Marco", Email: "marco@example.com", IsActive: true},
	}}
	sessions := &fakeSessionRepo{sessions: map[string]*models.SessionPackage{
		"pkg2x60": {ID: "pkg2x60", TrainerID: "t1", SessionsPerWeek: 2, DurationMinutes: 60, IsActive: true},
		"pkg1x30": {ID: "pkg1x30", TrainerID: "t1", SessionsPerWeek: 1, DurationMinutes: 30, IsActive: true},
	}}
	subs := &fakeSubscriptionRepo{subs: make(map[string]*models.Subscription)}
	bookings := &fakeBookingRepo{}
	monthly := &fakeMonthlyRepo{}
	notifier := &fakeNotifier{}

	env := &testEnv{
		users:    users,
		trainers: trainers,
		sessions: sessions,
		subs:     subs,
		bookings: bookings,
		monthly:  monthly,
		notifier: notifier,
	}
	env.svc = &DefaultBookingService{
		Users:         users,
		Trainers:      trainers,
		Sessions:      sessions,
		Subscriptions: subs,
		Bookings:      bookings,
		Monthly:       monthly,
		Checker: &schedule.DefaultConflictChecker{
			Bookings:     bookings,
			Monthly:      monthly,
			Availability: &emptyAvailabilityRepo{},
		},
		Notifier: notifier,
		Now:      func() time.Time { return testToday },
	}
	return env
}

// emptyAvailabilityRepo has no windows and no overrides.
type emptyAvailabilityRepo struct{}

func (emptyAvailabilityRepo) ReplaceWindows(ctx context.Context, trainerID string, windows []models.AvailabilityWindow) error {
	return nil
}

func (emptyAvailabilityRepo) GetWindows(ctx context.Context, trainerID string) ([]models.AvailabilityWindow, error) {
	return nil, nil
}

func (emptyAvailabilityRepo) GetWindowForDay(ctx context.Context, trainerID, day string) (*models.AvailabilityWindow, error) {
	return nil, nil
}

func (emptyAvailabilityRepo) UpsertOverride(ctx context.Context, o models.SlotOverride) error {
	return nil
}

func (emptyAvailabilityRepo) GetOverrides(ctx context.Context, trainerID, date string, duration int) ([]models.SlotOverride, error) {
	return nil, nil
}

func (emptyAvailabilityRepo) ReplaceOverridesForDate(ctx context.Context, trainerID, date string, duration int, overrides []models.SlotOverride) error {
	return nil
}

func occ(date, start, end string) models.SlotOccurrence {
	return models.SlotOccurrence{Date: date, StartTime: start, EndTime: end}
}

func monthlyOcc(date, start, end string, duration int) models.MonthlySlotOccurrence {
	return models.MonthlySlotOccurrence{Date: date, StartTime: start, EndTime: end, Duration: duration}
}

func mustClock(s string) int {
	h, m := 0, 0
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		panic(err)
	}
	return h*60 + m
}

func confirmedWeekly(id, trainerID, date, start, end string) models.Booking {
	return models.Booking{
		ID:        id,
		TrainerID: trainerID,
		Status:    models.BookingStatusConfirmed,
		Slots: []models.SlotOccurrence{{
			Date: date, StartTime: start, EndTime: end,
			StartMin: mustClock(start), EndMin: mustClock(end),
		}},
	}
}

func confirmedMonthly(id, trainerID, date, start, end string, duration int) models.MonthlyBooking {
	return models.MonthlyBooking{
		ID:        id,
		TrainerID: trainerID,
		Status:    models.MonthlyBookingStatusConfirmed,
		Slots: []models.MonthlySlotOccurrence{{
			Date: date, StartTime: start, EndTime: end, Duration: duration,
			StartMin: mustClock(start), EndMin: mustClock(end),
		}},
	}
}
