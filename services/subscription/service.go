package subscription

import (
	"time"

	bookingRepo "fitbook/database/repository/booking"
	sessionRepo "fitbook/database/repository/session"
	subscriptionRepo "fitbook/database/repository/subscription"
	userRepo "fitbook/database/repository/user"
	"fitbook/services/booking"
	"fitbook/services/schedule"
)

// DefaultSubscriptionService is the production implementation. The booking
// service is injected as an interface so checkout and webhook processing can
// hold and confirm bookings; the booking repository is used directly for the
// status flips that follow payment failures and cancellations.
type DefaultSubscriptionService struct {
	Subscriptions  subscriptionRepo.SubscriptionRepository
	Sessions       sessionRepo.SessionRepository
	Users          userRepo.UserRepository
	Bookings       booking.BookingService
	BookingRecords bookingRepo.BookingRepository
	Checker        schedule.ConflictChecker
	Events         EventLedger
	Now            func() time.Time

	// AllowMonthlyCheckout mirrors the deployment's monthly-products
	// capability, captured once at construction.
	AllowMonthlyCheckout bool
}

func (s *DefaultSubscriptionService) today() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
