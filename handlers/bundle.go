package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Availability and overrides.
	SetAvailabilityHandler    gin.HandlerFunc
	GetAvailabilityHandler    gin.HandlerFunc
	GetDaySlotsHandler        gin.HandlerFunc
	GetMonthlyDaySlotsHandler gin.HandlerFunc
	ToggleSlotHandler         gin.HandlerFunc
	SetAllOverridesHandler    gin.HandlerFunc

	// Bookings.
	CreateBookingHandler        gin.HandlerFunc
	CreateMonthlyBookingHandler gin.HandlerFunc
	CancelMonthlyBookingHandler gin.HandlerFunc
	CreateAdvanceBookingHandler gin.HandlerFunc
	GetBookingHandler           gin.HandlerFunc
	ListUserBookingsHandler     gin.HandlerFunc

	// Billing and subscriptions.
	StartCheckoutHandler      gin.HandlerFunc
	StripeWebhookHandler      gin.HandlerFunc
	GetSubscriptionHandler    gin.HandlerFunc
	PauseSubscriptionHandler  gin.HandlerFunc
	ResumeSubscriptionHandler gin.HandlerFunc
	CancelSubscriptionHandler gin.HandlerFunc

	// Trainer management.
	CreateTrainerHandler gin.HandlerFunc
	GetTrainerHandler    gin.HandlerFunc
	ListTrainersHandler  gin.HandlerFunc
	UpdateTrainerHandler gin.HandlerFunc
	DeleteTrainerHandler gin.HandlerFunc

	// Session packages.
	CreateSessionHandler       gin.HandlerFunc
	GetSessionHandler          gin.HandlerFunc
	ListTrainerSessionsHandler gin.HandlerFunc
	DeleteSessionHandler       gin.HandlerFunc

	// Users.
	RegisterUserHandler gin.HandlerFunc
	GetUserHandler      gin.HandlerFunc

	// MonthlyEnabled gates registration of the monthly booking routes.
	MonthlyEnabled bool
}
