package models

import "time"

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPaused    = "paused"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"

	SubscriptionKindWeekly  = "weekly"
	SubscriptionKindMonthly = "monthly"
)

// Subscription links a user's recurring payment to their bookings. StartDate
// and EndDate are calendar-date strings; monthly slot occurrences must fall
// inside [StartDate, EndDate].
type Subscription struct {
	ID                   string    `bson:"id" json:"id"`
	UserID               string    `bson:"userId" json:"userId"`
	TrainerID            string    `bson:"trainerId" json:"trainerId"`
	Kind                 string    `bson:"kind" json:"kind"` // "weekly" or "monthly"
	Status               string    `bson:"status" json:"status"`
	StartDate            string    `bson:"startDate" json:"startDate"` // "YYYY-MM-DD"
	EndDate              string    `bson:"endDate" json:"endDate"`
	ResumeAt             string    `bson:"resumeAt,omitempty" json:"resumeAt,omitempty"` // date a paused subscription auto-resumes
	StripeCustomerID     string    `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string    `bson:"stripeSubscriptionId,omitempty" json:"stripeSubscriptionId,omitempty"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StartCheckoutRequest begins a hosted checkout for a session package. Weekly
// checkouts carry the slot selection so the booking can be held pending until
// payment completes; monthly checkouts book slots separately afterwards.
type StartCheckoutRequest struct {
	UserID    string           `json:"userId" binding:"required"`
	TrainerID string           `json:"trainerId" binding:"required"`
	SessionID string           `json:"sessionId" binding:"required"`
	Kind      string           `json:"kind" binding:"required"` // "weekly" or "monthly"
	Slots     []SlotOccurrence `json:"slots,omitempty"`
}

// CheckoutResult is returned to the client for redirecting to the hosted
// payment page.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// PauseSubscriptionRequest pauses a subscription until an optional resume
// date. Without one the subscription stays paused until resumed manually.
type PauseSubscriptionRequest struct {
	ResumeAt string `json:"resumeAt,omitempty"` // "YYYY-MM-DD"
}
