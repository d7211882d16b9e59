package models

import "time"

// Booking statuses. A confirmed booking exclusively reserves each of its slot
// occurrences; paused and cancelled bookings release them.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusPaused    = "paused"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// SlotOccurrence is one concrete reserved time range on a calendar date.
// Start/End minutes are denormalized from the "HH:MM" strings so overlap
// queries can run as plain range matches.
type SlotOccurrence struct {
	Date      string `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	StartMin  int    `bson:"startMin" json:"-"` // minutes from midnight
	EndMin    int    `bson:"endMin" json:"-"`
}

// Booking is an exclusive (weekly) reservation. The slot list is fixed at
// creation to the session's sessionsPerWeek and never edited afterwards; the
// whole booking is cancelled instead.
type Booking struct {
	ID                   string           `bson:"id" json:"id"`
	UserID               string           `bson:"userId" json:"userId"`
	TrainerID            string           `bson:"trainerId" json:"trainerId"`
	SessionID            string           `bson:"sessionId" json:"sessionId"`
	Slots                []SlotOccurrence `bson:"slots" json:"slots"`
	Status               string           `bson:"status" json:"status"`
	StripeSubscriptionID string           `bson:"stripeSubscriptionId,omitempty" json:"stripeSubscriptionId,omitempty"`
	CheckoutSessionID    string           `bson:"checkoutSessionId,omitempty" json:"checkoutSessionId,omitempty"`
	CreatedAt            time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// CreateBookingRequest is the direct weekly booking payload.
type CreateBookingRequest struct {
	UserID    string           `json:"userId" binding:"required"`
	TrainerID string           `json:"trainerId" binding:"required"`
	SessionID string           `json:"sessionId" binding:"required"`
	Slots     []SlotOccurrence `json:"slots" binding:"required"`
}

// AdvanceBookingRequest rebooks upcoming slots against an existing
// subscription without a new payment.
type AdvanceBookingRequest struct {
	SubscriptionID string           `json:"subscriptionId" binding:"required"`
	UserID         string           `json:"userId" binding:"required"`
	TrainerID      string           `json:"trainerId" binding:"required"`
	SessionID      string           `json:"sessionId" binding:"required"`
	Slots          []SlotOccurrence `json:"slots" binding:"required"`
}
