package models

import "time"

const (
	MonthlyBookingStatusConfirmed = "confirmed"
	MonthlyBookingStatusCancelled = "cancelled"

	// MonthlySlotCapacity is the shared-occupancy ceiling for one exact
	// (trainer, date, startTime, endTime) tuple.
	MonthlySlotCapacity = 5
)

// MonthlySlotOccurrence is one shared-slot reservation on a calendar date.
// Unlike weekly occurrences it also carries the slot duration, because the
// 30- and 60-minute monthly views form independent capacity pools.
type MonthlySlotOccurrence struct {
	Date      string `bson:"date" json:"date"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Duration  int    `bson:"duration" json:"duration"`
	StartMin  int    `bson:"startMin" json:"-"`
	EndMin    int    `bson:"endMin" json:"-"`
}

// MonthlyBooking is a shared reservation funded by a monthly subscription.
// Up to MonthlySlotCapacity confirmed monthly bookings may hold the same
// exact slot tuple; a confirmed weekly booking always takes precedence.
type MonthlyBooking struct {
	ID             string                  `bson:"id" json:"id"`
	UserID         string                  `bson:"userId" json:"userId"`
	TrainerID      string                  `bson:"trainerId" json:"trainerId"`
	SubscriptionID string                  `bson:"subscriptionId" json:"subscriptionId"`
	Slots          []MonthlySlotOccurrence `bson:"slots" json:"slots"`
	Status         string                  `bson:"status" json:"status"`
	CreatedAt      time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// CreateMonthlyBookingRequest is the monthly booking payload.
type CreateMonthlyBookingRequest struct {
	SubscriptionID string                  `json:"subscriptionId" binding:"required"`
	UserID         string                  `json:"userId" binding:"required"`
	TrainerID      string                  `json:"trainerId" binding:"required"`
	Slots          []MonthlySlotOccurrence `json:"slots" binding:"required"`
}
