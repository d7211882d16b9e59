package models

import "time"

// SessionPackage is a trainer's bookable offering: a weekly cadence of
// fixed-duration sessions sold through the billing provider.
type SessionPackage struct {
	ID              string    `bson:"id" json:"id"`
	TrainerID       string    `bson:"trainerId" json:"trainerId"`
	Name            string    `bson:"name" json:"name"`
	SessionsPerWeek int       `bson:"sessionsPerWeek" json:"sessionsPerWeek"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"` // 30 or 60
	Price           float64   `bson:"price" json:"price"`
	Currency        string    `bson:"currency" json:"currency"`
	StripePriceID   string    `bson:"stripePriceId,omitempty" json:"stripePriceId,omitempty"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
