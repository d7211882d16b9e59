package models

import "time"

// Trainer is a bookable staff member. Availability windows and slot overrides
// reference trainers by ID.
type Trainer struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Bio        string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Specialty  string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	SessionIDs []string  `bson:"sessionIds,omitempty" json:"sessionIds,omitempty"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
