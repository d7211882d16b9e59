package models

import "time"

// User is a booking customer. Identity and authentication live in an external
// collaborator; this record only carries what bookings and emails need.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
