package models

// BookingEmailPayload is the asynq task payload enqueued after a booking
// commits. The worker re-loads the referenced records before sending.
type BookingEmailPayload struct {
	BookingID string `json:"bookingId"`
}
