package booking

import "fmt"

// Error codes surfaced by the booking writer. SlotConflict and
// CapacityExceeded are recoverable by re-querying availability; the
// subscription codes are terminal for the current request.
const (
	CodeSlotConflict           = "slotConflict"
	CodeCapacityExceeded       = "capacityExceeded"
	CodeSubscriptionInactive   = "subscriptionInactive"
	CodeSubscriptionExpired    = "subscriptionExpired"
	CodeOutOfSubscriptionRange = "outOfSubscriptionRange"
	CodeNotFound               = "notFound"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBookingError(code, format string, args ...interface{}) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrCode extracts the booking error code, or "" for other errors.
func ErrCode(err error) string {
	if be, ok := err.(*BookingError); ok {
		return be.Code
	}
	return ""
}
