package handlers

import (
	"errors"
	"net/http"

	"fitbook/services/booking"
	"fitbook/services/schedule"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// respondError translates service errors into HTTP responses. Validation
// failures are client errors; booking errors map per code; anything else is a
// 500 with the detail withheld.
func respondError(c *gin.Context, err error) {
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}

	var be *booking.BookingError
	if errors.As(err, &be) {
		status := http.StatusInternalServerError
		switch be.Code {
		case booking.CodeNotFound:
			status = http.StatusNotFound
		case booking.CodeSlotConflict, booking.CodeCapacityExceeded:
			status = http.StatusConflict
		case booking.CodeSubscriptionInactive, booking.CodeSubscriptionExpired, booking.CodeOutOfSubscriptionRange:
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": be.Message, "code": be.Code})
		return
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	utils.GetLogger().Error("request failed",
		zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
