package handlers

import (
	"net/http"

	"fitbook/models"
	"fitbook/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking write surface.
type BookingHandler struct {
	svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// CreateBookingHandler books a weekly slot set directly.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.svc.CreateWeekly(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CreateMonthlyBookingHandler books shared monthly slots against an active
// subscription.
func (h *BookingHandler) CreateMonthlyBookingHandler(c *gin.Context) {
	var req models.CreateMonthlyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.svc.CreateMonthly(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// CancelMonthlyBookingHandler releases a monthly booking's shared occupancy.
func (h *BookingHandler) CancelMonthlyBookingHandler(c *gin.Context) {
	if err := h.svc.CancelMonthly(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "booking cancelled"})
}

// CreateAdvanceBookingHandler rebooks upcoming slots against an existing
// subscription, bounded to the advance-booking horizon.
func (h *BookingHandler) CreateAdvanceBookingHandler(c *gin.Context) {
	var req models.AdvanceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.svc.CreateAdvance(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBookingHandler fetches one booking by ID.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	found, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

// ListUserBookingsHandler lists a user's bookings.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	bookings, err := h.svc.ListUserBookings(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
