package handlers

import (
	"net/http"
	"strconv"

	"fitbook/models"
	"fitbook/services/schedule"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the availability surface: window configuration,
// slot listings and the admin override endpoints.
type ScheduleHandler struct {
	svc schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// SetAvailabilityHandler replaces a trainer's weekly availability windows.
func (h *ScheduleHandler) SetAvailabilityHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.svc.SetAvailability(c.Request.Context(), trainerID, req.Windows); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "availability updated"})
}

// GetAvailabilityHandler returns a trainer's configured windows.
func (h *ScheduleHandler) GetAvailabilityHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	windows, err := h.svc.GetAvailability(c.Request.Context(), trainerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": windows})
}

// GetDaySlotsHandler lists resolved slots for one date at one duration.
func (h *ScheduleHandler) GetDaySlotsHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	date := c.Query("date")
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a number"})
		return
	}

	slots, err := h.svc.DaySlots(c.Request.Context(), trainerID, date, duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "duration": duration, "slots": slots})
}

// GetMonthlyDaySlotsHandler lists the merged dual-duration slot view offered
// to monthly subscribers.
func (h *ScheduleHandler) GetMonthlyDaySlotsHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	date := c.Query("date")

	slots, err := h.svc.MonthlyDaySlots(c.Request.Context(), trainerID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// ToggleSlotHandler enables or disables one slot on one date.
func (h *ScheduleHandler) ToggleSlotHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	var req models.ToggleOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.svc.ToggleSlot(c.Request.Context(), trainerID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "override saved"})
}

// SetAllOverridesHandler applies one active state to every free slot of a date.
func (h *ScheduleHandler) SetAllOverridesHandler(c *gin.Context) {
	trainerID := c.Param("trainerId")
	var req models.SetAllOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.svc.SetAllForDate(c.Request.Context(), trainerID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "overrides saved"})
}
