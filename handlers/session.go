package handlers

import (
	"net/http"

	sessionRepo "fitbook/database/repository/session"
	"fitbook/models"
	"fitbook/services/schedule"

	"github.com/gin-gonic/gin"
)

// SessionHandler manages the session packages trainers sell. The Stripe price
// is provisioned out of band and referenced by ID.
type SessionHandler struct {
	repo sessionRepo.SessionRepository
}

func NewSessionHandler(repo sessionRepo.SessionRepository) *SessionHandler {
	return &SessionHandler{repo: repo}
}

func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	var session models.SessionPackage
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if !schedule.ValidDuration(session.DurationMinutes) {
		respondError(c, schedule.NewValidationError("unsupported duration %d: expected 30 or 60", session.DurationMinutes))
		return
	}
	if session.SessionsPerWeek < 1 {
		respondError(c, schedule.NewValidationError("sessionsPerWeek must be at least 1"))
		return
	}
	session.IsActive = true

	if err := h.repo.Create(c.Request.Context(), &session); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session package not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *SessionHandler) ListTrainerSessionsHandler(c *gin.Context) {
	sessions, err := h.repo.ListByTrainer(c.Request.Context(), c.Param("trainerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "session package deleted"})
}
