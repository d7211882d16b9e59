package handlers

import (
	"net/http"
	"time"

	trainerRepo "fitbook/database/repository/trainer"
	"fitbook/models"

	"github.com/gin-gonic/gin"
)

// TrainerHandler exposes trainer record management.
type TrainerHandler struct {
	repo trainerRepo.TrainerRepository
}

func NewTrainerHandler(repo trainerRepo.TrainerRepository) *TrainerHandler {
	return &TrainerHandler{repo: repo}
}

func (h *TrainerHandler) CreateTrainerHandler(c *gin.Context) {
	var trainer models.Trainer
	if err := c.ShouldBindJSON(&trainer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	trainer.IsActive = true

	if err := h.repo.Create(c.Request.Context(), &trainer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trainer)
}

func (h *TrainerHandler) GetTrainerHandler(c *gin.Context) {
	trainer, err := h.repo.GetByID(c.Request.Context(), c.Param("trainerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if trainer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "trainer not found"})
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) ListTrainersHandler(c *gin.Context) {
	trainers, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trainers": trainers})
}

func (h *TrainerHandler) UpdateTrainerHandler(c *gin.Context) {
	var trainer models.Trainer
	if err := c.ShouldBindJSON(&trainer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	trainer.ID = c.Param("trainerId")
	trainer.UpdatedAt = time.Now()

	if err := h.repo.Update(c.Request.Context(), &trainer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) DeleteTrainerHandler(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("trainerId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "trainer deleted"})
}
