package handler

import (
	"net/http"

	"dramastream/internal/middleware"
	"dramastream/internal/repository"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history *repository.HistoryRepository
}

func NewHistoryHandler(history *repository.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	out, err := h.history.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch watch history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

func (h *HistoryHandler) SaveProgress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		SeriesID  uint    `json:"series_id" binding:"required"`
		EpisodeID uint    `json:"episode_id" binding:"required"`
		Progress  float64 `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing series_id or episode_id"})
		return
	}
	if req.Progress < 0 || req.Progress > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Progress must be between 0 and 1"})
		return
	}
	entry, err := h.history.SaveProgress(userID, req.SeriesID, req.EpisodeID, req.Progress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entry})
}
