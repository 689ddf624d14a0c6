package handler

import (
	"net/http"
	"strconv"

	"dramastream/internal/middleware"
	"dramastream/internal/service"

	"github.com/gin-gonic/gin"
)

type UnlockHandler struct {
	unlocks *service.UnlockService
}

func NewUnlockHandler(unlocks *service.UnlockService) *UnlockHandler {
	return &UnlockHandler{unlocks: unlocks}
}

// Unlock grants access to one episode. Premium users pass through free of
// charge; everyone else pays the coin cost.
func (h *UnlockHandler) Unlock(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		EpisodeID uint `json:"episode_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing episode_id"})
		return
	}
	result, err := h.unlocks.Unlock(userID, req.EpisodeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"unlocked":       true,
		"unlock_method":  result.Grant.UnlockMethod,
		"coins_deducted": result.CoinsDeducted,
		"new_balance":    result.NewBalance,
	})
}

func (h *UnlockHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	grants, err := h.unlocks.Unlocked(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unlocked episodes"})
		return
	}
	ids := make([]uint, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.EpisodeID)
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": grants, "episode_ids": ids})
}

func (h *UnlockHandler) Check(c *gin.Context) {
	userID := middleware.GetUserID(c)
	episodeID, err := strconv.ParseUint(c.Param("episodeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid episode ID"})
		return
	}
	unlocked, err := h.unlocks.IsUnlocked(userID, uint(episodeID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check unlock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unlocked": unlocked})
}

// WatchAd credits the rewarded-ad bonus, bounded by the daily cap.
func (h *UnlockHandler) WatchAd(c *gin.Context) {
	userID := middleware.GetUserID(c)
	result, err := h.unlocks.WatchAd(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"coins_earned":      result.CoinsEarned,
		"new_balance":       result.NewBalance,
		"ads_watched_today": result.AdsWatchedToday,
		"max_ads_per_day":   result.MaxAdsPerDay,
	})
}
