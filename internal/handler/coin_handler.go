package handler

import (
	"net/http"
	"strconv"

	"dramastream/internal/economy"
	"dramastream/internal/middleware"
	"dramastream/internal/service"

	"github.com/gin-gonic/gin"
)

type CoinHandler struct {
	coins *service.CoinService
}

func NewCoinHandler(coins *service.CoinService) *CoinHandler {
	return &CoinHandler{coins: coins}
}

func (h *CoinHandler) Balance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	balance, err := h.coins.Balance(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":     balance,
		"unlock_cost": economy.UnlockCost(false),
		"can_unlock":  economy.CanUnlock(balance, false),
	})
}

func (h *CoinHandler) History(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.coins.History(userID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}

func (h *CoinHandler) Earn(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount int64  `json:"amount" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing amount or reason"})
		return
	}
	entry, err := h.coins.Earn(userID, req.Amount, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"coins_added": entry.Amount,
		"new_balance": entry.BalanceAfter,
		"transaction": entry,
	})
}

func (h *CoinHandler) Packages(c *gin.Context) {
	packs := make([]gin.H, 0, len(economy.CoinPacks))
	for productID, coins := range economy.CoinPacks {
		packs = append(packs, gin.H{"product_id": productID, "coins": coins})
	}
	c.JSON(http.StatusOK, gin.H{
		"packages": packs,
		// Reward sizes the client surfaces next to the purchase options.
		"rewards": gin.H{
			"daily_login":   economy.DailyLoginBonus,
			"watch_streak":  economy.WatchStreakBonus,
			"referral":      economy.ReferralBonus,
			"share_episode": economy.ShareEpisodeReward,
		},
	})
}

func (h *CoinHandler) VerifyPurchase(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Platform  string `json:"platform" binding:"required"`
		ProductID string `json:"product_id" binding:"required"`
		Token     string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing platform, product_id, or token"})
		return
	}
	result, err := h.coins.VerifyPurchase(c.Request.Context(), userID, req.Platform, req.ProductID, req.Token)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"coins_added": result.CoinsAdded,
		"new_balance": result.NewBalance,
	})
}
