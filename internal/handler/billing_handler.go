package handler

import (
	"net/http"

	"dramastream/internal/domain"
	"dramastream/internal/economy"
	"dramastream/internal/middleware"
	"dramastream/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing *service.BillingService
}

func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// Plans is a static price sheet. Store products are the source of truth for
// actual charging; this only feeds the paywall screen, including what the
// free tier can earn without paying.
func (h *BillingHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"plans": []gin.H{
			{"id": domain.PlanWeekly, "name": "Weekly", "duration_days": 7, "product_id": "com.dramastream.premium.weekly"},
			{"id": domain.PlanMonthly, "name": "Monthly", "duration_days": 30, "product_id": "com.dramastream.premium.monthly"},
			{"id": domain.PlanYearly, "name": "Yearly", "duration_days": 365, "product_id": "com.dramastream.premium.yearly"},
		},
		"free_tier": gin.H{
			"unlock_cost":         economy.UnlockCost(false),
			"coins_per_ad":        economy.AdReward(),
			"max_ads_per_day":     economy.MaxAdsPerDay,
			"monthly_free_videos": economy.MonthlyFreeVideos(),
		},
	})
}

func (h *BillingHandler) Status(c *gin.Context) {
	userID := middleware.GetUserID(c)
	status, err := h.billing.Status(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *BillingHandler) Verify(c *gin.Context) {
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
	sub, err := h.billing.Activate(c.Request.Context(), userID, req.Platform, req.ProductID, req.Token)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscribed":   true,
		"plan":         sub.Plan,
		"expires_at":   sub.ExpiresAt,
		"subscription": sub,
	})
}

func (h *BillingHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.billing.Cancel(userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled. Premium remains active until expiry."})
}
