package handler

import (
	"errors"
	"log"
	"net/http"

	"dramastream/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the expected business outcomes to structured 4xx
// responses. Anything unrecognized is a storage fault: logged and reported
// as a bare 500 with no partial detail leaked.
func respondServiceError(c *gin.Context, err error) {
	var insufficient *service.InsufficientCoinsError
	var dailyLimit *service.DailyLimitError
	var verification *service.VerificationError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, service.ErrAlreadyUnlocked):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Episode already unlocked"})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":    "Insufficient coins",
			"required": insufficient.Required,
			"current":  insufficient.Current,
			"needed":   insufficient.Required - insufficient.Current,
		})
	case errors.As(err, &dailyLimit):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   "Daily ad limit exceeded",
			"limit":   dailyLimit.Limit,
			"watched": dailyLimit.Watched,
		})
	case errors.Is(err, service.ErrPremiumIneligible):
		c.JSON(http.StatusForbidden, gin.H{"error": "Premium users cannot earn coins from ads"})
	case errors.As(err, &verification):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to verify receipt", "details": verification.Reason})
	case errors.Is(err, service.ErrNoActiveSubscription):
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription found"})
	case errors.Is(err, service.ErrUnknownProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown product ID"})
	case errors.Is(err, service.ErrUnknownPlatform):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown platform"})
	case errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
	default:
		log.Printf("[Handler] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
