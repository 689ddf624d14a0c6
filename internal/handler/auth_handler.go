package handler

import (
	"errors"
	"net/http"

	"dramastream/internal/models"
	"dramastream/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"email":         u.Email,
		"display_name":  u.DisplayName,
		"avatar_url":    u.AvatarURL,
		"auth_provider": u.AuthProvider,
		"is_premium":    u.IsPremium,
		"coin_balance":  u.CoinBalance,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email, password, or display_name"})
		return
	}
	u, token, expiresIn, err := h.authSvc.Signup(req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "expires_in": expiresIn, "user": userPayload(u)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}
	u, token, expiresIn, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": expiresIn, "user": userPayload(u)})
}

func (h *AuthHandler) Guest(c *gin.Context) {
	u, token, expiresIn, err := h.authSvc.Guest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "expires_in": expiresIn, "user": userPayload(u)})
}
