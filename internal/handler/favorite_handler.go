package handler

import (
	"net/http"
	"strconv"

	"dramastream/internal/middleware"
	"dramastream/internal/repository"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favorites *repository.FavoriteRepository
}

func NewFavoriteHandler(favorites *repository.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	out, err := h.favorites.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": out})
}

func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	seriesID, err := strconv.ParseUint(c.Param("seriesId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid series ID"})
		return
	}
	favorited, err := h.favorites.Toggle(userID, uint(seriesID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

func (h *FavoriteHandler) Check(c *gin.Context) {
	userID := middleware.GetUserID(c)
	seriesID, err := strconv.ParseUint(c.Param("seriesId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid series ID"})
		return
	}
	favorited, err := h.favorites.IsFavorite(userID, uint(seriesID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}
