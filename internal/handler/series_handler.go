package handler

import (
	"net/http"
	"strconv"

	"dramastream/internal/repository"

	"github.com/gin-gonic/gin"
)

type SeriesHandler struct {
	series   *repository.SeriesRepository
	episodes *repository.EpisodeRepository
	genres   *repository.GenreRepository
}

func NewSeriesHandler(series *repository.SeriesRepository, episodes *repository.EpisodeRepository, genres *repository.GenreRepository) *SeriesHandler {
	return &SeriesHandler{series: series, episodes: episodes, genres: genres}
}

func (h *SeriesHandler) List(c *gin.Context) {
	if genre := c.Query("genre"); genre != "" {
		out, err := h.series.ListByGenre(genre)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch series"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"series": out})
		return
	}
	out, err := h.series.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}

func (h *SeriesHandler) Trending(c *gin.Context) {
	out, err := h.series.ListTrending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}

func (h *SeriesHandler) New(c *gin.Context) {
	out, err := h.series.ListNew()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch new series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}

func (h *SeriesHandler) Featured(c *gin.Context) {
	out, err := h.series.ListFeatured()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}

func (h *SeriesHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid series ID"})
		return
	}
	s, err := h.series.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		return
	}
	episodes, err := h.episodes.ListBySeriesID(s.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch episodes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": s, "episodes": episodes})
}

func (h *SeriesHandler) Episodes(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid series ID"})
		return
	}
	episodes, err := h.episodes.ListBySeriesID(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch episodes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"episodes": episodes})
}

func (h *SeriesHandler) GetEpisode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid episode ID"})
		return
	}
	episode, err := h.episodes.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Episode not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"episode": episode})
}

// View bumps the series view counter. Fire-and-forget from the client side,
// so failures are still reported but carry no user-facing consequence.
func (h *SeriesHandler) View(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid series ID"})
		return
	}
	if err := h.series.IncrementViewCount(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "View recorded"})
}

func (h *SeriesHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}
	out, err := h.series.Search(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}

func (h *SeriesHandler) Genres(c *gin.Context) {
	out, err := h.genres.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genres"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": out})
}
