package handlers

import (
	"net/http"

	"github.com/SamTV12345/PodFetch-sub001/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type WatchHandler struct {
	watchUseCase *usecase.WatchUseCase
}

func NewWatchHandler(uc *usecase.WatchUseCase) *WatchHandler {
	return &WatchHandler{watchUseCase: uc}
}

// POST /api/v1/podcast/episode
func (h *WatchHandler) RecordWatchtime(c *gin.Context) {
	username := c.GetString("username")
	device := c.GetString("deviceId")

	var req struct {
		PodcastEpisode string `json:"podcastEpisode" binding:"required"`
		Time           int    `json:"time"`
		Timestamp      int64  `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.watchUseCase.RecordWatchtime(c, username, device, req.PodcastEpisode, req.Time, req.Timestamp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/v1/podcast/episode/lastwatched
func (h *WatchHandler) LastWatched(c *gin.Context) {
	username := c.GetString("username")

	watched, err := h.watchUseCase.LastWatched(c, username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, watched)
}

// GET /api/v1/podcast/episode?podcastEpisode=...
func (h *WatchHandler) Watchtime(c *gin.Context) {
	username := c.GetString("username")

	episodeID := c.Query("podcastEpisode")
	if episodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "podcastEpisode is required"})
		return
	}

	position, err := h.watchUseCase.WatchtimeFor(c, username, episodeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"podcastEpisode": episodeID, "position": position})
}
