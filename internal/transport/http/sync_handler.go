package handlers

import (
	"net/http"
	"strconv"

	"github.com/SamTV12345/PodFetch-sub001/internal/application/usecase"
	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncUseCase *usecase.SyncUseCase
}

func NewSyncHandler(uc *usecase.SyncUseCase) *SyncHandler {
	return &SyncHandler{syncUseCase: uc}
}

// GET /api/v1/episodes/:username?since&podcast&device&aggregate
func (h *SyncHandler) PullEpisodeActions(c *gin.Context) {
	sessionUser := c.GetString("username")

	since, err := strconv.ParseUint(c.DefaultQuery("since", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since"})
		return
	}

	filter := domain.ActionFilter{
		Podcast: c.Query("podcast"),
		Device:  c.Query("device"),
		// Любое непустое значение трактуем как true
		Aggregate: c.Query("aggregate") != "",
	}

	res, err := h.syncUseCase.Pull(c, pathUser(c), sessionUser, uint(since), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/episodes/:username — тело: массив записей действий
func (h *SyncHandler) PushEpisodeActions(c *gin.Context) {
	sessionUser := c.GetString("username")
	device := c.GetString("deviceId")

	var actions []domain.EpisodeAction
	if err := c.ShouldBindJSON(&actions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.syncUseCase.Push(c, pathUser(c), sessionUser, device, actions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/subscriptions/:username/:deviceid?since
func (h *SyncHandler) PullSubscriptions(c *gin.Context) {
	sessionUser := c.GetString("username")

	since, err := strconv.ParseInt(c.DefaultQuery("since", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since"})
		return
	}

	res, err := h.syncUseCase.PullSubscriptions(c, pathUser(c), sessionUser, pathDevice(c), since)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/subscriptions/:username/:deviceid
func (h *SyncHandler) PushSubscriptions(c *gin.Context) {
	sessionUser := c.GetString("username")

	var req struct {
		Add    []string `json:"add"`
		Remove []string `json:"remove"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, err := h.syncUseCase.PushSubscriptions(c, pathUser(c), sessionUser, pathDevice(c), req.Add, req.Remove)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, applied)
}
