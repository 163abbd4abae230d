package handlers

import (
	"net/http"
	"strconv"

	"github.com/SamTV12345/PodFetch-sub001/internal/application/usecase"
	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"github.com/gin-gonic/gin"
)

const defaultTimelinePageSize = 20

type TimelineHandler struct {
	timelineUseCase *usecase.TimelineUseCase
}

func NewTimelineHandler(uc *usecase.TimelineUseCase) *TimelineHandler {
	return &TimelineHandler{timelineUseCase: uc}
}

// GET /api/v1/timeline?favoredOnly&lastTimestamp&notListened
func (h *TimelineHandler) Page(c *gin.Context) {
	username := c.GetString("username")

	var favoredOnly *bool
	if raw, ok := c.GetQuery("favoredOnly"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid favoredOnly"})
			return
		}
		favoredOnly = &v
	}

	var cursor *domain.OrderKey
	if raw, ok := c.GetQuery("lastTimestamp"); ok && raw != "" {
		key, err := domain.ParseOrderKey(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lastTimestamp"})
			return
		}
		cursor = &key
	}

	notListened := c.Query("notListened") != ""

	page, err := h.timelineUseCase.Page(c, username, favoredOnly, cursor, notListened, defaultTimelinePageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	res := gin.H{
		"data":           page.Items,
		"total_elements": page.Total,
	}
	if page.NextCursor != nil {
		res["next_cursor"] = page.NextCursor.String()
	}
	c.JSON(http.StatusOK, res)
}
