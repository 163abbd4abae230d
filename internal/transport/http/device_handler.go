package handlers

import (
	"net/http"

	"github.com/SamTV12345/PodFetch-sub001/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	deviceUseCase *usecase.DeviceUseCase
}

func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{deviceUseCase: uc}
}

// POST /api/v1/devices/:username/:deviceid
func (h *DeviceHandler) Register(c *gin.Context) {
	sessionUser := c.GetString("username")

	var req struct {
		Caption string `json:"caption"`
		Kind    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	device, err := h.deviceUseCase.Register(c, pathUser(c), sessionUser, pathDevice(c), req.Caption, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// GET /api/v1/devices/:username
func (h *DeviceHandler) List(c *gin.Context) {
	sessionUser := c.GetString("username")

	devices, err := h.deviceUseCase.List(c, pathUser(c), sessionUser)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// DELETE /api/v1/devices/:username
func (h *DeviceHandler) RemoveAll(c *gin.Context) {
	sessionUser := c.GetString("username")

	if err := h.deviceUseCase.RemoveAll(c, pathUser(c), sessionUser); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
