package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"github.com/gin-gonic/gin"
)

// Политика ошибок: Forbidden/NotFound/Conflict — 403/404/409, ошибки
// хранилища наружу как 5xx. Пустые данные — всегда 200.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// gpodder-клиенты ходят на /episodes/{username}.json
func pathUser(c *gin.Context) string {
	return strings.TrimSuffix(c.Param("username"), ".json")
}

func pathDevice(c *gin.Context) string {
	return strings.TrimSuffix(c.Param("deviceid"), ".json")
}
