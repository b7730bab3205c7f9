package handlers

import (
	"net/http"

	"metastar/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HealthHandler reports gateway status and the maintenance flag. The flag is
// a plain Redis key ops can flip without a deploy.
type HealthHandler struct {
	Cache *redis.Client
}

func NewHealthHandler(cache *redis.Client) *HealthHandler {
	return &HealthHandler{Cache: cache}
}

func (h *HealthHandler) HealthHandler(c *gin.Context) {
	maintenance := false
	if val, err := h.Cache.Get(c.Request.Context(), utils.MaintenanceKey).Result(); err == nil {
		maintenance = val == "true"
	}

	status := "ok"
	if !utils.GetHealthStatus().Healthy() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "maintenance": maintenance})
}
