package handlers

import (
	"errors"
	"net/http"

	"metastar/config"
	"metastar/services/asset"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssetHandler serves the protected core script to authenticated sessions.
type AssetHandler struct {
	Store asset.Store
}

func NewAssetHandler(store asset.Store) *AssetHandler {
	return &AssetHandler{Store: store}
}

// ServeCoreHandler streams the core script. Session auth happens in
// middleware; this handler only resolves the blob, trying the primary key
// and falling back to the legacy location.
func (h *AssetHandler) ServeCoreHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	body, length, etag, err := h.Store.Open(ctx, config.AppConfig.CoreAssetKey)
	if errors.Is(err, asset.ErrNotFound) {
		body, length, etag, err = h.Store.Open(ctx, config.AppConfig.CoreAssetFallback)
	}
	if errors.Is(err, asset.ErrNotFound) {
		c.String(http.StatusNotFound, "Core not found")
		return
	}
	if err != nil {
		logger.Error("Asset store failure", zap.Error(err))
		c.String(http.StatusInternalServerError, "Storage Error")
		return
	}
	defer body.Close()

	// No caching anywhere: a revoked or expired session must not be served
	// a stale copy by an intermediate cache on its next reload.
	c.Header("Cache-Control", "no-store, max-age=0")
	if etag != "" {
		c.Header("ETag", etag)
	}
	c.DataFromReader(http.StatusOK, length, "application/javascript", body, nil)
}
