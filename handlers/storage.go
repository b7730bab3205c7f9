package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"metastar/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler exposes per-user JSON document save/load.
type StorageHandler struct {
	Store storage.ConfigStore
}

func NewStorageHandler(store storage.ConfigStore) *StorageHandler {
	return &StorageHandler{Store: store}
}

// SaveConfigHandler handles POST /storage/save. The body is stored verbatim
// for the authenticated user; saves overwrite unconditionally.
func (h *StorageHandler) SaveConfigHandler(c *gin.Context) {
	logger := getLogger(c)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	email := c.GetString("email")
	if err := h.Store.Save(c.Request.Context(), email, json.RawMessage(body)); err != nil {
		logger.Error("Config save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Save Failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// LoadConfigHandler handles GET /storage/load. A user with no saved document
// gets {"config": null}, not an error.
func (h *StorageHandler) LoadConfigHandler(c *gin.Context) {
	logger := getLogger(c)

	email := c.GetString("email")
	doc, err := h.Store.Load(c.Request.Context(), email)
	if err != nil {
		logger.Error("Config load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Load Failed"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusOK, gin.H{"config": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": doc})
}
