package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-kiosk/internal/config"
)

// ConfigHandler serves the capture settings the browser needs to agree with
// the server on frame sizing, sampling and the unknown-name sentinel.
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a config handler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{config: cfg}
}

// Get returns the capture configuration.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.config.Capture)
}
