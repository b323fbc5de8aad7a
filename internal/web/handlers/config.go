package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/config"
)

// ConfigHandler handles configuration endpoints
type ConfigHandler struct {
	config *config.Config
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{
		config: cfg,
	}
}

// ConfigResponse tells capture clients how to rasterize frames.
type ConfigResponse struct {
	Surface        SurfaceInfo `json:"surface"`
	Presets        []string    `json:"presets"`
	AttendancePath string      `json:"attendance_path"`
}

// SurfaceInfo describes the capture surface.
type SurfaceInfo struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	Quality int `json:"quality"`
}

// Get returns the capture configuration
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	response := ConfigResponse{
		Surface: SurfaceInfo{
			Width:   h.config.Camera.Width,
			Height:  h.config.Camera.Height,
			Quality: h.config.Camera.Quality,
		},
		Presets:        h.config.PresetNames(),
		AttendancePath: AttendancePath,
	}

	respondJSON(w, http.StatusOK, response)
}
