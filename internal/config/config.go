package config

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type Config struct {
	Web      WebConfig
	Endpoint EndpointConfig
	Camera   CameraConfig
	Log      LogConfig
	Presets  PresetsConfig
}

type WebConfig struct {
	Host           string `default:"0.0.0.0"`
	Port           int    `default:"8080"`
	AllowedOrigins []string // extra CORS origins; localhost is always allowed
}

// Addr returns the listen address for the HTTP server.
func (c *WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type EndpointConfig struct {
	URL     string        `default:"http://localhost:8080/attendance"`
	Timeout time.Duration // zero means no client-side timeout
}

type CameraConfig struct {
	Device  string `default:"0"` // OpenCV device index or stream URL
	Width   int    `default:"640"`
	Height  int    `default:"480"`
	Quality int    `default:"92"` // JPEG quality 1-100
	Preset  string
}

type LogConfig struct {
	Level string `default:"info"`
}

type PresetsConfig struct {
	Presets map[string]CameraPreset `yaml:"presets"`
}

type CameraPreset struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
}

// Validate checks if the camera values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *CameraConfig) Validate() []string {
	var errs []string
	if c.Width < 16 || c.Width > 4096 {
		errs = append(errs, "width must be between 16 and 4096")
	}
	if c.Height < 16 || c.Height > 4096 {
		errs = append(errs, "height must be between 16 and 4096")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, "quality must be between 1 and 100")
	}
	return errs
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envDuration parses a Go duration ("30s", "2m"). Invalid or negative values yield the default.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(s); err == nil && d >= 0 {
		return d
	}
	return defaultVal
}

// envString returns the env var value or the default if unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList splits a comma-separated env var, dropping empty entries.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func Load() *Config {
	var presets PresetsConfig
	if err := yaml.Unmarshal(presetsYAML, &presets); err != nil {
		// Embedded file, so this only fires on a broken build.
		panic("failed to unmarshal embedded presets.yaml: " + err.Error())
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic("failed to apply config defaults: " + err.Error())
	}
	cfg.Presets = presets

	cfg.Web.Host = envString("WEB_HOST", cfg.Web.Host)
	cfg.Web.Port = envInt("WEB_PORT", cfg.Web.Port)
	cfg.Web.AllowedOrigins = envList("WEB_ALLOWED_ORIGINS")

	cfg.Endpoint.URL = envString("ATTENDANCE_URL", cfg.Endpoint.URL)
	cfg.Endpoint.Timeout = envDuration("ATTENDANCE_TIMEOUT", 0)

	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)

	cfg.Camera.Device = envString("CAMERA_DEVICE", cfg.Camera.Device)
	if name := os.Getenv("CAMERA_PRESET"); name != "" {
		// Unknown preset names from the environment keep the defaults.
		_ = cfg.ApplyPreset(name)
	}
	cfg.Camera.Width = envInt("CAMERA_WIDTH", cfg.Camera.Width)
	cfg.Camera.Height = envInt("CAMERA_HEIGHT", cfg.Camera.Height)
	cfg.Camera.Quality = envInt("CAMERA_QUALITY", cfg.Camera.Quality)

	return cfg
}

// ApplyPreset copies the named preset's surface dimensions and quality into the camera config.
func (c *Config) ApplyPreset(name string) error {
	preset, ok := c.Presets.Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(c.PresetNames(), ", "))
	}
	c.Camera.Preset = name
	c.Camera.Width = preset.Width
	c.Camera.Height = preset.Height
	c.Camera.Quality = preset.Quality
	return nil
}

// PresetNames returns the sorted list of available preset names.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets.Presets))
	for name := range c.Presets.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
