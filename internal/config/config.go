package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Registry RegistryConfig
	Capture  CaptureConfig
}

type ServerConfig struct {
	Port int    // defaults to 3000
	Host string // defaults to 0.0.0.0
}

type UpstreamConfig struct {
	URL            string // vision service base URL, defaults to http://127.0.0.1:8000
	TimeoutSeconds int    // per-request timeout, defaults to 30
}

type RegistryConfig struct {
	Path string // JSON registry file, defaults to people.json
}

// CaptureConfig holds the frame-capture contract shared with the browser.
// Values come from the embedded defaults.yaml and are served via /api/config
// so the frontend never hardcodes them.
type CaptureConfig struct {
	CountdownSeconds int     `yaml:"countdown_seconds" json:"countdown_seconds"`
	Samples          int     `yaml:"samples" json:"samples"`
	SampleIntervalMS int     `yaml:"sample_interval_ms" json:"sample_interval_ms"`
	MaxFrameHeight   int     `yaml:"max_frame_height" json:"max_frame_height"`
	DefaultThreshold float64 `yaml:"default_threshold" json:"default_threshold"`
	UnknownLabel     string  `yaml:"unknown_label" json:"unknown_label"`
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

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var defaults struct {
		Capture CaptureConfig `yaml:"capture"`
	}
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		// Embedded file, so this can only happen on a broken build.
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Server: ServerConfig{
			Port: envInt("WEB_PORT", 3000),
			Host: envString("WEB_HOST", "0.0.0.0"),
		},
		Upstream: UpstreamConfig{
			URL:            envString("UPSTREAM_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds: envInt("UPSTREAM_TIMEOUT_SECONDS", 30),
		},
		Registry: RegistryConfig{
			Path: envString("REGISTRY_PATH", "people.json"),
		},
		Capture: defaults.Capture,
	}
}
