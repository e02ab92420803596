// Package config resolves atlasui settings from defaults and the environment.
// Command-line flags are layered on top by cmd/atlasui.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultAPIURL is where the WorkoutTracker API listens in local development.
const DefaultAPIURL = "http://localhost:8000"

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 10 * time.Second

// Environment variable names.
const (
	EnvAPIURL       = "ATLAS_API_URL"
	EnvAPITimeout   = "ATLAS_API_TIMEOUT"
	EnvLogFile      = "ATLAS_LOG_FILE"
	EnvLogLevel     = "ATLAS_LOG_LEVEL"
	EnvSeqURL       = "ATLAS_SEQ_URL"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// Config holds the resolved settings for one run.
type Config struct {
	APIURL       string
	Timeout      time.Duration
	LogFile      string
	LogLevel     string
	SeqURL       string
	OTLPEndpoint string
	ServiceName  string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		LogFile:  defaultLogFile(),
		LogLevel: "info",
	}
}

// defaultLogFile places the log under the user cache dir, or disables file
// logging if there is none.
func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "atlasui", "atlasui.log")
}

// Load overlays values from getenv on Default. Unset or empty variables keep
// the default.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()
	if v := getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := getenv(EnvAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.SeqURL = getenv(EnvSeqURL)
	cfg.OTLPEndpoint = getenv(EnvOTLPEndpoint)
	cfg.ServiceName = getenv(EnvServiceName)
	return cfg, nil
}

// Validate checks the API URL and timeout.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url %q: missing host", c.APIURL)
	}
	return nil
}

// BaseURL returns APIURL without a trailing slash.
func (c Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/")
}
