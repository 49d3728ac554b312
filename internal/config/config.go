package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
)

const (
	defaultPollInterval  = 5 * time.Second
	defaultProbeTimeout  = 3 * time.Second
	defaultTitleTemplate = "{track} – {artist}"
	defaultIconSize      = 128
)

// AppConfig holds application configuration
type AppConfig struct {
	logger        *zap.Logger
	pollInterval  time.Duration
	probeTimeout  time.Duration
	titleTemplate string
	dataDir       string
	iconSize      int
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	cfg := &AppConfig{
		logger:        logger,
		pollInterval:  durationEnv(logger, "NOWPLAYING_POLL_INTERVAL", defaultPollInterval),
		probeTimeout:  durationEnv(logger, "NOWPLAYING_PROBE_TIMEOUT", defaultProbeTimeout),
		titleTemplate: stringEnv("NOWPLAYING_TITLE_TEMPLATE", defaultTitleTemplate),
		dataDir:       stringEnv("NOWPLAYING_DATA_DIR", filepath.Join(xdg.DataHome, "nowplaying")),
		iconSize:      intEnv(logger, "NOWPLAYING_ICON_SIZE", defaultIconSize),
	}

	// Expand path if it contains ~ or environment variables
	cfg.dataDir = os.ExpandEnv(cfg.dataDir)
	if len(cfg.dataDir) > 0 && cfg.dataDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.dataDir = filepath.Join(home, cfg.dataDir[1:])
		}
	}

	logger.Info("Configuration loaded",
		zap.Duration("pollInterval", cfg.pollInterval),
		zap.Duration("probeTimeout", cfg.probeTimeout),
		zap.String("dataDir", cfg.dataDir),
		zap.String("titleTemplate", cfg.titleTemplate))

	return cfg
}

// PollInterval returns how often the reconciler is refreshed.
func (c *AppConfig) PollInterval() time.Duration { return c.pollInterval }

// ProbeTimeout returns the per-invocation provider timeout.
func (c *AppConfig) ProbeTimeout() time.Duration { return c.probeTimeout }

// TitleTemplate returns the indicator title template.
func (c *AppConfig) TitleTemplate() string { return c.titleTemplate }

// DataDir returns the directory for the state file and artwork icon.
func (c *AppConfig) DataDir() string { return c.dataDir }

// StatePath returns the key-value store file location.
func (c *AppConfig) StatePath() string { return filepath.Join(c.dataDir, "state.json") }

// IconSize returns the artwork icon edge length in pixels.
func (c *AppConfig) IconSize() int { return c.iconSize }

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(logger *zap.Logger, key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logger.Warn("Ignoring invalid duration", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return d
}

func intEnv(logger *zap.Logger, key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("Ignoring invalid integer", zap.String("key", key), zap.String("value", v))
		return fallback
	}
	return n
}
