// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names read by LoadConfigFromEnv.
const (
	EnvConfigPath      = "GLIDE_CONFIG"
	EnvLogLevel        = "GLIDE_LOG_LEVEL"
	EnvRenderer        = "GLIDE_RENDERER"
	EnvWidth           = "GLIDE_WIDTH"
	EnvHeight          = "GLIDE_HEIGHT"
	EnvFullscreen      = "GLIDE_FULLSCREEN"
	EnvFPSLimit        = "GLIDE_FPS_LIMIT"
	EnvSound           = "GLIDE_SOUND"
	EnvOverlayInterval = "GLIDE_OVERLAY_INTERVAL"
	EnvLogFile         = "GLIDE_LOG_FILE"
)

// Supported frontends.
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererNull     = "null"
)

// EnvironmentConfig holds settings that come from the process environment
type EnvironmentConfig struct {
	ConfigPath      string
	LogLevel        string
	Renderer        string
	Width           int
	Height          int
	Fullscreen      bool
	FPSLimit        int
	Sound           bool
	OverlayInterval time.Duration
	// LogFile receives the logs of frontends that own the terminal.
	LogFile string
}

// ValidationError reports an invalid environment setting
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// LoadConfigFromEnv reads GLIDE_* variables, falling back to defaults for
// unset or unparsable values, and validates the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	defaults := DefaultConfig()

	config := &EnvironmentConfig{
		ConfigPath:      getEnvOrDefault(EnvConfigPath, ""),
		LogLevel:        strings.ToUpper(getEnvOrDefault(EnvLogLevel, "INFO")),
		Renderer:        strings.ToLower(getEnvOrDefault(EnvRenderer, RendererEngo)),
		Width:           getEnvAsIntOrDefault(EnvWidth, defaults.Window.Width),
		Height:          getEnvAsIntOrDefault(EnvHeight, defaults.Window.Height),
		Fullscreen:      getEnvAsBoolOrDefault(EnvFullscreen, defaults.Window.Fullscreen),
		FPSLimit:        getEnvAsIntOrDefault(EnvFPSLimit, defaults.Window.FPSLimit),
		Sound:           getEnvAsBoolOrDefault(EnvSound, true),
		OverlayInterval: getEnvAsDurationOrDefault(EnvOverlayInterval, defaults.Debug.UpdateInterval),
		LogFile:         getEnvOrDefault(EnvLogFile, ""),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, fmt.Errorf("environment configuration validation failed: %w", err)
	}

	return config, nil
}

func validateEnvironmentConfig(config *EnvironmentConfig) error {
	switch config.LogLevel {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return &ValidationError{Field: "LogLevel", Message: fmt.Sprintf("unknown level %q", config.LogLevel)}
	}

	switch config.Renderer {
	case RendererEngo, RendererTerminal, RendererNull:
	default:
		return &ValidationError{Field: "Renderer", Message: fmt.Sprintf("unknown renderer %q", config.Renderer)}
	}

	if config.Width <= 0 || config.Width > 16384 {
		return &ValidationError{Field: "Width", Message: "must be between 1 and 16384"}
	}

	if config.Height <= 0 || config.Height > 16384 {
		return &ValidationError{Field: "Height", Message: "must be between 1 and 16384"}
	}

	if config.FPSLimit < 0 || config.FPSLimit > 1000 {
		return &ValidationError{Field: "FPSLimit", Message: "must be between 0 and 1000"}
	}

	if config.OverlayInterval <= 0 {
		return &ValidationError{Field: "OverlayInterval", Message: "must be positive"}
	}

	return nil
}

// ApplyEnvironmentOverrides copies the environment settings onto a file
// config. Only variables with a non-empty value take effect, matching the
// getters, which treat an empty value as unset.
func ApplyEnvironmentOverrides(config *Config) error {
	env, err := LoadConfigFromEnv()
	if err != nil {
		return err
	}

	if isSet(EnvWidth) {
		config.Window.Width = env.Width
	}
	if isSet(EnvHeight) {
		config.Window.Height = env.Height
	}
	if isSet(EnvFullscreen) {
		config.Window.Fullscreen = env.Fullscreen
	}
	if isSet(EnvFPSLimit) {
		config.Window.FPSLimit = env.FPSLimit
	}
	if isSet(EnvOverlayInterval) {
		config.Debug.UpdateInterval = env.OverlayInterval
	}

	return config.Validate()
}

func isSet(key string) bool {
	return os.Getenv(key) != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
