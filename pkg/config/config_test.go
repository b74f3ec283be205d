// pkg/config/config_test.go
package config

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/opd-ai/go-glide/pkg/physics"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Ship.LinearVelocity != 48 {
		t.Errorf("Expected LinearVelocity 48, got %v", config.Ship.LinearVelocity)
	}
	if config.Ship.RotationVelocity != 6 {
		t.Errorf("Expected RotationVelocity 6, got %v", config.Ship.RotationVelocity)
	}
	if config.Ship.ArriveThreshold != 0.5 {
		t.Errorf("Expected ArriveThreshold 0.5, got %v", config.Ship.ArriveThreshold)
	}
	if config.Banking.Mode != physics.BankContinuous {
		t.Errorf("Expected banking mode %q, got %q", physics.BankContinuous, config.Banking.Mode)
	}
	if config.Camera.Offset != (mgl32.Vec3{0, 70, -70}) {
		t.Errorf("Expected camera offset (0, 70, -70), got %v", config.Camera.Offset)
	}
	if config.Camera.Up != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Expected camera up +Z, got %v", config.Camera.Up)
	}
	if config.Debug.UpdateInterval != 500*time.Millisecond {
		t.Errorf("Expected UpdateInterval 500ms, got %v", config.Debug.UpdateInterval)
	}
	if config.Debug.HistoryLength != 20 {
		t.Errorf("Expected HistoryLength 20, got %d", config.Debug.HistoryLength)
	}
	if config.Window.FPSLimit != 60 {
		t.Errorf("Expected FPSLimit 60, got %d", config.Window.FPSLimit)
	}
	if config.Scene.GroundSize != 64 || config.Scene.GroundHeight != -8 {
		t.Errorf("Expected ground 64 at -8, got %v at %v", config.Scene.GroundSize, config.Scene.GroundHeight)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, expected nil", err)
	}
}

func TestRGBA_NRGBA(t *testing.T) {
	tests := []struct {
		name     string
		in       RGBA
		expected color.NRGBA
	}{
		{"marker", RGBA{0, 0.5, 1, 0.1}, color.NRGBA{0, 128, 255, 26}},
		{"black", RGBA{0, 0, 0, 1}, color.NRGBA{0, 0, 0, 255}},
		{"clamped", RGBA{-1, 2, 0.5, 1}, color.NRGBA{0, 255, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.NRGBA(); got != tt.expected {
				t.Errorf("NRGBA() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "glide"+ext)

			original := DefaultConfig()
			original.Ship.LinearVelocity = 30
			original.Banking.Mode = physics.BankDiscrete
			original.Camera.Offset = mgl32.Vec3{0, 40, -40}
			original.Debug.UpdateInterval = 250 * time.Millisecond
			original.Window.Title = "round trip"

			if err := SaveConfig(original, configPath); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			loaded, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}

			if loaded.Ship.LinearVelocity != 30 {
				t.Errorf("Expected LinearVelocity 30, got %v", loaded.Ship.LinearVelocity)
			}
			if loaded.Banking.Mode != physics.BankDiscrete {
				t.Errorf("Expected banking mode discrete, got %q", loaded.Banking.Mode)
			}
			if loaded.Camera.Offset != original.Camera.Offset {
				t.Errorf("Expected camera offset %v, got %v", original.Camera.Offset, loaded.Camera.Offset)
			}
			if loaded.Debug.UpdateInterval != original.Debug.UpdateInterval {
				t.Errorf("Expected UpdateInterval %v, got %v", original.Debug.UpdateInterval, loaded.Debug.UpdateInterval)
			}
			if loaded.Window.Title != "round trip" {
				t.Errorf("Expected title 'round trip', got %q", loaded.Window.Title)
			}
			if math.Abs(loaded.Banking.MaxTilt-original.Banking.MaxTilt) > 1e-12 {
				t.Errorf("Expected MaxTilt %v, got %v", original.Banking.MaxTilt, loaded.Banking.MaxTilt)
			}
		})
	}
}

func TestLoadConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.yaml")
	data := "ship:\n  linearVelocity: 20\nbanking:\n  mode: discrete\n"
	if err := os.WriteFile(configPath, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Ship.LinearVelocity != 20 {
		t.Errorf("Expected LinearVelocity 20, got %v", config.Ship.LinearVelocity)
	}
	if config.Ship.RotationVelocity != physics.DefaultRotationVelocity {
		t.Errorf("Expected default RotationVelocity, got %v", config.Ship.RotationVelocity)
	}
	if config.Banking.Mode != physics.BankDiscrete {
		t.Errorf("Expected discrete banking, got %q", config.Banking.Mode)
	}
	if config.Camera.Offset != (mgl32.Vec3{0, 70, -70}) {
		t.Errorf("Expected default camera offset, got %v", config.Camera.Offset)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name      string
		path      string
		substring string
	}{
		{"missing_file", filepath.Join(dir, "missing.json"), "failed to read config file"},
		{"invalid_json", write("bad.json", `{"ship": invalid}`), "failed to parse config file"},
		{"invalid_yaml", write("bad.yaml", "ship: [unclosed"), "failed to parse config file"},
		{"invalid_values", write("neg.json", `{"ship": {"linearVelocity": -1}}`), "linearVelocity must be positive"},
		{"unknown_banking", write("bank.yaml", "banking:\n  mode: sideways\n"), "invalid config file"},
		{"unknown_extension", write("glide.toml", ""), "unknown config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if config != nil {
				t.Error("Expected nil config on error")
			}
			if !strings.Contains(err.Error(), tt.substring) {
				t.Errorf("Expected error to contain %q, got %q", tt.substring, err.Error())
			}
		})
	}
}

func TestLoadConfig_UnknownFormatSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glide.ini")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("LoadConfig() error = %v, expected ErrUnknownFormat", err)
	}
	if err := SaveConfig(DefaultConfig(), path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("SaveConfig() error = %v, expected ErrUnknownFormat", err)
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	invalidPath := filepath.Join(t.TempDir(), "missing", "dir", "config.json")

	err := SaveConfig(DefaultConfig(), invalidPath)
	if err == nil {
		t.Fatal("Expected error when saving to invalid path, got nil")
	}
	if !strings.Contains(err.Error(), "failed to write config file") {
		t.Errorf("Expected write error, got %q", err.Error())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero_velocity", func(c *Config) { c.Ship.LinearVelocity = 0 }, true},
		{"negative_rotation", func(c *Config) { c.Ship.RotationVelocity = -1 }, true},
		{"negative_threshold", func(c *Config) { c.Ship.ArriveThreshold = -0.1 }, true},
		{"zero_threshold", func(c *Config) { c.Ship.ArriveThreshold = 0 }, false},
		{"unknown_banking", func(c *Config) { c.Banking.Mode = "spiral" }, true},
		{"empty_banking_mode", func(c *Config) { c.Banking.Mode = "" }, false},
		{"negative_tilt", func(c *Config) { c.Banking.MaxTilt = -1 }, true},
		{"zero_fov", func(c *Config) { c.Camera.FovY = 0 }, true},
		{"far_before_near", func(c *Config) { c.Camera.Far = 0.05 }, true},
		{"zero_up", func(c *Config) { c.Camera.Up = mgl32.Vec3{} }, true},
		{"zero_interval", func(c *Config) { c.Debug.UpdateInterval = 0 }, true},
		{"zero_history", func(c *Config) { c.Debug.HistoryLength = 0 }, true},
		{"zero_width", func(c *Config) { c.Window.Width = 0 }, true},
		{"uncapped_fps", func(c *Config) { c.Window.FPSLimit = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_SteeringParams(t *testing.T) {
	config := DefaultConfig()
	config.Ship.LinearVelocity = 12
	config.Banking.Mode = physics.BankDiscrete

	params, err := config.SteeringParams()
	if err != nil {
		t.Fatalf("SteeringParams() failed: %v", err)
	}

	if params.LinearVelocity != 12 {
		t.Errorf("LinearVelocity = %v, expected 12", params.LinearVelocity)
	}
	if params.RotationVelocity != config.Ship.RotationVelocity {
		t.Errorf("RotationVelocity = %v, expected %v", params.RotationVelocity, config.Ship.RotationVelocity)
	}
	if _, ok := params.Banking.(physics.DiscreteBank); !ok {
		t.Errorf("Banking = %T, expected physics.DiscreteBank", params.Banking)
	}

	config.Banking.Mode = "bogus"
	if _, err := config.SteeringParams(); err == nil {
		t.Error("SteeringParams() with unknown banking mode should fail")
	}
}
