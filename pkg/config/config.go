// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-glide/pkg/physics"
)

// ErrUnknownFormat is returned for config files that are neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config contains the configuration of the glide demo
type Config struct {
	Ship    ShipConfig    `json:"ship" yaml:"ship"`
	Banking BankingConfig `json:"banking" yaml:"banking"`
	Camera  CameraConfig  `json:"camera" yaml:"camera"`
	Debug   DebugConfig   `json:"debug" yaml:"debug"`
	Scene   SceneConfig   `json:"scene" yaml:"scene"`
	Window  WindowConfig  `json:"window" yaml:"window"`
}

// ShipConfig contains steering tuning
type ShipConfig struct {
	LinearVelocity   float64    `json:"linearVelocity" yaml:"linearVelocity"`
	RotationVelocity float64    `json:"rotationVelocity" yaml:"rotationVelocity"`
	ArriveThreshold  float64    `json:"arriveThreshold" yaml:"arriveThreshold"`
	Start            mgl32.Vec3 `json:"start" yaml:"start"`
	Model            string     `json:"model" yaml:"model"`
}

// BankingConfig selects and tunes the banking strategy
type BankingConfig struct {
	Mode     physics.BankingMode `json:"mode" yaml:"mode"`
	Gain     float64             `json:"gain" yaml:"gain"`
	MaxTilt  float64             `json:"maxTilt" yaml:"maxTilt"`
	DeadZone float64             `json:"deadZone" yaml:"deadZone"`
}

// CameraConfig contains the follow camera settings
type CameraConfig struct {
	Offset mgl32.Vec3 `json:"offset" yaml:"offset"`
	Up     mgl32.Vec3 `json:"up" yaml:"up"`
	FovY   float32    `json:"fovY" yaml:"fovY"`
	Near   float32    `json:"near" yaml:"near"`
	Far    float32    `json:"far" yaml:"far"`
}

// DebugConfig contains the FPS overlay settings
type DebugConfig struct {
	ShowFPS        bool          `json:"showFPS" yaml:"showFPS"`
	UpdateInterval time.Duration `json:"updateInterval" yaml:"updateInterval"`
	HistoryLength  int           `json:"historyLength" yaml:"historyLength"`
	FontSize       float64       `json:"fontSize" yaml:"fontSize"`
}

// SceneConfig describes the static scene
type SceneConfig struct {
	ClearColor        RGBA    `json:"clearColor" yaml:"clearColor"`
	AmbientColor      RGBA    `json:"ambientColor" yaml:"ambientColor"`
	AmbientBrightness float32 `json:"ambientBrightness" yaml:"ambientBrightness"`
	LightIlluminance  float32 `json:"lightIlluminance" yaml:"lightIlluminance"`
	MarkerColor       RGBA    `json:"markerColor" yaml:"markerColor"`
	OriginMarker      bool    `json:"originMarker" yaml:"originMarker"`
	GroundSize        float32 `json:"groundSize" yaml:"groundSize"`
	GroundHeight      float32 `json:"groundHeight" yaml:"groundHeight"`
}

// WindowConfig contains frontend window settings
type WindowConfig struct {
	Title      string `json:"title" yaml:"title"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	VSync      bool   `json:"vsync" yaml:"vsync"`
	FPSLimit   int    `json:"fpsLimit" yaml:"fpsLimit"`
}

// RGBA is a color with components in [0, 1].
type RGBA [4]float32

// NRGBA converts the color to 8-bit components.
func (c RGBA) NRGBA() color.NRGBA {
	to8 := func(v float32) uint8 {
		return uint8(math.Round(float64(clamp01(v)) * 255))
	}
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LoadConfig loads a configuration from a file. The extension selects the
// codec: .json, or .yaml/.yml. Fields missing from the file keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the codec from the
// extension like LoadConfig.
func SaveConfig(config *Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock scene configuration
func DefaultConfig() *Config {
	return &Config{
		Ship: ShipConfig{
			LinearVelocity:   physics.DefaultLinearVelocity,
			RotationVelocity: physics.DefaultRotationVelocity,
			ArriveThreshold:  physics.DefaultArriveThreshold,
			Model:            "spaceship_beta",
		},
		Banking: BankingConfig{
			Mode:     physics.BankContinuous,
			Gain:     physics.DefaultBankGain,
			MaxTilt:  physics.DefaultMaxTilt,
			DeadZone: physics.DefaultBankDeadZone,
		},
		Camera: CameraConfig{
			Offset: mgl32.Vec3{0, 70, -70},
			Up:     mgl32.Vec3{0, 0, 1},
			FovY:   45,
			Near:   0.1,
			Far:    1000,
		},
		Debug: DebugConfig{
			ShowFPS:        true,
			UpdateInterval: 500 * time.Millisecond,
			HistoryLength:  20,
			FontSize:       10,
		},
		Scene: SceneConfig{
			ClearColor:        RGBA{0, 0, 0, 1},
			AmbientColor:      RGBA{1, 1, 1, 1},
			AmbientBrightness: 0.4,
			LightIlluminance:  1024,
			MarkerColor:       RGBA{0, 0.5, 1, 0.1},
			OriginMarker:      true,
			GroundSize:        64,
			GroundHeight:      -8,
		},
		Window: WindowConfig{
			Title:    "Go Glide",
			Width:    1024,
			Height:   768,
			VSync:    true,
			FPSLimit: 60,
		},
	}
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Ship.LinearVelocity <= 0 {
		errs = append(errs, fmt.Errorf("ship.linearVelocity must be positive, got %v", c.Ship.LinearVelocity))
	}
	if c.Ship.RotationVelocity <= 0 {
		errs = append(errs, fmt.Errorf("ship.rotationVelocity must be positive, got %v", c.Ship.RotationVelocity))
	}
	if c.Ship.ArriveThreshold < 0 {
		errs = append(errs, fmt.Errorf("ship.arriveThreshold must not be negative, got %v", c.Ship.ArriveThreshold))
	}
	if c.Banking.MaxTilt < 0 {
		errs = append(errs, fmt.Errorf("banking.maxTilt must not be negative, got %v", c.Banking.MaxTilt))
	}
	if c.Banking.DeadZone < 0 {
		errs = append(errs, fmt.Errorf("banking.deadZone must not be negative, got %v", c.Banking.DeadZone))
	}
	if _, err := c.Banking.Strategy(); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera.fovY must be in (0, 180), got %v", c.Camera.FovY))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera near/far must satisfy 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Up.Len() == 0 {
		errs = append(errs, errors.New("camera.up must not be the zero vector"))
	}
	if c.Debug.UpdateInterval <= 0 {
		errs = append(errs, fmt.Errorf("debug.updateInterval must be positive, got %v", c.Debug.UpdateInterval))
	}
	if c.Debug.HistoryLength <= 0 {
		errs = append(errs, fmt.Errorf("debug.historyLength must be positive, got %d", c.Debug.HistoryLength))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("window.fpsLimit must not be negative, got %d", c.Window.FPSLimit))
	}

	return errors.Join(errs...)
}

// Strategy builds the banking strategy described by the config.
func (b BankingConfig) Strategy() (physics.BankingStrategy, error) {
	return physics.NewBankingStrategy(b.Mode, b.Gain, b.MaxTilt, b.DeadZone)
}

// SteeringParams builds the steering parameters described by the config.
func (c *Config) SteeringParams() (physics.SteeringParams, error) {
	banking, err := c.Banking.Strategy()
	if err != nil {
		return physics.SteeringParams{}, err
	}
	return physics.SteeringParams{
		LinearVelocity:   c.Ship.LinearVelocity,
		RotationVelocity: c.Ship.RotationVelocity,
		ArriveThreshold:  c.Ship.ArriveThreshold,
		Banking:          banking,
	}, nil
}
