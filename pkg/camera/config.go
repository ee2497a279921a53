package camera

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config is the YAML representation of a camera's initial pose and tuning.
// Keys missing from a document keep their DefaultConfig values.
type Config struct {
	Position         []float32 `yaml:"position"`
	WorldUp          []float32 `yaml:"world_up"`
	Yaw              float32   `yaml:"yaw"`
	Pitch            float32   `yaml:"pitch"`
	MovementSpeed    float32   `yaml:"movement_speed"`
	MouseSensitivity float32   `yaml:"mouse_sensitivity"`
	Zoom             float32   `yaml:"zoom"`
}

var errZeroWorldUp = errors.New("world_up must not be the zero vector")

// DefaultConfig returns the configuration of NewDefault
func DefaultConfig() Config {
	return Config{
		Position:         []float32{0, 0, 0},
		WorldUp:          []float32{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultMovementSpeed,
		MouseSensitivity: DefaultMouseSensitivity,
		Zoom:             DefaultZoom,
	}
}

// ParseConfig decodes a YAML camera configuration
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse camera config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid camera config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML camera configuration file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read camera config file: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the vector fields have three components and world up is usable
func (cfg Config) Validate() error {
	if len(cfg.Position) != 3 {
		return fmt.Errorf("position needs 3 components, got %d", len(cfg.Position))
	}
	if len(cfg.WorldUp) != 3 {
		return fmt.Errorf("world_up needs 3 components, got %d", len(cfg.WorldUp))
	}
	if vec3(cfg.WorldUp).Len() == 0 {
		return errZeroWorldUp
	}
	return nil
}

// NewCamera creates a camera from the configuration
func (cfg Config) NewCamera() *Camera {
	return New(vec3(cfg.Position), vec3(cfg.WorldUp), cfg.Yaw, cfg.Pitch,
		WithMovementSpeed(cfg.MovementSpeed),
		WithMouseSensitivity(cfg.MouseSensitivity),
		WithZoom(cfg.Zoom),
	)
}

// ApplyTuning copies speed, sensitivity and zoom onto an existing camera
// without touching its pose
func (cfg Config) ApplyTuning(c *Camera) {
	c.SetMovementSpeed(cfg.MovementSpeed)
	c.SetMouseSensitivity(cfg.MouseSensitivity)
	c.SetZoom(cfg.Zoom)
}

func vec3(v []float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
