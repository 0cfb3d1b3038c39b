package impulse

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Defaults and hard limits for world configuration. Invalid values are
// clamped, never rejected.
const (
	defaultTimeStep      = 1.0 / 60.0
	defaultVelocityIters = 8
	defaultPositionIters = 3
	defaultMaxFrameDelta = 0.25
	maxTimeStep          = 1.0
)

// Config holds the tunable parameters of a World. Zero values mean "use the
// default", so a partially filled literal or YAML document works.
type Config struct {
	Gravity            Vector2 `yaml:"gravity"`
	TimeStep           float64 `yaml:"time_step"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	CellSize           float64 `yaml:"cell_size"`
	// MaxFrameDelta clamps the frame delta fed into the accumulator so a
	// stalled frame cannot trigger a spiral of catch-up steps.
	MaxFrameDelta float64 `yaml:"max_frame_delta"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:            Vector2{X: 0, Y: -9.81},
		TimeStep:           defaultTimeStep,
		VelocityIterations: defaultVelocityIters,
		PositionIterations: defaultPositionIters,
		CellSize:           defaultCellSize,
		MaxFrameDelta:      defaultMaxFrameDelta,
	}
}

// sanitize clamps every field into its safe range.
func (c *Config) sanitize() {
	if c.TimeStep <= 0 {
		c.TimeStep = defaultTimeStep
	}
	if c.TimeStep > maxTimeStep {
		c.TimeStep = maxTimeStep
	}
	if c.VelocityIterations < 1 {
		c.VelocityIterations = defaultVelocityIters
	}
	if c.PositionIterations < 1 {
		c.PositionIterations = defaultPositionIters
	}
	if c.CellSize <= 0 {
		c.CellSize = defaultCellSize
	}
	if c.MaxFrameDelta <= 0 {
		c.MaxFrameDelta = defaultMaxFrameDelta
	}
}

// LoadConfig reads a YAML config document. Missing fields fall back to
// defaults; out-of-range values are clamped.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}
