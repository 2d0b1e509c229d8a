package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/herogrid/internal/engine"
	"github.com/san-kum/herogrid/internal/explode"
	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/physics"
)

const (
	DefaultFPS        = 60
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
	DefaultTheme      = "mono"
)

type Config struct {
	Layout      []layout.Tier     `yaml:"layout"`
	Physics     physics.Params    `yaml:"physics"`
	Interaction InteractionConfig `yaml:"interaction"`
	Explosion   ExplosionConfig   `yaml:"explosion"`
	Display     DisplayConfig     `yaml:"display"`
}

type InteractionConfig struct {
	Threshold      int           `yaml:"threshold"`
	ResetDelay     time.Duration `yaml:"reset_delay"`
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
}

type ExplosionConfig struct {
	Distance float64       `yaml:"distance"`
	Duration time.Duration `yaml:"duration"`
}

// DisplayConfig configures the hosts. Terminal cells are mapped to pixels
// with CellWidth x CellHeight so the physics keeps its pixel units.
type DisplayConfig struct {
	FPS        int     `yaml:"fps"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Theme      string  `yaml:"theme"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Layout:  append([]layout.Tier(nil), layout.Default...),
		Physics: physics.DefaultParams(),
		Interaction: InteractionConfig{
			Threshold:      input.DefaultThreshold,
			ResetDelay:     input.DefaultResetDelay,
			ResizeDebounce: engine.DefaultResizeDebounce,
		},
		Explosion: ExplosionConfig{
			Distance: explode.DefaultDistance,
			Duration: explode.DefaultDuration,
		},
		Display: DisplayConfig{
			FPS:        DefaultFPS,
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
			Theme:      DefaultTheme,
			Width:      1280,
			Height:     720,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var ErrInvalid = errors.New("invalid config")

func (c *Config) Validate() error {
	if len(c.Layout) == 0 {
		return fmt.Errorf("%w: layout needs at least one tier", ErrInvalid)
	}
	prev := 0.0
	for i, t := range c.Layout {
		if t.ItemSize <= 0 || t.Gap < 0 || t.Padding < 0 {
			return fmt.Errorf("%w: layout tier %d has non-positive geometry", ErrInvalid, i)
		}
		last := i == len(c.Layout)-1
		if !last && t.MaxWidth <= prev {
			return fmt.Errorf("%w: layout tier %d max_width must increase", ErrInvalid, i)
		}
		prev = t.MaxWidth
	}
	if c.Interaction.Threshold < 2 {
		return fmt.Errorf("%w: threshold must be at least 2, got %d", ErrInvalid, c.Interaction.Threshold)
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping >= 1 {
		return fmt.Errorf("%w: damping must be in (0, 1), got %f", ErrInvalid, c.Physics.Damping)
	}
	if c.Physics.Ceiling <= 0 {
		return fmt.Errorf("%w: max_offset must be positive", ErrInvalid)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.Display.FPS)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size must be positive", ErrInvalid)
	}
	return nil
}

// Settings converts the file format into engine settings.
func (c *Config) Settings() engine.Settings {
	p := c.Physics
	p.Threshold = c.Interaction.Threshold
	return engine.Settings{
		Tiers:           layout.Tiers(c.Layout),
		Physics:         p,
		ResetDelay:      c.Interaction.ResetDelay,
		ResizeDebounce:  c.Interaction.ResizeDebounce,
		ExplodeDistance: c.Explosion.Distance,
		ExplodeDuration: c.Explosion.Duration,
	}
}

// FrameInterval is the time between display refreshes.
func (c *Config) FrameInterval() time.Duration {
	if c.Display.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Display.FPS)
}
