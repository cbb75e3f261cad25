package screen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the construction-time configuration of a Screen. The grid size
// and UIOnly fix the topology; the drawn-characters and window sizes only
// affect projection and can be changed later.
type Config struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	CharactersDrawnX int `toml:"characters_drawn_x" yaml:"characters_drawn_x"`
	CharactersDrawnY int `toml:"characters_drawn_y" yaml:"characters_drawn_y"`
	WindowWidth      int `toml:"window_width" yaml:"window_width"`
	WindowHeight     int `toml:"window_height" yaml:"window_height"`

	// UIOnly collapses the three layers into one; every item lands on it.
	UIOnly bool `toml:"ui_only" yaml:"ui_only"`
	// Debug turns usage errors and attribute problems into returned errors.
	// Without it they are logged and the call degrades to a no-op or a default.
	Debug bool `toml:"debug" yaml:"debug"`

	QueueCapacity int `toml:"queue_capacity" yaml:"queue_capacity"`
}

// DefaultConfig is an 80×25 screen drawn with 8×16 pixel cells.
func DefaultConfig() Config {
	return Config{
		Width:            80,
		Height:           25,
		CharactersDrawnX: 80,
		CharactersDrawnY: 25,
		WindowWidth:      640,
		WindowHeight:     400,
		QueueCapacity:    50,
	}
}

// Layers returns how many layers the configured grid has.
func (c Config) Layers() int {
	if c.UIOnly {
		return 1
	}
	return int(LayerCount)
}

// PoolSize is the number of records preallocated: one per cell on every
// layer, plus one.
func (c Config) PoolSize() int {
	return c.Width*c.Height*c.Layers() + 1
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d must be positive", c.Width, c.Height))
	}
	if c.CharactersDrawnX <= 0 || c.CharactersDrawnY <= 0 {
		errs = append(errs, fmt.Errorf("characters drawn %dx%d must be positive", c.CharactersDrawnX, c.CharactersDrawnY))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight))
	}
	if c.QueueCapacity < 0 {
		errs = append(errs, fmt.Errorf("queue capacity %d must not be negative", c.QueueCapacity))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid screen config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfig reads a TOML or YAML file, picked by extension, over the
// defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format ("toml", "yaml" or "yml",
// with or without a leading dot) over the defaults.
func ParseConfig(data []byte, format string) (*Config, error) {
	cfg := DefaultConfig()
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
