package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the application configuration. The zero value is not usable;
// start from Default.
type Config struct {
	// SampleInterval is the minimum time in seconds between two samples
	// appended to a stroke.
	SampleInterval float64 `toml:"sample_interval"`
	// TickRate is the update frequency in Hz.
	TickRate   int     `toml:"tick_rate"`
	BrushWidth float32 `toml:"brush_width"`
	// Color is a CSS/SVG color name.
	Color string `toml:"color"`

	Window  WindowConfig  `toml:"window"`
	Surface SurfaceConfig `toml:"surface"`
	Remote  RemoteConfig  `toml:"remote"`
	Log     LogConfig     `toml:"log"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// SurfaceConfig bounds the drawable area of the board in widget
// coordinates. Leaving the area counts as losing focus.
type SurfaceConfig struct {
	X      float32 `toml:"x"`
	Y      float32 `toml:"y"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// RemoteConfig controls the websocket pointer feed.
type RemoteConfig struct {
	Enabled   bool   `toml:"enabled"`
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
}

type LogConfig struct {
	Level string `toml:"level"`
	// File enables rotating file output when set.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

func Default() Config {
	return Config{
		SampleInterval: 0.02,
		TickRate:       60,
		BrushWidth:     0.5,
		Color:          "black",
		Window:         WindowConfig{Width: 1024, Height: 768},
		Surface:        SurfaceConfig{Width: 1000, Height: 700},
		Remote:         RemoteConfig{Listen: ":8888", Advertise: true},
		Log:            LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3},
	}
}

// Load reads a TOML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case !(c.SampleInterval > 0):
		return fmt.Errorf("%w: sample_interval must be positive, got %v", ErrInvalid, c.SampleInterval)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	case c.BrushWidth <= 0:
		return fmt.Errorf("%w: brush_width must be positive, got %v", ErrInvalid, c.BrushWidth)
	case c.Surface.Width <= 0 || c.Surface.Height <= 0:
		return fmt.Errorf("%w: surface must have a positive size", ErrInvalid)
	case c.Remote.Enabled && c.Remote.Listen == "":
		return fmt.Errorf("%w: remote.listen is required when the feed is enabled", ErrInvalid)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return err
	}
	return nil
}

// BrushColor resolves Color. It must only be called on a validated config.
func (c Config) BrushColor() color.Color {
	col, _ := ParseColor(c.Color)
	return col
}

// ParseColor looks up a color name such as "black" or "cornflowerblue".
func ParseColor(name string) (color.RGBA, error) {
	col, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: unknown color %q", ErrInvalid, name)
	}
	return col, nil
}
