package rendergraph

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/rendergraph/resource"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("rendergraph: invalid config")

// Duration is a time.Duration written as a string such as "2s" in config
// files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config describes a graph and the frames to run, as loaded from a TOML
// file:
//
//	width = 1280
//	height = 720
//	render_scale = 0.5
//	passes = ["shadow", "geometry", "lighting", "composite"]
//	frames = 3
//	frame_timeout = "2s"
//	log_level = "debug"
type Config struct {
	Width           uint32                `toml:"width"`
	Height          uint32                `toml:"height"`
	RenderScale     float32               `toml:"render_scale"`
	ContinueOnError bool                  `toml:"continue_on_error"`
	PruneStale      bool                  `toml:"prune_stale"`
	LogLevel        slog.Level            `toml:"log_level"`
	ShaderFormat    resource.ShaderFormat `toml:"shader_format"`
	ShaderCache     int                   `toml:"shader_cache"`
	ShadowMapSize   uint32                `toml:"shadow_map_size"`
	Passes          []string              `toml:"passes"`
	Frames          int                   `toml:"frames"`
	FrameTimeout    Duration              `toml:"frame_timeout"`
}

// DefaultConfig returns the configuration used for fields a file omits.
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		RenderScale:   1,
		PruneStale:    true,
		LogLevel:      slog.LevelInfo,
		ShaderFormat:  resource.ShaderWGSL,
		ShaderCache:   resource.DefaultShaderCacheSize,
		ShadowMapSize: 1024,
		Frames:        1,
		FrameTimeout:  Duration(5 * time.Second),
	}
}

// LoadConfig reads and validates the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return Config{}, fmt.Errorf("rendergraph: load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("rendergraph: load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.RenderScale <= 0:
		return fmt.Errorf("%w: render_scale %g", ErrInvalidConfig, c.RenderScale)
	case c.ShaderCache < 0:
		return fmt.Errorf("%w: shader_cache %d", ErrInvalidConfig, c.ShaderCache)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalidConfig, c.Frames)
	case c.FrameTimeout < 0:
		return fmt.Errorf("%w: frame_timeout %v", ErrInvalidConfig, time.Duration(c.FrameTimeout))
	}
	seen := make(map[string]bool, len(c.Passes))
	for _, p := range c.Passes {
		if seen[p] {
			return fmt.Errorf("%w: pass %q listed twice", ErrInvalidConfig, p)
		}
		seen[p] = true
	}
	return nil
}

// Viewport returns the output viewport.
func (c Config) Viewport() Viewport {
	return NewViewport(c.Width, c.Height)
}

// Options returns the graph options the configuration selects.
func (c Config) Options() []GraphOption {
	return []GraphOption{
		WithRenderScale(c.RenderScale),
		WithContinueOnError(c.ContinueOnError),
		WithPruneStale(c.PruneStale),
	}
}

// FactoryConfig returns the resource factory configuration.
func (c Config) FactoryConfig() resource.FactoryConfig {
	return resource.FactoryConfig{ShaderFormat: c.ShaderFormat, ShaderCacheSize: c.ShaderCache}
}
