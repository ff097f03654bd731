package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/milk9111/objects2d/common"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

type Window struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	Zoom   float64 `yaml:"zoom"`
}

type Physics struct {
	Gravity    [2]float64 `yaml:"gravity"`
	Iterations int        `yaml:"iterations"`
}

type Frame struct {
	// Measured uses the wall clock for the frame delta instead of 1/TPS.
	Measured bool    `yaml:"measured"`
	MaxDelta float64 `yaml:"max_delta"`
}

type Debug struct {
	Hitboxes bool `yaml:"hitboxes"`
	Space    bool `yaml:"space"`
}

type Scripts struct {
	// Dir holds a scripts/ directory overriding the embedded scripts.
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

type Config struct {
	Window   Window  `yaml:"window"`
	Physics  Physics `yaml:"physics"`
	Frame    Frame   `yaml:"frame"`
	Debug    Debug   `yaml:"debug"`
	Scripts  Scripts `yaml:"scripts"`
	LogLevel string  `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  common.BaseWidth,
			Height: common.BaseHeight,
			Title:  "objects2d",
			Zoom:   1,
		},
		Physics: Physics{
			Gravity:    [2]float64{0, common.DefaultGravity},
			Iterations: 10,
		},
		Frame: Frame{
			MaxDelta: common.MaxDelta,
		},
		Scripts: Scripts{
			Dir: "script",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Window.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("%w: zoom %g", ErrInvalid, c.Window.Zoom))
	}
	if c.Physics.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("%w: iterations %d", ErrInvalid, c.Physics.Iterations))
	}
	if c.Frame.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_delta %g", ErrInvalid, c.Frame.MaxDelta))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, info when unset.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
