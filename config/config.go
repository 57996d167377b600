// Package config loads and persists stickfigure settings: figure geometry,
// animation timing, the HTTP server and the ebiten viewer. Files are YAML;
// environment variables and command-line flags override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete settings document.
type Config struct {
	Figure    FigureConfig    `yaml:"figure"`
	Animation AnimationConfig `yaml:"animation"`
	Server    ServerConfig    `yaml:"server"`
	View      ViewConfig      `yaml:"view"`
}

// FigureConfig selects and places the figure.
type FigureConfig struct {
	Kind    string  `yaml:"kind"` // "human" or "puppet"
	Scale   float64 `yaml:"scale"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

// AnimationConfig controls interpolation.
type AnimationConfig struct {
	DurationMs int    `yaml:"duration_ms"`
	Easing     string `yaml:"easing"`
	FPS        int    `yaml:"fps"`
	Sequence   string `yaml:"sequence,omitempty"` // path to a sequence file played at startup
}

// Duration returns DurationMs as a time.Duration.
func (a AnimationConfig) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

// FrameInterval returns the tick period for FPS.
func (a AnimationConfig) FrameInterval() time.Duration {
	if a.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(a.FPS)
}

// ServerConfig configures the HTTP control server.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	EnableCORS  bool     `yaml:"enable_cors"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
	FrameWidth  int      `yaml:"frame_width"`
	FrameHeight int      `yaml:"frame_height"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ViewConfig holds the viewer toggles.
type ViewConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Debug         bool   `yaml:"debug"`
	DarkMode      bool   `yaml:"dark_mode"`
	ShowFPS       bool   `yaml:"show_fps"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Figure: FigureConfig{
			Kind:    "human",
			Scale:   1,
			OriginX: 320,
			OriginY: 260,
		},
		Animation: AnimationConfig{
			DurationMs: 500,
			Easing:     "linear",
			FPS:        60,
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        9099,
			EnableCORS:  true,
			FrameWidth:  640,
			FrameHeight: 480,
		},
		View: ViewConfig{
			Width:         640,
			Height:        480,
			ShowFPS:       true,
			ScreenshotDir: "screenshots",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Figure.Kind {
	case "human", "puppet":
	default:
		return fmt.Errorf("figure.kind %q: want human or puppet", c.Figure.Kind)
	}
	if c.Figure.Scale <= 0 {
		return fmt.Errorf("figure.scale must be > 0, got %v", c.Figure.Scale)
	}
	if c.Animation.DurationMs < 0 {
		return fmt.Errorf("animation.duration_ms must be >= 0, got %d", c.Animation.DurationMs)
	}
	if c.Animation.FPS < 0 || c.Animation.FPS > 240 {
		return fmt.Errorf("animation.fps out of range: %d", c.Animation.FPS)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// ApplyEnv overrides settings from STICK_* environment variables. Values
// that fail to parse are reported and leave the setting unchanged.
func (c *Config) ApplyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str("STICK_FIGURE", &c.Figure.Kind)
	if v := os.Getenv("STICK_SCALE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("STICK_SCALE: %w", err))
		} else {
			c.Figure.Scale = f
		}
	}
	num("STICK_DURATION_MS", &c.Animation.DurationMs)
	str("STICK_EASING", &c.Animation.Easing)
	num("STICK_FPS", &c.Animation.FPS)
	str("STICK_HOST", &c.Server.Host)
	num("STICK_PORT", &c.Server.Port)
	if v := os.Getenv("STICK_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	boolean("STICK_DEBUG", &c.View.Debug)
	boolean("STICK_DARK", &c.View.DarkMode)
	return errors.Join(errs...)
}

// BindFlags registers flags on fs that write straight into c. Call after
// Load and before fs.Parse so flags win over the file.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Figure.Kind, "figure", c.Figure.Kind, "figure to animate: human or puppet")
	fs.Float64Var(&c.Figure.Scale, "scale", c.Figure.Scale, "figure scale")
	fs.IntVar(&c.Animation.DurationMs, "duration", c.Animation.DurationMs, "default transition in milliseconds")
	fs.StringVar(&c.Animation.Easing, "easing", c.Animation.Easing, "easing curve name")
	fs.IntVar(&c.Animation.FPS, "fps", c.Animation.FPS, "frames per second")
	fs.StringVar(&c.Animation.Sequence, "sequence", c.Animation.Sequence, "sequence file to play at startup")
	fs.StringVar(&c.Server.Host, "host", c.Server.Host, "listen host")
	fs.IntVar(&c.Server.Port, "port", c.Server.Port, "listen port")
	fs.BoolVar(&c.View.Debug, "debug", c.View.Debug, "draw pivots and log retargets")
	fs.BoolVar(&c.View.DarkMode, "dark", c.View.DarkMode, "dark palette")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
