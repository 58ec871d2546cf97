// Package config holds the orrery's host settings: window, assets, camera,
// debug overlay and logging. Values come from Default, then an optional TOML
// file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of host settings.
type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Camera CameraConfig `toml:"camera"`
	Debug  DebugConfig  `toml:"debug"`
	Log    LogConfig    `toml:"log"`
}

// WindowConfig sizes and titles the window.
type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Resizable bool   `toml:"resizable"`
	Title     string `toml:"title"`
}

// AssetsConfig locates textures and the optional model.
type AssetsConfig struct {
	Dir            string `toml:"dir"`
	Model          string `toml:"model"` // optional glTF or GLB path
	MaxTextureSize int    `toml:"max_texture_size"`
}

// CameraConfig is the initial camera and its orbit damping.
type CameraConfig struct {
	Fov           float32    `toml:"fov"` // vertical, degrees
	Near          float32    `toml:"near"`
	Far           float32    `toml:"far"`
	Position      [3]float32 `toml:"position"`
	Damping       bool       `toml:"damping"`
	DampingFactor float32    `toml:"damping_factor"`
}

// DebugConfig toggles the ImGui overlay.
type DebugConfig struct {
	UI bool `toml:"ui"`
}

// LogConfig sets the slog level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Resizable: true,
			Title:     "Orrery",
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			MaxTextureSize: 2048,
		},
		Camera: CameraConfig{
			Fov:           75,
			Near:          0.1,
			Far:           1000,
			Position:      [3]float32{-90, 140, 140},
			DampingFactor: 0.05,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load returns Default overlaid with the TOML file at path. An empty path
// loads nothing. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// decodeFile overlays the TOML file at path onto cfg without validating.
func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Decode overlays TOML from r onto cfg. Keys cfg has no field for are an
// error.
func Decode(r io.Reader, cfg *Config) error {
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
	}
	var decode *toml.DecodeError
	if errors.As(err, &decode) {
		row, col := decode.Position()
		return fmt.Errorf("%w: line %d column %d: %s", ErrInvalid, row, col, decode.Error())
	}
	return err
}

// Validate reports every out-of-range value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0, "window.width must be positive, got %d", c.Window.Width)
	check(c.Window.Height > 0, "window.height must be positive, got %d", c.Window.Height)
	check(c.Assets.Dir != "", "assets.dir must be set")
	check(c.Assets.MaxTextureSize > 0, "assets.max_texture_size must be positive, got %d", c.Assets.MaxTextureSize)
	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera.fov must be in (0, 180), got %g", c.Camera.Fov)
	check(c.Camera.Near > 0, "camera.near must be positive, got %g", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far (%g) must exceed camera.near (%g)", c.Camera.Far, c.Camera.Near)
	check(c.Camera.DampingFactor > 0 && c.Camera.DampingFactor <= 1,
		"camera.damping_factor must be in (0, 1], got %g", c.Camera.DampingFactor)

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// SlogLevel parses Level as a slog level name such as "debug" or "warn".
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
