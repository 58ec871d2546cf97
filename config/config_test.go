package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/orrery/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orrery.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.True(t, cfg.Window.Resizable)
	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{-90, 140, 140}, cfg.Camera.Position)
	assert.False(t, cfg.Camera.Damping)
	assert.Equal(t, 2048, cfg.Assets.MaxTextureSize)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800
resizable = false

[camera]
position = [0.0, 10.0, 20.0]
damping = true

[log]
level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "keys absent from the file keep their defaults")
	assert.False(t, cfg.Window.Resizable)
	assert.Equal(t, [3]float32{0, 10, 20}, cfg.Camera.Position)
	assert.True(t, cfg.Camera.Damping)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := config.Default()
	err := config.Decode(strings.NewReader("[window]\nfullscreen = true\n"), &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "fullscreen")
}

func TestDecodeRejectsBadSyntax(t *testing.T) {
	cfg := config.Default()
	err := config.Decode(strings.NewReader("[window\nwidth = 1\n"), &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero width", func(c *config.Config) { c.Window.Width = 0 }, "window.width"},
		{"negative height", func(c *config.Config) { c.Window.Height = -1 }, "window.height"},
		{"no asset dir", func(c *config.Config) { c.Assets.Dir = "" }, "assets.dir"},
		{"texture size", func(c *config.Config) { c.Assets.MaxTextureSize = 0 }, "max_texture_size"},
		{"fov", func(c *config.Config) { c.Camera.Fov = 180 }, "camera.fov"},
		{"near", func(c *config.Config) { c.Camera.Near = 0 }, "camera.near"},
		{"far before near", func(c *config.Config) { c.Camera.Far = 0.05 }, "camera.far"},
		{"damping factor", func(c *config.Config) { c.Camera.DampingFactor = 2 }, "damping_factor"},
		{"log level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Width = 0
	cfg.Window.Height = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.width")
	assert.Contains(t, err.Error(), "window.height")
}

func TestParseFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "[window]\nwidth = 800\nheight = 600\n\n[assets]\ndir = \"from-file\"\n")

	cfg, err := config.Parse("orrery", []string{
		"-config", path,
		"-height", "480",
		"-debug-ui",
		"-resizable=false",
		"-model", "creature.glb",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, "from-file", cfg.Assets.Dir, "unset flags do not clobber file values")
	assert.Equal(t, "creature.glb", cfg.Assets.Model)
	assert.True(t, cfg.Debug.UI)
	assert.False(t, cfg.Window.Resizable)
}

func TestParseWithoutFile(t *testing.T) {
	cfg, err := config.Parse("orrery", []string{"-assets", "textures", "-log-level", "warn"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "textures", cfg.Assets.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := config.Parse("orrery", []string{"-width", "0"}, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Parse("orrery", []string{"extra"}, io.Discard)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Parse("orrery", []string{"-no-such-flag"}, io.Discard)
	assert.Error(t, err)
}

func TestParseFlagFixesFileValue(t *testing.T) {
	path := writeConfig(t, "[window]\nwidth = 0\n")

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalid)

	cfg, err := config.Parse("orrery", []string{"-config", path, "-width", "800"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)

	_, err = config.Parse("orrery", []string{"-config", path}, io.Discard)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
