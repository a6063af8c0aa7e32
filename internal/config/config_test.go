package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/sim"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv(EnvConfig, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, FrontendDesktop, cfg.Frontend)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, "scroll", cfg.Camera)
	assert.Equal(t, 1280, cfg.Screen.Width)
	assert.Equal(t, 720, cfg.Screen.Height)
	assert.Equal(t, 40.0, cfg.Car.Width)
	assert.Equal(t, 80.0, cfg.Car.Height)
	assert.Equal(t, 5.0, cfg.Finish.Thickness)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, sim.DefaultTuning(), cfg.Tuning())
	assert.Equal(t, Default(), cfg)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Setenv(EnvConfig, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "racer.yaml")
	body := `
logLevel: debug
frontend: terminal
camera: fixed
physics:
  maxSpeed: 800
  friction: 0.25
track:
  cols: 40
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, FrontendTerminal, cfg.Frontend)
	assert.Equal(t, sim.CameraFixed, cfg.CameraMode())
	assert.Equal(t, 800.0, cfg.Physics.MaxSpeed)
	assert.Equal(t, 0.25, cfg.Physics.Friction)
	assert.Equal(t, 40, cfg.Track.Cols)
	// untouched keys keep their defaults
	assert.Equal(t, 450.0, cfg.Physics.TurnSpeed)
	assert.Equal(t, 64, cfg.Track.Rows)
}

func TestLoad_PathFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"seed": 42}`), 0644))
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("RACER_FRONTEND", "terminal")
	t.Setenv("RACER_PHYSICS_MAXSPEED", "750")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, FrontendTerminal, cfg.Frontend)
	assert.Equal(t, 750.0, cfg.Physics.MaxSpeed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/racer.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv(EnvConfig, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "racer.toml")
	require.NoError(t, os.WriteFile(path, []byte("camera = \"orbit\"\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown frontend", func(c *Config) { c.Frontend = "web" }, "frontend"},
		{"zero max speed", func(c *Config) { c.Physics.MaxSpeed = 0 }, "physics.maxSpeed"},
		{"negative friction", func(c *Config) { c.Physics.Friction = -1 }, "physics.friction"},
		{"zero friction allowed", func(c *Config) { c.Physics.Friction = 0 }, ""},
		{"zero screen", func(c *Config) { c.Screen.Height = 0 }, "screen.height"},
		{"car larger than screen", func(c *Config) { c.Car.Height = 1000 }, "car"},
		{"car fits only unrotated", func(c *Config) {
			c.Screen.Width, c.Screen.Height = 200, 120
			c.Car.Width, c.Car.Height = 90, 90
		}, "diagonal"},
		{"small screen, car fits turned", func(c *Config) {
			c.Screen.Width, c.Screen.Height = 200, 100
		}, ""},
		{"loud", func(c *Config) { c.Audio.Volume = 1.5 }, "audio.volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRaceOptions(t *testing.T) {
	cfg := Default()
	cfg.Camera = "fixed"
	opts := cfg.RaceOptions()

	assert.Equal(t, sim.Vec2{X: 1280, Y: 720}, opts.Screen)
	assert.Equal(t, 40.0, opts.CarWidth)
	assert.Equal(t, 80.0, opts.CarLength)
	assert.Equal(t, sim.CameraFixed, opts.Camera)
	assert.Equal(t, sim.DefaultTuning(), opts.Tuning)

	spec := cfg.TrackSpec()
	assert.Equal(t, 32, spec.TileSize)
	assert.Equal(t, 5.0, spec.FinishThickness)
}
