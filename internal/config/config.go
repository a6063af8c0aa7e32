package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"

	"racer/internal/race"
	"racer/internal/sim"
	"racer/internal/track"
)

// EnvConfig names the environment variable holding an explicit config path.
const EnvConfig = "RACER_CONFIG"

const (
	FrontendDesktop  = "desktop"
	FrontendTerminal = "terminal"
)

type ScreenConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// CarConfig is the car size in its reference orientation, nose up.
type CarConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type PhysicsConfig struct {
	MaxSpeed       float64 `mapstructure:"maxSpeed"`
	TurnSpeed      float64 `mapstructure:"turnSpeed"`
	EaseIn         float64 `mapstructure:"easeIn"`
	Response       float64 `mapstructure:"response"`
	TurnBleedTime  float64 `mapstructure:"turnBleedTime"`
	BrakeRate      float64 `mapstructure:"brakeRate"`
	Friction       float64 `mapstructure:"friction"`
	StopThreshold  float64 `mapstructure:"stopThreshold"`
	TurnMultiplier float64 `mapstructure:"turnMultiplier"`
}

type TrackConfig struct {
	TileSize  int `mapstructure:"tileSize"`
	Cols      int `mapstructure:"cols"`
	Rows      int `mapstructure:"rows"`
	RoadWidth int `mapstructure:"roadWidth"`
}

type FinishConfig struct {
	Thickness float64 `mapstructure:"thickness"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// Config is the fully resolved runtime configuration.
type Config struct {
	LogLevel string        `mapstructure:"logLevel"`
	LogFile  string        `mapstructure:"logFile"`
	Frontend string        `mapstructure:"frontend"`
	Seed     uint64        `mapstructure:"seed"`
	Camera   string        `mapstructure:"camera"`
	Screen   ScreenConfig  `mapstructure:"screen"`
	Car      CarConfig     `mapstructure:"car"`
	Physics  PhysicsConfig `mapstructure:"physics"`
	Track    TrackConfig   `mapstructure:"track"`
	Finish   FinishConfig  `mapstructure:"finish"`
	Audio    AudioConfig   `mapstructure:"audio"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("frontend", FrontendDesktop)
	v.SetDefault("seed", 1)
	v.SetDefault("camera", sim.CameraScroll.String())

	v.SetDefault("screen.width", 1280)
	v.SetDefault("screen.height", 720)
	v.SetDefault("screen.title", "Racer")

	v.SetDefault("car.width", 40)
	v.SetDefault("car.height", 80)

	t := sim.DefaultTuning()
	v.SetDefault("physics.maxSpeed", t.MaxSpeed)
	v.SetDefault("physics.turnSpeed", t.TurnSpeed)
	v.SetDefault("physics.easeIn", t.EaseIn)
	v.SetDefault("physics.response", t.Response)
	v.SetDefault("physics.turnBleedTime", t.TurnBleedTime)
	v.SetDefault("physics.brakeRate", t.BrakeRate)
	v.SetDefault("physics.friction", t.Friction)
	v.SetDefault("physics.stopThreshold", t.StopThreshold)
	v.SetDefault("physics.turnMultiplier", t.TurnMultiplier)

	v.SetDefault("track.tileSize", 32)
	v.SetDefault("track.cols", 96)
	v.SetDefault("track.rows", 64)
	v.SetDefault("track.roadWidth", 7)

	v.SetDefault("finish.thickness", 5)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.6)
}

// Default returns the compiled-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load resolves configuration from defaults, an optional file and RACER_*
// environment overrides. An empty path falls back to $RACER_CONFIG, then to
// racer.{yaml,json,toml} in the working directory. Only an explicitly named
// file is required to exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RACER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("racer")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects sizes and rates that would break the simulation.
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendDesktop, FrontendTerminal:
	default:
		return fmt.Errorf("frontend: unknown value %q", c.Frontend)
	}
	if _, err := sim.ParseCameraMode(c.Camera); err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	positive := []struct {
		key string
		val float64
	}{
		{"screen.width", float64(c.Screen.Width)},
		{"screen.height", float64(c.Screen.Height)},
		{"car.width", c.Car.Width},
		{"car.height", c.Car.Height},
		{"physics.maxSpeed", c.Physics.MaxSpeed},
		{"physics.turnSpeed", c.Physics.TurnSpeed},
		{"physics.easeIn", c.Physics.EaseIn},
		{"physics.response", c.Physics.Response},
		{"physics.brakeRate", c.Physics.BrakeRate},
		{"physics.turnMultiplier", c.Physics.TurnMultiplier},
		{"track.tileSize", float64(c.Track.TileSize)},
		{"track.cols", float64(c.Track.Cols)},
		{"track.rows", float64(c.Track.Rows)},
		{"track.roadWidth", float64(c.Track.RoadWidth)},
		{"finish.thickness", c.Finish.Thickness},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%s: must be positive, got %v", p.key, p.val)
		}
	}

	if c.Physics.Friction < 0 {
		return fmt.Errorf("physics.friction: must not be negative, got %v", c.Physics.Friction)
	}
	if c.Physics.StopThreshold < 0 {
		return fmt.Errorf("physics.stopThreshold: must not be negative, got %v", c.Physics.StopThreshold)
	}
	if c.Physics.TurnBleedTime < 0 {
		return fmt.Errorf("physics.turnBleedTime: must not be negative, got %v", c.Physics.TurnBleedTime)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume: must be within [0, 1], got %v", c.Audio.Volume)
	}
	// The car turns freely, so its diagonal has to fit either way round.
	if d := math.Hypot(c.Car.Width, c.Car.Height); d > float64(min(c.Screen.Width, c.Screen.Height)) {
		return fmt.Errorf("car: %vx%v (diagonal %.0f) does not fit the %dx%d screen at every heading",
			c.Car.Width, c.Car.Height, d, c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// Tuning converts the physics block for the simulation.
func (c Config) Tuning() sim.Tuning {
	p := c.Physics
	return sim.Tuning{
		MaxSpeed:       p.MaxSpeed,
		TurnSpeed:      p.TurnSpeed,
		EaseIn:         p.EaseIn,
		Response:       p.Response,
		TurnBleedTime:  p.TurnBleedTime,
		BrakeRate:      p.BrakeRate,
		Friction:       p.Friction,
		StopThreshold:  p.StopThreshold,
		TurnMultiplier: p.TurnMultiplier,
	}
}

// CameraMode returns the parsed camera setting. Validate has already
// rejected unknown names, so the error is dropped.
func (c Config) CameraMode() sim.CameraMode {
	m, _ := sim.ParseCameraMode(c.Camera)
	return m
}

// TrackSpec is the map layout to generate.
func (c Config) TrackSpec() track.Spec {
	return track.Spec{
		TileSize:        c.Track.TileSize,
		Cols:            c.Track.Cols,
		Rows:            c.Track.Rows,
		RoadWidth:       c.Track.RoadWidth,
		FinishThickness: c.Finish.Thickness,
	}
}

// RaceOptions describes the session the front-ends run.
func (c Config) RaceOptions() race.Options {
	return race.Options{
		Screen:    sim.Vec2{X: float64(c.Screen.Width), Y: float64(c.Screen.Height)},
		CarWidth:  c.Car.Width,
		CarLength: c.Car.Height,
		Camera:    c.CameraMode(),
		Tuning:    c.Tuning(),
	}
}
