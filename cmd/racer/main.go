package main

import (
	"flag"
	"fmt"
	"os"

	"racer/internal/config"
	"racer/internal/game"
	"racer/internal/logging"
	"racer/internal/track"
	"racer/internal/tui"
)

var (
	configPath = flag.String("config", "", "Path to a racer.{yaml,json,toml} file (default: $RACER_CONFIG or ./racer.*)")
	frontend   = flag.String("frontend", "", "Override the front-end: desktop or terminal")
	camera     = flag.String("camera", "", "Override the camera mode: scroll or fixed")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "racer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *frontend != "" || *camera != "" {
		if *frontend != "" {
			cfg.Frontend = *frontend
		}
		if *camera != "" {
			cfg.Camera = *camera
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
	}

	log, closer, err := logging.Setup(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cfg.Frontend != config.FrontendTerminal,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().
		Str("frontend", cfg.Frontend).
		Str("camera", cfg.Camera).
		Uint64("seed", cfg.Seed).
		Msg("starting")

	m, err := track.Generate(cfg.TrackSpec(), cfg.Seed)
	if err != nil {
		log.Error().Err(err).Msg("track generation failed")
		return fmt.Errorf("track: %w", err)
	}

	switch cfg.Frontend {
	case config.FrontendTerminal:
		err = tui.Run(cfg, m, log)
	default:
		err = game.RunDesktop(cfg, m, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("front-end failed")
		return err
	}
	log.Info().Msg("bye")
	return nil
}
