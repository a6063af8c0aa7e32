// Package tui runs the race in a terminal.
package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"racer/internal/config"
	"racer/internal/race"
	"racer/internal/sim"
	"racer/internal/sound"
	"racer/internal/track"
)

const frameInterval = 16 * time.Millisecond

// app is one terminal session: screen, race and input state.
type app struct {
	session *race.Session
	view    *view
	holds   *holds
	clock   sim.Clock
	audio   *player
	maxSpd  float64
	last    time.Time
	log     zerolog.Logger

	lapDone, bestLap bool
	unsubscribe      []func()
}

// Run takes over the terminal and races until the player quits.
func Run(cfg config.Config, m *track.Map, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	var audio *player
	if cfg.Audio.Enabled {
		audio, err = newPlayer(cfg.Audio.Volume)
		if err != nil {
			// Non-fatal, the race runs without sound.
			log.Warn().Err(err).Msg("audio init failed, continuing without sound")
			audio = nil
		}
	}
	defer audio.close()

	a := newApp(screen, cfg, m, sim.SystemClock{}, audio, log)
	return a.run(screen)
}

func newApp(screen tcell.Screen, cfg config.Config, m *track.Map, clock sim.Clock, audio *player, log zerolog.Logger) *app {
	opts := cfg.RaceOptions()
	a := &app{
		session: race.NewSession(m, opts, clock, log),
		view: &view{
			screen: screen,
			m:      m,
			st:     newStyles(track.DefaultPalette()),
			size:   opts.Screen,
		},
		holds:  newHolds(),
		clock:  clock,
		audio:  audio,
		maxSpd: opts.Tuning.MaxSpeed,
		last:   clock.Now(),
		log:    log,
	}
	a.subscribe()
	return a
}

func (a *app) subscribe() {
	ev := a.session.Events
	a.unsubscribe = append(a.unsubscribe,
		ev.Subscribe(race.EventLapCompleted, func(race.Event) {
			a.lapDone = true
		}),
		ev.Subscribe(race.EventBestLap, func(race.Event) {
			a.bestLap = true
		}),
		ev.Subscribe(race.EventBoundaryHit, func(race.Event) {
			a.audio.play(sound.Bump)
		}),
		ev.Subscribe(race.EventPhaseChanged, func(e race.Event) {
			switch e.Phase {
			case race.PhaseRacing:
				a.audio.play(sound.Start)
			case race.PhasePaused:
				a.audio.play(sound.Pause)
			}
		}),
	)
}

// detach stops session events reaching the app before the speaker closes.
func (a *app) detach() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}

func (a *app) run(screen tcell.Screen) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)
	defer a.detach()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.view.draw(a.session)
	for {
		select {
		case ev := <-events:
			if ev == nil || !a.handleEvent(ev) {
				a.log.Info().
					Int("laps", a.session.State.Lap.Count).
					Float64("best", a.session.State.Lap.Best).
					Msg("terminal closed")
				return nil
			}
		case <-ticker.C:
			a.tick()
			a.view.draw(a.session)
		}
	}
}

// handleEvent applies one terminal event. It returns false to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := a.clock.Now()
		switch act := actionFor(ev); act {
		case actQuit:
			return false
		case actStart:
			a.session.Start()
		case actPause:
			a.session.TogglePause()
			a.holds.clear()
		case actReset:
			a.session.Reset()
			a.holds.clear()
		case actNone:
		default:
			a.holds.press(act, now)
		}
	case *tcell.EventResize:
		a.view.screen.Sync()
	}
	return true
}

// tick advances the race by the wall time since the previous tick.
func (a *app) tick() sim.Outcome {
	now := a.clock.Now()
	dt := now.Sub(a.last).Seconds()
	a.last = now

	in := a.holds.intent(now)
	out := a.session.Frame(in, dt)

	// A new best lap plays its fanfare instead of the plain chime.
	switch {
	case a.bestLap:
		a.audio.play(sound.BestLap)
	case a.lapDone:
		a.audio.play(sound.Lap)
	}
	a.lapDone, a.bestLap = false, false

	v := a.session.State.Vehicle
	a.audio.setEngine(math.Abs(v.Speed)/a.maxSpd, in.Forward || in.Backward, a.session.Phase == race.PhaseRacing)
	return out
}
