package race

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"racer/internal/sim"
	"racer/internal/track"
)

type Phase int

const (
	PhaseReady  Phase = iota // car on the grid, waiting for Start
	PhaseRacing              // simulation running
	PhasePaused              // frozen, lap clock stopped
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRacing:
		return "racing"
	case PhasePaused:
		return "paused"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MaxFrameDT caps a single step so a stalled frame cannot tunnel the car
// through the finish line or the screen edge.
const MaxFrameDT = 0.1

// Options describe a session independent of any front-end.
type Options struct {
	Screen    sim.Vec2
	CarWidth  float64
	CarLength float64
	Camera    sim.CameraMode
	Tuning    sim.Tuning
}

// Session owns one run on a map: the simulation state, its clock, the race
// phase and the event bus front-ends listen on.
type Session struct {
	Phase  Phase
	State  sim.State
	Tuning sim.Tuning
	Events *EventBus

	setup    sim.Setup
	clock    sim.Clock
	log      zerolog.Logger
	pausedAt time.Time
	bumping  bool
}

// NewSession places the car on the start of m so that the finish line sits
// just behind it, whichever camera mode is in use.
func NewSession(m *track.Map, opts Options, clock sim.Clock, log zerolog.Logger) *Session {
	start := m.StartFor(opts.CarLength)
	center := sim.Vec2{X: opts.Screen.X / 2, Y: opts.Screen.Y / 2}
	offset := center.Sub(start)

	setup := sim.Setup{
		Screen:    opts.Screen,
		CarWidth:  opts.CarWidth,
		CarLength: opts.CarLength,
		Camera:    opts.Camera,
		Offset:    offset,
		Finish:    m.Finish.Translate(offset),
	}
	s := &Session{
		Tuning: opts.Tuning,
		Events: NewEventBus(),
		setup:  setup,
		clock:  clock,
		log:    log,
	}
	s.State = sim.NewState(setup, clock.Now())
	return s
}

// Start begins racing from the grid. It is a no-op once racing.
func (s *Session) Start() {
	if s.Phase != PhaseReady {
		return
	}
	s.State.Lap = sim.NewLapState(s.clock.Now())
	s.setPhase(PhaseRacing)
}

// TogglePause freezes or resumes a running race. Time spent paused does not
// count towards the current lap.
func (s *Session) TogglePause() {
	now := s.clock.Now()
	switch s.Phase {
	case PhaseRacing:
		s.pausedAt = now
		s.setPhase(PhasePaused)
	case PhasePaused:
		s.State.Lap.Start = s.State.Lap.Start.Add(now.Sub(s.pausedAt))
		s.setPhase(PhaseRacing)
	}
}

// Reset puts the car back on the grid and clears lap history.
func (s *Session) Reset() {
	s.State = sim.NewState(s.setup, s.clock.Now())
	s.bumping = false
	s.log.Info().Msg("session reset")
	s.setPhase(PhaseReady)
}

// Frame advances the race by dt seconds of driver input. Outside the racing
// phase nothing moves and the zero Outcome is returned.
func (s *Session) Frame(in sim.Intent, dt float64) sim.Outcome {
	if s.Phase != PhaseRacing {
		return sim.Outcome{}
	}
	if dt > MaxFrameDT {
		dt = MaxFrameDT
	}
	if dt < 0 {
		dt = 0
	}

	next, out := sim.Step(s.State, s.Tuning, in, dt, s.clock.Now())
	s.State = next
	v := s.State.Vehicle

	if out.Reverted && !s.bumping {
		s.log.Debug().
			Float64("x", v.Position.X).
			Float64("y", v.Position.Y).
			Float64("speed", v.Speed).
			Msg("boundary hit")
		s.Events.Emit(Event{Type: EventBoundaryHit, X: v.Position.X, Y: v.Position.Y, Speed: v.Speed})
	}
	s.bumping = out.Reverted

	if out.Lap.Completed {
		s.log.Info().
			Int("lap", out.Lap.Lap).
			Str("time", sim.FormatLapTime(out.Lap.Time)).
			Float64("seconds", out.Lap.Time).
			Msg("lap completed")
		s.Events.Emit(Event{Type: EventLapCompleted, X: v.Position.X, Y: v.Position.Y, Lap: out.Lap.Lap, Time: out.Lap.Time})
		if out.Lap.NewBest {
			s.log.Info().
				Int("lap", out.Lap.Lap).
				Float64("seconds", out.Lap.Time).
				Msg("new best lap")
			s.Events.Emit(Event{Type: EventBestLap, X: v.Position.X, Y: v.Position.Y, Lap: out.Lap.Lap, Time: out.Lap.Time})
		}
	}
	return out
}

// HUD returns the timer line and the best-lap line.
func (s *Session) HUD() (timer, best string) {
	now := s.clock.Now()
	if s.Phase == PhasePaused {
		now = s.pausedAt
	}
	l := s.State.Lap
	timer = "Time: " + sim.FormatLapTime(l.Elapsed(now))
	best = fmt.Sprintf("Best lap: %s on lap %d", sim.FormatLapTime(l.Best), l.BestIndex)
	return timer, best
}

// Banner is the centre-screen prompt for the current phase, empty while racing.
func (s *Session) Banner() string {
	switch s.Phase {
	case PhaseReady:
		return "Press Enter to start"
	case PhasePaused:
		return "Paused"
	}
	return ""
}

// WorldOffset is where map pixel (0,0) lands on screen this frame.
func (s *Session) WorldOffset() sim.Vec2 { return s.State.Offset }

func (s *Session) setPhase(p Phase) {
	if s.Phase == p {
		return
	}
	prev := s.Phase
	s.Phase = p
	s.log.Info().Str("from", prev.String()).Str("to", p.String()).Msg("phase changed")
	s.Events.Emit(Event{Type: EventPhaseChanged, Phase: p})
}
