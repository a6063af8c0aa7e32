package sim

import "time"

// Setup describes the starting layout of a run.
type Setup struct {
	Screen    Vec2 // drawable area, px
	CarWidth  float64
	CarLength float64
	Camera    CameraMode
	Offset    Vec2 // initial world offset: where map pixel (0,0) lands on screen
	Finish    Rect // finish zone in screen space at the initial offset
}

// State is everything the simulation carries from one frame to the next.
type State struct {
	Vehicle  Vehicle
	EaseTime float64
	Offset   Vec2
	Finish   Rect
	Lap      LapState
	Screen   Vec2
	Camera   CameraMode
}

// Outcome is the per-frame side information front-ends react to.
type Outcome struct {
	Lap      LapEvent
	Reverted bool    // movement was undone by the screen boundary
	Limit    float64 // speed cap in force this frame
}

// NewState places a stationary car, nose up, in the middle of the screen.
func NewState(s Setup, now time.Time) State {
	center := Vec2{X: s.Screen.X / 2, Y: s.Screen.Y / 2}
	return State{
		Vehicle: NewVehicle(center, s.CarWidth, s.CarLength),
		Offset:  s.Offset,
		Finish:  s.Finish,
		Lap:     NewLapState(now),
		Screen:  s.Screen,
		Camera:  s.Camera,
	}
}

// Step advances the simulation by dt seconds and returns the next state.
// The input state is not modified.
func Step(s State, t Tuning, in Intent, dt float64, now time.Time) (State, Outcome) {
	next := s
	prev := s.Vehicle.Position

	speed, easeTime, limit := updateSpeed(t, in, s.Vehicle.Speed, s.EaseTime, dt)
	next.Vehicle.Speed = speed
	next.EaseTime = easeTime
	next.Vehicle.AdjustHeading(turnDelta(t, in, speed, limit, dt))

	d := Displacement(next.Vehicle.Heading, speed, dt)
	switch s.Camera {
	case CameraFixed:
		next.Vehicle.Position = prev.Sub(d)
	default:
		next.Offset = s.Offset.Add(d)
		next.Finish = s.Finish.Translate(d)
	}

	out := Outcome{Limit: limit}
	if !next.Vehicle.BoundingBox().Within(s.Screen.X, s.Screen.Y) {
		next.Vehicle.Position = prev
		out.Reverted = true
	}

	out.Lap = next.Lap.Observe(next.Vehicle.BoundingBox().Overlaps(next.Finish), now)
	return next, out
}
