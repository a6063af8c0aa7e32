package race

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/sim"
	"racer/internal/track"
)

const frame = time.Second / 60

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, mode sim.CameraMode) (*Session, *sim.ManualClock) {
	t.Helper()
	m, err := track.Generate(track.Spec{TileSize: 32, Cols: 96, Rows: 64, RoadWidth: 7, FinishThickness: 5}, 1)
	require.NoError(t, err)

	clock := sim.NewManualClock(epoch)
	s := NewSession(m, Options{
		Screen:    sim.Vec2{X: 1280, Y: 720},
		CarWidth:  40,
		CarLength: 80,
		Camera:    mode,
		Tuning:    sim.DefaultTuning(),
	}, clock, zerolog.Nop())
	return s, clock
}

func collect(s *Session, types ...EventType) *[]Event {
	var got []Event
	for _, typ := range types {
		s.Events.Subscribe(typ, func(e Event) { got = append(got, e) })
	}
	return &got
}

func TestNewSession_FinishBehindCar(t *testing.T) {
	s, _ := newTestSession(t, sim.CameraScroll)

	box := s.State.Vehicle.BoundingBox()
	assert.Equal(t, sim.Vec2{X: 640, Y: 360}, s.State.Vehicle.Position)
	assert.False(t, box.Overlaps(s.State.Finish))
	assert.Greater(t, s.State.Finish.Y, box.Y+box.H, "line is below the car")
	assert.InDelta(t, 640, s.State.Finish.Center().X, 1e-9)
	assert.Equal(t, PhaseReady, s.Phase)
}

func TestFrame_IdleOutsideRacing(t *testing.T) {
	s, clock := newTestSession(t, sim.CameraScroll)
	before := s.State

	clock.Advance(frame)
	out := s.Frame(sim.Intent{Forward: true}, 1.0/60)

	assert.Equal(t, sim.Outcome{}, out)
	if diff := cmp.Diff(before, s.State); diff != "" {
		t.Errorf("state moved while ready (-before +after):\n%s", diff)
	}
}

func TestFrame_ReversingOverLineCompletesLap(t *testing.T) {
	s, clock := newTestSession(t, sim.CameraScroll)
	events := collect(s, EventLapCompleted, EventBestLap)

	s.Start()
	s.State.Vehicle.Speed = -300

	for i := 0; i < 60; i++ {
		clock.Advance(frame)
		s.Frame(sim.Intent{Backward: true}, 1.0/60)
	}

	require.Len(t, *events, 2)
	assert.Equal(t, EventLapCompleted, (*events)[0].Type)
	assert.Equal(t, 1, (*events)[0].Lap)
	assert.Equal(t, EventBestLap, (*events)[1].Type)
	assert.Greater(t, (*events)[0].Time, 0.0)
	assert.Less(t, (*events)[0].Time, 1.0)

	assert.Equal(t, 1, s.State.Lap.Count)
	_, best := s.HUD()
	assert.Contains(t, best, "on lap 0")
	assert.NotContains(t, best, sim.NoTime)
}

func TestFrame_BoundaryEventOncePerContact(t *testing.T) {
	s, clock := newTestSession(t, sim.CameraFixed)
	events := collect(s, EventBoundaryHit)
	s.Start()

	s.State.Vehicle.Position = sim.Vec2{X: 640, Y: 41}
	s.State.Vehicle.Speed = 300
	for i := 0; i < 10; i++ {
		clock.Advance(frame)
		out := s.Frame(sim.Intent{Forward: true}, 1.0/60)
		assert.True(t, out.Reverted)
	}
	assert.Len(t, *events, 1)
	assert.Equal(t, sim.Vec2{X: 640, Y: 41}, s.State.Vehicle.Position)

	// drive away, then hit again
	s.State.Vehicle.Speed = -100
	clock.Advance(frame)
	out := s.Frame(sim.Intent{}, 1.0/60)
	require.False(t, out.Reverted)

	s.State.Vehicle.Speed = 300
	clock.Advance(frame)
	s.Frame(sim.Intent{Forward: true}, 1.0/60)
	assert.Len(t, *events, 2)
}

func TestFrame_CapsDT(t *testing.T) {
	s, clock := newTestSession(t, sim.CameraFixed)
	s.Start()
	s.State.Vehicle.Speed = 300

	clock.Advance(5 * time.Second)
	s.Frame(sim.Intent{Forward: true}, 5)

	moved := 360 - s.State.Vehicle.Position.Y
	assert.InDelta(t, 300*MaxFrameDT, moved, 1e-6)
}

func TestPhases(t *testing.T) {
	s, clock := newTestSession(t, sim.CameraScroll)
	events := collect(s, EventPhaseChanged)

	s.TogglePause()
	assert.Equal(t, PhaseReady, s.Phase, "cannot pause before the start")

	s.Start()
	assert.Equal(t, PhaseRacing, s.Phase)
	s.Start()

	clock.Advance(2 * time.Second)
	lapStart := s.State.Lap.Start
	s.TogglePause()
	assert.Equal(t, PhasePaused, s.Phase)
	assert.Equal(t, "Paused", s.Banner())

	clock.Advance(10 * time.Second)
	s.TogglePause()
	assert.Equal(t, PhaseRacing, s.Phase)
	assert.Equal(t, lapStart.Add(10*time.Second), s.State.Lap.Start)
	assert.Equal(t, "", s.Banner())

	s.Reset()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "Press Enter to start", s.Banner())

	var phases []Phase
	for _, e := range *events {
		phases = append(phases, e.Phase)
	}
	assert.Equal(t, []Phase{PhaseRacing, PhasePaused, PhaseRacing, PhaseReady}, phases)
}

func TestHUD_Initial(t *testing.T) {
	s, _ := newTestSession(t, sim.CameraScroll)
	timer, best := s.HUD()
	assert.Equal(t, "Time: 0:0", timer)
	assert.Equal(t, "Best lap: inf on lap 0", best)
}

func TestHUD_FrozenWhilePaused(t *testing.T) {
	s, clock := newTestSession(t, sim.CameraScroll)
	s.Start()
	s.State.Lap.Running = true

	clock.Advance(3 * time.Second)
	s.TogglePause()
	clock.Advance(time.Minute)
	timer, _ := s.HUD()
	assert.Equal(t, "Time: 0:3", timer)
}
