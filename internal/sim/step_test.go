package sim

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSetup(mode CameraMode) Setup {
	return Setup{
		Screen:    Vec2{X: 1280, Y: 720},
		CarWidth:  40,
		CarLength: 80,
		Camera:    mode,
		Finish:    Rect{X: 500, Y: 300, W: 300, H: 5},
	}
}

func TestNewState(t *testing.T) {
	s := NewState(testSetup(CameraScroll), epoch)
	assert.Equal(t, Vec2{X: 640, Y: 360}, s.Vehicle.Position)
	assert.Equal(t, 0.0, s.Vehicle.Speed)
	assert.Equal(t, 0.0, s.Vehicle.Heading)
	assert.Equal(t, 0, s.Lap.Count)
}

func TestStep_DoesNotModifyInput(t *testing.T) {
	s := NewState(testSetup(CameraScroll), epoch)
	s.Vehicle.Speed = 300
	before := s

	Step(s, DefaultTuning(), Intent{Forward: true, Left: true}, frame, epoch)

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input state changed (-before +after):\n%s", diff)
	}
}

func TestStep_FixedCameraRevertsAtBoundary(t *testing.T) {
	s := NewState(testSetup(CameraFixed), epoch)
	s.Vehicle.Position = Vec2{X: 640, Y: 41}
	s.Vehicle.Speed = 300
	s.Finish = Rect{X: -100, Y: -100, W: 1, H: 1}

	next, out := Step(s, DefaultTuning(), Intent{}, frame, epoch)

	assert.True(t, out.Reverted)
	assert.Equal(t, Vec2{X: 640, Y: 41}, next.Vehicle.Position)
	assert.InDelta(t, 297.5, next.Vehicle.Speed, 1e-9, "boundary hits do not zero speed")
}

func TestStep_FixedCameraMovesCar(t *testing.T) {
	s := NewState(testSetup(CameraFixed), epoch)
	s.Vehicle.Speed = 300
	s.Finish = Rect{X: -100, Y: -100, W: 1, H: 1}

	next, out := Step(s, DefaultTuning(), Intent{}, frame, epoch)

	require.False(t, out.Reverted)
	assert.InDelta(t, 640, next.Vehicle.Position.X, 1e-9)
	assert.InDelta(t, 360-297.5*frame, next.Vehicle.Position.Y, 1e-9)
	assert.Equal(t, s.Offset, next.Offset)
}

func TestStep_ScrollCameraMovesWorld(t *testing.T) {
	s := NewState(testSetup(CameraScroll), epoch)
	s.Vehicle.Speed = 300
	s.Vehicle.AdjustHeading(90)

	next, out := Step(s, DefaultTuning(), Intent{}, frame, epoch)

	require.False(t, out.Reverted)
	assert.Equal(t, s.Vehicle.Position, next.Vehicle.Position)
	assert.InDelta(t, 297.5*frame, next.Offset.X, 1e-9)
	assert.InDelta(t, 0, next.Offset.Y, 1e-9)
	assert.InDelta(t, s.Finish.X+297.5*frame, next.Finish.X, 1e-9)
}

func TestStep_TurnAtStandstill(t *testing.T) {
	s := NewState(testSetup(CameraScroll), epoch)
	next, _ := Step(s, DefaultTuning(), Intent{Left: true}, frame, epoch)
	assert.Equal(t, 0.0, next.Vehicle.Heading)
}

func TestStep_CompletesLapDrivingThroughLine(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewState(testSetup(CameraScroll), clock.Now())
	s.Vehicle.Speed = 600
	tn := DefaultTuning()

	laps := 0
	sawOverlap := false
	for i := 0; i < 60; i++ {
		clock.Advance(time.Second / 60)
		var out Outcome
		s, out = Step(s, tn, Intent{Forward: true}, frame, clock.Now())
		if s.Lap.InZone {
			sawOverlap = true
		}
		if out.Lap.Completed {
			laps++
			assert.Equal(t, 1, out.Lap.Lap)
			assert.True(t, out.Lap.NewBest)
		}
	}

	assert.True(t, sawOverlap)
	assert.Equal(t, 1, laps)
	assert.Equal(t, 1, s.Lap.Count)
	assert.Equal(t, 0, s.Lap.BestIndex)
	assert.Greater(t, s.Finish.Y, 400.0)
}
