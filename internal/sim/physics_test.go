package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func TestUpdateSpeed_ForwardApproachesCap(t *testing.T) {
	tn := DefaultTuning()
	speed, easeTime := 0.0, 0.0
	prev := speed

	for i := 0; i < 600; i++ {
		speed, easeTime, _ = updateSpeed(tn, Intent{Forward: true}, speed, easeTime, frame)
		require.LessOrEqual(t, speed, tn.MaxSpeed, "frame %d", i)
		require.GreaterOrEqual(t, speed, prev, "frame %d", i)
		prev = speed
	}
	assert.Greater(t, speed, tn.MaxSpeed-1)
	assert.InDelta(t, 10, easeTime, 1e-6)
}

func TestUpdateSpeed_BackwardApproachesReverseCap(t *testing.T) {
	tn := DefaultTuning()
	speed, easeTime := 0.0, 0.0
	for i := 0; i < 600; i++ {
		speed, easeTime, _ = updateSpeed(tn, Intent{Backward: true}, speed, easeTime, frame)
		require.GreaterOrEqual(t, speed, -tn.MaxSpeed)
	}
	assert.Less(t, speed, -tn.MaxSpeed+1)
}

func TestUpdateSpeed_FirstFrameHasNoEaseIn(t *testing.T) {
	tn := DefaultTuning()
	speed, easeTime, _ := updateSpeed(tn, Intent{Forward: true}, 0, 0, frame)
	assert.Equal(t, 0.0, speed)
	assert.InDelta(t, frame, easeTime, 1e-12)
}

func TestUpdateSpeed_TurnAboveCapBleedsSpeed(t *testing.T) {
	tn := DefaultTuning()

	speed, easeTime, limit := updateSpeed(tn, Intent{Forward: true, Left: true}, 600, 0, frame)

	assert.Equal(t, tn.TurnSpeed, limit)
	assert.InDelta(t, tn.TurnBleedTime+frame, easeTime, 1e-12)
	assert.Less(t, speed, 600.0)
	assert.Greater(t, speed, tn.TurnSpeed, "bleed-off is gradual, not a clamp")

	for i := 0; i < 600; i++ {
		speed, easeTime, _ = updateSpeed(tn, Intent{Forward: true, Left: true}, speed, easeTime, frame)
	}
	assert.InDelta(t, tn.TurnSpeed, speed, 0.5)
}

func TestUpdateSpeed_ForwardAndBackwardCancel(t *testing.T) {
	tn := DefaultTuning()
	speed, easeTime, _ := updateSpeed(tn, Intent{Forward: true, Backward: true}, 123, 2, frame)
	assert.Equal(t, 123.0, speed)
	assert.Equal(t, 2.0, easeTime)
}

func TestUpdateSpeed_ReleaseResetsEaseIn(t *testing.T) {
	tn := DefaultTuning()
	_, easeTime, _ := updateSpeed(tn, Intent{}, 300, 5, frame)
	assert.Equal(t, 0.0, easeTime)
}

func TestUpdateSpeed_Handbrake(t *testing.T) {
	tn := DefaultTuning()

	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"stops without overshoot", 10, 0},
		{"stops reverse without overshoot", -10, 0},
		{"zero stays zero", 0, 0},
		{"slows forward", 600, (600 - tn.BrakeRate*frame) * (1 - tn.Friction*frame)},
		{"slows reverse", -600, (-600 + tn.BrakeRate*frame) * (1 - tn.Friction*frame)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := updateSpeed(tn, Intent{Handbrake: true}, tt.speed, 0, frame)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestUpdateSpeed_FrictionNeverFlipsSign(t *testing.T) {
	tn := DefaultTuning()
	speeds := []float64{600, -600, 42, -42, 1.5, -1.5, 0.3, -0.3, 0}
	dts := []float64{frame, 0.1, 1, 2, 5}

	for _, s := range speeds {
		for _, dt := range dts {
			got, _, _ := updateSpeed(tn, Intent{}, s, 0, dt)
			if got != 0 && math.Signbit(got) != math.Signbit(s) {
				t.Errorf("speed %v dt %v: sign flipped to %v", s, dt, got)
			}
			assert.LessOrEqual(t, math.Abs(got), math.Abs(s))
		}
	}
}

func TestUpdateSpeed_CoastingSnapsToZero(t *testing.T) {
	tn := DefaultTuning()
	got, _, _ := updateSpeed(tn, Intent{}, 0.9, 0, frame)
	assert.Equal(t, 0.0, got)
}

func TestTurnDelta(t *testing.T) {
	tn := DefaultTuning()

	tests := []struct {
		name  string
		in    Intent
		speed float64
		limit float64
		want  float64
	}{
		{"no speed no turn", Intent{Left: true}, 0, 450, 0},
		{"slow left", Intent{Left: true}, 100, 450, 100 * tn.TurnMultiplier},
		{"slow right", Intent{Right: true}, 100, 450, -100 * tn.TurnMultiplier},
		{"saturates at half cap", Intent{Left: true}, 600, 450, 225 * tn.TurnMultiplier},
		{"just below saturation", Intent{Left: true}, 200, 450, 200 * tn.TurnMultiplier},
		{"reverse mirrors", Intent{Left: true}, -100, 450, -100 * tn.TurnMultiplier},
		{"both cancel", Intent{Left: true, Right: true}, 300, 450, 0},
		{"no turn key", Intent{Forward: true}, 300, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, turnDelta(tn, tt.in, tt.speed, tt.limit, 1), 1e-9)
		})
	}
}

func TestEaseFactor(t *testing.T) {
	tn := DefaultTuning()
	assert.Equal(t, 0.0, tn.EaseFactor(0))
	assert.Equal(t, 0.0, tn.EaseFactor(-1))
	assert.InDelta(t, 1-math.Exp(-tn.EaseIn), tn.EaseFactor(1), 1e-12)
	assert.Less(t, tn.EaseFactor(100), 1.0+1e-12)
}

func TestDisplacement(t *testing.T) {
	d := Displacement(0, 100, 1)
	assert.InDelta(t, 0, d.X, 1e-9)
	assert.InDelta(t, 100, d.Y, 1e-9)

	d = Displacement(90, 100, 0.5)
	assert.InDelta(t, 50, d.X, 1e-9)
	assert.InDelta(t, 0, d.Y, 1e-9)

	d = Displacement(90+360*3, 100, 0.5)
	assert.InDelta(t, 50, d.X, 1e-9)
	assert.InDelta(t, 0, d.Y, 1e-9)
}

func TestParseCameraMode(t *testing.T) {
	m, err := ParseCameraMode("fixed")
	require.NoError(t, err)
	assert.Equal(t, CameraFixed, m)
	assert.Equal(t, "fixed", m.String())

	m, err = ParseCameraMode("scroll")
	require.NoError(t, err)
	assert.Equal(t, CameraScroll, m)

	_, err = ParseCameraMode("orbit")
	assert.Error(t, err)
}
