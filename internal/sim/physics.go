package sim

import "math"

// Intent is one frame's snapshot of the driver's controls.
type Intent struct {
	Forward   bool
	Backward  bool
	Left      bool
	Right     bool
	Handbrake bool
}

func (in Intent) turning() bool { return in.Left || in.Right }

// EaseFactor returns 1 - e^(-k*t) for the given accumulated ease-in time.
func (t Tuning) EaseFactor(easeTime float64) float64 {
	if easeTime <= 0 {
		return 0
	}
	return 1 - math.Exp(-t.EaseIn*easeTime)
}

// SpeedCap is the top speed allowed for the given controls.
func (t Tuning) SpeedCap(in Intent) float64 {
	if in.turning() {
		return t.TurnSpeed
	}
	return t.MaxSpeed
}

// updateSpeed applies throttle, reverse, handbrake and coasting friction.
// It returns the new speed, the new ease-in time and the cap in force.
//
// The ease-in timer is shared by both directions. It grows while exactly one
// of forward/backward is held and resets once both are released.
func updateSpeed(t Tuning, in Intent, speed, easeTime, dt float64) (float64, float64, float64) {
	limit := t.SpeedCap(in)
	if in.turning() && math.Abs(speed) > limit {
		// Entering a corner too fast: force a hard pull toward the turn cap.
		easeTime = t.TurnBleedTime
	}
	v := t.EaseFactor(easeTime)

	forward := in.Forward && !in.Backward
	backward := in.Backward && !in.Forward
	switch {
	case forward:
		easeTime += dt
		speed = easeToward(speed, limit, v*t.Response*dt)
	case backward:
		easeTime += dt
		speed = easeToward(speed, -limit, v*t.Response*dt)
	case !in.Forward && !in.Backward:
		easeTime = 0
	}

	if in.Handbrake && speed != 0 {
		speed = approach(speed, 0, t.BrakeRate*dt)
	}

	if !in.Forward && !in.Backward {
		speed *= math.Max(0, 1-t.Friction*dt)
		if math.Abs(speed) < t.StopThreshold {
			speed = 0
		}
	}
	return speed, easeTime, limit
}

// turnDelta is the heading change for one frame. Steering authority grows
// with speed up to half the cap and is mirrored while reversing.
func turnDelta(t Tuning, in Intent, speed, limit, dt float64) float64 {
	if speed == 0 {
		return 0
	}
	dir := 0.0
	if in.Left {
		dir++
	}
	if in.Right {
		dir--
	}
	if dir == 0 {
		return 0
	}
	mag := math.Min(math.Abs(speed), limit/2) * t.TurnMultiplier * dt
	if speed < 0 {
		mag = -mag
	}
	return dir * mag
}
