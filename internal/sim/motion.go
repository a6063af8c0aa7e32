package sim

import (
	"fmt"
	"math"
)

// CameraMode selects which side of the frame moves.
type CameraMode int

const (
	// CameraScroll keeps the car fixed on screen and scrolls the world under it.
	CameraScroll CameraMode = iota
	// CameraFixed keeps the world still and moves the car across the screen.
	CameraFixed
)

func (m CameraMode) String() string {
	switch m {
	case CameraScroll:
		return "scroll"
	case CameraFixed:
		return "fixed"
	}
	return fmt.Sprintf("CameraMode(%d)", int(m))
}

// ParseCameraMode accepts the names produced by String.
func ParseCameraMode(s string) (CameraMode, error) {
	switch s {
	case "scroll":
		return CameraScroll, nil
	case "fixed":
		return CameraFixed, nil
	}
	return 0, fmt.Errorf("unknown camera mode %q", s)
}

// Displacement is how far the world slides under the car in one frame.
// Heading 0 is pure vertical motion, heading 90 pure horizontal.
func Displacement(heading, speed, dt float64) Vec2 {
	rad := radians(heading)
	return Vec2{
		X: math.Sin(rad) * speed * dt,
		Y: math.Cos(rad) * speed * dt,
	}
}
