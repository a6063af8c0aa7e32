package game

import (
	"math"

	"racer/internal/sim"
	"racer/internal/track"
)

// RectF is an axis-aligned rectangle in map pixels.
type RectF struct {
	X0, Y0, X1, Y1 float64
}

// Camera maps map pixels to the framebuffer. The simulation works in a fixed
// logical screen; the camera letterboxes that screen into whatever
// framebuffer the window has.
type Camera struct {
	X, Y float64 // map-pixel space, camera centre
	Zoom float64 // framebuffer pixels per map pixel

	// Screen shake.
	ShakeX, ShakeY float64
	ShakeTimer     float64
	ShakeIntensity float64
}

// Fit centres the camera on the logical screen for the current world offset.
func (c *Camera) Fit(screen, offset sim.Vec2, fbW, fbH int) {
	c.Zoom = math.Min(float64(fbW)/screen.X, float64(fbH)/screen.Y)
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
	c.X = screen.X/2 - offset.X
	c.Y = screen.Y/2 - offset.Y
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := track.NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// Shaken returns a copy of the camera with the shake offset applied.
func (c Camera) Shaken() Camera {
	c.X += c.ShakeX
	c.Y += c.ShakeY
	return c
}

// View is the part of the map visible in a framebuffer of the given size.
func (c Camera) View(fbW, fbH int) RectF {
	halfW := float64(fbW) / (2.0 * c.Zoom)
	halfH := float64(fbH) / (2.0 * c.Zoom)
	return RectF{X0: c.X - halfW, Y0: c.Y - halfH, X1: c.X + halfW, Y1: c.Y + halfH}
}

// ScreenCamera draws in raw framebuffer pixels, for HUD panels.
func ScreenCamera(fbW, fbH int) Camera {
	return Camera{X: float64(fbW) / 2, Y: float64(fbH) / 2, Zoom: 1}
}
