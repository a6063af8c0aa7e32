package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"racer/internal/sim"
)

func TestCameraFit(t *testing.T) {
	var c Camera
	screen := sim.Vec2{X: 1280, Y: 720}
	c.Fit(screen, sim.Vec2{X: 40, Y: -100}, 2560, 1440)

	assert.Equal(t, 2.0, c.Zoom)
	assert.Equal(t, 600.0, c.X)
	assert.Equal(t, 460.0, c.Y)

	// The view covers exactly the logical screen in map space.
	v := c.View(2560, 1440)
	assert.Equal(t, RectF{X0: -40, Y0: 100, X1: 1240, Y1: 820}, v)
}

func TestCameraFitLetterbox(t *testing.T) {
	var c Camera
	c.Fit(sim.Vec2{X: 1280, Y: 720}, sim.Vec2{}, 1280, 1440)
	assert.Equal(t, 1.0, c.Zoom)
}

func TestCameraShakeDecays(t *testing.T) {
	var c Camera
	c.AddShake(BumpShakeIntensity, BumpShakeDuration)
	c.UpdateShake(0.05, 7)
	assert.LessOrEqual(t, c.ShakeX, BumpShakeIntensity)
	assert.GreaterOrEqual(t, c.ShakeX, -BumpShakeIntensity)

	for i := 0; i < 10; i++ {
		c.UpdateShake(0.05, 7)
	}
	assert.Zero(t, c.ShakeX)
	assert.Zero(t, c.ShakeY)
	assert.Equal(t, c, c.Shaken())
}
