package game

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwClock reads the window system timer so lap times and frame deltas come
// from the same source.
type glfwClock struct {
	base time.Time
}

func newGLFWClock() glfwClock {
	return glfwClock{base: time.Now().Add(-time.Duration(glfw.GetTime() * float64(time.Second)))}
}

func (c glfwClock) Now() time.Time {
	return c.base.Add(time.Duration(glfw.GetTime() * float64(time.Second)))
}
