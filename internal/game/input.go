package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"racer/internal/sim"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// intentFrom maps held keys to driving controls. Arrows and WASD both work.
func intentFrom(held func(keys ...glfw.Key) bool) sim.Intent {
	return sim.Intent{
		Forward:   held(glfw.KeyW, glfw.KeyUp),
		Backward:  held(glfw.KeyS, glfw.KeyDown),
		Left:      held(glfw.KeyA, glfw.KeyLeft),
		Right:     held(glfw.KeyD, glfw.KeyRight),
		Handbrake: held(glfw.KeySpace),
	}
}

// ReadIntent samples the driving keys held this frame.
func ReadIntent(window *glfw.Window) sim.Intent {
	return intentFrom(func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	})
}
