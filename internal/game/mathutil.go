package game

import "math"

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rotateScreen turns (x, y) counter-clockwise by deg as seen on screen (y down).
func rotateScreen(x, y, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return x*c + y*s, -x*s + y*c
}
