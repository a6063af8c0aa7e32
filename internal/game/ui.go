package game

import (
	"fmt"
	"math"

	"racer/internal/race"
	"racer/internal/sim"
)

// hudScale grows text with the framebuffer so the HUD reads the same at any
// window size.
func hudScale(fbH int) float32 {
	s := float32(fbH) / 720 * 2
	if s < 1 {
		s = 1
	}
	return s
}

// drawShadowed draws text with a one-pixel light outline under it.
func drawShadowed(r *Renderer, text string, x, y int, scale float32, col RGB) {
	r.DrawString(text, x+1, y+1, scale, Palette.TextShadow)
	r.DrawString(text, x, y, scale, col)
}

// RenderHUD draws the lap timer, best lap, speed and phase banner.
// flash is the time left on the lap-completed highlight.
func RenderHUD(r *Renderer, s *race.Session, flash float64, fbW, fbH int) {
	scale := hudScale(fbH)
	timer, best := s.HUD()

	timerCol := Palette.Text
	if flash > 0 {
		timerCol = Palette.BestLap
	}
	drawShadowed(r, timer, fbW/2-TextWidth(timer, scale)/2, 4, scale, timerCol)

	bestCol := Palette.Text
	if l := s.State.Lap; l.Count > 0 && l.Last == l.Best && flash > 0 {
		bestCol = Palette.BestLap
	}
	bestX := int(float64(fbW)/1.2) - TextWidth(best, scale*0.75)/2
	if right := fbW - TextWidth(best, scale*0.75) - 4; bestX > right {
		bestX = right
	}
	drawShadowed(r, best, bestX, 4, scale*0.75, bestCol)

	speed := fmt.Sprintf("%3.0f px/s", math.Abs(s.State.Vehicle.Speed))
	lineH := int(float32(FontCellH) * scale * 0.75)
	drawShadowed(r, speed, 6, fbH-lineH-6, scale*0.75, Palette.Text)

	if banner := s.Banner(); banner != "" {
		bs := scale * 1.5
		w := TextWidth(banner, bs)
		h := int(float32(FontCellH) * bs)
		x, y := fbW/2-w/2, fbH/3-h/2
		pad := 12.0
		panel := sim.Rect{
			X: float64(x) - pad, Y: float64(y) - pad,
			W: float64(w) + 2*pad, H: float64(h) + 2*pad,
		}
		r.DrawRect(panel, Palette.Panel, 0.7, ScreenCamera(fbW, fbH), fbW, fbH)
		r.DrawString(banner, x, y, bs, Palette.Text)
	}

	r.FlushText(fbW, fbH)
}
