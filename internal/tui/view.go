package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"racer/internal/race"
	"racer/internal/sim"
	"racer/internal/track"
)

// styles are the cell colours, taken from the track palette so both
// front-ends look alike.
type styles struct {
	grass, road, kerbA, kerbB tcell.Style
	finishA, finishB          tcell.Style
	car, hud, banner          tcell.Style
}

func rgb(c track.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func newStyles(p track.Palette) styles {
	bg := func(c track.RGB) tcell.Style { return tcell.StyleDefault.Background(rgb(c)) }
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)
	return styles{
		grass:   bg(p.Grass),
		road:    bg(p.Road).Foreground(rgb(p.RoadLine)),
		kerbA:   bg(p.KerbA),
		kerbB:   bg(p.KerbB),
		finishA: bg(p.FinishA),
		finishB: bg(p.FinishB),
		car:     tcell.StyleDefault.Background(tcell.NewRGBColor(200, 40, 35)).Foreground(white).Bold(true),
		hud:     tcell.StyleDefault.Background(white).Foreground(black),
		banner:  tcell.StyleDefault.Background(black).Foreground(white).Bold(true),
	}
}

// view draws the logical screen scaled onto the terminal grid. Row 0 holds
// the HUD; the rest is the playfield.
type view struct {
	screen tcell.Screen
	m      *track.Map
	st     styles
	size   sim.Vec2 // logical screen, px
}

// cellSize is the number of logical pixels one terminal cell covers.
func (v *view) cellSize() (sx, sy float64, cols, rows int) {
	cols, rows = v.screen.Size()
	rows-- // HUD line
	if cols < 1 || rows < 1 {
		return 0, 0, cols, rows
	}
	return v.size.X / float64(cols), v.size.Y / float64(rows), cols, rows
}

// arrows point along the heading in 45 degree sectors, counter-clockwise
// from straight up.
var arrows = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

func arrowFor(orientation float64) rune {
	i := int(math.Floor(orientation/45+0.5)) % 8
	return arrows[i]
}

// insideCar reports whether screen point p lies on the rotated car body.
func insideCar(c sim.Vehicle, p sim.Vec2) bool {
	rad := c.Heading * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx, dy := p.X-c.Position.X, p.Y-c.Position.Y
	// Undo the counter-clockwise screen rotation.
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos
	return math.Abs(lx) <= c.Width/2 && math.Abs(ly) <= c.Length/2
}

// terrain picks the cell's look. cell is the screen area the cell covers;
// the finish line claims any cell it touches so it never falls between
// samples, the rest is sampled at the cell centre.
func (v *view) terrain(cell sim.Rect, s sim.State) (rune, tcell.Style) {
	if cell.Overlaps(s.Finish) {
		if int(math.Floor(cell.X/cell.W))%2 == 0 {
			return ' ', v.st.finishA
		}
		return ' ', v.st.finishB
	}
	p := cell.Center()
	q := p.Sub(s.Offset)
	switch v.m.KindAt(q.X, q.Y) {
	case track.Road:
		return ' ', v.st.road
	case track.Kerb:
		stripe := int(math.Floor(q.X/float64(v.m.Spec.TileSize))+math.Floor(q.Y/float64(v.m.Spec.TileSize))) & 1
		if stripe == 0 {
			return ' ', v.st.kerbA
		}
		return ' ', v.st.kerbB
	}
	return ' ', v.st.grass
}

func (v *view) draw(s *race.Session) {
	sx, sy, cols, rows := v.cellSize()
	v.screen.Clear()
	if sx == 0 {
		v.screen.Show()
		return
	}
	st := s.State
	car := st.Vehicle

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cell := sim.Rect{X: float64(cx) * sx, Y: float64(cy) * sy, W: sx, H: sy}
			r, style := v.terrain(cell, st)
			if insideCar(car, cell.Center()) {
				r, style = ' ', v.st.car
			}
			v.screen.SetContent(cx, cy+1, r, nil, style)
		}
	}

	// Nose marker on the car's centre cell, always visible even when the car
	// is smaller than a cell.
	ccx := int(car.Position.X / sx)
	ccy := int(car.Position.Y / sy)
	if ccx >= 0 && ccx < cols && ccy >= 0 && ccy < rows {
		v.screen.SetContent(ccx, ccy+1, arrowFor(car.Orientation()), nil, v.st.car)
	}

	timer, best := s.HUD()
	for x := 0; x < cols; x++ {
		v.screen.SetContent(x, 0, ' ', nil, v.st.hud)
	}
	v.text(cols/2-len(timer)/2, 0, timer, v.st.hud)
	bx := int(float64(cols)/1.2) - len(best)/2
	if bx+len(best) > cols {
		bx = cols - len(best)
	}
	v.text(bx, 0, best, v.st.hud)

	if banner := s.Banner(); banner != "" {
		msg := " " + banner + " "
		v.text(cols/2-len(msg)/2, 1+rows/3, msg, v.st.banner)
	}
	v.screen.Show()
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	if x < 0 {
		x = 0
	}
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
