package sim

// Vec2 is a point or displacement in screen pixels.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Rect is an axis-aligned rectangle; (X, Y) is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns a w x h rectangle centred on c.
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Translate(d Vec2) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Overlaps reports whether r and o share area. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Within reports whether r lies inside [0, w-r.W] x [0, h-r.H].
func (r Rect) Within(w, h float64) bool {
	return r.X >= 0 && r.X <= w-r.W &&
		r.Y >= 0 && r.Y <= h-r.H
}
