package game

import (
	"math"

	"racer/internal/sim"
)

type skidMark struct {
	X, Y float64 // map pixels
	Age  float64
}

// SkidMarks is a fixed-size ring of tyre marks that fade out over time.
type SkidMarks struct {
	marks []skidMark
	next  int
	count int

	lastL, lastR sim.Vec2
	drawing      bool
}

func NewSkidMarks(capacity int) *SkidMarks {
	return &SkidMarks{marks: make([]skidMark, capacity)}
}

func (s *SkidMarks) add(p sim.Vec2) {
	s.marks[s.next] = skidMark{X: p.X, Y: p.Y}
	s.next = (s.next + 1) % len(s.marks)
	if s.count < len(s.marks) {
		s.count++
	}
}

// Len is the number of live marks.
func (s *SkidMarks) Len() int { return s.count }

// Update ages marks and, while skidding, lays new ones under the rear wheels.
// center is the car centre in map pixels.
func (s *SkidMarks) Update(dt float64, v sim.Vehicle, center sim.Vec2, skidding bool) {
	for i := 0; i < s.count; i++ {
		idx := (s.next - 1 - i + len(s.marks)) % len(s.marks)
		s.marks[idx].Age += dt
	}
	for s.count > 0 {
		oldest := (s.next - s.count + len(s.marks)) % len(s.marks)
		if s.marks[oldest].Age < SkidLifetime {
			break
		}
		s.count--
	}

	if !skidding {
		s.drawing = false
		return
	}

	lx, ly := rotateScreen(-v.Width*0.35, v.Length*0.35, v.Heading)
	rx, ry := rotateScreen(v.Width*0.35, v.Length*0.35, v.Heading)
	left := sim.Vec2{X: center.X + lx, Y: center.Y + ly}
	right := sim.Vec2{X: center.X + rx, Y: center.Y + ry}

	if !s.drawing {
		s.add(left)
		s.add(right)
		s.lastL, s.lastR = left, right
		s.drawing = true
		return
	}
	s.lastL = s.trail(s.lastL, left)
	s.lastR = s.trail(s.lastR, right)
}

// trail fills the gap from last to p with evenly spaced marks and returns
// the position of the last mark laid.
func (s *SkidMarks) trail(last, p sim.Vec2) sim.Vec2 {
	d := p.Sub(last)
	dist := math.Hypot(d.X, d.Y)
	if dist < SkidSpacing {
		return last
	}
	step := sim.Vec2{X: d.X / dist * SkidSpacing, Y: d.Y / dist * SkidSpacing}
	for n := int(dist / SkidSpacing); n > 0; n-- {
		last = last.Add(step)
		s.add(last)
	}
	return last
}

// Clear removes all marks.
func (s *SkidMarks) Clear() {
	s.count = 0
	s.drawing = false
}

// RenderData appends sprite data for the live marks to buf.
func (s *SkidMarks) RenderData(buf []float32) []float32 {
	buf = buf[:0]
	cr, cg, cb := Palette.Skid.floats()
	for i := 0; i < s.count; i++ {
		m := s.marks[(s.next-1-i+len(s.marks))%len(s.marks)]
		alpha := float32(0.55 * (1 - m.Age/SkidLifetime))
		buf = append(buf, float32(m.X), float32(m.Y), SkidSize, cr, cg, cb, alpha, 0)
	}
	return buf
}

// isSkidding reports whether the tyres are sliding this frame: handbrake at
// speed, or cornering above the turn cap.
func isSkidding(v sim.Vehicle, in sim.Intent, t sim.Tuning) bool {
	speed := math.Abs(v.Speed)
	if in.Handbrake && speed > SkidMinSpeed {
		return true
	}
	return (in.Left || in.Right) && speed > t.TurnSpeed+1
}
