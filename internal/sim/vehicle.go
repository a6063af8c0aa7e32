package sim

import "math"

// Vehicle is the player's car. Width and Length describe the reference
// orientation (heading 0, nose pointing up the screen); everything oriented is
// derived from them and the accumulated Heading, never from a previous
// frame's rotated shape.
type Vehicle struct {
	Position Vec2    // centre of the bounding box
	Heading  float64 // degrees, counter-clockwise, unbounded
	Speed    float64 // px/s, negative when reversing

	Width  float64
	Length float64
}

func NewVehicle(center Vec2, width, length float64) Vehicle {
	return Vehicle{Position: center, Width: width, Length: length}
}

// AdjustHeading adds delta degrees to the heading. The centre stays put, so
// the car turns about its own middle.
func (v *Vehicle) AdjustHeading(delta float64) {
	v.Heading += delta
}

// Orientation is the rendered heading in [0, 360).
func (v Vehicle) Orientation() float64 {
	return NormalizeDegrees(v.Heading)
}

// Extent is the size of the axis-aligned box around the rotated car.
func (v Vehicle) Extent() (w, h float64) {
	rad := radians(v.Heading)
	c := math.Abs(math.Cos(rad))
	s := math.Abs(math.Sin(rad))
	return v.Width*c + v.Length*s, v.Width*s + v.Length*c
}

func (v Vehicle) BoundingBox() Rect {
	w, h := v.Extent()
	return RectAround(v.Position, w, h)
}
