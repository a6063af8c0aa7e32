package track

import "image/color"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func addU8(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Palette colours each tile kind.
type Palette struct {
	Grass      RGB
	GrassPatch RGB
	Road       RGB
	RoadLine   RGB
	KerbA      RGB
	KerbB      RGB
	FinishA    RGB
	FinishB    RGB
	Border     RGB
}

func DefaultPalette() Palette {
	return Palette{
		Grass:      RGB{R: 96, G: 140, B: 70},
		GrassPatch: RGB{R: 82, G: 122, B: 60},
		Road:       RGB{R: 60, G: 66, B: 79},
		RoadLine:   RGB{R: 214, G: 214, B: 200},
		KerbA:      RGB{R: 200, G: 50, B: 45},
		KerbB:      RGB{R: 235, G: 235, B: 230},
		FinishA:    RGB{R: 20, G: 20, B: 20},
		FinishB:    RGB{R: 245, G: 245, B: 245},
		Border:     RGB{R: 0, G: 0, B: 0},
	}
}
