package game

import "racer/internal/track"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

func fromTrack(c track.RGB) RGB { return RGB{R: c.R, G: c.G, B: c.B} }

var Palette = struct {
	CarBody    RGB
	CarWindow  RGB
	CarLight   RGB
	CarTail    RGB
	Skid       RGB
	Text       RGB
	TextShadow RGB
	Panel      RGB
	Highlight  RGB
	BestLap    RGB
}{
	CarBody:    RGB{R: 200, G: 40, B: 35},
	CarWindow:  RGB{R: 70, G: 90, B: 110},
	CarLight:   RGB{R: 255, G: 240, B: 170},
	CarTail:    RGB{R: 120, G: 10, B: 10},
	Skid:       RGB{R: 25, G: 25, B: 28},
	Text:       RGB{R: 0, G: 0, B: 0},
	TextShadow: RGB{R: 235, G: 235, B: 225},
	Panel:      RGB{R: 255, G: 255, B: 255},
	Highlight:  RGB{R: 255, G: 255, B: 255},
	BestLap:    RGB{R: 180, G: 120, B: 0},
}
