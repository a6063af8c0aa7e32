package game

// carTexW is the texture width; the height follows the car's aspect ratio.
const carTexW = 16

// carPixels paints the car in its reference orientation, nose at row 0.
// Bands run front to back: headlights, bonnet, windscreen, roof, rear
// window, boot, tail lights.
func carPixels(width, length float64) ([]uint8, int, int) {
	w := carTexW
	h := int(float64(w)*length/width + 0.5)
	if h < 8 {
		h = 8
	}
	pix := make([]uint8, w*h*4)

	set := func(x, y int, col RGB, a uint8) {
		i := (y*w + x) * 4
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = a
	}

	body := Palette.CarBody
	roof := body.Mul(200)
	glass := Palette.CarWindow

	type band struct {
		until float64 // fraction of length
		col   RGB
	}
	bands := []band{
		{0.06, body},
		{0.30, body},
		{0.42, glass},
		{0.70, roof},
		{0.80, glass},
		{0.97, body},
		{1.00, Palette.CarTail},
	}

	for y := 0; y < h; y++ {
		f := (float64(y) + 0.5) / float64(h)
		col := body
		for _, b := range bands {
			if f <= b.until {
				col = b.col
				break
			}
		}
		for x := 0; x < w; x++ {
			c := col
			edge := x == 0 || x == w-1
			if edge {
				c = body.Mul(150)
			}
			// Headlights in the front corners.
			if f <= 0.06 && (x < 4 || x >= w-4) && !edge {
				c = Palette.CarLight
			}
			a := uint8(255)
			// Round the four corners.
			if (y == 0 || y == h-1) && edge {
				a = 0
			}
			set(x, y, c, a)
		}
	}
	return pix, w, h
}

// InitCarTexture uploads the car texture for the given reference size.
func (r *Renderer) InitCarTexture(width, length float64) {
	pix, w, h := carPixels(width, length)
	r.carTex = uploadTexture(pix, w, h)
}
