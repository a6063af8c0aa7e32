package track

import (
	"fmt"
	"image"
	"math"

	"racer/internal/sim"
)

// Kind is the surface type at a point of the map.
type Kind uint8

const (
	Grass Kind = iota
	Kerb
	Road
)

func (k Kind) String() string {
	switch k {
	case Grass:
		return "grass"
	case Kerb:
		return "kerb"
	case Road:
		return "road"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Spec sizes the generated circuit. Lengths are in tiles unless noted.
type Spec struct {
	TileSize        int // px
	Cols, Rows      int
	RoadWidth       int
	FinishThickness float64 // px
}

// Map is a generated circuit: a rounded-rectangle loop of tarmac on grass with
// kerbs on both edges and a finish line across the left straight.
type Map struct {
	Spec Spec
	Seed uint64

	// Tiles holds the surface sampled at each tile centre, row-major.
	Tiles []Kind

	// Finish is the finish line in map pixels.
	Finish sim.Rect

	center sim.Vec2 // loop centre, px
	half   sim.Vec2 // half extents of the centreline, px
	radius float64  // corner radius of the centreline, px
}

// Generate lays out the circuit for spec. The seed only affects texture.
func Generate(spec Spec, seed uint64) (*Map, error) {
	if spec.TileSize <= 0 || spec.RoadWidth <= 0 || spec.FinishThickness <= 0 {
		return nil, fmt.Errorf("track: tile size, road width and finish thickness must be positive")
	}
	margin := spec.RoadWidth/2 + 2
	minSide := 2*margin + 4
	if spec.Cols < minSide || spec.Rows < minSide {
		return nil, fmt.Errorf("track: %dx%d tiles is too small for a road %d tiles wide (need %d per side)",
			spec.Cols, spec.Rows, spec.RoadWidth, minSide)
	}

	ts := float64(spec.TileSize)
	m := &Map{
		Spec:   spec,
		Seed:   seed,
		Tiles:  make([]Kind, spec.Cols*spec.Rows),
		center: sim.Vec2{X: float64(spec.Cols) * ts / 2, Y: float64(spec.Rows) * ts / 2},
		half: sim.Vec2{
			X: (float64(spec.Cols)/2 - float64(margin)) * ts,
			Y: (float64(spec.Rows)/2 - float64(margin)) * ts,
		},
	}
	m.radius = math.Min(m.half.X, m.half.Y) * 0.6

	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Cols; col++ {
			m.Tiles[row*spec.Cols+col] = m.KindAt((float64(col)+0.5)*ts, (float64(row)+0.5)*ts)
		}
	}

	roadW := float64(spec.RoadWidth) * ts
	m.Finish = sim.Rect{
		X: m.center.X - m.half.X - roadW/2,
		Y: m.center.Y,
		W: roadW,
		H: spec.FinishThickness,
	}
	return m, nil
}

// Size is the map size in pixels.
func (m *Map) Size() (w, h int) {
	return m.Spec.Cols * m.Spec.TileSize, m.Spec.Rows * m.Spec.TileSize
}

// Tile returns the sampled kind of a tile; out of range is grass.
func (m *Map) Tile(col, row int) Kind {
	if col < 0 || row < 0 || col >= m.Spec.Cols || row >= m.Spec.Rows {
		return Grass
	}
	return m.Tiles[row*m.Spec.Cols+col]
}

// KindAt classifies the map pixel (x, y). Anything off the map is grass.
func (m *Map) KindAt(x, y float64) Kind {
	w, h := m.Size()
	if x < 0 || y < 0 || x >= float64(w) || y >= float64(h) {
		return Grass
	}
	d := math.Abs(m.distance(x, y))
	roadHalf := float64(m.Spec.RoadWidth) * float64(m.Spec.TileSize) / 2
	switch {
	case d <= roadHalf:
		return Road
	case d <= roadHalf+float64(m.Spec.TileSize)/2:
		return Kerb
	}
	return Grass
}

// StartFor returns where a car of the given length should start: centred
// on the left straight, facing up, with the finish line just behind it.
func (m *Map) StartFor(carLength float64) sim.Vec2 {
	return sim.Vec2{
		X: m.Finish.X + m.Finish.W/2,
		Y: m.Finish.Y - carLength/2 - float64(m.Spec.TileSize)/2,
	}
}

// distance is the signed distance from (x, y) to the centreline.
func (m *Map) distance(x, y float64) float64 {
	qx := math.Abs(x-m.center.X) - (m.half.X - m.radius)
	qy := math.Abs(y-m.center.Y) - (m.half.Y - m.radius)
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - m.radius
}

// Render rasterises the map. Output is deterministic for a given seed.
func (m *Map) Render(p Palette) *image.RGBA {
	w, h := m.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	ts := m.Spec.TileSize
	roadHalf := float64(m.Spec.RoadWidth*ts) / 2
	stripe := max(ts/2, 1)

	for y := 0; y < h; y++ {
		fy := float64(y) + 0.5
		for x := 0; x < w; x++ {
			fx := float64(x) + 0.5
			d := m.distance(fx, fy)
			ad := math.Abs(d)
			n := int(hash2D(m.Seed, x, y) & 7)

			var col RGB
			switch {
			case ad <= roadHalf:
				col = p.Road.Add(n-4, n-4, n-4)
				if math.Abs(d) < 1.5 && (x/ts+y/ts)%2 == 0 {
					col = p.RoadLine
				}
			case ad <= roadHalf+float64(ts)/2:
				if (x/stripe+y/stripe)%2 == 0 {
					col = p.KerbA
				} else {
					col = p.KerbB
				}
			default:
				col = p.Grass.Add(n-3, n-2, n-3)
			}
			img.SetRGBA(x, y, col.RGBA())
		}
	}

	m.scatterPatches(img, p)
	m.paintFinish(img, p)
	m.paintBorder(img, p)
	return img
}

// scatterPatches darkens a few round blobs of grass.
func (m *Map) scatterPatches(img *image.RGBA, p Palette) {
	rng := NewRand(m.Seed)
	w, h := m.Size()
	ts := m.Spec.TileSize
	count := m.Spec.Cols * m.Spec.Rows / 24
	for i := 0; i < count; i++ {
		cx := rng.Intn(w)
		cy := rng.Intn(h)
		r := rng.Range(ts/2, ts*2)
		for y := max(cy-r, 0); y < min(cy+r, h); y++ {
			for x := max(cx-r, 0); x < min(cx+r, w); x++ {
				dx, dy := x-cx, y-cy
				if dx*dx+dy*dy > r*r {
					continue
				}
				if m.KindAt(float64(x)+0.5, float64(y)+0.5) != Grass {
					continue
				}
				n := int(hash2D(m.Seed^0xA5A5, x, y) & 3)
				img.SetRGBA(x, y, p.GrassPatch.Add(n, n, n).RGBA())
			}
		}
	}
}

// paintFinish draws a two-row chequer exactly over the finish rectangle.
func (m *Map) paintFinish(img *image.RGBA, p Palette) {
	f := m.Finish
	x0, y0 := int(math.Floor(f.X)), int(math.Floor(f.Y))
	x1, y1 := int(math.Ceil(f.X+f.W)), int(math.Ceil(f.Y+f.H))
	check := max(int(math.Ceil(f.H/2)), 1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			col := p.FinishA
			if ((x-x0)/check+(y-y0)/check)%2 == 0 {
				col = p.FinishB
			}
			img.SetRGBA(x, y, col.RGBA())
		}
	}
}

func (m *Map) paintBorder(img *image.RGBA, p Palette) {
	w, h := m.Size()
	c := p.Border.RGBA()
	for x := 0; x < w; x++ {
		img.SetRGBA(x, 0, c)
		img.SetRGBA(x, h-1, c)
	}
	for y := 0; y < h; y++ {
		img.SetRGBA(0, y, c)
		img.SetRGBA(w-1, y, c)
	}
}
