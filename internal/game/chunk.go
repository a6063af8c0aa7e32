package game

import "image"

// Chunk is a ChunkSize x ChunkSize tile of the rendered track.
// Pixels is RGBA8, row 0 at the top.
type Chunk struct {
	CX, CY int

	Pixels []uint8

	Tex uint32 // OpenGL texture id (created lazily)

	NeedsUpload bool
}

func NewChunk(cx, cy int) *Chunk {
	return &Chunk{
		CX:          cx,
		CY:          cy,
		Pixels:      make([]uint8, ChunkSize*ChunkSize*4),
		NeedsUpload: true,
	}
}

func (c *Chunk) WorldOrigin() (int, int) {
	return c.CX * ChunkSize, c.CY * ChunkSize
}

// ChunkMap is the track image cut into chunks.
type ChunkMap struct {
	Cols, Rows int
	chunks     []*Chunk
}

// BuildChunks slices img into chunks. Chunks on the right and bottom edges
// are padded with fill.
func BuildChunks(img *image.RGBA, fill RGB) *ChunkMap {
	b := img.Bounds()
	cols := (b.Dx() + ChunkSize - 1) / ChunkSize
	rows := (b.Dy() + ChunkSize - 1) / ChunkSize
	m := &ChunkMap{Cols: cols, Rows: rows, chunks: make([]*Chunk, cols*rows)}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			c := NewChunk(cx, cy)
			baseX, baseY := c.WorldOrigin()
			for y := 0; y < ChunkSize; y++ {
				for x := 0; x < ChunkSize; x++ {
					o := (y*ChunkSize + x) * 4
					wx, wy := b.Min.X+baseX+x, b.Min.Y+baseY+y
					if wx >= b.Max.X || wy >= b.Max.Y {
						c.Pixels[o+0] = fill.R
						c.Pixels[o+1] = fill.G
						c.Pixels[o+2] = fill.B
						c.Pixels[o+3] = 255
						continue
					}
					copy(c.Pixels[o:o+4], img.Pix[img.PixOffset(wx, wy):])
				}
			}
			m.chunks[cy*cols+cx] = c
		}
	}
	return m
}

func (m *ChunkMap) Get(cx, cy int) *Chunk {
	if cx < 0 || cy < 0 || cx >= m.Cols || cy >= m.Rows {
		return nil
	}
	return m.chunks[cy*m.Cols+cx]
}

// Visible appends the chunks overlapping view to dst.
func (m *ChunkMap) Visible(view RectF, dst []*Chunk) []*Chunk {
	cx0 := floorDiv(int(view.X0), ChunkSize)
	cy0 := floorDiv(int(view.Y0), ChunkSize)
	cx1 := floorDiv(int(view.X1), ChunkSize)
	cy1 := floorDiv(int(view.Y1), ChunkSize)
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			if c := m.Get(cx, cy); c != nil {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

// floorDiv performs mathematical floor division for integers.
func floorDiv(a, b int) int {
	q := a / b
	r := a % b
	if (r != 0) && ((r < 0) != (b < 0)) {
		q--
	}
	return q
}
