package game

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChunks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, ChunkSize+10, ChunkSize/2))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetRGBA(ChunkSize+9, ChunkSize/2-1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	fill := RGB{R: 50, G: 60, B: 70}
	m := BuildChunks(img, fill)

	require.Equal(t, 2, m.Cols)
	require.Equal(t, 1, m.Rows)

	first := m.Get(0, 0)
	require.NotNil(t, first)
	assert.Equal(t, []uint8{1, 2, 3, 255}, first.Pixels[0:4])
	assert.True(t, first.NeedsUpload)

	second := m.Get(1, 0)
	require.NotNil(t, second)
	o := ((ChunkSize/2-1)*ChunkSize + 9) * 4
	assert.Equal(t, []uint8{9, 8, 7, 255}, second.Pixels[o:o+4])

	pad := (0*ChunkSize + 10) * 4
	assert.Equal(t, []uint8{50, 60, 70, 255}, second.Pixels[pad:pad+4], "right edge padding")
	pad = ((ChunkSize - 1) * ChunkSize) * 4
	assert.Equal(t, []uint8{50, 60, 70, 255}, first.Pixels[pad:pad+4], "bottom edge padding")

	assert.Nil(t, m.Get(2, 0))
	assert.Nil(t, m.Get(-1, 0))
}

func TestChunkMapVisible(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, ChunkSize*3, ChunkSize*2))
	m := BuildChunks(img, RGB{})

	got := m.Visible(RectF{X0: -50, Y0: -50, X1: 10, Y1: 10}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].CX)

	got = m.Visible(RectF{X0: ChunkSize - 1, Y0: 0, X1: ChunkSize*2 + 1, Y1: ChunkSize + 1}, nil)
	assert.Len(t, got, 6)

	got = m.Visible(RectF{X0: 10000, Y0: 10000, X1: 10100, Y1: 10100}, nil)
	assert.Empty(t, got)
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-1, ChunkSize))
	assert.Equal(t, 0, floorDiv(0, ChunkSize))
	assert.Equal(t, 1, floorDiv(ChunkSize, ChunkSize))
}
