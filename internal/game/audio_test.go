package game

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/sound"
)

func TestEncodeStereo(t *testing.T) {
	buf := encodeStereo([]float64{0.5, -0.25})
	require.Len(t, buf, 16)
	l := math.Float32frombits(binary.LittleEndian.Uint32(buf[8:]))
	r := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:]))
	assert.Equal(t, float32(-0.25), l)
	assert.Equal(t, l, r)
}

func TestSoundReaderDrains(t *testing.T) {
	r := &soundReader{data: encodeStereo(sound.Generate(sound.Pause))}
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Len(t, data, len(r.data))
}

func TestEngineReaderStreams(t *testing.T) {
	r := &engineReader{engine: sound.NewEngine()}
	r.set(0.8, true, true)
	p := make([]byte, 8*512+3)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 8*512, n)

	n, err = r.Read(make([]byte, 7))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlaySoundWithoutDevice(t *testing.T) {
	globalAudio = nil
	assert.NotPanics(t, func() {
		PlaySound(sound.Lap)
		SetEngine(1, true, true)
		CloseAudio()
	})
}
