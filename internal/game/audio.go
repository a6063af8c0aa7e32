package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"racer/internal/sound"
)

const (
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// AudioSystem plays one-shot effects and the looping engine note.
type AudioSystem struct {
	ctx          *oto.Context
	ready        chan struct{}
	engine       *engineReader
	enginePlayer oto.Player
	volume       float64
}

var globalAudio *AudioSystem

// InitAudio opens the audio device. Effects are silently dropped until it
// reports ready.
func InitAudio(volume float64) error {
	ctx, ready, err := oto.NewContext(sound.SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready, volume: clampF(volume, 0, 1)}
	return nil
}

func audioReady() bool {
	if globalAudio == nil {
		return false
	}
	select {
	case <-globalAudio.ready:
		return true
	default:
		return false
	}
}

// PlaySound plays a synthesised effect on its own player.
func PlaySound(kind sound.Kind) {
	if !audioReady() || globalAudio.volume <= 0 {
		return
	}
	samples := sound.Generate(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: encodeStereo(samples)}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(globalAudio.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// StartEngine begins the looping engine note. Call once after InitAudio.
func StartEngine() {
	if !audioReady() || globalAudio.enginePlayer != nil {
		return
	}
	r := &engineReader{engine: sound.NewEngine()}
	player := globalAudio.ctx.NewPlayer(r)
	player.SetVolume(globalAudio.volume * 0.5)
	player.Play()
	globalAudio.engine = r
	globalAudio.enginePlayer = player
}

// SetEngine hands the engine note the car's speed fraction and throttle.
// A stopped race passes running=false to idle the note out.
func SetEngine(speedFrac float64, throttle, running bool) {
	if globalAudio == nil || globalAudio.engine == nil {
		return
	}
	globalAudio.engine.set(speedFrac, throttle, running)
}

// CloseAudio stops the engine note.
func CloseAudio() {
	if globalAudio == nil || globalAudio.enginePlayer == nil {
		return
	}
	globalAudio.enginePlayer.Close()
	globalAudio.enginePlayer = nil
	globalAudio.engine = nil
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// engineReader streams the engine note. The render loop publishes controls
// through atomics; oto reads on its own goroutine.
type engineReader struct {
	engine *sound.Engine
	frac   atomic.Uint64 // float64 bits
	flags  atomic.Uint32 // bit 0 throttle, bit 1 running
	mono   []float64
}

func (r *engineReader) set(frac float64, throttle, running bool) {
	r.frac.Store(math.Float64bits(frac))
	var f uint32
	if throttle {
		f |= 1
	}
	if running {
		f |= 2
	}
	r.flags.Store(f)
}

func (r *engineReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	if cap(r.mono) < samples {
		r.mono = make([]float64, samples)
	}
	mono := r.mono[:samples]
	f := r.flags.Load()
	level := 0.0
	if f&2 != 0 {
		level = 1
	}
	r.engine.Fill(mono, math.Float64frombits(r.frac.Load()), f&1 != 0, level)
	for i, s := range mono {
		putStereoF32(p, i, s)
	}
	return samples * 8, nil
}

// encodeStereo converts mono samples to interleaved stereo float32 LE.
func encodeStereo(mono []float64) []byte {
	buf := makeBuf(len(mono))
	for i, s := range mono {
		putStereoF32(buf, i, s)
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }
