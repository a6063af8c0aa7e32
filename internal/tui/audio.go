package tui

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"racer/internal/sound"
)

const sampleRate = beep.SampleRate(sound.SampleRate)

// player mixes effects and the engine note through the beep speaker.
// A nil *player is silent, so callers don't need to check whether the
// device opened.
type player struct {
	mixer  *beep.Mixer
	engine *engineStreamer
	volume float64
}

func newPlayer(volume float64) (*player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	p := &player{
		mixer:  &beep.Mixer{},
		engine: &engineStreamer{engine: sound.NewEngine()},
		volume: volume,
	}
	p.mixer.Add(withVolume(p.engine, volume*0.5))
	speaker.Play(p.mixer)
	return p, nil
}

func (p *player) play(k sound.Kind) {
	if p == nil {
		return
	}
	s := withVolume(newSamples(sound.Generate(k)), p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *player) setEngine(frac float64, throttle, running bool) {
	if p == nil {
		return
	}
	p.engine.set(frac, throttle, running)
}

func (p *player) close() {
	if p == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// samples streams a rendered mono effect once.
type samples struct {
	data []float64
	pos  int
}

func newSamples(data []float64) *samples { return &samples{data: data} }

func (s *samples) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	n := 0
	for n < len(buf) && s.pos < len(s.data) {
		v := s.data[s.pos]
		buf[n][0] = v
		buf[n][1] = v
		n++
		s.pos++
	}
	return n, true
}

func (s *samples) Err() error { return nil }

// engineStreamer never ends; the race loop publishes controls through
// atomics while the speaker goroutine streams.
type engineStreamer struct {
	engine *sound.Engine
	frac   atomic.Uint64 // float64 bits
	flags  atomic.Uint32 // bit 0 throttle, bit 1 running
	mono   []float64
}

func (e *engineStreamer) set(frac float64, throttle, running bool) {
	e.frac.Store(math.Float64bits(frac))
	var f uint32
	if throttle {
		f |= 1
	}
	if running {
		f |= 2
	}
	e.flags.Store(f)
}

func (e *engineStreamer) Stream(buf [][2]float64) (int, bool) {
	if cap(e.mono) < len(buf) {
		e.mono = make([]float64, len(buf))
	}
	mono := e.mono[:len(buf)]
	f := e.flags.Load()
	level := 0.0
	if f&2 != 0 {
		level = 1
	}
	e.engine.Fill(mono, math.Float64frombits(e.frac.Load()), f&1 != 0, level)
	for i, v := range mono {
		buf[i][0] = v
		buf[i][1] = v
	}
	return len(buf), true
}

func (e *engineStreamer) Err() error { return nil }
