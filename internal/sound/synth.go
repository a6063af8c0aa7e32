// Package sound synthesises the race's effects and engine note as mono
// float samples. Front-ends wrap them for their own audio backend.
package sound

import "math"

const SampleRate = 44100

// Kind identifies a one-shot effect.
type Kind int

const (
	Start Kind = iota
	Lap
	BestLap
	Bump
	Pause
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Lap:
		return "lap"
	case BestLap:
		return "best-lap"
	case Bump:
		return "bump"
	case Pause:
		return "pause"
	}
	return "unknown"
}

// Generate renders a one-shot effect. Samples are in [-1, 1].
func Generate(k Kind) []float64 {
	switch k {
	case Start:
		return genStart()
	case Lap:
		return genLap()
	case BestLap:
		return genBestLap()
	case Bump:
		return genBump()
	case Pause:
		return genPause()
	}
	return nil
}

// softSat applies gentle tanh-like saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func finish(mix []float64) []float64 {
	for i, s := range mix {
		mix[i] = softSat(s)
	}
	return mix
}

// genStart: crisp click and a brief rising tone.
func genStart() []float64 {
	n := SampleRate * 120 / 1000
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.2, 0.2)
		freq := 700 + 700*p
		out[i] = fm(t, freq, 1.0, 0.6) * env * 0.38
	}
	return finish(out)
}

// bells rings each note over the next, step seconds apart.
func bells(notes []float64, step, tail float64) []float64 {
	noteStep := int(step * SampleRate)
	total := len(notes)*noteStep + int(tail*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	return finish(mix)
}

// genLap: two-note chime.
func genLap() []float64 {
	return bells([]float64{659.25, 880}, 0.09, 0.2)
}

// genBestLap: ascending bell staircase.
func genBestLap() []float64 {
	return bells([]float64{440, 554.37, 659.25, 880, 1108.73}, 0.09, 0.25)
}

// genBump: low thud with a short noise scrape.
func genBump() []float64 {
	n := int(0.16 * SampleRate)
	out := make([]float64, n)
	seed := uint64(0xB0B)
	lp := 0.0
	for i := range out {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 140 - 80*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.5
		lp += (lcg(&seed) - lp) * 0.2
		s += lp * env * 0.3
		out[i] = s
	}
	return finish(out)
}

// genPause: short descending blip.
func genPause() []float64 {
	n := SampleRate * 90 / 1000
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.5, 0.0, 0.1)
		freq := 1100 - 500*p
		out[i] = fm(t, freq, 1.0, 0.5) * env * 0.3
	}
	return finish(out)
}

// Engine is a continuous engine note whose pitch follows road speed.
// It is not safe for concurrent use; callers hand it the latest speed and
// throttle each time they fill a buffer.
type Engine struct {
	phase  float64
	freq   float64
	gain   float64
	lp     float64
	seed   uint64
	primed bool
}

const (
	engineIdleHz = 38.0
	engineTopHz  = 150.0
)

func NewEngine() *Engine {
	return &Engine{seed: 0xE191E}
}

// TargetHz is the firing frequency for a speed fraction in [0, 1].
func TargetHz(frac float64) float64 {
	frac = math.Max(0, math.Min(1, math.Abs(frac)))
	return engineIdleHz + (engineTopHz-engineIdleHz)*frac
}

// Fill writes len(dst) samples. speedFrac is |speed| / top speed, throttle
// is whether the driver is on the pedal. A zero level fades the note out.
func (e *Engine) Fill(dst []float64, speedFrac float64, throttle bool, level float64) {
	target := TargetHz(speedFrac)
	if !e.primed {
		e.freq = target
		e.primed = true
	}
	load := 0.55
	if throttle {
		load = 1.0
	}
	for i := range dst {
		// Glide pitch and gain so frame-rate steps don't click.
		e.freq += (target - e.freq) * 0.0008
		e.gain += (level*load - e.gain) * 0.001
		e.phase += e.freq / SampleRate
		if e.phase >= 1 {
			e.phase -= 1
		}
		saw := 2*e.phase - 1
		e.lp += (saw - e.lp) * 0.08
		pulse := math.Sin(2 * math.Pi * e.phase * 0.5)
		noise := lcg(&e.seed) * 0.04 * load
		dst[i] = softSat((e.lp*0.6+pulse*0.25+noise)*e.gain) * 0.5
	}
}
