package sim

import (
	"fmt"
	"math"
	"time"
)

// NoTime is what FormatLapTime prints for a lap that has not happened yet.
const NoTime = "inf"

// LapState tracks finish-line crossings. A lap ends when the car leaves the
// finish zone; entering it, or sitting on it, never counts.
type LapState struct {
	InZone    bool
	Count     int
	Start     time.Time
	Last      float64 // seconds, +Inf before the first lap
	Best      float64 // seconds, +Inf before the first lap
	BestIndex int     // zero-based lap number of Best
	Running   bool
}

// LapEvent reports what one Observe call changed.
type LapEvent struct {
	Completed bool
	Lap       int     // lap number just completed, one-based
	Time      float64 // seconds
	NewBest   bool
}

func NewLapState(now time.Time) LapState {
	return LapState{
		Start: now,
		Last:  math.Inf(1),
		Best:  math.Inf(1),
	}
}

// Observe feeds this frame's overlap between the car and the finish zone.
func (l *LapState) Observe(overlap bool, now time.Time) LapEvent {
	wasInside := l.InZone
	l.InZone = overlap
	if overlap || !wasInside {
		return LapEvent{}
	}

	l.Count++
	l.Last = now.Sub(l.Start).Seconds()
	l.Start = now
	l.Running = true

	ev := LapEvent{Completed: true, Lap: l.Count, Time: l.Last}
	if l.Last < l.Best {
		l.Best = l.Last
		l.BestIndex = l.Count - 1
		ev.NewBest = true
	}
	return ev
}

// Elapsed is the running time of the current lap, zero until the first crossing.
func (l LapState) Elapsed(now time.Time) float64 {
	if !l.Running {
		return 0
	}
	return now.Sub(l.Start).Seconds()
}

// FormatLapTime renders seconds as minutes:seconds without zero padding,
// e.g. 125 -> "2:5". Infinite or undefined values come back as NoTime.
func FormatLapTime(seconds float64) string {
	if math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return NoTime
	}
	minutes := int(seconds / 60)
	return fmt.Sprintf("%d:%d", minutes, int(seconds)-minutes*60)
}
