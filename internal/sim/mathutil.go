package sim

import "math"

// approach moves cur toward target by at most maxDelta without passing it.
func approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// easeToward closes the gap to target by the fraction 1-e^(-rate).
// The result never passes target.
func easeToward(cur, target, rate float64) float64 {
	if rate <= 0 {
		return cur
	}
	next := cur + (target-cur)*(1-math.Exp(-rate))
	if (cur <= target && next > target) || (cur >= target && next < target) {
		return target
	}
	return next
}

// NormalizeDegrees maps any angle to [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func radians(deg float64) float64 {
	return NormalizeDegrees(deg) * math.Pi / 180
}
