package anim

import "math"

// Curve maps normalized animation progress in [0, 1] to a parameter
// value. Curves must return finite, non-NaN values over the whole
// interval; Preset.Validate spot-checks this.
type Curve func(progress float64) float64

// Constant returns a curve that always evaluates to v.
func Constant(v float64) Curve {
	return func(float64) float64 { return v }
}

// Linear interpolates from `from` at progress 0 to `to` at progress 1.
func Linear(from, to float64) Curve {
	return func(t float64) float64 {
		return from + (to-from)*t
	}
}

// EaseInOut interpolates from `from` to `to` with a smoothstep ramp:
// slow at both ends, fastest in the middle.
func EaseInOut(from, to float64) Curve {
	return func(t float64) float64 {
		s := t * t * (3 - 2*t)
		return from + (to-from)*s
	}
}

// SineWave oscillates around center with the given amplitude, completing
// `cycles` full periods over the animation. It starts and ends at center
// for whole cycle counts, which makes looping exports seamless.
func SineWave(center, amplitude float64, cycles float64) Curve {
	return func(t float64) float64 {
		return center + amplitude*math.Sin(2*math.Pi*cycles*t)
	}
}

// Pulse rises from lo to hi and falls back to lo, peaking at progress
// 0.5. Like SineWave it loops seamlessly.
func Pulse(lo, hi float64) Curve {
	return func(t float64) float64 {
		return lo + (hi-lo)*math.Sin(math.Pi*t)
	}
}

// Triangle ramps from lo to hi over the first half and back down over
// the second half, linearly.
func Triangle(lo, hi float64) Curve {
	return func(t float64) float64 {
		if t <= 0.5 {
			return lo + (hi-lo)*2*t
		}
		return hi - (hi-lo)*2*(t-0.5)
	}
}
