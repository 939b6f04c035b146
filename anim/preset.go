package anim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gopx/px/effect"
)

var (
	ErrBadDuration  = errors.New("anim: duration must be positive")
	ErrBadFrameRate = errors.New("anim: frame rate must be positive")
)

// Preset is a static animation configuration for an effect: a duration,
// a frame rate, and one curve per animated parameter key. Presets are
// immutable once built.
type Preset struct {
	Name      string
	Duration  time.Duration
	FrameRate float64
	Curves    map[string]Curve
}

// FrameCount returns floor(seconds * fps), with a minimum of 1 so every
// valid preset renders at least one frame.
func (p *Preset) FrameCount() int {
	n := int(p.Duration.Seconds() * p.FrameRate)
	if n < 1 {
		n = 1
	}
	return n
}

// DelayMS returns the per-frame delay in milliseconds, 1000/frameRate,
// never less than 1 so frames always carry a positive delay.
func (p *Preset) DelayMS() int {
	if p.FrameRate <= 0 {
		return 0
	}
	d := int(1000 / p.FrameRate)
	if d < 1 {
		d = 1
	}
	return d
}

// Validate checks the preset invariants: positive duration and frame
// rate, and curves that stay finite across the progress interval
// (spot-checked at fixed sample points).
func (p *Preset) Validate() error {
	if p.Duration <= 0 {
		return ErrBadDuration
	}
	if p.FrameRate <= 0 {
		return ErrBadFrameRate
	}
	const samples = 17
	for key, curve := range p.Curves {
		if curve == nil {
			return fmt.Errorf("anim: preset %q: nil curve for %q", p.Name, key)
		}
		for i := 0; i < samples; i++ {
			t := float64(i) / float64(samples-1)
			v := curve(t)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("anim: preset %q: curve %q is not finite at progress %v", p.Name, key, t)
			}
		}
	}
	return nil
}

// Sample evaluates every curve in the preset at the given progress and
// merges the results over the base settings: curve values override base
// values, untouched base keys pass through. The base map is not mutated.
func Sample(p *Preset, base effect.Settings, progress float64) effect.Settings {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	out := base.Clone()
	for key, curve := range p.Curves {
		out[key] = curve(progress)
	}
	return out
}
