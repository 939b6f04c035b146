package export

import (
	"math"
	"runtime"

	"github.com/gopx/px"
	"github.com/gopx/px/anim"
)

// ContentHint biases the optimizer toward a content class when the
// caller knows what the frames hold.
type ContentHint int

const (
	HintAuto ContentHint = iota
	HintGraphics
	HintPhoto
)

// Settings are the encode parameters handed to an Encoder.
type Settings struct {
	// Quality is a discrete scale in [1, 10]; higher means larger
	// palettes and larger files.
	Quality int
	// Dithering enables Floyd-Steinberg dithering during palettization.
	Dithering bool
	// Workers bounds the encoder's internal parallelism, at most 4.
	Workers int
	// Transparency preserves an alpha channel in the output.
	Transparency bool
	// EstimatedSizeKB is the optimizer's size prediction for these
	// settings, for caller display. The encoder ignores it.
	EstimatedSizeKB int
}

// Constraints bound the optimizer's output. Zero values mean
// unconstrained.
type Constraints struct {
	TargetSizeKB int
	MaxSizeKB    int
	ContentHint  ContentHint
	// ForceDithering overrides the content-based dithering choice when
	// non-nil.
	ForceDithering *bool
}

// Optimize derives encode settings for the frames under the given
// constraints. It starts from a complexity-based quality recommendation,
// then scales quality down (never up) when the size estimate exceeds the
// target or maximum.
func Optimize(frames []anim.Frame, c Constraints) Settings {
	m := Analyze(frames)

	quality := recommendQuality(m)
	estimate := estimateSizeKB(frames, quality, m)

	budget := c.TargetSizeKB
	if c.MaxSizeKB > 0 && (budget == 0 || c.MaxSizeKB < budget) {
		budget = c.MaxSizeKB
	}
	if budget > 0 && estimate > budget {
		// Logarithmic cut: 2x over budget drops two quality steps, 4x
		// drops four, so far-over-budget inputs converge quickly.
		ratio := float64(estimate) / float64(budget)
		quality -= int(math.Ceil(math.Log2(ratio) * 2))
		if quality < 1 {
			quality = 1
		}
		estimate = estimateSizeKB(frames, quality, m)
	}

	photoLike := m.ColorCount >= 128 || c.ContentHint == HintPhoto
	if c.ContentHint == HintGraphics {
		photoLike = false
	}
	dithering := photoLike
	if c.ForceDithering != nil {
		dithering = *c.ForceDithering
	}

	s := Settings{
		Quality:         quality,
		Dithering:       dithering,
		Workers:         defaultWorkers(),
		Transparency:    hasTransparency(frames),
		EstimatedSizeKB: estimate,
	}
	px.Logger().Debug("export: optimized settings",
		"quality", s.Quality, "dithering", s.Dithering,
		"estimatedKB", s.EstimatedSizeKB,
		"complexity", m.Complexity, "colors", m.ColorCount, "motion", m.MotionIntensity)
	return s
}

// recommendQuality maps content metrics to a quality on [1, 10].
func recommendQuality(m Metrics) int {
	var q int
	switch {
	case m.Complexity < 0.3:
		q = 5
	case m.Complexity < 0.6:
		q = 7
	default:
		q = 9
	}
	// Flat graphics palettize fine at lower quality; photographic color
	// ranges need headroom.
	if m.ColorCount < 16 {
		q -= 2
	} else if m.ColorCount >= 192 {
		q++
	}
	// High motion favors smaller files over per-frame fidelity.
	if m.MotionIntensity > 0.5 {
		q--
	}
	if q < 1 {
		q = 1
	}
	if q > 10 {
		q = 10
	}
	return q
}

// estimateSizeKB predicts the encoded size from raw dimensions, frame
// count, quality, and content complexity. The model is crude but
// monotone in quality, which is all the budget loop needs.
func estimateSizeKB(frames []anim.Frame, quality int, m Metrics) int {
	if len(frames) == 0 {
		return 0
	}
	w := frames[0].Pixmap.Width()
	h := frames[0].Pixmap.Height()
	rawKB := float64(w*h*len(frames)) / 1024

	bytesPerPixel := 0.05 + 0.30*m.Complexity
	qualityScale := 0.2 + 0.8*float64(quality)/10

	est := int(rawKB * bytesPerPixel * qualityScale)
	if est < 1 {
		est = 1
	}
	return est
}

// hasTransparency reports whether any sampled pixel in the first frame
// is not fully opaque.
func hasTransparency(frames []anim.Frame) bool {
	if len(frames) == 0 {
		return false
	}
	data := frames[0].Pixmap.Data()
	for i := 3; i < len(data); i += 4 * sampleStride {
		if data[i] < 255 {
			return true
		}
	}
	return false
}

// defaultWorkers bounds encoder parallelism at 4 regardless of core
// count.
func defaultWorkers() int {
	n := runtime.GOMAXPROCS(0)
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	return n
}
