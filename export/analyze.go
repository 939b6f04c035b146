package export

import (
	"github.com/gopx/px/anim"
)

// Metrics summarizes frame content for the optimizer.
type Metrics struct {
	// Complexity is a combined content score in [0, 1]: flat graphics
	// score low, busy photographic content scores high.
	Complexity float64
	// ColorCount is the number of distinct 16-level RGB buckets seen
	// across sampled pixels, capped at colorCap.
	ColorCount int
	// MotionIntensity is the mean normalized per-pixel change between
	// consecutive frames, in [0, 1]. Zero for fewer than two frames.
	MotionIntensity float64
}

const (
	// sampleStride picks every Nth pixel during analysis. Sampling keeps
	// Analyze cheap on large frames without changing the verdict.
	sampleStride = 4

	// colorCap normalizes the distinct-bucket count: colorCap or more
	// buckets reads as maximally colorful.
	colorCap = 256

	// edgeCutoff is the per-channel luminance step between horizontal
	// neighbors that counts as an edge.
	edgeCutoff = 30
)

// Analyze measures the frame sequence and returns its content metrics.
// Transparent pixels (alpha < 128) are excluded from color counting.
// Zero frames return all-zero metrics so downstream calls stay total.
func Analyze(frames []anim.Frame) Metrics {
	if len(frames) == 0 {
		return Metrics{}
	}

	colorNorm, colorCount := colorComplexity(frames)
	motion := motionIntensity(frames)
	edges := edgeDensity(frames[0])

	complexity := 0.4*colorNorm + 0.3*edges + 0.3*motion
	if complexity > 1 {
		complexity = 1
	}

	return Metrics{
		Complexity:      complexity,
		ColorCount:      colorCount,
		MotionIntensity: motion,
	}
}

// colorComplexity quantizes sampled opaque pixels to 16 levels per
// channel and counts distinct buckets across all frames.
func colorComplexity(frames []anim.Frame) (norm float64, count int) {
	buckets := make(map[uint16]struct{})
	for _, f := range frames {
		data := f.Pixmap.Data()
		for i := 0; i < len(data); i += 4 * sampleStride {
			if data[i+3] < 128 {
				continue
			}
			key := uint16(data[i]>>4)<<8 | uint16(data[i+1]>>4)<<4 | uint16(data[i+2]>>4)
			buckets[key] = struct{}{}
		}
	}
	count = len(buckets)
	if count > colorCap {
		count = colorCap
	}
	return float64(count) / colorCap, count
}

// motionIntensity averages the normalized per-channel difference between
// consecutive frame pairs, sampling every sampleStride-th pixel.
func motionIntensity(frames []anim.Frame) float64 {
	if len(frames) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(frames); i++ {
		prev := frames[i-1].Pixmap.Data()
		cur := frames[i].Pixmap.Data()
		n := len(prev)
		if len(cur) < n {
			n = len(cur)
		}
		var sum, samples int
		for j := 0; j < n; j += 4 * sampleStride {
			sum += absInt(int(cur[j])-int(prev[j])) +
				absInt(int(cur[j+1])-int(prev[j+1])) +
				absInt(int(cur[j+2])-int(prev[j+2]))
			samples++
		}
		if samples > 0 {
			// 765 is the max summed RGB difference per pixel.
			total += float64(sum) / float64(samples) / 765
		}
	}
	return total / float64(len(frames)-1)
}

// edgeDensity estimates spatial busyness on one frame: the fraction of
// sampled pixels whose right neighbor differs sharply in luminance.
func edgeDensity(frame anim.Frame) float64 {
	buf := frame.Pixmap
	w, h := buf.Width(), buf.Height()
	if w < 2 {
		return 0
	}
	data := buf.Data()
	var edges, samples int
	for y := 0; y < h; y += sampleStride {
		for x := 0; x < w-1; x += sampleStride {
			i := (y*w + x) * 4
			j := i + 4
			la := luma(data[i], data[i+1], data[i+2])
			lb := luma(data[j], data[j+1], data[j+2])
			if absInt(la-lb) > edgeCutoff {
				edges++
			}
			samples++
		}
	}
	if samples == 0 {
		return 0
	}
	return float64(edges) / float64(samples)
}

func luma(r, g, b uint8) int {
	return (299*int(r) + 587*int(g) + 114*int(b)) / 1000
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
