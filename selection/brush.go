package selection

import (
	"github.com/gopx/px"
)

// Mode selects whether a brush stroke adds to or subtracts from the mask.
type Mode int

const (
	// Add marks pixels under the brush as selected.
	Add Mode = iota
	// Subtract clears pixels under the brush.
	Subtract
)

// BrushStroke applies a circular brush stroke to a selection mask and
// returns the mask. When mask is nil a new mask of the given image
// dimensions is allocated. Every pixel whose center lies within radius of
// (centerX, centerY) is set to 255 (Add) or 0 (Subtract); repeated
// strokes of the same mode at the same location are idempotent.
func BrushStroke(mask *px.Mask, imgWidth, imgHeight, centerX, centerY, radius int, mode Mode) *px.Mask {
	if mask == nil {
		mask = px.NewMask(imgWidth, imgHeight)
	}
	if radius < 0 {
		return mask
	}

	var value uint8
	if mode == Add {
		value = 255
	}

	w := mask.Width()
	h := mask.Height()
	r2 := radius * radius

	minX := centerX - radius
	maxX := centerX + radius
	minY := centerY - radius
	maxY := centerY + radius

	for y := minY; y <= maxY; y++ {
		if y < 0 || y >= h {
			continue
		}
		dy := y - centerY
		for x := minX; x <= maxX; x++ {
			if x < 0 || x >= w {
				continue
			}
			dx := x - centerX
			if dx*dx+dy*dy > r2 {
				continue
			}
			mask.Set(x, y, value)
		}
	}
	return mask
}
