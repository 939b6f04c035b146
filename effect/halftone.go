package effect

import (
	"math"

	"github.com/gopx/px"
)

// Halftone redraws the image as a grid of black dots on white. The image
// is tiled into cells of dotSize+spacing along a grid rotated by the
// given angle; each cell samples brightness at its center pixel and draws
// a filled circle whose radius is proportional to (1-brightness)*dotSize.
// Alpha is preserved.
//
// Settings: dotSize, spacing (pixels), angle (degrees).
func Halftone(buf *px.Pixmap, s Settings) {
	w := buf.Width()
	h := buf.Height()
	if w == 0 || h == 0 {
		return
	}
	dotSize := s["dotSize"]
	cell := dotSize + s["spacing"]
	if cell <= 0 {
		return
	}
	angle := s["angle"] * math.Pi / 180
	cos := math.Cos(angle)
	sin := math.Sin(angle)

	data := buf.Data()

	brightness := make([]float64, w*h)
	for i := 0; i < w*h; i++ {
		j := i * 4
		brightness[i] = (0.299*float64(data[j+0]) + 0.587*float64(data[j+1]) + 0.114*float64(data[j+2])) / 255
	}

	// White background, dots drawn on top.
	for i := 0; i < len(data); i += 4 {
		data[i+0] = 255
		data[i+1] = 255
		data[i+2] = 255
	}

	// Walk the rotated grid far enough past the corners to cover the
	// whole image after rotating back.
	half := math.Hypot(float64(w), float64(h)) / 2
	cx := float64(w) / 2
	cy := float64(h) / 2

	for v := -half; v <= half; v += cell {
		for u := -half; u <= half; u += cell {
			// Rotate the grid point back into image space.
			x := cx + u*cos - v*sin
			y := cy + u*sin + v*cos

			sx := int(math.Round(x))
			sy := int(math.Round(y))
			if sx < 0 {
				sx = 0
			} else if sx >= w {
				sx = w - 1
			}
			if sy < 0 {
				sy = 0
			} else if sy >= h {
				sy = h - 1
			}

			radius := (1 - brightness[sy*w+sx]) * dotSize / 2
			if radius <= 0 {
				continue
			}
			fillCircle(data, w, h, x, y, radius)
		}
	}
}

// fillCircle paints an opaque black disc, leaving alpha untouched.
func fillCircle(data []uint8, w, h int, cx, cy, radius float64) {
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))
	r2 := radius * radius

	for y := minY; y <= maxY; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < 0 || x >= w {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			j := (y*w + x) * 4
			data[j+0] = 0
			data[j+1] = 0
			data[j+2] = 0
		}
	}
}
