package effect

import (
	"math"

	"github.com/gopx/px"
)

// Sobel performs edge detection. The image is converted to grayscale,
// convolved with the 3x3 Sobel kernels
//
//	Gx = [-1 0 1; -2 0 2; -1 0 1]
//	Gy = [-1 -2 -1; 0 0 0; 1 2 1]
//
// and each pixel becomes 255 where sqrt(Gx^2+Gy^2) exceeds the threshold,
// 0 otherwise (swapped when invert is set). Border pixels read clamped
// neighbors. Alpha is preserved.
//
// Settings: threshold (0-255), invert (0 or 1).
func Sobel(buf *px.Pixmap, s Settings) {
	w := buf.Width()
	h := buf.Height()
	if w == 0 || h == 0 {
		return
	}
	threshold := s["threshold"]
	invert := s["invert"] >= 0.5

	data := buf.Data()

	gray := make([]float64, w*h)
	for i := 0; i < w*h; i++ {
		j := i * 4
		gray[i] = 0.299*float64(data[j+0]) + 0.587*float64(data[j+1]) + 0.114*float64(data[j+2])
	}

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return gray[y*w+x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			magnitude := math.Sqrt(gx*gx + gy*gy)

			var v uint8
			if magnitude > threshold {
				v = 255
			}
			if invert {
				v = 255 - v
			}

			j := (y*w + x) * 4
			data[j+0] = v
			data[j+1] = v
			data[j+2] = v
		}
	}
}
