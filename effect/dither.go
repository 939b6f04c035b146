package effect

import (
	"github.com/gopx/px"
)

// Dither applies Floyd-Steinberg error diffusion. The image is converted
// to grayscale first; each pixel in raster order is quantized to 0 or 255
// against threshold*255, and the quantization error is distributed to the
// unvisited neighbors with the standard kernel:
//
//	        *    7/16
//	3/16  5/16   1/16
//
// Errors accumulate in a float working copy read ahead of the write
// cursor. Every output channel value is 0 or 255; alpha is preserved.
//
// Settings: threshold (0-1).
func Dither(buf *px.Pixmap, s Settings) {
	w := buf.Width()
	h := buf.Height()
	if w == 0 || h == 0 {
		return
	}
	threshold := s["threshold"] * 255

	data := buf.Data()

	// Grayscale working copy holding diffused values, which may leave
	// the 0-255 range mid-pass.
	gray := make([]float64, w*h)
	for i := 0; i < w*h; i++ {
		j := i * 4
		gray[i] = 0.299*float64(data[j+0]) + 0.587*float64(data[j+1]) + 0.114*float64(data[j+2])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := gray[i]
			var quantized float64
			if old >= threshold {
				quantized = 255
			}
			errVal := old - quantized
			gray[i] = quantized

			if x+1 < w {
				gray[i+1] += errVal * 7 / 16
			}
			if y+1 < h {
				if x > 0 {
					gray[i+w-1] += errVal * 3 / 16
				}
				gray[i+w] += errVal * 5 / 16
				if x+1 < w {
					gray[i+w+1] += errVal * 1 / 16
				}
			}
		}
	}

	for i := 0; i < w*h; i++ {
		j := i * 4
		v := uint8(gray[i])
		data[j+0] = v
		data[j+1] = v
		data[j+2] = v
	}
}
