package effect

import (
	"math"
	"math/rand"

	"github.com/gopx/px"
)

// PixelExplode scatters pixels radially outward from the image center by
// a random distance up to strength. Randomness comes from an explicit
// seed setting, so the same (buffer, settings) input always produces the
// same output; the frame renderer threads a monotonically increasing seed
// per frame to animate the scatter deterministically.
//
// Settings: strength (max displacement in pixels), seed.
func PixelExplode(buf *px.Pixmap, s Settings) {
	w := buf.Width()
	h := buf.Height()
	if w == 0 || h == 0 {
		return
	}
	strength := s["strength"]
	if strength <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(int64(s["seed"])))

	src := buf.Clone()
	srcData := src.Data()
	data := buf.Data()

	// Clear to transparent; scattered pixels land on top.
	for i := range data {
		data[i] = 0
	}

	cx := float64(w) / 2
	cy := float64(h) / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist := math.Hypot(dx, dy)

			var dirX, dirY float64
			if dist > 0 {
				dirX = dx / dist
				dirY = dy / dist
			} else {
				angle := rng.Float64() * 2 * math.Pi
				dirX = math.Cos(angle)
				dirY = math.Sin(angle)
			}

			// Displacement grows with distance from center so the edges
			// fly apart faster than the middle.
			falloff := 0.3 + 0.7*dist/math.Max(cx, cy)
			offset := rng.Float64() * strength * falloff

			nx := x + int(math.Round(dirX*offset))
			ny := y + int(math.Round(dirY*offset))
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}

			si := (y*w + x) * 4
			di := (ny*w + nx) * 4
			data[di+0] = srcData[si+0]
			data[di+1] = srcData[si+1]
			data[di+2] = srcData[si+2]
			data[di+3] = srcData[si+3]
		}
	}
}
