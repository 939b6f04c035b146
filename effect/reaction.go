package effect

import (
	"image"

	"github.com/gopx/px"
	xdraw "golang.org/x/image/draw"
)

// Gray-Scott simulation constants. Diffusion rates follow the standard
// two-chemical parameterization; dt=1 is stable with the weighted
// 9-point Laplacian below.
const (
	diffuseA = 1.0
	diffuseB = 0.5
	reactDT  = 1.0
)

// ReactionDiffusion runs a Gray-Scott reaction-diffusion simulation
// seeded from the image and maps the result back onto it. The image is
// downsampled by the scale factor to a coarse simulation grid; cells
// darker than the seed threshold start with chemical b present, and a
// small centered square is always seeded so uniform images still develop
// patterns. After the configured number of iterations of
//
//	a' = a + dt*(Da*lap(a) - a*b^2 + f*(1-a))
//	b' = b + dt*(Db*lap(b) + a*b^2 - (f+k)*b)
//
// the b channel is normalized to grayscale and upsampled back to full
// resolution. Alpha is preserved.
//
// Settings: iterations, feed, kill, scale, threshold.
func ReactionDiffusion(buf *px.Pixmap, s Settings) {
	w := buf.Width()
	h := buf.Height()
	if w == 0 || h == 0 {
		return
	}
	iterations := int(s["iterations"])
	feed := s["feed"]
	kill := s["kill"]
	scale := int(s["scale"])
	if scale < 1 {
		scale = 1
	}
	threshold := s["threshold"]

	gw := w / scale
	gh := h / scale
	if gw < 3 {
		gw = 3
	}
	if gh < 3 {
		gh = 3
	}

	coarse := buf.Resize(gw, gh)

	a := make([]float64, gw*gh)
	b := make([]float64, gw*gh)
	for i := range a {
		a[i] = 1
	}

	// Seed b where the source is dark.
	cdata := coarse.Data()
	for i := 0; i < gw*gh; i++ {
		j := i * 4
		lum := (0.299*float64(cdata[j+0]) + 0.587*float64(cdata[j+1]) + 0.114*float64(cdata[j+2])) / 255
		if lum < threshold {
			b[i] = 1
		}
	}

	// Centered seed square so flat images still react.
	seed := gw / 10
	if seed < 1 {
		seed = 1
	}
	for y := gh/2 - seed; y <= gh/2+seed; y++ {
		for x := gw/2 - seed; x <= gw/2+seed; x++ {
			if x >= 0 && x < gw && y >= 0 && y < gh {
				b[y*gw+x] = 1
			}
		}
	}

	nextA := make([]float64, gw*gh)
	nextB := make([]float64, gw*gh)

	for it := 0; it < iterations; it++ {
		for y := 0; y < gh; y++ {
			for x := 0; x < gw; x++ {
				i := y*gw + x
				la := laplacian(a, gw, gh, x, y)
				lb := laplacian(b, gw, gh, x, y)
				abb := a[i] * b[i] * b[i]
				nextA[i] = a[i] + reactDT*(diffuseA*la-abb+feed*(1-a[i]))
				nextB[i] = b[i] + reactDT*(diffuseB*lb+abb-(feed+kill)*b[i])
			}
		}
		a, nextA = nextA, a
		b, nextB = nextB, b
	}

	// Normalize b over its observed range so the grayscale output uses
	// the full value range; high b maps to dark.
	maxB := 0.0
	for _, v := range b {
		if v > maxB {
			maxB = v
		}
	}
	out := px.NewPixmap(gw, gh)
	odata := out.Data()
	for i := 0; i < gw*gh; i++ {
		t := 0.0
		if maxB > 0 {
			t = b[i] / maxB
		}
		v := uint8(255 * (1 - t))
		j := i * 4
		odata[j+0] = v
		odata[j+1] = v
		odata[j+2] = v
		odata[j+3] = 255
	}

	// Upsample with Catmull-Rom for smooth pattern edges, then write RGB
	// back over the buffer keeping the original alpha channel.
	full := image.NewRGBA(image.Rect(0, 0, w, h))
	src := out.ToImage()
	xdraw.CatmullRom.Scale(full, full.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	data := buf.Data()
	for i := 0; i < w*h; i++ {
		j := i * 4
		data[j+0] = full.Pix[j+0]
		data[j+1] = full.Pix[j+1]
		data[j+2] = full.Pix[j+2]
	}
}

// laplacian computes the weighted 9-point discrete Laplacian with edge
// clamping: center -1, orthogonal neighbors 0.2, diagonals 0.05.
func laplacian(grid []float64, w, h, x, y int) float64 {
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
		return grid[y*w+x]
	}
	return -grid[y*w+x] +
		0.2*(at(x-1, y)+at(x+1, y)+at(x, y-1)+at(x, y+1)) +
		0.05*(at(x-1, y-1)+at(x+1, y-1)+at(x-1, y+1)+at(x+1, y+1))
}
