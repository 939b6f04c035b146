package selection

import (
	"errors"
	"image"

	"github.com/gopx/px"
)

// ErrSeedOutOfBounds is returned when the magic wand seed lies outside
// the image.
var ErrSeedOutOfBounds = errors.New("selection: seed coordinates out of bounds")

// MagicWand selects pixels whose color is within tolerance of the seed
// pixel's color and returns the mask together with its tight bounding
// box.
//
// The color distance metric is the sum of absolute per-channel RGB
// differences against the seed color; a pixel is included when the sum is
// <= tolerance. Alpha does not participate in the distance.
//
// With contiguous=true the selection grows as a 4-connected flood fill
// from the seed; with contiguous=false every pixel of the image within
// tolerance is selected regardless of position.
//
// A zero-sized image yields an empty mask and a zero rectangle, not an
// error. A seed outside a non-empty image returns ErrSeedOutOfBounds.
func MagicWand(buf *px.Pixmap, seedX, seedY, tolerance int, contiguous bool) (*px.Mask, image.Rectangle, error) {
	w := buf.Width()
	h := buf.Height()
	mask := px.NewMask(w, h)
	if w == 0 || h == 0 {
		return mask, image.Rectangle{}, nil
	}
	if seedX < 0 || seedX >= w || seedY < 0 || seedY >= h {
		return mask, image.Rectangle{}, ErrSeedOutOfBounds
	}
	if tolerance < 0 {
		tolerance = 0
	}

	data := buf.Data()
	si := (seedY*w + seedX) * 4
	sr := int(data[si+0])
	sg := int(data[si+1])
	sb := int(data[si+2])

	within := func(i int) bool {
		j := i * 4
		d := intAbs(int(data[j+0])-sr) + intAbs(int(data[j+1])-sg) + intAbs(int(data[j+2])-sb)
		return d <= tolerance
	}

	mdata := mask.Data()

	if !contiguous {
		for i := 0; i < w*h; i++ {
			if within(i) {
				mdata[i] = 255
			}
		}
	} else {
		// 4-connected BFS from the seed. The mask itself doubles as the
		// visited set for included pixels; rejected pixels get their own
		// guard so they are tested at most once per neighbor direction.
		visited := make([]bool, w*h)
		queue := make([]int, 0, 64)
		start := seedY*w + seedX
		visited[start] = true
		if within(start) {
			mdata[start] = 255
			queue = append(queue, start)
		}
		neighbors := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			x := i % w
			y := i / w

			for _, d := range neighbors {
				nx := x + d[0]
				ny := y + d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if visited[n] {
					continue
				}
				visited[n] = true
				if within(n) {
					mdata[n] = 255
					queue = append(queue, n)
				}
			}
		}
	}

	box, ok := mask.BoundingBox()
	if !ok {
		box = image.Rectangle{}
	}
	return mask, box, nil
}

// Outline extracts the selection boundary as a list of polylines for
// overlay rendering. A pixel is a boundary pixel when it is selected and
// any 4-neighbor is not (pixels on the image edge count as boundary).
// Connected boundary pixels (8-connected) are chained greedily into
// polylines.
func Outline(mask *px.Mask) [][]image.Point {
	w := mask.Width()
	h := mask.Height()
	if w == 0 || h == 0 {
		return nil
	}

	boundary := make(map[int]bool)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.At(x, y) == 0 {
				continue
			}
			if mask.At(x-1, y) == 0 || mask.At(x+1, y) == 0 ||
				mask.At(x, y-1) == 0 || mask.At(x, y+1) == 0 {
				boundary[y*w+x] = true
			}
		}
	}

	var polylines [][]image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := y*w + x
			if !boundary[start] {
				continue
			}

			// Walk to any unvisited 8-neighbor until the chain ends.
			line := []image.Point{{X: x, Y: y}}
			delete(boundary, start)
			cx, cy := x, y
			for {
				found := false
				for dy := -1; dy <= 1 && !found; dy++ {
					for dx := -1; dx <= 1 && !found; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := cx+dx, cy+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						if boundary[ny*w+nx] {
							delete(boundary, ny*w+nx)
							line = append(line, image.Point{X: nx, Y: ny})
							cx, cy = nx, ny
							found = true
						}
					}
				}
				if !found {
					break
				}
			}
			polylines = append(polylines, line)
		}
	}
	return polylines
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
