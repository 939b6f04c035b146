package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"sort"
	"sync"

	"github.com/gopx/px"
	"github.com/gopx/px/anim"
)

// ErrNoFrames is returned when an encoder is handed an empty frame list.
var ErrNoFrames = errors.New("export: no frames to encode")

// Encoder turns a frame sequence into an encoded blob. Implementations
// must either return a complete blob or an error, never a truncated one.
type Encoder interface {
	Encode(ctx context.Context, frames []anim.Frame, settings Settings) ([]byte, error)
}

// GIFEncoder encodes frames as an animated GIF. Quality controls the
// palette size, Dithering selects Floyd-Steinberg palettization, and
// Workers bounds the palettize pool.
type GIFEncoder struct {
	// Progress, when non-nil, is called after each palettized frame and
	// once more after the bitstream is written. total counts both
	// stages.
	Progress func(done, total int)
	// LoopCount follows image/gif semantics: 0 loops forever.
	LoopCount int
}

// Encode palettizes every frame against a shared popularity palette and
// writes an animated GIF. Frames are palettized on a bounded worker
// pool; the bitstream write itself is sequential. Cancellation is
// checked per frame and no partial output is ever returned.
func (e *GIFEncoder) Encode(ctx context.Context, frames []anim.Frame, settings Settings) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	total := len(frames) + 1
	pal := buildPalette(frames, settings)

	images, err := e.palettizeAll(ctx, frames, pal, settings)
	if err != nil {
		return nil, err
	}

	g := &gif.GIF{
		Image:     images,
		Delay:     make([]int, len(frames)),
		LoopCount: e.LoopCount,
	}
	for i, f := range frames {
		g.Delay[i] = f.DelayMS / 10 // GIF delay unit is 10ms
	}
	if settings.Transparency {
		g.Disposal = make([]byte, len(frames))
		for i := range g.Disposal {
			g.Disposal[i] = gif.DisposalBackground
		}
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("export: gif encode: %w", err)
	}
	if e.Progress != nil {
		e.Progress(total, total)
	}

	px.Logger().Debug("export: encoded gif",
		"frames", len(frames), "palette", len(pal), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// palettizeAll converts every frame to a paletted image. Small frame
// counts run sequentially; larger ones fan out to at most
// settings.Workers goroutines feeding off a shared index channel.
func (e *GIFEncoder) palettizeAll(ctx context.Context, frames []anim.Frame, pal color.Palette, settings Settings) ([]*image.Paletted, error) {
	total := len(frames) + 1
	images := make([]*image.Paletted, len(frames))

	workers := settings.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > 4 {
		workers = 4
	}
	if workers > len(frames) {
		workers = len(frames)
	}

	if workers == 1 || len(frames) <= 2 {
		for i, f := range frames {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			images[i] = palettize(f.Pixmap, pal, settings.Dithering)
			if e.Progress != nil {
				e.Progress(i+1, total)
			}
		}
		return images, nil
	}

	work := make(chan int, len(frames))
	for i := range frames {
		work <- i
	}
	close(work)

	type result struct {
		idx int
		img *image.Paletted
		err error
	}
	results := make(chan result, len(frames))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if err := ctx.Err(); err != nil {
					results <- result{idx: idx, err: err}
					continue
				}
				results <- result{idx: idx, img: palettize(frames[idx].Pixmap, pal, settings.Dithering)}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	done := 0
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		images[r.idx] = r.img
		done++
		if e.Progress != nil {
			e.Progress(done, total)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return images, nil
}

// palettize maps one pixmap onto the palette, with or without
// Floyd-Steinberg dithering.
func palettize(buf *px.Pixmap, pal color.Palette, dither bool) *image.Paletted {
	dst := image.NewPaletted(buf.Bounds(), pal)
	if dither {
		draw.FloydSteinberg.Draw(dst, buf.Bounds(), buf, image.Point{})
	} else {
		draw.Draw(dst, buf.Bounds(), buf, image.Point{}, draw.Src)
	}
	return dst
}

// buildPalette derives a shared palette from bucket popularity across
// all frames: sampled opaque pixels are quantized to 16 levels per
// channel, the most frequent buckets win, and each surviving bucket
// contributes its center color. Quality scales the palette size.
func buildPalette(frames []anim.Frame, settings Settings) color.Palette {
	counts := make(map[uint16]int)
	for _, f := range frames {
		data := f.Pixmap.Data()
		for i := 0; i < len(data); i += 4 * sampleStride {
			if data[i+3] < 128 {
				continue
			}
			key := uint16(data[i]>>4)<<8 | uint16(data[i+1]>>4)<<4 | uint16(data[i+2]>>4)
			counts[key]++
		}
	}

	type bucket struct {
		key   uint16
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, bucket{key: k, count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].key < buckets[j].key
	})

	size := paletteSize(settings.Quality)
	pal := make(color.Palette, 0, size)
	if settings.Transparency {
		pal = append(pal, color.RGBA{})
	}
	for _, b := range buckets {
		if len(pal) >= size {
			break
		}
		pal = append(pal, color.RGBA{
			R: uint8(b.key>>8&0xf)<<4 | 8,
			G: uint8(b.key>>4&0xf)<<4 | 8,
			B: uint8(b.key&0xf)<<4 | 8,
			A: 255,
		})
	}
	if len(pal) == 0 {
		pal = append(pal, color.RGBA{A: 255})
	}
	return pal
}

// paletteSize maps quality in [1, 10] to a GIF palette size in
// [32, 256].
func paletteSize(quality int) int {
	if quality < 1 {
		quality = 1
	}
	if quality > 10 {
		quality = 10
	}
	size := 32 + (quality-1)*25
	if size > 256 {
		size = 256
	}
	return size
}
