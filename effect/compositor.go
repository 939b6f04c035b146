package effect

import (
	"sort"

	"github.com/gopx/px"
)

// Compositor applies ordered layer stacks to pixel buffers.
// It holds no per-call state: every Compose call owns its intermediate
// buffers, so a single compositor is safe to share across sequential
// renders.
type Compositor struct {
	reg *Registry
}

// NewCompositor creates a compositor resolving effects against the given
// registry.
func NewCompositor(reg *Registry) *Compositor {
	return &Compositor{reg: reg}
}

// Compose applies the layer stack to buf in place and returns buf.
//
// Invisible layers are skipped and unknown effect ids degrade to no-ops.
// Runs of consecutive full-opacity native (color-matrix) layers are
// merged into a single matrix and applied in one pass. Everything else
// chains sequentially: each layer sees the previous layer's output, never
// the original image. A layer with opacity < 1 runs its effect on a copy
// of the current buffer and is blended back per RGB channel; alpha is
// left unchanged.
func (c *Compositor) Compose(buf *px.Pixmap, layers []*Layer) *px.Pixmap {
	if buf == nil || len(layers) == 0 {
		return buf
	}

	stack := c.resolveStack(layers)

	var pendingNative *ColorMatrixFilter
	flushNative := func() {
		if pendingNative != nil {
			pendingNative.Apply(buf)
			pendingNative = nil
		}
	}

	for _, entry := range stack {
		opacity := entry.layer.clampedOpacity()
		if opacity == 0 {
			continue
		}

		if entry.resolved.IsNative() && opacity >= 1 {
			if pendingNative == nil {
				pendingNative = entry.resolved.Native
			} else {
				// Later layers apply after earlier ones.
				pendingNative = entry.resolved.Native.Multiply(pendingNative)
			}
			continue
		}

		flushNative()
		apply := entry.resolved.Transform
		if entry.resolved.IsNative() {
			native := entry.resolved.Native
			apply = func(p *px.Pixmap, _ Settings) { native.Apply(p) }
		}
		if apply == nil {
			continue
		}
		if opacity >= 1 {
			apply(buf, entry.resolved.Settings)
			continue
		}
		transformed := buf.Clone()
		apply(transformed, entry.resolved.Settings)
		blendInto(buf, transformed, opacity)
	}
	flushNative()

	return buf
}

// ComposeRegion applies the layer stack restricted to a selection mask:
// only pixels with a nonzero mask value receive the composed result.
// A nil mask composes the whole buffer. A mask whose dimensions do not
// match the buffer is ignored with a warning.
func (c *Compositor) ComposeRegion(buf *px.Pixmap, layers []*Layer, mask *px.Mask) *px.Pixmap {
	if mask == nil {
		return c.Compose(buf, layers)
	}
	if buf == nil {
		return buf
	}
	if mask.Width() != buf.Width() || mask.Height() != buf.Height() {
		px.Logger().Warn("effect: selection mask dimensions do not match buffer, ignoring mask",
			"mask", mask.Bounds(), "buffer", buf.Bounds())
		return c.Compose(buf, layers)
	}

	composed := buf.Clone()
	c.Compose(composed, layers)

	src := composed.Data()
	dst := buf.Data()
	mdata := mask.Data()
	for i, v := range mdata {
		if v == 0 {
			continue
		}
		j := i * 4
		dst[j+0] = src[j+0]
		dst[j+1] = src[j+1]
		dst[j+2] = src[j+2]
		dst[j+3] = src[j+3]
	}
	return buf
}

// stackEntry pairs a layer with its resolved effect.
type stackEntry struct {
	layer    *Layer
	resolved *Resolved
}

// resolveStack filters invisible and unresolvable layers, resolves the
// rest, and sorts them bottom-to-top by Order (stable, so equal orders
// keep slice order).
func (c *Compositor) resolveStack(layers []*Layer) []stackEntry {
	stack := make([]stackEntry, 0, len(layers))
	for _, l := range layers {
		if l == nil || !l.Visible {
			continue
		}
		res, ok := c.reg.Resolve(l.EffectID, l.Settings)
		if !ok {
			continue
		}
		stack = append(stack, stackEntry{layer: l, resolved: res})
	}
	sort.SliceStable(stack, func(i, j int) bool {
		return stack[i].layer.Order < stack[j].layer.Order
	})
	return stack
}

// blendInto lerps the RGB channels of dst toward src by opacity,
// leaving alpha unchanged.
func blendInto(dst, src *px.Pixmap, opacity float64) {
	d := dst.Data()
	s := src.Data()
	for i := 0; i < len(d); i += 4 {
		d[i+0] = uint8(float64(d[i+0])*(1-opacity) + float64(s[i+0])*opacity + 0.5)
		d[i+1] = uint8(float64(d[i+1])*(1-opacity) + float64(s[i+1])*opacity + 0.5)
		d[i+2] = uint8(float64(d[i+2])*(1-opacity) + float64(s[i+2])*opacity + 0.5)
	}
}
