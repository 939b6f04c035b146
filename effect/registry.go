package effect

import (
	"sort"

	"github.com/gopx/px"
)

// Transform is a custom per-pixel effect: a pure function of the buffer
// and its validated settings. Transforms mutate the buffer in place and
// must leave its dimensions unchanged.
type Transform func(buf *px.Pixmap, s Settings)

// nativeBuilder constructs a color-matrix filter from validated settings.
type nativeBuilder func(s Settings) *ColorMatrixFilter

// Resolved is the result of a registry lookup: either a native
// color-matrix filter or a custom transform, plus the validated settings
// it should run with. Exactly one of Native and Transform is non-nil.
type Resolved struct {
	Descriptor *Descriptor
	Settings   Settings
	Native     *ColorMatrixFilter
	Transform  Transform
}

// IsNative reports whether the resolved effect is a color-matrix filter.
func (r *Resolved) IsNative() bool { return r.Native != nil }

// Registry maps effect identifiers to descriptors and implementations.
// Construct one per engine instance with NewRegistry; there is no global
// registry, so tests can register isolated effect sets.
type Registry struct {
	descriptors map[string]*Descriptor
	native      map[string]nativeBuilder
	custom      map[string]Transform
}

// NewRegistry creates a registry populated with the built-in effect set.
func NewRegistry() *Registry {
	r := &Registry{
		descriptors: make(map[string]*Descriptor),
		native:      make(map[string]nativeBuilder),
		custom:      make(map[string]Transform),
	}
	registerBuiltins(r)
	return r
}

// RegisterNative registers a color-matrix effect.
// Registering an id twice replaces the previous entry.
func (r *Registry) RegisterNative(d *Descriptor, build nativeBuilder) {
	r.descriptors[d.ID] = d
	r.native[d.ID] = build
	delete(r.custom, d.ID)
}

// RegisterCustom registers a custom transform effect.
// Registering an id twice replaces the previous entry.
func (r *Registry) RegisterCustom(d *Descriptor, fn Transform) {
	r.descriptors[d.ID] = d
	r.custom[d.ID] = fn
	delete(r.native, d.ID)
}

// Resolve looks up an effect by id and validates the given settings
// against its descriptor. Unknown ids resolve to (nil, false) with a
// warning log; they are never fatal so a stale layer reference degrades
// to a no-op in the compositor.
func (r *Registry) Resolve(id string, s Settings) (*Resolved, bool) {
	d, ok := r.descriptors[id]
	if !ok {
		px.Logger().Warn("effect: unknown effect id", "id", id)
		return nil, false
	}
	clamped := d.Clamp(s)
	res := &Resolved{Descriptor: d, Settings: clamped}
	if build, ok := r.native[id]; ok {
		res.Native = build(clamped)
		return res, true
	}
	res.Transform = r.custom[id]
	return res, true
}

// Descriptor returns the descriptor for an effect id.
func (r *Registry) Descriptor(id string) (*Descriptor, bool) {
	d, ok := r.descriptors[id]
	return d, ok
}

// Descriptors returns all registered descriptors sorted by id,
// for UI listing.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasParam reports whether the effect exists and declares the given
// parameter key. The frame renderer uses this to decide whether to
// thread a per-frame seed into an effect's settings.
func (r *Registry) HasParam(id, key string) bool {
	d, ok := r.descriptors[id]
	if !ok {
		return false
	}
	_, ok = d.Param(key)
	return ok
}

// registerBuiltins installs the built-in effect set.
func registerBuiltins(r *Registry) {
	// Native color-matrix adjustments. Effects whose natural strength is
	// a blend toward identity (grayscale, sepia, invert) expose an
	// "amount" in [0,1] and lerp the full matrix.
	r.RegisterNative(&Descriptor{
		ID: "brightness", Category: "adjust",
		Params: []ParamSpec{{Key: "amount", Label: "Amount", Min: 0, Max: 2, Default: 1, Step: 0.01}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewBrightnessFilter(float32(s["amount"]))
	})

	r.RegisterNative(&Descriptor{
		ID: "contrast", Category: "adjust",
		Params: []ParamSpec{{Key: "amount", Label: "Amount", Min: 0, Max: 2, Default: 1, Step: 0.01}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewContrastFilter(float32(s["amount"]))
	})

	r.RegisterNative(&Descriptor{
		ID: "saturation", Category: "adjust",
		Params: []ParamSpec{{Key: "amount", Label: "Amount", Min: 0, Max: 2, Default: 1, Step: 0.01}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewSaturationFilter(float32(s["amount"]))
	})

	r.RegisterNative(&Descriptor{
		ID: "grayscale", Category: "adjust",
		Params: []ParamSpec{{Key: "amount", Label: "Amount", Min: 0, Max: 1, Default: 1, Step: 0.01}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewGrayscaleFilter().LerpIdentity(float32(s["amount"]))
	})

	r.RegisterNative(&Descriptor{
		ID: "sepia", Category: "adjust",
		Params: []ParamSpec{{Key: "amount", Label: "Amount", Min: 0, Max: 1, Default: 1, Step: 0.01}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewSepiaFilter().LerpIdentity(float32(s["amount"]))
	})

	r.RegisterNative(&Descriptor{
		ID: "invert", Category: "adjust",
		Params: []ParamSpec{{Key: "amount", Label: "Amount", Min: 0, Max: 1, Default: 1, Step: 0.01}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewInvertFilter().LerpIdentity(float32(s["amount"]))
	})

	r.RegisterNative(&Descriptor{
		ID: "hue-rotate", Category: "adjust",
		Params: []ParamSpec{{Key: "degrees", Label: "Degrees", Min: -180, Max: 180, Default: 0, Step: 1}},
	}, func(s Settings) *ColorMatrixFilter {
		return NewHueRotateFilter(float32(s["degrees"]))
	})

	// Custom transforms.
	r.RegisterCustom(&Descriptor{
		ID: "duotone", Category: "color",
		Params: []ParamSpec{
			{Key: "darkHue", Label: "Dark Hue", Min: 0, Max: 360, Default: 240, Step: 1},
			{Key: "lightHue", Label: "Light Hue", Min: 0, Max: 360, Default: 60, Step: 1},
			{Key: "intensity", Label: "Intensity", Min: 0, Max: 2, Default: 1, Step: 0.01},
		},
	}, Duotone)

	r.RegisterCustom(&Descriptor{
		ID: "dither", Category: "stylize",
		Params: []ParamSpec{
			{Key: "threshold", Label: "Threshold", Min: 0, Max: 1, Default: 0.5, Step: 0.01},
		},
	}, Dither)

	r.RegisterCustom(&Descriptor{
		ID: "edge-detect", Category: "stylize",
		Params: []ParamSpec{
			{Key: "threshold", Label: "Threshold", Min: 0, Max: 255, Default: 100, Step: 1},
			{Key: "invert", Label: "Invert", Min: 0, Max: 1, Default: 0, Step: 1},
		},
	}, Sobel)

	r.RegisterCustom(&Descriptor{
		ID: "halftone", Category: "stylize",
		Params: []ParamSpec{
			{Key: "dotSize", Label: "Dot Size", Min: 2, Max: 24, Default: 6, Step: 1},
			{Key: "spacing", Label: "Spacing", Min: 0, Max: 12, Default: 2, Step: 1},
			{Key: "angle", Label: "Angle", Min: 0, Max: 360, Default: 45, Step: 1},
		},
	}, Halftone)

	r.RegisterCustom(&Descriptor{
		ID: "reaction-diffusion", Category: "stylize",
		Params: []ParamSpec{
			{Key: "iterations", Label: "Iterations", Min: 1, Max: 200, Default: 30, Step: 1},
			{Key: "feed", Label: "Feed Rate", Min: 0.01, Max: 0.09, Default: 0.055, Step: 0.001},
			{Key: "kill", Label: "Kill Rate", Min: 0.03, Max: 0.07, Default: 0.062, Step: 0.001},
			{Key: "scale", Label: "Grid Scale", Min: 1, Max: 8, Default: 4, Step: 1},
			{Key: "threshold", Label: "Seed Threshold", Min: 0, Max: 1, Default: 0.5, Step: 0.01},
		},
	}, ReactionDiffusion)

	r.RegisterCustom(&Descriptor{
		ID: "pixel-explode", Category: "distort",
		Params: []ParamSpec{
			{Key: "strength", Label: "Strength", Min: 0, Max: 64, Default: 12, Step: 1},
			{Key: "seed", Label: "Seed", Min: 0, Max: 1 << 31, Default: 0, Step: 1},
		},
	}, PixelExplode)
}
