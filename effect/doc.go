// Package effect implements the per-pixel effect engine: a registry of
// effect descriptors, native color-matrix filters, custom buffer
// transforms, and a compositor that applies an ordered layer stack to a
// pixmap.
//
// Effects come in two kinds. Native filters are 4x5 color-matrix
// transforms (brightness, contrast, sepia, ...) that can be merged into a
// single matrix and applied in one pass. Custom transforms are arbitrary
// functions over the whole buffer (duotone, dithering, edge detection,
// halftone, reaction-diffusion, pixel explosion) and chain sequentially:
// each layer sees the previous layer's output, never the original image.
//
// All transforms are pure functions of (buffer, settings). Stochastic
// transforms take their randomness from an explicit seed setting so
// repeated applications are reproducible.
package effect
