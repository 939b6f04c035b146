// Package selection builds selection masks over pixel buffers: a
// color-similarity magic wand (contiguous flood fill or whole-image
// scan), circular brush strokes, and outline tracing for overlay
// rendering.
package selection
