// Package px provides the raster primitives shared by the effect,
// selection, animation, and export packages: RGBA pixel buffers,
// selection masks, and color helpers.
//
// A Pixmap is a plain width×height RGBA byte buffer. Callers decode an
// image by whatever means they like and hand the pixels over via
// FromImage; everything downstream mutates Pixmaps in place or works on
// explicit clones. There is no hidden shared state: each effect
// application, selection, or render call owns its buffers.
//
// Subsystems:
//
//   - effect: effect registry, per-pixel transforms, layer compositing
//   - selection: magic-wand and brush selection masks
//   - anim: parameter curves and frame rendering
//   - export: frame analysis, encode-settings optimization, encoders
//
// px produces no log output by default. Call SetLogger to enable it.
package px
