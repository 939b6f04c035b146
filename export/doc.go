// Package export turns rendered frame sequences into encoded blobs.
// Analyze measures frame content (color complexity, motion), Optimize
// derives encode settings from those metrics under size constraints,
// and Encoder implementations (GIFEncoder bundled) produce the final
// bytes. Export chains the three.
package export
