package effect

import (
	"math"

	"github.com/gopx/px"
)

// ColorMatrixFilter applies a 4x5 color transformation matrix to a pixmap.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values. Color values are in the
// [0, 255] range during transformation, then clamped back to valid range.
// Pixmap data is straight-alpha RGBA, so the matrix operates on channel
// bytes directly.
type ColorMatrixFilter struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float32
}

// identityMatrix is the pass-through color matrix.
var identityMatrix = [20]float32{
	1, 0, 0, 0, 0, // R
	0, 1, 0, 0, 0, // G
	0, 0, 1, 0, 0, // B
	0, 0, 0, 1, 0, // A
}

// NewIdentityColorMatrix creates a color matrix filter that passes through unchanged.
func NewIdentityColorMatrix() *ColorMatrixFilter {
	return &ColorMatrixFilter{Matrix: identityMatrix}
}

// NewBrightnessFilter creates a filter that adjusts brightness.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright
func NewBrightnessFilter(factor float32) *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewContrastFilter creates a filter that adjusts contrast.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast
func NewContrastFilter(factor float32) *ColorMatrixFilter {
	// Contrast adjustment: (color - 128) * factor + 128 in the 0-255 range.
	offset := 128 * (1 - factor)
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// NewSaturationFilter creates a filter that adjusts color saturation.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated
func NewSaturationFilter(factor float32) *ColorMatrixFilter {
	// Luminance weights (Rec. 709)
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)

	// Saturation matrix blends between luminance (0) and identity (1)
	invFactor := 1 - factor

	return &ColorMatrixFilter{
		Matrix: [20]float32{
			lumR*invFactor + factor, lumG * invFactor, lumB * invFactor, 0, 0,
			lumR * invFactor, lumG*invFactor + factor, lumB * invFactor, 0, 0,
			lumR * invFactor, lumG * invFactor, lumB*invFactor + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewGrayscaleFilter creates a filter that converts to grayscale.
// Uses Rec. 709 luminance weights.
func NewGrayscaleFilter() *ColorMatrixFilter {
	return NewSaturationFilter(0)
}

// NewSepiaFilter creates a filter that applies sepia tone effect.
func NewSepiaFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// NewInvertFilter creates a filter that inverts colors.
func NewInvertFilter() *ColorMatrixFilter {
	return &ColorMatrixFilter{
		Matrix: [20]float32{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		},
	}
}

// NewHueRotateFilter creates a filter that rotates hue by the given angle (in degrees).
func NewHueRotateFilter(degrees float32) *ColorMatrixFilter {
	rad := float64(degrees) * math.Pi / 180

	cos := float32(math.Cos(rad))
	sin := float32(math.Sin(rad))

	// Hue rotation matrix (approximation)
	// Based on rotating in YIQ color space
	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)

	return &ColorMatrixFilter{
		Matrix: [20]float32{
			lumR + cos*(1-lumR) + sin*(-lumR), lumG + cos*(-lumG) + sin*(-lumG), lumB + cos*(-lumB) + sin*(1-lumB), 0, 0,
			lumR + cos*(-lumR) + sin*(0.143), lumG + cos*(1-lumG) + sin*(0.140), lumB + cos*(-lumB) + sin*(-0.283), 0, 0,
			lumR + cos*(-lumR) + sin*(-(1 - lumR)), lumG + cos*(-lumG) + sin*(lumG), lumB + cos*(1-lumB) + sin*(lumB), 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Apply applies the color matrix transformation to the pixmap in place.
func (f *ColorMatrixFilter) Apply(buf *px.Pixmap) {
	if buf == nil {
		return
	}

	data := buf.Data()
	m := &f.Matrix

	for i := 0; i < len(data); i += 4 {
		r := float32(data[i+0])
		g := float32(data[i+1])
		b := float32(data[i+2])
		a := float32(data[i+3])

		newR := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
		newG := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
		newB := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
		newA := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

		data[i+0] = clampUint8(newR)
		data[i+1] = clampUint8(newG)
		data[i+2] = clampUint8(newB)
		data[i+3] = clampUint8(newA)
	}
}

// Multiply returns a new filter that is the product of this filter and another.
// The result applies the other filter first, then this one.
func (f *ColorMatrixFilter) Multiply(other *ColorMatrixFilter) *ColorMatrixFilter {
	a := &f.Matrix
	b := &other.Matrix

	result := &ColorMatrixFilter{}
	r := &result.Matrix

	// Matrix multiplication for 4x5 * 4x5 (treating 5th column as constant)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		// Offset column (5th)
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}

	return result
}

// LerpIdentity returns a filter interpolated between identity (t=0) and
// this filter (t=1). Effects whose strength is an "amount" in [0, 1]
// build their matrix through this.
func (f *ColorMatrixFilter) LerpIdentity(t float32) *ColorMatrixFilter {
	if t >= 1 {
		return f
	}
	if t <= 0 {
		return NewIdentityColorMatrix()
	}
	result := &ColorMatrixFilter{}
	for i := range f.Matrix {
		result.Matrix[i] = identityMatrix[i]*(1-t) + f.Matrix[i]*t
	}
	return result
}

func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
