package effect

import (
	"testing"

	"github.com/gopx/px"
)

func testStack(t *testing.T) (*Compositor, *Registry) {
	t.Helper()
	reg := NewRegistry()
	return NewCompositor(reg), reg
}

func gradientPixmap(w, h int) *px.Pixmap {
	pm := px.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pm.SetPixel(x, y, px.RGB(float64(x)/float64(w), float64(y)/float64(h), 0.4))
		}
	}
	return pm
}

func TestComposeOpacityZeroIsIdentity(t *testing.T) {
	comp, _ := testStack(t)
	pm := gradientPixmap(8, 8)
	want := append([]uint8(nil), pm.Data()...)

	l := NewLayer("invert", nil)
	l.SetOpacity(0)
	comp.Compose(pm, []*Layer{l})

	if string(pm.Data()) != string(want) {
		t.Error("opacity 0 layer should leave the buffer unchanged")
	}
}

func TestComposeOpacityOneEqualsDirectApply(t *testing.T) {
	comp, reg := testStack(t)

	composed := gradientPixmap(8, 8)
	comp.Compose(composed, []*Layer{NewLayer("sepia", nil)})

	direct := gradientPixmap(8, 8)
	res, _ := reg.Resolve("sepia", nil)
	res.Native.Apply(direct)

	if string(composed.Data()) != string(direct.Data()) {
		t.Error("opacity 1 compose should equal direct application")
	}
}

func TestComposeInvisibleLayerSkipped(t *testing.T) {
	comp, _ := testStack(t)
	pm := gradientPixmap(4, 4)
	want := append([]uint8(nil), pm.Data()...)

	l := NewLayer("invert", nil)
	l.Visible = false
	comp.Compose(pm, []*Layer{l})

	if string(pm.Data()) != string(want) {
		t.Error("invisible layer should be skipped")
	}
}

func TestComposeUnknownEffectIsNoOp(t *testing.T) {
	comp, _ := testStack(t)
	pm := gradientPixmap(4, 4)
	want := append([]uint8(nil), pm.Data()...)

	comp.Compose(pm, []*Layer{NewLayer("gone-from-registry", nil)})

	if string(pm.Data()) != string(want) {
		t.Error("unknown effect id should degrade to a no-op")
	}
}

func TestComposeSequentialChaining(t *testing.T) {
	// Layer A: grayscale at opacity 1, layer B: sepia at opacity 0.5.
	// The result must equal grayscale(original) blended 50% with
	// sepia(grayscale(original)) — layer B sees layer A's output, not the
	// original image.
	comp, reg := testStack(t)

	pm := gradientPixmap(8, 8)
	a := NewLayer("grayscale", nil)
	a.Order = 0
	b := NewLayer("sepia", nil)
	b.Order = 1
	b.SetOpacity(0.5)

	composed := pm.Clone()
	comp.Compose(composed, []*Layer{a, b})

	// Build the expectation by hand.
	gray := pm.Clone()
	resGray, _ := reg.Resolve("grayscale", nil)
	resGray.Native.Apply(gray)

	sepiaOfGray := gray.Clone()
	resSepia, _ := reg.Resolve("sepia", nil)
	resSepia.Native.Apply(sepiaOfGray)

	want := gray.Clone()
	blendInto(want, sepiaOfGray, 0.5)

	if string(composed.Data()) != string(want.Data()) {
		t.Error("stacked layers must chain against the running buffer")
	}
}

func TestComposeOrderIsSignificant(t *testing.T) {
	comp, _ := testStack(t)

	// invert then edge-detect differs from edge-detect then invert.
	ab := gradientPixmap(8, 8)
	a := NewLayer("invert", nil)
	a.Order = 0
	b := NewLayer("edge-detect", nil)
	b.Order = 1
	comp.Compose(ab, []*Layer{a, b})

	ba := gradientPixmap(8, 8)
	a2 := NewLayer("invert", nil)
	a2.Order = 1
	b2 := NewLayer("edge-detect", nil)
	b2.Order = 0
	comp.Compose(ba, []*Layer{a2, b2})

	if string(ab.Data()) == string(ba.Data()) {
		t.Error("layer order should change the result")
	}
}

func TestComposeMergedNativeRun(t *testing.T) {
	// Two full-opacity native layers must match sequential application.
	comp, reg := testStack(t)

	// Brightness kept small enough that no intermediate value saturates,
	// so the merged matrix and the sequential passes agree up to rounding.
	merged := gradientPixmap(8, 8)
	bright := NewLayer("brightness", Settings{"amount": 1.1})
	bright.Order = 0
	sat := NewLayer("saturation", Settings{"amount": 0.5})
	sat.Order = 1
	comp.Compose(merged, []*Layer{bright, sat})

	seq := gradientPixmap(8, 8)
	r1, _ := reg.Resolve("brightness", Settings{"amount": 1.1})
	r1.Native.Apply(seq)
	r2, _ := reg.Resolve("saturation", Settings{"amount": 0.5})
	r2.Native.Apply(seq)

	d1 := merged.Data()
	d2 := seq.Data()
	for i := range d1 {
		if absDiff(d1[i], d2[i]) > 2 {
			t.Fatalf("byte %d: merged %d vs sequential %d", i, d1[i], d2[i])
		}
	}
}

func TestComposeRegionRestrictsToMask(t *testing.T) {
	comp, _ := testStack(t)

	pm := px.NewPixmap(4, 4)
	pm.Clear(px.White)

	mask := px.NewMask(4, 4)
	mask.Set(1, 1, 255)
	mask.Set(2, 2, 255)

	comp.ComposeRegion(pm, []*Layer{NewLayer("invert", nil)}, mask)

	if pm.GetPixel(1, 1) != px.Black || pm.GetPixel(2, 2) != px.Black {
		t.Error("masked pixels should receive the composed result")
	}
	if pm.GetPixel(0, 0) != px.White {
		t.Error("unmasked pixels should be untouched")
	}
}

func TestComposeRegionNilMask(t *testing.T) {
	comp, _ := testStack(t)
	pm := px.NewPixmap(2, 2)
	pm.Clear(px.White)
	comp.ComposeRegion(pm, []*Layer{NewLayer("invert", nil)}, nil)
	if pm.GetPixel(0, 0) != px.Black {
		t.Error("nil mask should compose the whole buffer")
	}
}

func TestComposeRegionMismatchedMaskIgnored(t *testing.T) {
	comp, _ := testStack(t)
	pm := px.NewPixmap(4, 4)
	pm.Clear(px.White)
	mask := px.NewMask(2, 2) // wrong dims
	comp.ComposeRegion(pm, []*Layer{NewLayer("invert", nil)}, mask)
	if pm.GetPixel(3, 3) != px.Black {
		t.Error("mismatched mask should be ignored and the whole buffer composed")
	}
}

func TestComposePreservesAlphaOnBlend(t *testing.T) {
	comp, _ := testStack(t)
	pm := solidPixmap(2, 2, 100, 100, 100, 137)

	l := NewLayer("invert", nil)
	l.SetOpacity(0.5)
	comp.Compose(pm, []*Layer{l})

	if pm.Data()[3] != 137 {
		t.Errorf("blend should leave alpha unchanged, got %d", pm.Data()[3])
	}
}
