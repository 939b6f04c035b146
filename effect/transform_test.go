package effect

import (
	"testing"

	"github.com/gopx/px"
)

func defaultSettings(t *testing.T, id string) Settings {
	t.Helper()
	d, ok := NewRegistry().Descriptor(id)
	if !ok {
		t.Fatalf("no descriptor for %q", id)
	}
	return d.Defaults()
}

func TestDuotoneUniformInput(t *testing.T) {
	pm := solidPixmap(4, 4, 128, 128, 128, 255)
	Duotone(pm, defaultSettings(t, "duotone"))

	d := pm.Data()
	// Every pixel of a uniform input maps to the same duotone color.
	for i := 4; i < len(d); i += 4 {
		if d[i] != d[0] || d[i+1] != d[1] || d[i+2] != d[2] {
			t.Fatalf("pixel %d differs: %v vs %v", i/4, d[i:i+3], d[0:3])
		}
	}
	if d[3] != 255 {
		t.Error("duotone should preserve alpha")
	}
}

func TestDuotoneExtremes(t *testing.T) {
	s := defaultSettings(t, "duotone")

	// Black stays black (lightness 0) and white stays white (lightness 1)
	// regardless of hue.
	black := solidPixmap(1, 1, 0, 0, 0, 255)
	Duotone(black, s)
	if black.Data()[0] != 0 || black.Data()[1] != 0 || black.Data()[2] != 0 {
		t.Errorf("black input should stay black, got %v", black.Data()[:3])
	}

	white := solidPixmap(1, 1, 255, 255, 255, 255)
	Duotone(white, s)
	if white.Data()[0] != 255 || white.Data()[1] != 255 || white.Data()[2] != 255 {
		t.Errorf("white input should stay white, got %v", white.Data()[:3])
	}
}

func TestDuotoneIntensityZeroUsesDarkHue(t *testing.T) {
	s := defaultSettings(t, "duotone")
	s["intensity"] = 0
	s["darkHue"] = 240 // blue
	s["lightHue"] = 60

	pm := solidPixmap(1, 1, 128, 128, 128, 255)
	Duotone(pm, s)
	d := pm.Data()
	if d[2] <= d[0] || d[2] <= d[1] {
		t.Errorf("with intensity 0 a midtone should take the dark hue (blue), got %v", d[:3])
	}
}

func TestDitherBinaryOutput(t *testing.T) {
	// Gradient input: after dithering, every channel is 0 or 255.
	pm := px.NewPixmap(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := float64(x*16+y) / 255
			pm.SetPixel(x, y, px.RGB(v, v, v))
		}
	}
	Dither(pm, defaultSettings(t, "dither"))

	d := pm.Data()
	for i := 0; i < len(d); i += 4 {
		for c := 0; c < 3; c++ {
			if d[i+c] != 0 && d[i+c] != 255 {
				t.Fatalf("channel value %d at %d is neither 0 nor 255", d[i+c], i+c)
			}
		}
	}
}

func TestDitherDarkUniform(t *testing.T) {
	// 2x2 of RGB(30,30,30) at threshold 0.5: even with the accumulated
	// diffused error no pixel reaches 127.5, so all black.
	pm := solidPixmap(2, 2, 30, 30, 30, 255)
	Dither(pm, Settings{"threshold": 0.5})

	d := pm.Data()
	for i := 0; i < len(d); i += 4 {
		if d[i] != 0 || d[i+1] != 0 || d[i+2] != 0 {
			t.Fatalf("expected black at pixel %d, got %v", i/4, d[i:i+3])
		}
		if d[i+3] != 255 {
			t.Error("dither should preserve alpha")
		}
	}
}

func TestDitherErrorDiffusion(t *testing.T) {
	// Uniform 100 at threshold 0.5: (0,0) quantizes to 0 with error 100;
	// 7/16 of it lifts (1,0) to 143.75, past 127.5, so it turns white.
	// The compensating negative error keeps the bottom row black.
	pm := solidPixmap(2, 2, 100, 100, 100, 255)
	Dither(pm, Settings{"threshold": 0.5})

	if pm.GetPixel(0, 0) != px.Black {
		t.Errorf("(0,0) should be black, got %+v", pm.GetPixel(0, 0))
	}
	if pm.GetPixel(1, 0).R != 1 {
		t.Errorf("(1,0) should be lifted to white by diffused error, got %+v", pm.GetPixel(1, 0))
	}
	if pm.GetPixel(0, 1).R != 0 || pm.GetPixel(1, 1).R != 0 {
		t.Error("bottom row should stay black")
	}
}

func TestSobelUniformHasNoEdges(t *testing.T) {
	pm := solidPixmap(8, 8, 90, 90, 90, 255)
	Sobel(pm, defaultSettings(t, "edge-detect"))
	d := pm.Data()
	for i := 0; i < len(d); i += 4 {
		if d[i] != 0 {
			t.Fatalf("uniform image should produce no edges, got %d", d[i])
		}
	}
}

func TestSobelDetectsVerticalEdge(t *testing.T) {
	pm := px.NewPixmap(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				pm.SetPixel(x, y, px.Black)
			} else {
				pm.SetPixel(x, y, px.White)
			}
		}
	}
	Sobel(pm, defaultSettings(t, "edge-detect"))

	if pm.GetPixel(4, 4) != px.White && pm.GetPixel(3, 4) != px.White {
		t.Error("expected edge pixels along the black/white boundary")
	}
	if pm.GetPixel(0, 4) != px.Black {
		t.Error("expected no edge far from the boundary")
	}
}

func TestSobelInvert(t *testing.T) {
	pm := solidPixmap(4, 4, 90, 90, 90, 255)
	s := defaultSettings(t, "edge-detect")
	s["invert"] = 1
	Sobel(pm, s)
	if pm.Data()[0] != 255 {
		t.Error("inverted edge output of a flat image should be white")
	}
}

func TestHalftoneBlackAndWhite(t *testing.T) {
	s := defaultSettings(t, "halftone")

	// A white image renders as an empty (all-white) dot grid.
	white := solidPixmap(32, 32, 255, 255, 255, 255)
	Halftone(white, s)
	for i, v := range white.Data() {
		if i%4 != 3 && v != 255 {
			t.Fatal("white input should produce a blank halftone")
		}
	}

	// A black image produces dots: some black pixels must appear.
	black := solidPixmap(32, 32, 0, 0, 0, 255)
	Halftone(black, s)
	found := false
	d := black.Data()
	for i := 0; i < len(d); i += 4 {
		if d[i] == 0 {
			found = true
			break
		}
	}
	if !found {
		t.Error("black input should produce dots")
	}
}

func TestHalftonePreservesDimensions(t *testing.T) {
	pm := solidPixmap(13, 7, 40, 80, 120, 255)
	Halftone(pm, defaultSettings(t, "halftone"))
	if pm.Width() != 13 || pm.Height() != 7 {
		t.Error("halftone must not change buffer dimensions")
	}
}

func TestReactionDiffusionOutput(t *testing.T) {
	pm := solidPixmap(32, 32, 200, 200, 200, 255)
	s := defaultSettings(t, "reaction-diffusion")
	s["iterations"] = 5
	ReactionDiffusion(pm, s)

	if pm.Width() != 32 || pm.Height() != 32 {
		t.Fatal("reaction-diffusion must not change buffer dimensions")
	}
	d := pm.Data()
	dark := false
	for i := 0; i < len(d); i += 4 {
		if d[i] != d[i+1] || d[i+1] != d[i+2] {
			t.Fatal("output should be grayscale")
		}
		if d[i+3] != 255 {
			t.Fatal("alpha should be preserved")
		}
		if d[i] < 128 {
			dark = true
		}
	}
	if !dark {
		t.Error("the centered seed should produce dark pattern pixels")
	}
}

func TestPixelExplodeDeterministic(t *testing.T) {
	src := px.NewPixmap(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetPixel(x, y, px.RGB(float64(x)/16, float64(y)/16, 0.5))
		}
	}
	s := Settings{"strength": 8, "seed": 42}

	a := src.Clone()
	PixelExplode(a, s)
	b := src.Clone()
	PixelExplode(b, s)
	if string(a.Data()) != string(b.Data()) {
		t.Error("same seed should produce identical output")
	}

	c := src.Clone()
	PixelExplode(c, Settings{"strength": 8, "seed": 43})
	if string(a.Data()) == string(c.Data()) {
		t.Error("different seeds should produce different output")
	}
}

func TestPixelExplodeZeroStrength(t *testing.T) {
	pm := solidPixmap(4, 4, 10, 20, 30, 255)
	before := append([]uint8(nil), pm.Data()...)
	PixelExplode(pm, Settings{"strength": 0, "seed": 1})
	if string(pm.Data()) != string(before) {
		t.Error("zero strength should be a no-op")
	}
}

func TestTransformsOnEmptyBuffer(t *testing.T) {
	empty := px.NewPixmap(0, 0)
	reg := NewRegistry()
	for _, d := range reg.Descriptors() {
		res, ok := reg.Resolve(d.ID, nil)
		if !ok || res.Transform == nil {
			continue
		}
		res.Transform(empty, res.Settings) // must not panic
	}
}
