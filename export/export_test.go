package export

import (
	"context"
	"errors"
	"testing"

	"github.com/gopx/px/anim"
)

type captureEncoder struct {
	settings Settings
	blob     []byte
	err      error
}

func (c *captureEncoder) Encode(_ context.Context, _ []anim.Frame, s Settings) ([]byte, error) {
	c.settings = s
	return c.blob, c.err
}

func TestExportPipeline(t *testing.T) {
	frames := []anim.Frame{noisyFrame(16, 16, 0), noisyFrame(16, 16, 3)}

	blob, settings, err := Export(context.Background(), frames, Constraints{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(blob) == 0 {
		t.Error("empty blob")
	}
	if settings.Quality < 1 || settings.Quality > 10 {
		t.Errorf("Quality = %d, want in [1, 10]", settings.Quality)
	}
}

func TestExportUsesOptimizedSettings(t *testing.T) {
	frames := []anim.Frame{noisyFrame(16, 16, 0)}
	enc := &captureEncoder{blob: []byte{0x47}}

	_, settings, err := Export(context.Background(), frames, Constraints{ContentHint: HintPhoto}, WithEncoder(enc))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if enc.settings != settings {
		t.Errorf("encoder saw %+v, Export returned %+v", enc.settings, settings)
	}
	if !enc.settings.Dithering {
		t.Error("photo hint did not reach the encoder")
	}
}

func TestExportPropagatesEncoderFailure(t *testing.T) {
	sentinel := errors.New("boom")
	enc := &captureEncoder{err: sentinel}

	blob, _, err := Export(context.Background(), []anim.Frame{noisyFrame(8, 8, 0)}, Constraints{}, WithEncoder(enc))
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if blob != nil {
		t.Error("got a blob alongside the error")
	}
}

func TestExportNoFrames(t *testing.T) {
	_, _, err := Export(context.Background(), nil, Constraints{})
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("err = %v, want ErrNoFrames", err)
	}
}
