package export

import (
	"context"
	"fmt"

	"github.com/gopx/px/anim"
)

// Option configures a single Export call.
type Option func(*config)

type config struct {
	encoder Encoder
}

// WithEncoder substitutes the encoder used by Export. The default is a
// GIFEncoder with no progress callback.
func WithEncoder(e Encoder) Option {
	return func(c *config) { c.encoder = e }
}

// Export runs the full pipeline: analyze the frames, derive encode
// settings under the constraints, and encode. It returns the blob and
// the settings it was encoded with.
func Export(ctx context.Context, frames []anim.Frame, constraints Constraints, opts ...Option) ([]byte, Settings, error) {
	cfg := config{encoder: &GIFEncoder{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	settings := Optimize(frames, constraints)
	blob, err := cfg.encoder.Encode(ctx, frames, settings)
	if err != nil {
		return nil, settings, fmt.Errorf("export: encode: %w", err)
	}
	return blob, settings, nil
}
