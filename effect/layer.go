package effect

import (
	"github.com/google/uuid"
)

// Layer is one entry in an ordered, independently toggleable effect
// stack. Order defines the bottom-to-top composite sequence; layers with
// equal Order composite in slice order.
type Layer struct {
	ID       string
	EffectID string
	Settings Settings
	Opacity  float64
	Visible  bool
	Locked   bool
	Order    int
}

// NewLayer creates a visible, unlocked layer with a fresh identifier and
// full opacity. Settings not covered by the effect's descriptor are
// dropped at resolve time, so passing nil is fine.
func NewLayer(effectID string, settings Settings) *Layer {
	if settings == nil {
		settings = Settings{}
	}
	return &Layer{
		ID:       uuid.NewString(),
		EffectID: effectID,
		Settings: settings,
		Opacity:  1,
		Visible:  true,
	}
}

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	l.Opacity = opacity
}

// SetSetting updates one parameter value. Locked layers reject edits;
// the return value reports whether the edit was applied.
func (l *Layer) SetSetting(key string, value float64) bool {
	if l.Locked {
		return false
	}
	if l.Settings == nil {
		l.Settings = Settings{}
	}
	l.Settings[key] = value
	return true
}

// clampedOpacity returns the opacity clamped to [0, 1] without mutating
// the layer, for callers that read Opacity directly off the struct.
func (l *Layer) clampedOpacity() float64 {
	if l.Opacity < 0 {
		return 0
	}
	if l.Opacity > 1 {
		return 1
	}
	return l.Opacity
}
