package effect

import (
	"github.com/gopx/px"
)

// Settings maps parameter keys to numeric values for one effect
// application. Values are validated against the effect's Descriptor at
// the registry boundary; downstream code can assume every value is in
// range and every documented key is present.
type Settings map[string]float64

// Clone returns a copy of the settings map.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// ParamSpec describes one numeric parameter of an effect.
type ParamSpec struct {
	Key     string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

// Descriptor describes a registered effect: its identifier, UI category,
// and parameter schema. Descriptors are registered once at construction
// and never mutated.
type Descriptor struct {
	ID       string
	Category string
	Params   []ParamSpec
}

// Param returns the spec for a parameter key, or false if the effect has
// no such parameter.
func (d *Descriptor) Param(key string) (ParamSpec, bool) {
	for _, p := range d.Params {
		if p.Key == key {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// Clamp validates settings against the descriptor: values are clamped
// into [Min, Max], missing parameters take their defaults, and unknown
// keys are dropped (logged at debug level, never an error).
func (d *Descriptor) Clamp(s Settings) Settings {
	out := make(Settings, len(d.Params))
	for _, p := range d.Params {
		v, ok := s[p.Key]
		if !ok {
			out[p.Key] = p.Default
			continue
		}
		if v < p.Min {
			px.Logger().Debug("effect: clamped setting", "effect", d.ID, "key", p.Key, "value", v, "min", p.Min)
			v = p.Min
		} else if v > p.Max {
			px.Logger().Debug("effect: clamped setting", "effect", d.ID, "key", p.Key, "value", v, "max", p.Max)
			v = p.Max
		}
		out[p.Key] = v
	}
	for k := range s {
		if _, ok := d.Param(k); !ok {
			px.Logger().Debug("effect: dropped unknown setting key", "effect", d.ID, "key", k)
		}
	}
	return out
}

// Defaults returns a settings map populated with every parameter's
// default value.
func (d *Descriptor) Defaults() Settings {
	out := make(Settings, len(d.Params))
	for _, p := range d.Params {
		out[p.Key] = p.Default
	}
	return out
}
