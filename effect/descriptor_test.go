package effect

import "testing"

func testDescriptor() *Descriptor {
	return &Descriptor{
		ID: "test", Category: "test",
		Params: []ParamSpec{
			{Key: "amount", Label: "Amount", Min: 0, Max: 2, Default: 1, Step: 0.01},
			{Key: "angle", Label: "Angle", Min: -180, Max: 180, Default: 0, Step: 1},
		},
	}
}

func TestDescriptorClamp(t *testing.T) {
	d := testDescriptor()

	got := d.Clamp(Settings{"amount": 5, "angle": -999, "bogus": 1})
	if got["amount"] != 2 {
		t.Errorf("amount should clamp to 2, got %v", got["amount"])
	}
	if got["angle"] != -180 {
		t.Errorf("angle should clamp to -180, got %v", got["angle"])
	}
	if _, ok := got["bogus"]; ok {
		t.Error("unknown key should be dropped")
	}
}

func TestDescriptorClampDefaults(t *testing.T) {
	d := testDescriptor()

	got := d.Clamp(Settings{"amount": 0.5})
	if got["amount"] != 0.5 {
		t.Errorf("in-range value should pass through, got %v", got["amount"])
	}
	if got["angle"] != 0 {
		t.Errorf("missing key should take default, got %v", got["angle"])
	}
}

func TestDescriptorDefaults(t *testing.T) {
	d := testDescriptor()
	got := d.Defaults()
	if got["amount"] != 1 || got["angle"] != 0 {
		t.Errorf("unexpected defaults: %v", got)
	}
}

func TestDescriptorParam(t *testing.T) {
	d := testDescriptor()
	if _, ok := d.Param("amount"); !ok {
		t.Error("expected amount param")
	}
	if _, ok := d.Param("nope"); ok {
		t.Error("unexpected param")
	}
}

func TestSettingsClone(t *testing.T) {
	s := Settings{"a": 1}
	c := s.Clone()
	c["a"] = 2
	if s["a"] != 1 {
		t.Error("clone should not share storage")
	}
}
