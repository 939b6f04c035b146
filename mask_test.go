package px

import (
	"image"
	"testing"
)

func TestNewMask(t *testing.T) {
	mask := NewMask(100, 100)
	if mask.Width() != 100 || mask.Height() != 100 {
		t.Errorf("expected 100x100, got %dx%d", mask.Width(), mask.Height())
	}
	if mask.At(50, 50) != 0 {
		t.Errorf("expected 0, got %d", mask.At(50, 50))
	}
}

func TestMaskFillInvert(t *testing.T) {
	mask := NewMask(10, 10)
	mask.Fill(255)
	if mask.At(5, 5) != 255 {
		t.Errorf("expected 255, got %d", mask.At(5, 5))
	}
	mask.Invert()
	if mask.At(5, 5) != 0 {
		t.Errorf("expected 0 after invert, got %d", mask.At(5, 5))
	}
}

func TestMaskClone(t *testing.T) {
	mask := NewMask(10, 10)
	mask.Fill(255)

	clone := mask.Clone()
	mask.Clear()

	if clone.At(5, 5) != 255 {
		t.Errorf("clone should not be affected, expected 255, got %d", clone.At(5, 5))
	}
}

func TestMaskOutOfBounds(t *testing.T) {
	mask := NewMask(10, 10)
	if mask.At(-1, 5) != 0 || mask.At(10, 5) != 0 || mask.At(5, -1) != 0 || mask.At(5, 10) != 0 {
		t.Error("expected 0 for out-of-bounds reads")
	}
	mask.Set(-1, 5, 255)
	mask.Set(10, 5, 255)
	if mask.Count() != 0 {
		t.Error("out-of-bounds writes should be ignored")
	}
}

func TestMaskCount(t *testing.T) {
	mask := NewMask(4, 4)
	mask.Set(0, 0, 255)
	mask.Set(3, 3, 255)
	if mask.Count() != 2 {
		t.Errorf("expected count 2, got %d", mask.Count())
	}
}

func TestMaskBoundingBox(t *testing.T) {
	mask := NewMask(8, 8)
	if _, ok := mask.BoundingBox(); ok {
		t.Error("empty mask should have no bounding box")
	}

	mask.Set(2, 3, 255)
	mask.Set(5, 6, 255)
	box, ok := mask.BoundingBox()
	if !ok {
		t.Fatal("expected a bounding box")
	}
	want := image.Rect(2, 3, 6, 7)
	if box != want {
		t.Errorf("expected %v, got %v", want, box)
	}
}

func TestMaskZeroSize(t *testing.T) {
	mask := NewMask(0, 0)
	if _, ok := mask.BoundingBox(); ok {
		t.Error("zero-size mask should have no bounding box")
	}
	if mask.Count() != 0 {
		t.Error("zero-size mask should have count 0")
	}
}
