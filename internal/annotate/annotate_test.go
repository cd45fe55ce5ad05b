package annotate

import (
	"image"
	"image/color"
	"testing"
)

func TestDraw_Outline(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))

	out := Draw(frame, []Box{{Rect: image.Rect(20, 20, 60, 60), Label: "Alice", Matched: true}})

	// Top edge of the outline is blue.
	if got := out.RGBAAt(30, 20); got != boxColor {
		t.Errorf("expected outline pixel at (30,20), got %v", got)
	}
	// Center of the box stays untouched.
	if got := out.RGBAAt(40, 40); got.B != 0 || got.R != 0 || got.G != 0 {
		t.Errorf("expected untouched center pixel, got %v", got)
	}
}

func TestDraw_DoesNotMutateFrame(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))

	Draw(frame, []Box{{Rect: image.Rect(10, 10, 40, 40), Label: "Bob"}})

	if got := frame.RGBAAt(10, 10); got != (color.RGBA{}) {
		t.Errorf("source frame was mutated: %v", got)
	}
}

func TestDraw_LabelRendered(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 100, 100))

	out := Draw(frame, []Box{{Rect: image.Rect(10, 30, 90, 90), Label: "Unknown", Matched: false}})

	// The label sits above the box; at least one red text pixel must exist
	// in the band between frame top and box top.
	found := false
	for y := 0; y < 30 && !found; y++ {
		for x := 0; x < 100; x++ {
			if out.RGBAAt(x, y) == unmatchedColor {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected red label pixels above the box")
	}
}

func TestDraw_BoxOutsideFrame(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))

	// Must not panic or write out of bounds.
	out := Draw(frame, []Box{{Rect: image.Rect(100, 100, 150, 150), Label: "X"}})
	if out.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Errorf("unexpected output bounds %v", out.Bounds())
	}
}
