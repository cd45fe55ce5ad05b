package vision

import (
	"image"
	"image/color"
	"testing"
)

func TestGrayscale_FromRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 1, color.RGBA{A: 255})

	gray := Grayscale(src)

	if gray.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("unexpected bounds: %v", gray.Bounds())
	}
	if gray.GrayAt(0, 0).Y < 250 {
		t.Errorf("expected white pixel, got %d", gray.GrayAt(0, 0).Y)
	}
	if gray.GrayAt(1, 1).Y != 0 {
		t.Errorf("expected black pixel, got %d", gray.GrayAt(1, 1).Y)
	}
}

func TestGrayscale_PassthroughDenseGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 3))
	if got := Grayscale(src); got != src {
		t.Error("expected dense zero-origin gray image to pass through unchanged")
	}
}

func TestCrop_CopiesRegion(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	src.SetGray(5, 5, color.Gray{Y: 200})

	crop := Crop(src, image.Rect(4, 4, 8, 8))
	if crop == nil {
		t.Fatal("expected non-nil crop")
	}
	if crop.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("expected zero-origin 4x4 crop, got %v", crop.Bounds())
	}
	if crop.GrayAt(1, 1).Y != 200 {
		t.Errorf("expected marked pixel at (1,1), got %d", crop.GrayAt(1, 1).Y)
	}
	if crop.Stride != 4 {
		t.Errorf("expected dense stride 4, got %d", crop.Stride)
	}

	// Mutating the crop must not touch the source.
	crop.SetGray(0, 0, color.Gray{Y: 99})
	if src.GrayAt(4, 4).Y == 99 {
		t.Error("crop shares pixels with the source image")
	}
}

func TestCrop_ClampsToBounds(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))

	crop := Crop(src, image.Rect(-5, -5, 5, 5))
	if crop == nil {
		t.Fatal("expected non-nil crop")
	}
	if crop.Bounds().Dx() != 5 || crop.Bounds().Dy() != 5 {
		t.Errorf("expected 5x5 clamped crop, got %v", crop.Bounds())
	}
}

func TestCrop_EmptyRegion(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))

	if crop := Crop(src, image.Rect(20, 20, 30, 30)); crop != nil {
		t.Errorf("expected nil crop for out-of-bounds region, got %v", crop.Bounds())
	}
}
