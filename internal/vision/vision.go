// Package vision wraps the face detection and recognition primitives behind
// interfaces on stdlib image types. The pipeline only sees these interfaces;
// OpenCV (gocv) and pigo live in the implementations.
package vision

import (
	"errors"
	"image"
	"image/draw"
)

// Detector locates face bounding boxes in a grayscale image.
type Detector interface {
	Detect(img *image.Gray) []image.Rectangle
	Close() error
}

// Prediction is the recognizer's answer for a single face crop. Distance is
// the classifier's dissimilarity score: lower means more confident.
type Prediction struct {
	Label    int
	Distance float64
}

// Recognizer is the trainable face classifier. Train replaces any previous
// model state with one built from the given samples.
type Recognizer interface {
	Train(samples []*image.Gray, sampleLabels []int) error
	Predict(sample *image.Gray) (Prediction, error)
	Save(path string) error
	Load(path string) error
}

var (
	// ErrNotTrained is returned by Predict before any model has been
	// trained or loaded.
	ErrNotTrained = errors.New("recognizer has no trained model")

	// ErrNoSamples is returned by Train when the sample set is empty.
	ErrNoSamples = errors.New("no training samples")
)

// Grayscale converts any image into a zero-origin *image.Gray. The copy is
// dense (stride == width), which the detectors rely on.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == image.Pt(0, 0) && g.Stride == g.Bounds().Dx() {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Crop copies the region of img bounded by r, clamped to the image bounds,
// into a fresh zero-origin grayscale image. Returns nil when the clamped
// region is empty.
func Crop(img *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil
	}
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
