package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// HaarDetector detects frontal faces with an OpenCV Haar cascade, tuned the
// same way the capture pipeline trains: a fixed pyramid scale step and
// minimum-neighbor count.
type HaarDetector struct {
	classifier   gocv.CascadeClassifier
	scaleFactor  float64
	minNeighbors int
}

// NewHaarDetector loads the cascade XML from disk.
func NewHaarDetector(cascadePath string, scaleFactor float64, minNeighbors int) (*HaarDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("loading cascade file %s", cascadePath)
	}
	return &HaarDetector{
		classifier:   classifier,
		scaleFactor:  scaleFactor,
		minNeighbors: minNeighbors,
	}, nil
}

func (d *HaarDetector) Detect(img *image.Gray) []image.Rectangle {
	mat, err := gocv.ImageGrayToMatGray(img)
	if err != nil {
		return nil
	}
	defer mat.Close()

	return d.classifier.DetectMultiScaleWithParams(
		mat, d.scaleFactor, d.minNeighbors, 0, image.Pt(0, 0), image.Pt(0, 0))
}

func (d *HaarDetector) Close() error {
	return d.classifier.Close()
}
