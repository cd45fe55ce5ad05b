package vision

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// PigoParams holds the pigo cascade parameters.
type PigoParams struct {
	MinSize          int
	MaxSize          int
	ShiftFactor      float64
	ScaleFactor      float64
	QualityThreshold float32
}

// DefaultPigoParams are tuned for webcam-scale frontal faces.
func DefaultPigoParams() PigoParams {
	return PigoParams{
		MinSize:          60,
		MaxSize:          1000,
		ShiftFactor:      0.1,
		ScaleFactor:      1.1,
		QualityThreshold: 5.0,
	}
}

// PigoDetector is a pure-Go frontal face detector. It exists for hosts
// without an OpenCV installation (typically headless training boxes) and
// implements the same Detector contract as HaarDetector.
type PigoDetector struct {
	classifier *pigo.Pigo
	params     PigoParams
}

// NewPigoDetector loads and unpacks the binary cascade file.
func NewPigoDetector(cascadePath string, params PigoParams) (*PigoDetector, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading pigo cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking pigo cascade: %w", err)
	}

	return &PigoDetector{classifier: classifier, params: params}, nil
}

func (d *PigoDetector) Detect(img *image.Gray) []image.Rectangle {
	b := img.Bounds()

	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     d.params.MaxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: img.Pix,
			Rows:   b.Dy(),
			Cols:   b.Dx(),
			Dim:    img.Stride,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, 0.2)

	faces := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if det.Q <= d.params.QualityThreshold {
			continue
		}
		x := det.Col - det.Scale/2
		y := det.Row - det.Scale/2
		faces = append(faces, image.Rect(x, y, x+det.Scale, y+det.Scale))
	}
	return faces
}

func (d *PigoDetector) Close() error {
	return nil
}
