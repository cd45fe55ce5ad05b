package vision

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

// LBPHRecognizer is the OpenCV LBPH face classifier. Train replaces the whole
// model; there is no incremental update path in this pipeline because the
// trainer always rebuilds from the full dataset.
type LBPHRecognizer struct {
	rec     *contrib.LBPHFaceRecognizer
	trained bool
}

func NewLBPHRecognizer() *LBPHRecognizer {
	return &LBPHRecognizer{rec: contrib.NewLBPHFaceRecognizer()}
}

func (r *LBPHRecognizer) Train(samples []*image.Gray, sampleLabels []int) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if len(samples) != len(sampleLabels) {
		return fmt.Errorf("sample/label count mismatch: %d vs %d", len(samples), len(sampleLabels))
	}

	mats := make([]gocv.Mat, 0, len(samples))
	defer func() {
		for i := range mats {
			mats[i].Close()
		}
	}()
	for _, s := range samples {
		mat, err := gocv.ImageGrayToMatGray(s)
		if err != nil {
			return fmt.Errorf("converting training sample: %w", err)
		}
		mats = append(mats, mat)
	}

	r.rec.Train(mats, sampleLabels)
	r.trained = true
	return nil
}

func (r *LBPHRecognizer) Predict(sample *image.Gray) (Prediction, error) {
	if !r.trained {
		return Prediction{}, ErrNotTrained
	}

	mat, err := gocv.ImageGrayToMatGray(sample)
	if err != nil {
		return Prediction{}, fmt.Errorf("converting probe image: %w", err)
	}
	defer mat.Close()

	resp := r.rec.PredictExtendedResponse(mat)
	return Prediction{Label: int(resp.Label), Distance: float64(resp.Confidence)}, nil
}

// Save serializes the model. OpenCV picks the storage format from the file
// extension, so the path should end in .yml or .xml.
func (r *LBPHRecognizer) Save(path string) error {
	if !r.trained {
		return ErrNotTrained
	}
	r.rec.SaveFile(path)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("saving model to %s: %w", path, err)
	}
	return nil
}

func (r *LBPHRecognizer) Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("loading model from %s: %w", path, err)
	}
	r.rec.LoadFile(path)
	r.trained = true
	return nil
}
