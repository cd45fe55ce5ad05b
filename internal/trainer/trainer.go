// Package trainer rebuilds the face classifier from the full dataset.
//
// Every run is a complete retrain: walk all samples, detect and crop faces,
// train from scratch, publish. That is O(total images) per call and is
// triggered synchronously after every captured sample, which is the known
// scalability bottleneck of this pipeline. It stays acceptable only while
// the enrolled population is small; a larger corpus would want debounced or
// lazy retraining behind the same observable contract.
package trainer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/labels"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Progress reports training progress per dataset file.
type Progress func(done, total int)

type Trainer struct {
	store      *dataset.Store
	detector   vision.Detector
	recognizer vision.Recognizer
	registry   *labels.Registry
	modelPath  string
	labelsPath string
	onProgress Progress
}

func New(store *dataset.Store, detector vision.Detector, recognizer vision.Recognizer,
	registry *labels.Registry, modelPath, labelsPath string) *Trainer {
	return &Trainer{
		store:      store,
		detector:   detector,
		recognizer: recognizer,
		registry:   registry,
		modelPath:  modelPath,
		labelsPath: labelsPath,
	}
}

// OnProgress registers a per-file progress callback.
func (t *Trainer) OnProgress(fn Progress) {
	t.onProgress = fn
}

// Train rebuilds the classifier from every sample in the dataset and
// atomically publishes the model file and the registry snapshot. Images
// where no face is detected contribute nothing and are skipped silently; an
// identity whose directory holds no usable sample still receives a label.
// If the whole dataset yields zero face crops the previous model state is
// left in place and only the registry is published.
func (t *Trainer) Train() error {
	files, err := t.store.Samples()
	if err != nil {
		return fmt.Errorf("listing dataset: %w", err)
	}

	var samples []*image.Gray
	var sampleLabels []int
	for i, file := range files {
		label := t.registry.GetOrAssign(file.Identity)

		img, err := loadGray(file.Path)
		if err != nil {
			// Unreadable files degrade like zero-detection images.
			continue
		}
		for _, rect := range t.detector.Detect(img) {
			crop := vision.Crop(img, rect)
			if crop == nil {
				continue
			}
			samples = append(samples, crop)
			sampleLabels = append(sampleLabels, label)
		}

		if t.onProgress != nil {
			t.onProgress(i+1, len(files))
		}
	}

	if len(samples) > 0 {
		if err := t.recognizer.Train(samples, sampleLabels); err != nil {
			return fmt.Errorf("training recognizer: %w", err)
		}
		if err := t.publishModel(); err != nil {
			return err
		}
	}

	if err := t.registry.Save(t.labelsPath); err != nil {
		return fmt.Errorf("publishing label registry: %w", err)
	}
	return nil
}

// publishModel saves to a temp file next to the target and renames it into
// place, so a crash mid-save cannot leave a truncated model paired with a
// fresh registry. The temp name keeps the real extension because the
// recognizer picks its storage format from it.
func (t *Trainer) publishModel() error {
	tmp := tempModelPath(t.modelPath)
	if err := t.recognizer.Save(tmp); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	if err := os.Rename(tmp, t.modelPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing model: %w", err)
	}
	return nil
}

func tempModelPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".tmp" + ext
}

func loadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return vision.Grayscale(img), nil
}
