// Package enroll coordinates sample capture: one frame from the camera into
// the dataset, then a synchronous retrain so the model always reflects the
// latest samples before the next recognition.
package enroll

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/camera"
	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/trainer"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

type Capturer struct {
	store   *dataset.Store
	trainer *trainer.Trainer
}

func New(store *dataset.Store, tr *trainer.Trainer) *Capturer {
	return &Capturer{store: store, trainer: tr}
}

// CaptureSample grabs one frame from src, stores it as a grayscale sample
// for the identity and retrains. When the camera yields no frame the whole
// operation is a no-op: nothing is written, nothing retrains, and the
// returned path is empty. The caller owns src and its release.
func (c *Capturer) CaptureSample(src camera.Source, identityName string) (string, error) {
	frame, err := src.Next()
	if err != nil {
		if errors.Is(err, camera.ErrNoFrame) {
			return "", nil
		}
		return "", err
	}

	path, err := c.store.SaveSample(identityName, vision.Grayscale(frame))
	if err != nil {
		return "", fmt.Errorf("storing sample for %s: %w", identityName, err)
	}

	if err := c.trainer.Train(); err != nil {
		return "", fmt.Errorf("retraining after capture: %w", err)
	}
	return path, nil
}
