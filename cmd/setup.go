package cmd

import (
	"fmt"
	"os"

	"github.com/kozaktomas/face-attendance/internal/camera"
	"github.com/kozaktomas/face-attendance/internal/config"
	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/labels"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/kozaktomas/face-attendance/internal/trainer"
	"github.com/kozaktomas/face-attendance/internal/users"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// pipeline bundles the face recognition components shared by the commands.
type pipeline struct {
	cfg        *config.Config
	store      *dataset.Store
	registry   *labels.Registry
	detector   vision.Detector
	recognizer vision.Recognizer
	trainer    *trainer.Trainer
	ledger     *ledger.Ledger
	users      *users.Store
}

// newDetector picks the face detector backend from the config.
func newDetector(cfg *config.Config) (vision.Detector, error) {
	switch cfg.Vision.Detector {
	case "haar":
		return vision.NewHaarDetector(cfg.Vision.CascadePath, cfg.Vision.ScaleFactor, cfg.Vision.MinNeighbors)
	case "pigo":
		return vision.NewPigoDetector(cfg.Vision.PigoCascadePath, vision.DefaultPigoParams())
	default:
		return nil, fmt.Errorf("unknown face detector %q (use haar or pigo)", cfg.Vision.Detector)
	}
}

// newPipeline wires stores, detector, recognizer and trainer from the config.
// When loadModel is set and a published model file exists, the recognizer
// starts from it; a missing model is fine for commands that train first.
func newPipeline(cfg *config.Config, loadModel bool) (*pipeline, error) {
	registry, err := labels.Load(cfg.Storage.LabelsPath)
	if err != nil {
		return nil, fmt.Errorf("loading label registry: %w", err)
	}

	detector, err := newDetector(cfg)
	if err != nil {
		return nil, err
	}

	recognizer := vision.Synchronized(vision.NewLBPHRecognizer())
	if loadModel {
		if _, err := os.Stat(cfg.Storage.ModelPath); err == nil {
			if err := recognizer.Load(cfg.Storage.ModelPath); err != nil {
				detector.Close()
				return nil, fmt.Errorf("loading model: %w", err)
			}
		}
	}

	store := dataset.NewStore(cfg.Storage.DatasetDir)

	return &pipeline{
		cfg:        cfg,
		store:      store,
		registry:   registry,
		detector:   detector,
		recognizer: recognizer,
		trainer:    trainer.New(store, detector, recognizer, registry, cfg.Storage.ModelPath, cfg.Storage.LabelsPath),
		ledger:     ledger.New(cfg.Storage.LedgerPath),
		users:      users.New(cfg.Storage.UsersPath),
	}, nil
}

func (p *pipeline) Close() {
	p.detector.Close()
}

// cameraOpener returns a factory for the configured capture device.
func cameraOpener(cfg *config.Config) func() (camera.Source, error) {
	return func() (camera.Source, error) {
		return camera.OpenWebcam(cfg.Camera.Device)
	}
}
