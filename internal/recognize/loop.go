// Package recognize classifies live frames against the trained model and
// drives the attendance ledger.
package recognize

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"github.com/kozaktomas/face-attendance/internal/annotate"
	"github.com/kozaktomas/face-attendance/internal/camera"
	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/kozaktomas/face-attendance/internal/labels"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// Match is one confident recognition within a frame.
type Match struct {
	Identity string
	Rect     image.Rectangle
	Distance float64
}

// FrameFunc consumes one processed frame. Returning an error stops the loop;
// the camera is still released.
type FrameFunc func(annotated *image.RGBA, matches []Match) error

// Loop classifies frames one at a time. It holds no per-frame state: all it
// touches across frames is the ledger (writes) and the registry/model
// (reads).
type Loop struct {
	detector   vision.Detector
	recognizer vision.Recognizer
	registry   *labels.Registry
	ledger     *ledger.Ledger
	threshold  float64
	now        func() time.Time
}

func New(detector vision.Detector, recognizer vision.Recognizer,
	registry *labels.Registry, led *ledger.Ledger, threshold float64) *Loop {
	return &Loop{
		detector:   detector,
		recognizer: recognizer,
		registry:   registry,
		ledger:     led,
		threshold:  threshold,
		now:        time.Now,
	}
}

// Process classifies a single frame: detect faces, predict each crop, apply
// the confidence gate and record confident matches in the ledger. Distances
// strictly below the threshold count as a match; anything else, including a
// label the registry cannot resolve, is reported as Unknown with no ledger
// effect. Errors on individual faces or ledger writes are confined to this
// frame.
func (l *Loop) Process(frame image.Image) ([]annotate.Box, []Match) {
	gray := vision.Grayscale(frame)
	rects := l.detector.Detect(gray)

	var boxes []annotate.Box
	var matches []Match
	for _, rect := range rects {
		crop := vision.Crop(gray, rect)
		if crop == nil {
			continue
		}

		name := identity.Unknown
		matched := false

		pred, err := l.recognizer.Predict(crop)
		if err == nil && pred.Distance < l.threshold {
			if resolved, ok := l.registry.Resolve(pred.Label); ok {
				name = resolved
				matched = true
				if err := l.ledger.Record(name, l.now()); err != nil {
					log.Printf("recording attendance for %s: %v", name, err)
				}
				matches = append(matches, Match{Identity: name, Rect: rect, Distance: pred.Distance})
			}
		}

		boxes = append(boxes, annotate.Box{Rect: rect, Label: name, Matched: matched})
	}
	return boxes, matches
}

// Run consumes frames from src until the source is exhausted, the context is
// cancelled, or onFrame returns an error. The device handle is released on
// every exit path. A failed frame read ends the stream gracefully with a nil
// error.
func (l *Loop) Run(ctx context.Context, src camera.Source, onFrame FrameFunc) error {
	defer src.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := src.Next()
		if err != nil {
			if errors.Is(err, camera.ErrNoFrame) {
				return nil
			}
			return err
		}

		boxes, matches := l.Process(frame)
		if onFrame != nil {
			annotated := annotate.Draw(frame, boxes)
			if err := onFrame(annotated, matches); err != nil {
				return err
			}
		}
	}
}
