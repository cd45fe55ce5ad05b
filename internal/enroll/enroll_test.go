package enroll

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/camera"
	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/labels"
	"github.com/kozaktomas/face-attendance/internal/trainer"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

type fakeDetector struct{}

func (fakeDetector) Detect(img *image.Gray) []image.Rectangle {
	return []image.Rectangle{image.Rect(0, 0, 10, 10)}
}
func (fakeDetector) Close() error { return nil }

type fakeRecognizer struct {
	trainCalls int
}

func (r *fakeRecognizer) Train(samples []*image.Gray, sampleLabels []int) error {
	r.trainCalls++
	return nil
}
func (r *fakeRecognizer) Predict(sample *image.Gray) (vision.Prediction, error) {
	return vision.Prediction{}, vision.ErrNotTrained
}
func (r *fakeRecognizer) Save(path string) error { return os.WriteFile(path, []byte("m"), 0644) }
func (r *fakeRecognizer) Load(path string) error { return nil }

type fakeSource struct {
	frames int
}

func (s *fakeSource) Next() (image.Image, error) {
	if s.frames == 0 {
		return nil, camera.ErrNoFrame
	}
	s.frames--
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img, nil
}

func (s *fakeSource) Close() error { return nil }

func newCapturer(t *testing.T) (*Capturer, *dataset.Store, *fakeRecognizer) {
	t.Helper()
	dir := t.TempDir()
	store := dataset.NewStore(filepath.Join(dir, "dataset"))
	rec := &fakeRecognizer{}
	tr := trainer.New(store, fakeDetector{}, rec, labels.New(),
		filepath.Join(dir, "trainer.yml"), filepath.Join(dir, "labels.yml"))
	return New(store, tr), store, rec
}

func TestCaptureSample_StoresAndRetrains(t *testing.T) {
	c, store, rec := newCapturer(t)

	path, err := c.CaptureSample(&fakeSource{frames: 1}, "Alice")
	if err != nil {
		t.Fatalf("CaptureSample failed: %v", err)
	}
	if filepath.Base(path) != "1.jpg" {
		t.Errorf("expected sample '1.jpg', got '%s'", filepath.Base(path))
	}
	if rec.trainCalls != 1 {
		t.Errorf("expected one retrain, got %d", rec.trainCalls)
	}

	samples, err := store.Samples()
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if len(samples) != 1 || samples[0].Identity != "Alice" {
		t.Fatalf("unexpected dataset contents: %+v", samples)
	}
}

func TestCaptureSample_SequentialNames(t *testing.T) {
	c, _, _ := newCapturer(t)

	src := &fakeSource{frames: 3}
	var last string
	for range 3 {
		path, err := c.CaptureSample(src, "Alice")
		if err != nil {
			t.Fatalf("CaptureSample failed: %v", err)
		}
		last = path
	}
	if filepath.Base(last) != "3.jpg" {
		t.Errorf("expected third sample '3.jpg', got '%s'", filepath.Base(last))
	}
}

func TestCaptureSample_NoFrameIsNoop(t *testing.T) {
	c, store, rec := newCapturer(t)

	path, err := c.CaptureSample(&fakeSource{frames: 0}, "Alice")
	if err != nil {
		t.Fatalf("expected no error for missing frame, got %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path, got %q", path)
	}
	if rec.trainCalls != 0 {
		t.Errorf("expected no retrain, got %d calls", rec.trainCalls)
	}
	samples, _ := store.Samples()
	if len(samples) != 0 {
		t.Errorf("expected empty dataset, got %d samples", len(samples))
	}
}
