package trainer

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/labels"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// fakeDetector reports one face when the image contains any bright pixel.
type fakeDetector struct{}

func (fakeDetector) Detect(img *image.Gray) []image.Rectangle {
	for _, p := range img.Pix {
		if p > 128 {
			return []image.Rectangle{image.Rect(0, 0, 20, 20)}
		}
	}
	return nil
}

func (fakeDetector) Close() error { return nil }

// fakeRecognizer records training calls and writes a marker file on Save.
type fakeRecognizer struct {
	trainedLabels []int
	trainCalls    int
}

func (r *fakeRecognizer) Train(samples []*image.Gray, sampleLabels []int) error {
	if len(samples) == 0 {
		return vision.ErrNoSamples
	}
	r.trainedLabels = append([]int(nil), sampleLabels...)
	r.trainCalls++
	return nil
}

func (r *fakeRecognizer) Predict(sample *image.Gray) (vision.Prediction, error) {
	return vision.Prediction{}, vision.ErrNotTrained
}

func (r *fakeRecognizer) Save(path string) error {
	return os.WriteFile(path, []byte("model"), 0644)
}

func (r *fakeRecognizer) Load(path string) error { return nil }

func faceImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 50, 50))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	return img
}

func blankImage() *image.Gray {
	return image.NewGray(image.Rect(0, 0, 50, 50))
}

func newTestTrainer(t *testing.T) (*Trainer, *dataset.Store, *labels.Registry, *fakeRecognizer, string) {
	t.Helper()
	dir := t.TempDir()
	store := dataset.NewStore(filepath.Join(dir, "dataset"))
	registry := labels.New()
	rec := &fakeRecognizer{}
	modelPath := filepath.Join(dir, "trainer.yml")
	labelsPath := filepath.Join(dir, "labels.yml")
	tr := New(store, fakeDetector{}, rec, registry, modelPath, labelsPath)
	return tr, store, registry, rec, dir
}

func TestTrain_AssignsLabelsFirstSeen(t *testing.T) {
	tr, store, registry, rec, _ := newTestTrainer(t)

	for range 3 {
		if _, err := store.SaveSample("Alice", faceImage()); err != nil {
			t.Fatalf("SaveSample failed: %v", err)
		}
	}
	for range 2 {
		if _, err := store.SaveSample("Bob", faceImage()); err != nil {
			t.Fatalf("SaveSample failed: %v", err)
		}
	}

	if err := tr.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if registry.Len() != 2 {
		t.Fatalf("expected 2 registry entries, got %d", registry.Len())
	}
	if label, _ := registry.Lookup("Alice"); label != 0 {
		t.Errorf("expected Alice -> 0, got %d", label)
	}
	if label, _ := registry.Lookup("Bob"); label != 1 {
		t.Errorf("expected Bob -> 1, got %d", label)
	}

	// 3 Alice crops then 2 Bob crops.
	want := []int{0, 0, 0, 1, 1}
	if len(rec.trainedLabels) != len(want) {
		t.Fatalf("expected %d training samples, got %d", len(want), len(rec.trainedLabels))
	}
	for i, l := range rec.trainedLabels {
		if l != want[i] {
			t.Errorf("training label %d: expected %d, got %d", i, want[i], l)
		}
	}
}

func TestTrain_PublishesModelAndRegistry(t *testing.T) {
	tr, store, _, _, dir := newTestTrainer(t)

	if _, err := store.SaveSample("Alice", faceImage()); err != nil {
		t.Fatalf("SaveSample failed: %v", err)
	}
	if err := tr.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "trainer.yml")); err != nil {
		t.Errorf("expected published model file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "labels.yml")); err != nil {
		t.Errorf("expected published registry file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "trainer.tmp.yml")); !os.IsNotExist(err) {
		t.Error("temp model file left behind")
	}
}

func TestTrain_SkipsZeroDetectionImages(t *testing.T) {
	tr, store, registry, rec, _ := newTestTrainer(t)

	if _, err := store.SaveSample("Alice", faceImage()); err != nil {
		t.Fatalf("SaveSample failed: %v", err)
	}
	// No face in any of Bob's images: label assigned, nothing trained.
	if _, err := store.SaveSample("Bob", blankImage()); err != nil {
		t.Fatalf("SaveSample failed: %v", err)
	}

	if err := tr.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if registry.Len() != 2 {
		t.Errorf("expected Bob to still receive a label, registry has %d entries", registry.Len())
	}
	for _, l := range rec.trainedLabels {
		if l != 0 {
			t.Errorf("expected only Alice's label in training set, saw %d", l)
		}
	}
}

func TestTrain_EmptyDataset(t *testing.T) {
	tr, _, _, rec, dir := newTestTrainer(t)

	if err := tr.Train(); err != nil {
		t.Fatalf("Train on empty dataset failed: %v", err)
	}
	if rec.trainCalls != 0 {
		t.Errorf("expected no recognizer training, got %d calls", rec.trainCalls)
	}
	// Registry snapshot is still published.
	if _, err := os.Stat(filepath.Join(dir, "labels.yml")); err != nil {
		t.Errorf("expected registry file even for empty dataset: %v", err)
	}
	// No model should appear out of thin air.
	if _, err := os.Stat(filepath.Join(dir, "trainer.yml")); !os.IsNotExist(err) {
		t.Error("unexpected model file for empty dataset")
	}
}

func TestTrain_IdempotentLabels(t *testing.T) {
	tr, store, registry, rec, _ := newTestTrainer(t)

	if _, err := store.SaveSample("Alice", faceImage()); err != nil {
		t.Fatalf("SaveSample failed: %v", err)
	}
	if _, err := store.SaveSample("Bob", faceImage()); err != nil {
		t.Fatalf("SaveSample failed: %v", err)
	}

	if err := tr.Train(); err != nil {
		t.Fatalf("first Train failed: %v", err)
	}
	first := append([]int(nil), rec.trainedLabels...)

	if err := tr.Train(); err != nil {
		t.Fatalf("second Train failed: %v", err)
	}

	if registry.Len() != 2 {
		t.Errorf("expected stable registry, got %d entries", registry.Len())
	}
	if len(first) != len(rec.trainedLabels) {
		t.Fatalf("training set size changed: %d vs %d", len(first), len(rec.trainedLabels))
	}
	for i := range first {
		if first[i] != rec.trainedLabels[i] {
			t.Errorf("label %d changed between retrains: %d vs %d", i, first[i], rec.trainedLabels[i])
		}
	}
}

func TestTrain_ReportsProgress(t *testing.T) {
	tr, store, _, _, _ := newTestTrainer(t)

	for range 4 {
		if _, err := store.SaveSample("Alice", faceImage()); err != nil {
			t.Fatalf("SaveSample failed: %v", err)
		}
	}

	var calls []int
	tr.OnProgress(func(done, total int) {
		if total != 4 {
			t.Errorf("expected total 4, got %d", total)
		}
		calls = append(calls, done)
	})

	if err := tr.Train(); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if len(calls) != 4 || calls[3] != 4 {
		t.Errorf("unexpected progress sequence: %v", calls)
	}
}
