package handlers

import (
	"context"
	"image"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/camera"
	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/enroll"
	"github.com/kozaktomas/face-attendance/internal/labels"
	"github.com/kozaktomas/face-attendance/internal/ledger"
	"github.com/kozaktomas/face-attendance/internal/trainer"
	"github.com/kozaktomas/face-attendance/internal/users"
	"github.com/kozaktomas/face-attendance/internal/vision"
)

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// fakeDetector reports one fixed face region in every frame.
type fakeDetector struct{}

func (fakeDetector) Detect(img *image.Gray) []image.Rectangle {
	return []image.Rectangle{image.Rect(0, 0, 8, 8)}
}

func (fakeDetector) Close() error { return nil }

// fakeRecognizer accepts any training set and predicts a fixed label.
type fakeRecognizer struct {
	trainCalls int
}

func (f *fakeRecognizer) Train(samples []*image.Gray, sampleLabels []int) error {
	f.trainCalls++
	return nil
}

func (f *fakeRecognizer) Predict(sample *image.Gray) (vision.Prediction, error) {
	return vision.Prediction{Label: 0, Distance: 10}, nil
}

func (f *fakeRecognizer) Save(path string) error { return nil }
func (f *fakeRecognizer) Load(path string) error { return nil }

// fakeSource serves a fixed number of gray frames.
type fakeSource struct {
	frames int
	closed bool
}

func (s *fakeSource) Next() (image.Image, error) {
	if s.frames <= 0 {
		return nil, camera.ErrNoFrame
	}
	s.frames--
	return image.NewGray(image.Rect(0, 0, 16, 16)), nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

// testEnv wires real stores over a temp dir with fake vision components.
type testEnv struct {
	users    *users.Store
	store    *dataset.Store
	ledger   *ledger.Ledger
	capturer *enroll.Capturer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	store := dataset.NewStore(filepath.Join(dir, "dataset"))
	registry := labels.New()
	tr := trainer.New(store, fakeDetector{}, &fakeRecognizer{}, registry,
		filepath.Join(dir, "trainer.yml"), filepath.Join(dir, "labels.yml"))

	return &testEnv{
		users:    users.New(filepath.Join(dir, "users.csv")),
		store:    store,
		ledger:   ledger.New(filepath.Join(dir, "attendance.csv")),
		capturer: enroll.New(store, tr),
	}
}
