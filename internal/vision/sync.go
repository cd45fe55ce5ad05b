package vision

import (
	"image"
	"sync"
)

// Synchronized wraps a Recognizer with a read-write lock so that prediction
// can run concurrently (e.g. from a live video feed) while training and model
// publishing take exclusive access.
func Synchronized(rec Recognizer) Recognizer {
	return &syncRecognizer{inner: rec}
}

type syncRecognizer struct {
	inner Recognizer
	mu    sync.RWMutex
}

func (s *syncRecognizer) Train(samples []*image.Gray, sampleLabels []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Train(samples, sampleLabels)
}

func (s *syncRecognizer) Predict(sample *image.Gray) (Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Predict(sample)
}

func (s *syncRecognizer) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Save(path)
}

func (s *syncRecognizer) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Load(path)
}
