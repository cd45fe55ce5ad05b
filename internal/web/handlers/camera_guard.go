package handlers

import (
	"errors"
	"sync"

	"github.com/kozaktomas/face-attendance/internal/camera"
)

// ErrCameraBusy is returned when the camera is already streaming or capturing
// for another request.
var ErrCameraBusy = errors.New("camera is in use")

// CameraGuard hands out exclusive access to the single physical camera.
// A webcam device cannot be shared between two readers, so only one
// request may hold a source at a time.
type CameraGuard struct {
	open func() (camera.Source, error)
	mu   sync.Mutex
}

// NewCameraGuard creates a guard around a camera opener.
func NewCameraGuard(open func() (camera.Source, error)) *CameraGuard {
	return &CameraGuard{open: open}
}

// Acquire opens the camera for exclusive use. The returned source must be
// closed to release the camera for other requests. Returns ErrCameraBusy
// when another holder has not released it yet.
func (g *CameraGuard) Acquire() (camera.Source, error) {
	if !g.mu.TryLock() {
		return nil, ErrCameraBusy
	}
	src, err := g.open()
	if err != nil {
		g.mu.Unlock()
		return nil, err
	}
	return &guardedSource{Source: src, guard: g}, nil
}

type guardedSource struct {
	camera.Source
	guard   *CameraGuard
	release sync.Once
}

func (s *guardedSource) Close() error {
	var err error
	s.release.Do(func() {
		err = s.Source.Close()
		s.guard.mu.Unlock()
	})
	return err
}
