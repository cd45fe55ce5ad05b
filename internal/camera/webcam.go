package camera

import (
	"fmt"
	"sync"

	"image"

	"gocv.io/x/gocv"
)

// Webcam reads frames from a local video capture device via OpenCV.
type Webcam struct {
	mu     sync.Mutex
	cap    *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
}

// OpenWebcam opens the capture device and holds it until Close.
func OpenWebcam(device int) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("opening capture device %d: %w", device, err)
	}
	return &Webcam{cap: cap, mat: gocv.NewMat()}, nil
}

func (w *Webcam) Next() (image.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrNoFrame
	}
	if ok := w.cap.Read(&w.mat); !ok || w.mat.Empty() {
		return nil, ErrNoFrame
	}
	img, err := w.mat.ToImage()
	if err != nil {
		return nil, ErrNoFrame
	}
	return img, nil
}

// Close releases the device handle. Safe to call more than once.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.mat.Close()
	return w.cap.Close()
}
