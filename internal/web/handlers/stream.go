package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/camera"
	"github.com/kozaktomas/face-attendance/internal/recognize"
)

const streamBoundary = "frame"

// StreamHandler serves live MJPEG video feeds from the camera.
type StreamHandler struct {
	cameras *CameraGuard
	loop    *recognize.Loop
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(cameras *CameraGuard, loop *recognize.Loop) *StreamHandler {
	return &StreamHandler{
		cameras: cameras,
		loop:    loop,
	}
}

// setupStream acquires the camera and sets up MJPEG headers.
// On failure, writes an error response and returns false.
func (h *StreamHandler) setupStream(w http.ResponseWriter) (camera.Source, http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming not supported")
		return nil, nil, false
	}

	src, err := h.cameras.Acquire()
	if err != nil {
		if errors.Is(err, ErrCameraBusy) {
			respondError(w, http.StatusConflict, "camera is in use")
			return nil, nil, false
		}
		log.Printf("Failed to open camera: %v", err)
		respondError(w, http.StatusServiceUnavailable, "camera unavailable")
		return nil, nil, false
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+streamBoundary)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return src, flusher, true
}

// writeFrame sends a single JPEG part of the MJPEG stream.
func writeFrame(w http.ResponseWriter, flusher http.Flusher, img image.Image) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	if _, err := fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", streamBoundary, buf.Len()); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "\r\n"); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// RawFeed streams camera frames without recognition.
func (h *StreamHandler) RawFeed(w http.ResponseWriter, r *http.Request) {
	src, flusher, ok := h.setupStream(w)
	if !ok {
		return
	}
	defer src.Close()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := src.Next()
		if err != nil {
			if !errors.Is(err, camera.ErrNoFrame) {
				log.Printf("Camera read failed: %v", err)
			}
			return
		}
		if err := writeFrame(w, flusher, frame); err != nil {
			// Client disconnected.
			return
		}
	}
}

// RecognizeFeed streams camera frames with recognition boxes drawn in,
// marking attendance for every confident match along the way.
func (h *StreamHandler) RecognizeFeed(w http.ResponseWriter, r *http.Request) {
	src, flusher, ok := h.setupStream(w)
	if !ok {
		return
	}

	// Run closes the source when the loop ends.
	err := h.loop.Run(r.Context(), src, func(annotated *image.RGBA, matches []recognize.Match) error {
		return writeFrame(w, flusher, annotated)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Recognition stream ended: %v", err)
	}
}
