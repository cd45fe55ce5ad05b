package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-attendance/internal/enroll"
	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/kozaktomas/face-attendance/internal/users"
)

// EnrollHandler handles face sample capture for registered users.
type EnrollHandler struct {
	users    *users.Store
	capturer *enroll.Capturer
	cameras  *CameraGuard
}

// NewEnrollHandler creates a new enroll handler.
func NewEnrollHandler(userStore *users.Store, capturer *enroll.Capturer, cameras *CameraGuard) *EnrollHandler {
	return &EnrollHandler{
		users:    userStore,
		capturer: capturer,
		cameras:  cameras,
	}
}

// Capture grabs one frame from the camera, stores it as a training sample
// for the named user and retrains the model.
func (h *EnrollHandler) Capture(w http.ResponseWriter, r *http.Request) {
	name := identity.Normalize(chi.URLParam(r, "name"))
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if _, err := h.users.Get(name); err != nil {
		respondError(w, http.StatusNotFound, "user not registered")
		return
	}

	src, err := h.cameras.Acquire()
	if err != nil {
		if errors.Is(err, ErrCameraBusy) {
			respondError(w, http.StatusConflict, "camera is in use")
			return
		}
		log.Printf("Failed to open camera: %v", err)
		respondError(w, http.StatusServiceUnavailable, "camera unavailable")
		return
	}
	defer src.Close()

	sample, err := h.capturer.CaptureSample(src, name)
	if err != nil {
		log.Printf("Failed to capture sample for %q: %v", sanitizeForLog(name), err)
		respondError(w, http.StatusInternalServerError, "failed to capture sample")
		return
	}
	if sample == "" {
		respondJSON(w, http.StatusOK, map[string]any{
			"captured": false,
		})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"captured": true,
		"sample":   sample,
	})
}
