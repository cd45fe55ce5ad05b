package handlers

import (
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/ledger"
)

// AttendanceHandler serves the attendance ledger.
type AttendanceHandler struct {
	ledger *ledger.Ledger
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(led *ledger.Ledger) *AttendanceHandler {
	return &AttendanceHandler{ledger: led}
}

// List returns all attendance records in the order they were written.
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.ledger.List()
	if err != nil {
		log.Printf("Failed to read attendance ledger: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read attendance")
		return
	}
	if records == nil {
		records = []ledger.Record{}
	}
	respondJSON(w, http.StatusOK, records)
}
