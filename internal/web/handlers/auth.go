package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/kozaktomas/face-attendance/internal/users"
	"github.com/kozaktomas/face-attendance/internal/web/middleware"
)

// AuthHandler handles identity verification endpoints.
type AuthHandler struct {
	users    *users.Store
	sessions *middleware.SessionManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(userStore *users.Store, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		users:    userStore,
		sessions: sessions,
	}
}

type verifyRequest struct {
	Name string `json:"name"`
}

// Verify checks that the claimed name belongs to a registered user and
// starts a verified session for it.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	name := identity.Normalize(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if _, err := h.users.Get(name); err != nil {
		log.Printf("Verification failed for %q: %v", sanitizeForLog(name), err)
		respondError(w, http.StatusNotFound, "user not registered")
		return
	}

	session := h.sessions.CreateSession(name)
	h.sessions.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, map[string]any{
		"verified": true,
		"name":     name,
	})
}

// Logout ends the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetSessionFromRequest(r); session != nil {
		h.sessions.DeleteSession(session.ID)
	}
	h.sessions.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Status reports whether the request carries a verified session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetSessionFromRequest(r)
	if session == nil {
		respondJSON(w, http.StatusOK, map[string]any{"verified": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"verified": true,
		"name":     session.User,
	})
}
