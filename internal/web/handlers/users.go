package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/dataset"
	"github.com/kozaktomas/face-attendance/internal/identity"
	"github.com/kozaktomas/face-attendance/internal/users"
)

// UsersHandler handles user registration and listing.
type UsersHandler struct {
	users *users.Store
	store *dataset.Store
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userStore *users.Store, store *dataset.Store) *UsersHandler {
	return &UsersHandler{
		users: userStore,
		store: store,
	}
}

// Register adds a new user profile and prepares its dataset partition.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var profile users.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	profile.Name = identity.Normalize(profile.Name)
	if profile.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.users.Add(profile); err != nil {
		if errors.Is(err, users.ErrExists) {
			respondError(w, http.StatusConflict, "user already registered")
			return
		}
		log.Printf("Failed to register user %q: %v", sanitizeForLog(profile.Name), err)
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	if _, err := h.store.EnsurePartition(profile.Name); err != nil {
		log.Printf("Failed to prepare dataset folder for %q: %v", sanitizeForLog(profile.Name), err)
		respondError(w, http.StatusInternalServerError, "failed to prepare dataset folder")
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// List returns all registered user profiles.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.users.List()
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if profiles == nil {
		profiles = []users.Profile{}
	}
	respondJSON(w, http.StatusOK, profiles)
}
