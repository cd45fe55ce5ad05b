// Package users persists registered user profiles as a CSV table keyed by
// normalized name. The recognition pipeline only needs the name; the rest is
// enrollment metadata for the web UI.
package users

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sync"
)

var header = []string{"Name", "Enrollment", "Branch", "Year", "Email"}

var (
	ErrExists   = errors.New("user already registered")
	ErrNotFound = errors.New("user not found")
)

// Profile is one registered user.
type Profile struct {
	Name       string `json:"name"`
	Enrollment string `json:"enrollment"`
	Branch     string `json:"branch"`
	Year       string `json:"year"`
	Email      string `json:"email"`
}

// Store is the CSV-backed profile table.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// Add appends a profile. Names are unique; registering an existing name
// returns ErrExists.
func (s *Store) Add(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read()
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Name == p.Name {
			return ErrExists
		}
	}

	fresh := false
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		fresh = true
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening user store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing user store header: %w", err)
		}
	}
	if err := w.Write([]string{p.Name, p.Enrollment, p.Branch, p.Year, p.Email}); err != nil {
		return fmt.Errorf("writing user row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing user store: %w", err)
	}
	return nil
}

// List returns all profiles in registration order.
func (s *Store) List() ([]Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Get looks up a profile by normalized name.
func (s *Store) Get(name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.read()
	if err != nil {
		return Profile{}, err
	}
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (s *Store) read() ([]Profile, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening user store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading user store: %w", err)
	}

	var profiles []Profile
	for i, row := range rows {
		if i == 0 && row[0] == header[0] {
			continue
		}
		profiles = append(profiles, Profile{
			Name:       row[0],
			Enrollment: row[1],
			Branch:     row[2],
			Year:       row[3],
			Email:      row[4],
		})
	}
	return profiles, nil
}
