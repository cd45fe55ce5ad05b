// Package labels maintains the stable mapping from identity names to the
// integer labels the recognizer trains on.
package labels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry assigns integer labels to identities in first-seen order.
// Labels start at 0, grow monotonically and are never reused or renumbered,
// so a persisted model keeps meaning across retrains. The mapping is
// injective by construction: labels are only handed out through GetOrAssign.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]int
	byLabel map[int]string
}

func New() *Registry {
	return &Registry{
		byName:  make(map[string]int),
		byLabel: make(map[int]string),
	}
}

// Load reads a persisted registry. A missing file yields an empty registry,
// not an error: first run has nothing to load.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading label registry: %w", err)
	}

	mapping := make(map[string]int)
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parsing label registry: %w", err)
	}

	r := New()
	for name, label := range mapping {
		if other, dup := r.byLabel[label]; dup {
			return nil, fmt.Errorf("label registry corrupt: label %d assigned to both %s and %s", label, other, name)
		}
		r.byName[name] = label
		r.byLabel[label] = name
	}
	return r, nil
}

// GetOrAssign returns the identity's label, assigning the next free one on
// first sight.
func (r *Registry) GetOrAssign(identity string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if label, ok := r.byName[identity]; ok {
		return label
	}
	label := len(r.byName)
	r.byName[identity] = label
	r.byLabel[label] = identity
	return label
}

// Lookup returns the label for an identity without assigning one.
func (r *Registry) Lookup(identity string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	label, ok := r.byName[identity]
	return label, ok
}

// Resolve reverse-maps a label to its identity. Callers report "Unknown"
// when ok is false instead of failing.
func (r *Registry) Resolve(label int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byLabel[label]
	return name, ok
}

// Len returns the number of registered identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Names returns all identities ordered by label.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return r.byName[names[i]] < r.byName[names[j]] })
	return names
}

// Save rewrites the persisted mapping in full. The write goes to a temp file
// in the same directory first and is published with a rename, so readers
// never observe a half-written registry.
func (r *Registry) Save(path string) error {
	r.mu.RLock()
	mapping := make(map[string]int, len(r.byName))
	for name, label := range r.byName {
		mapping[name] = label
	}
	r.mu.RUnlock()

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("encoding label registry: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".labels-*.yml")
	if err != nil {
		return fmt.Errorf("creating temp registry file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing label registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing label registry: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing label registry: %w", err)
	}
	return nil
}
