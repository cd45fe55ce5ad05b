// Package dataset manages the on-disk training corpus: one directory per
// identity, grayscale face samples named by a sequential counter.
package dataset

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// allowedExtensions is the allow-list for sample files. Anything else inside
// a partition is ignored.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Allowed reports whether a filename carries one of the accepted image
// extensions.
func Allowed(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Sample is one training image belonging to an identity.
type Sample struct {
	Identity string // normalized identity name (partition directory)
	Path     string // absolute or root-relative file path
}

// Store is the durable training corpus rooted at a single directory.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// EnsurePartition creates the identity's directory if needed and returns its
// path. The identity must already be normalized.
func (s *Store) EnsurePartition(identity string) (string, error) {
	dir := filepath.Join(s.root, identity)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating partition for %s: %w", identity, err)
	}
	return dir, nil
}

// nextFilename returns the sequential filename for a new sample, counting the
// files already present in the partition. The counter is an opaque name, not
// a contiguous sequence guarantee.
func (s *Store) nextFilename(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading partition %s: %w", dir, err)
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && Allowed(e.Name()) {
			count++
		}
	}
	return fmt.Sprintf("%d.jpg", count+1), nil
}

// SaveSample writes a grayscale sample into the identity's partition under
// the next sequential filename and returns the file path.
func (s *Store) SaveSample(identity string, img *image.Gray) (string, error) {
	dir, err := s.EnsurePartition(identity)
	if err != nil {
		return "", err
	}

	name, err := s.nextFilename(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating sample file: %w", err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encoding sample: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing sample: %w", err)
	}
	return path, nil
}

// Identities lists partition names in lexical order.
func (s *Store) Identities() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading dataset root: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Samples lists every allowed sample file, grouped by identity in lexical
// partition order and numeric-ish file order within a partition. The order
// is deterministic so label assignment is reproducible.
func (s *Store) Samples() ([]Sample, error) {
	identities, err := s.Identities()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, id := range identities {
		dir := filepath.Join(s.root, id)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading partition %s: %w", id, err)
		}
		var files []string
		for _, e := range entries {
			if !e.IsDir() && Allowed(e.Name()) {
				files = append(files, e.Name())
			}
		}
		sort.Slice(files, func(i, j int) bool { return fileLess(files[i], files[j]) })
		for _, name := range files {
			samples = append(samples, Sample{Identity: id, Path: filepath.Join(dir, name)})
		}
	}
	return samples, nil
}

// fileLess orders "2.jpg" before "10.jpg" by comparing the numeric stem when
// both sides have one, falling back to lexical order.
func fileLess(a, b string) bool {
	na, aok := numericStem(a)
	nb, bok := numericStem(b)
	if aok && bok {
		if na != nb {
			return na < nb
		}
	}
	return a < b
}

func numericStem(name string) (int, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	n := 0
	if stem == "" {
		return 0, false
	}
	for _, r := range stem {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
