// Package media stores uploaded recipe images and inspects their contents.
package media

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInvalidName is returned for names that are empty or escape the media root.
var ErrInvalidName = errors.New("invalid media name")

// Storage manages files under a media root directory and builds their public URLs.
// Names are slash-separated paths relative to the root, e.g. "recipe/<uuid>.png".
type Storage struct {
	root    string
	baseURL string
	mu      sync.RWMutex
}

// NewStorage creates the media root if needed. baseURL is the prefix files are served under.
func NewStorage(root, baseURL string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("media root cannot be empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Storage{root: root, baseURL: baseURL}, nil
}

// Save writes data under name, creating intermediate directories.
func (s *Storage) Save(name string, data []byte) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("media data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

// Delete removes the file stored under name. A missing file is not an error.
func (s *Storage) Delete(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

// Handler serves stored files by name relative to the request path.
// Directories and invalid names answer 404, so stored names cannot be listed.
func (s *Storage) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, info, err := s.open(strings.TrimPrefix(r.URL.Path, "/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

// open returns the regular file stored under name.
func (s *Storage) open(name string) (*os.File, os.FileInfo, error) {
	p, err := s.Path(name)
	if err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %q is not a file", ErrInvalidName, name)
	}
	return f, info, nil
}

// Path returns the filesystem path for name.
func (s *Storage) Path(name string) (string, error) {
	clean := path.Clean("/" + name)
	if name == "" || clean == "/" || clean != "/"+name {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// URL returns the public URL of name.
func (s *Storage) URL(name string) string {
	return s.baseURL + strings.TrimPrefix(name, "/")
}
