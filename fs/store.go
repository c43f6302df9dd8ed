// Package fs stores generated documents in a local directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dartisan/webscraper"
)

// Ensure Store implements webscraper.DocumentStore at compile time.
var _ webscraper.DocumentStore = (*Store)(nil)

// DefaultRetention is how long documents are kept when no other window is configured.
const DefaultRetention = 7 * 24 * time.Hour

// Store keeps generated documents as flat files in one directory.
// Documents are written to a temporary file first and renamed into place,
// so readers never observe a partially written document.
type Store struct {
	dir string
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to compute document age.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store rooted at dir. Call Open before use.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates the output directory if it does not exist.
func (s *Store) Open() error {
	if s.dir == "" {
		return webscraper.Errorf(webscraper.EINVALID, "output directory required")
	}
	return os.MkdirAll(s.dir, 0755)
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveDocument writes doc to the output directory under doc.Filename.
func (s *Store) SaveDocument(ctx context.Context, doc *webscraper.RenderedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(doc.Filename); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+doc.Filename+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", doc.Filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", doc.Filename, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", doc.Filename, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, doc.Filename)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publishing %s: %w", doc.Filename, err)
	}
	return nil
}

// FindDocument returns the stored document called filename.
func (s *Store) FindDocument(ctx context.Context, filename string) (*webscraper.StoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateName(filename); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, filename)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, webscraper.Errorf(webscraper.ENOTFOUND, "File not found")
	} else if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, webscraper.Errorf(webscraper.ENOTFOUND, "File not found")
	}

	return &webscraper.StoredDocument{
		Filename: filename,
		Path:     path,
		MIMEType: webscraper.MIMEType(filename),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}

// Sweep removes regular files whose age exceeds maxAge. It works on a
// snapshot of the directory listing and keeps going after per-file
// failures, which are joined into the returned error.
func (s *Store) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	now := s.now()
	removed := 0
	var errs []error
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			errs = append(errs, err)
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// validateName rejects anything but a bare, visible file name.
func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return webscraper.Errorf(webscraper.EINVALID, "invalid file name %q", name)
	}
	return nil
}
