package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Store is the local blob store for uploaded files (payment proofs, avatars,
// gallery photos, documents). Files land under BaseDir/<folder>/ and are
// served by the static /uploads route, so every saved file is addressed by a
// public path of the form /uploads/<folder>/<name>.
type Store struct {
	BaseDir string
}

// New creates the base directory if needed and returns the store.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{BaseDir: baseDir}, nil
}

// SaveUpload writes a multipart file into folder and returns its public path.
// The stored name is prefixed with a nanosecond timestamp so two uploads of
// the same filename never collide.
func (s *Store) SaveUpload(fh *multipart.FileHeader, folder string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + folder + "/" + name, nil
}

// Remove deletes a previously saved file by its public path. Used both for
// normal deletes and to compensate when a DB insert fails after the upload
// already landed on disk.
func (s *Store) Remove(publicURL string) error {
	rel, ok := s.relPath(publicURL)
	if !ok {
		return fmt.Errorf("not an upload path: %s", publicURL)
	}
	return os.Remove(filepath.Join(s.BaseDir, rel))
}

// Thumbnail renders a fixed-width thumbnail next to a stored image and
// returns the thumbnail's public path.
func (s *Store) Thumbnail(publicURL string, width int) (string, error) {
	rel, ok := s.relPath(publicURL)
	if !ok {
		return "", fmt.Errorf("not an upload path: %s", publicURL)
	}
	img, err := imaging.Open(filepath.Join(s.BaseDir, rel))
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
	ext := filepath.Ext(rel)
	thumbRel := strings.TrimSuffix(rel, ext) + "_thumb" + ext
	if err := imaging.Save(thumb, filepath.Join(s.BaseDir, thumbRel)); err != nil {
		return "", err
	}
	return "/uploads/" + filepath.ToSlash(thumbRel), nil
}

// relPath maps a public /uploads/... path back to a path relative to BaseDir,
// refusing anything that would escape it.
func (s *Store) relPath(publicURL string) (string, bool) {
	rel, found := strings.CutPrefix(publicURL, "/uploads/")
	if !found || rel == "" || strings.Contains(rel, "..") {
		return "", false
	}
	return filepath.FromSlash(rel), true
}
