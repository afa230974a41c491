// Package fs provides file-based storage for archived articles.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/fetcher"
)

// Compile-time interface verification.
var (
	_ fetcher.ArticleStore = (*Store)(nil)
	_ fetcher.ImageStore   = (*Store)(nil)
)

// Store writes workspaces, images and articles to the local filesystem.
// Files are written to a temporary name and renamed into place, so a
// failed write never leaves a truncated file behind.
type Store struct {
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{
		dirPerm:  0755,
		filePerm: 0644,
	}
}

// EnsureWorkspace creates every directory of ws. It is idempotent.
func (s *Store) EnsureWorkspace(ctx context.Context, ws *fetcher.Workspace) error {
	if err := os.MkdirAll(ws.ImagesDir, s.dirPerm); err != nil {
		return fetcher.Errorf(fetcher.EFILESYSTEM, "failed to create workspace %s: %v", ws.ImagesDir, err)
	}
	return nil
}

// SaveImage writes an image file, replacing any previous copy.
func (s *Store) SaveImage(ctx context.Context, path string, data []byte) error {
	return s.writeFile(path, data)
}

// WriteArticle writes the artifact into the article directory.
func (s *Store) WriteArticle(ctx context.Context, ws *fetcher.Workspace, content string) (string, error) {
	path := ws.ArticlePath()
	if err := s.writeFile(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fetcher.Errorf(fetcher.EFILESYSTEM, "failed to write %s: %v", path, err)
	}
	tmpPath := tmp.Name()

	// Remove the temp file unless it was renamed into place.
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fetcher.Errorf(fetcher.EFILESYSTEM, "failed to write %s: %v", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fetcher.Errorf(fetcher.EFILESYSTEM, "failed to write %s: %v", path, err)
	}
	if err := os.Chmod(tmpPath, s.filePerm); err != nil {
		return fetcher.Errorf(fetcher.EFILESYSTEM, "failed to write %s: %v", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fetcher.Errorf(fetcher.EFILESYSTEM, "failed to write %s: %v", path, err)
	}
	return nil
}
