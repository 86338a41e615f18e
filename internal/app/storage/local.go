package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// localDisk writes uploads into a directory served by the HTTP router.
type localDisk struct {
	dir       string
	urlPrefix string
}

func newLocalDisk(cfg ServiceConfig) (*localDisk, error) {
	dir := cfg.LocalDir
	if dir == "" {
		dir = "uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	prefix := cfg.LocalURLPrefix
	if prefix == "" {
		prefix = "/uploads"
	}

	return &localDisk{dir: dir, urlPrefix: prefix}, nil
}

// Put writes body to a temporary file and renames it into place, so readers
// never observe a partial upload.
func (l *localDisk) Put(ctx context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to flush upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(l.dir, key)); err != nil {
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}

	return path.Join(l.urlPrefix, key), nil
}
