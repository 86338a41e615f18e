// Package storage persists uploaded files and returns the URL they are served from.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// DriverLocal stores uploads on the local disk and serves them from the app itself.
	DriverLocal = "local"

	// DriverS3 stores uploads in an S3-compatible bucket.
	DriverS3 = "s3"
)

// ErrInvalidKey is returned for object keys that are empty or contain path separators.
var ErrInvalidKey = errors.New("invalid object key")

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	Driver string

	// LocalDir is the directory uploads are written to by the local driver.
	LocalDir string
	// LocalURLPrefix is the path the local directory is served under, e.g. "/uploads".
	LocalURLPrefix string

	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	// S3PublicURL is the base URL objects are publicly readable from.
	// Defaults to "<endpoint>/<bucket>".
	S3PublicURL string
}

// StorageService defines the public interface for the file storage service.
type StorageService interface {
	// Put stores body under key and returns the URL it can be fetched from.
	Put(ctx context.Context, key, mimeType string, body io.Reader, size int64) (string, error)
}

// NewStorageService is the factory function for StorageService.
func NewStorageService(ctx context.Context, cfg ServiceConfig) (StorageService, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return newLocalDisk(cfg)
	case DriverS3:
		return newS3Client(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
