// Package storage puts uploaded files somewhere publicly addressable.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilchouksey/online-lms/config"
)

// Upload is a single file received from a client
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// Store writes an upload and returns the URL it can be fetched from
type Store interface {
	Upload(ctx context.Context, f Upload) (string, error)
}

// ObjectKey builds "{folder}/{uuid}_{name}" where name is the base of filename.
// Client supplied directories are dropped.
func ObjectKey(folder, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	key := uuid.NewString() + "_" + name
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

// ContentTypeOf returns the declared content type, falling back to the file extension
func ContentTypeOf(f Upload) string {
	if f.ContentType != "" {
		return f.ContentType
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// NewFromConfig builds the backend selected by STORAGE_BACKEND
func NewFromConfig(cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageS3:
		return NewS3Store(S3Config{
			AccessKey:     cfg.AccessKey,
			SecretKey:     cfg.SecretKey,
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			Folder:        cfg.Folder,
			Endpoint:      cfg.Endpoint,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	case config.StorageLocal:
		return NewLocalStore(cfg.LocalDir, cfg.LocalBaseURL, cfg.Folder)
	}
	return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
}
