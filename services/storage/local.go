package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads below a directory served by the static file route
type LocalStore struct {
	dir     string
	baseURL string
	folder  string
}

func NewLocalStore(dir, baseURL, folder string) (*LocalStore, error) {
	if dir == "" || baseURL == "" {
		return nil, fmt.Errorf("local storage needs a directory and a base URL")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/"), folder: folder}, nil
}

// Dir is the root directory to serve statically
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Upload(ctx context.Context, f Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Body == nil {
		return "", fmt.Errorf("upload %q has no body", f.Filename)
	}

	key := ObjectKey(s.folder, f.Filename)
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, f.Body); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
