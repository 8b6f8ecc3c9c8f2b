// Package storagetest provides an in-memory storage.Store for tests.
package storagetest

import (
	"context"
	"io"
	"sync"

	"github.com/sahilchouksey/online-lms/services/storage"
)

// Object is one recorded upload
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Fake records uploads and returns URLs below BaseURL
type Fake struct {
	BaseURL string
	Folder  string
	Err     error

	mu      sync.Mutex
	objects []Object
}

func New() *Fake {
	return &Fake{BaseURL: "https://test-bucket.s3.amazonaws.com", Folder: "uploads"}
}

func (f *Fake) Upload(_ context.Context, u storage.Upload) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	data, err := io.ReadAll(u.Body)
	if err != nil {
		return "", err
	}
	key := storage.ObjectKey(f.Folder, u.Filename)

	f.mu.Lock()
	f.objects = append(f.objects, Object{Key: key, ContentType: storage.ContentTypeOf(u), Data: data})
	f.mu.Unlock()

	return f.BaseURL + "/" + key, nil
}

// Objects returns a copy of everything uploaded so far
func (f *Fake) Objects() []Object {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Object(nil), f.objects...)
}
