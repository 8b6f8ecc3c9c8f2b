package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/sahilchouksey/online-lms/config"
)

var keyPattern = regexp.MustCompile(`^uploads/[0-9a-f-]{36}_notes\.pdf$`)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("uploads", "notes.pdf")
	if !keyPattern.MatchString(key) {
		t.Fatalf("unexpected key %q", key)
	}

	if other := ObjectKey("uploads", "notes.pdf"); other == key {
		t.Fatal("keys must be unique per call")
	}

	if k := ObjectKey("/uploads/", `C:\Users\me\notes.pdf`); !keyPattern.MatchString(k) {
		t.Fatalf("client directories must be stripped, got %q", k)
	}

	if k := ObjectKey("", "a.txt"); strings.Contains(k, "/") {
		t.Fatalf("empty folder must not add a separator, got %q", k)
	}
}

func TestContentTypeOf(t *testing.T) {
	if got := ContentTypeOf(Upload{Filename: "a.pdf", ContentType: "application/x-custom"}); got != "application/x-custom" {
		t.Fatalf("declared type must win, got %q", got)
	}
	if got := ContentTypeOf(Upload{Filename: "a.pdf"}); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if got := ContentTypeOf(Upload{Filename: "blob"}); got != "application/octet-stream" {
		t.Fatalf("expected octet-stream, got %q", got)
	}
}

type recordedPut struct {
	method      string
	path        string
	contentType string
	body        []byte
}

func fakeS3(t *testing.T) (*httptest.Server, *[]recordedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		puts []recordedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		puts = append(puts, recordedPut{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &puts
}

func TestS3StoreUpload(t *testing.T) {
	srv, puts := fakeS3(t)

	store, err := NewS3Store(S3Config{
		AccessKey: "key",
		SecretKey: "secret",
		Region:    "ap-south-1",
		Bucket:    "lms-bucket",
		Folder:    "uploads",
		Endpoint:  srv.URL,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	payload := []byte("%PDF-1.4 fake")
	url, err := store.Upload(context.Background(), Upload{
		Filename:    "notes.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(payload)),
		Body:        bytes.NewReader(payload),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	prefix := "https://lms-bucket.s3.amazonaws.com/"
	if !strings.HasPrefix(url, prefix) || !keyPattern.MatchString(strings.TrimPrefix(url, prefix)) {
		t.Fatalf("unexpected url %q", url)
	}

	if len(*puts) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(*puts))
	}
	got := (*puts)[0]
	if got.method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", got.method)
	}
	if got.path != "/lms-bucket/"+strings.TrimPrefix(url, prefix) {
		t.Fatalf("unexpected object path %q", got.path)
	}
	if got.contentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", got.contentType)
	}
	if !bytes.Equal(got.body, payload) {
		t.Fatalf("payload mismatch: %q", got.body)
	}
}

func TestS3StorePublicBaseURL(t *testing.T) {
	srv, _ := fakeS3(t)
	store, err := NewS3Store(S3Config{
		AccessKey:     "key",
		SecretKey:     "secret",
		Region:        "ap-south-1",
		Bucket:        "lms-bucket",
		Folder:        "uploads",
		Endpoint:      srv.URL,
		PublicBaseURL: "https://cdn.example.com",
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	url, err := store.Upload(context.Background(), Upload{Filename: "notes.pdf", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/uploads/") {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestS3StoreUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer srv.Close()

	store, err := NewS3Store(S3Config{
		AccessKey: "key", SecretKey: "secret", Region: "ap-south-1",
		Bucket: "lms-bucket", Endpoint: srv.URL,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Upload(context.Background(), Upload{Filename: "a.txt", Body: strings.NewReader("x")}); err == nil {
		t.Fatal("expected error from denied upload")
	}
}

func TestLocalStoreUpload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/files/", "uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Upload(context.Background(), Upload{Filename: "notes.pdf", Body: strings.NewReader("hello")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	prefix := "http://localhost:8080/files/"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("unexpected url %q", url)
	}
	key := strings.TrimPrefix(url, prefix)
	if !keyPattern.MatchString(key) {
		t.Fatalf("unexpected key %q", key)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestNewFromConfig(t *testing.T) {
	s, err := NewFromConfig(config.StorageConfig{
		Backend:      config.StorageLocal,
		LocalDir:     t.TempDir(),
		LocalBaseURL: "http://localhost/files",
	})
	if err != nil {
		t.Fatalf("local: %v", err)
	}
	if _, ok := s.(*LocalStore); !ok {
		t.Fatalf("expected *LocalStore, got %T", s)
	}

	s, err = NewFromConfig(config.StorageConfig{Backend: config.StorageS3, Bucket: "b", Region: "ap-south-1"})
	if err != nil {
		t.Fatalf("s3: %v", err)
	}
	if _, ok := s.(*S3Store); !ok {
		t.Fatalf("expected *S3Store, got %T", s)
	}

	if _, err := NewFromConfig(config.StorageConfig{Backend: "ftp"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
