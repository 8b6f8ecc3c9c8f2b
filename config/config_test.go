package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGetDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("AWS_S3_BUCKET", "lms-media")

	cfg, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("port: got=%d want=8080", cfg.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver: got=%q", cfg.Database.Driver)
	}
	if cfg.Database.MaxRetries != 5 || cfg.Database.MaxRetryDelay != 10*time.Second {
		t.Fatalf("retry: got=%d/%s", cfg.Database.MaxRetries, cfg.Database.MaxRetryDelay)
	}
	if cfg.BodyLimit() != 200*1024*1024 {
		t.Fatalf("body limit: got=%d", cfg.BodyLimit())
	}
	if cfg.HTTP.AllowedOrigin != "http://localhost:5173" {
		t.Fatalf("origin: got=%q", cfg.HTTP.AllowedOrigin)
	}
	if cfg.Storage.Backend != StorageS3 || cfg.Storage.Folder != "uploads" {
		t.Fatalf("storage: got=%+v", cfg.Storage)
	}
	if cfg.LogMode != "development" {
		t.Fatalf("log mode should fall back to env, got=%q", cfg.LogMode)
	}
}

func TestGetOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("JWT_EXPIRY", "90m")
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOCAL_UPLOAD_BASE_URL", "http://cdn.local/files/")
	t.Setenv("CRON_ENABLED", "false")

	cfg, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("port: got=%d", cfg.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Fatalf("driver: got=%q", cfg.Database.Driver)
	}
	if cfg.JWT.Expiry != 90*time.Minute {
		t.Fatalf("expiry: got=%s", cfg.JWT.Expiry)
	}
	if cfg.Storage.LocalBaseURL != "http://cdn.local/files" {
		t.Fatalf("base url should be trimmed, got=%q", cfg.Storage.LocalBaseURL)
	}
	if cfg.CronEnabled {
		t.Fatalf("cron should be disabled")
	}
}

func TestGetValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"short secret", map[string]string{"JWT_SECRET": "short", "AWS_S3_BUCKET": "b"}, "JWT_SECRET"},
		{"bad driver", map[string]string{"JWT_SECRET": testSecret, "AWS_S3_BUCKET": "b", "DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"missing bucket", map[string]string{"JWT_SECRET": testSecret}, "AWS_S3_BUCKET"},
		{"bad backend", map[string]string{"JWT_SECRET": testSecret, "STORAGE_BACKEND": "ftp"}, "STORAGE_BACKEND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Get()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err.Error(), tc.want)
			}
		})
	}
}
