package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// Storage backends
const (
	StorageS3    = "s3"
	StorageLocal = "local"
)

// Config is the fully resolved application configuration
type Config struct {
	Env         string
	Port        int
	LogMode     string
	CronEnabled bool

	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Storage  StorageConfig
	Seed     SeedConfig
}

type DatabaseConfig struct {
	Driver   string // postgres, mysql or sqlite
	DSN      string // overrides the discrete fields when set
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxRetries    uint64
	MaxRetryDelay time.Duration
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

type RedisConfig struct {
	URL string
}

type HTTPConfig struct {
	AllowedOrigin     string
	MaxUploadMB       int
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type StorageConfig struct {
	Backend string

	// S3
	AccessKey     string
	SecretKey     string
	Region        string
	Bucket        string
	Folder        string
	Endpoint      string
	PublicBaseURL string

	// local disk
	LocalDir     string
	LocalBaseURL string
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// IsProduction reports whether the app runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// BodyLimit returns the maximum request body size in bytes
func (c *Config) BodyLimit() int {
	return c.HTTP.MaxUploadMB * 1024 * 1024
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("GO_ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_MODE", "")
	v.SetDefault("CRON_ENABLED", true)

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER_NAME", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "online_lms")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("DB_MAX_RETRY_DELAY", 10*time.Second)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "online-lms-api")
	v.SetDefault("JWT_AUDIENCE", "online-lms-frontend")
	v.SetDefault("JWT_EXPIRY", 24*time.Hour)

	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	v.SetDefault("ALLOWED_ORIGIN", "http://localhost:5173")
	v.SetDefault("MAX_UPLOAD_MB", 200)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)

	v.SetDefault("STORAGE_BACKEND", StorageS3)
	v.SetDefault("AWS_ACCESS_KEY", "")
	v.SetDefault("AWS_SECRET_KEY", "")
	v.SetDefault("AWS_REGION", "ap-south-1")
	v.SetDefault("AWS_S3_BUCKET", "")
	v.SetDefault("AWS_S3_FOLDER", "uploads")
	v.SetDefault("AWS_S3_ENDPOINT", "")
	v.SetDefault("AWS_S3_PUBLIC_BASE_URL", "")
	v.SetDefault("LOCAL_UPLOAD_DIR", "./wwwroot")
	v.SetDefault("LOCAL_UPLOAD_BASE_URL", "http://localhost:8080/files")

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	v.AutomaticEnv()
	return v
}

// Get reads the configuration from the environment
func Get() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Env:         v.GetString("GO_ENV"),
		Port:        v.GetInt("PORT"),
		LogMode:     v.GetString("LOG_MODE"),
		CronEnabled: v.GetBool("CRON_ENABLED"),
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:           v.GetString("DB_DSN"),
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetString("DB_PORT"),
			User:          v.GetString("DB_USER_NAME"),
			Password:      v.GetString("DB_PASSWORD"),
			Name:          v.GetString("DB_NAME"),
			SSLMode:       v.GetString("DB_SSL_MODE"),
			MaxRetries:    uint64(v.GetInt("DB_MAX_RETRIES")),
			MaxRetryDelay: v.GetDuration("DB_MAX_RETRY_DELAY"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			Issuer:   v.GetString("JWT_ISSUER"),
			Audience: v.GetString("JWT_AUDIENCE"),
			Expiry:   v.GetDuration("JWT_EXPIRY"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		HTTP: HTTPConfig{
			AllowedOrigin:     v.GetString("ALLOWED_ORIGIN"),
			MaxUploadMB:       v.GetInt("MAX_UPLOAD_MB"),
			RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Storage: StorageConfig{
			Backend:       strings.ToLower(v.GetString("STORAGE_BACKEND")),
			AccessKey:     v.GetString("AWS_ACCESS_KEY"),
			SecretKey:     v.GetString("AWS_SECRET_KEY"),
			Region:        v.GetString("AWS_REGION"),
			Bucket:        v.GetString("AWS_S3_BUCKET"),
			Folder:        strings.Trim(v.GetString("AWS_S3_FOLDER"), "/"),
			Endpoint:      v.GetString("AWS_S3_ENDPOINT"),
			PublicBaseURL: strings.TrimSuffix(v.GetString("AWS_S3_PUBLIC_BASE_URL"), "/"),
			LocalDir:      v.GetString("LOCAL_UPLOAD_DIR"),
			LocalBaseURL:  strings.TrimSuffix(v.GetString("LOCAL_UPLOAD_BASE_URL"), "/"),
		},
		Seed: SeedConfig{
			AdminEmail:    v.GetString("ADMIN_EMAIL"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if cfg.LogMode == "" {
		cfg.LogMode = cfg.Env
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must be set and at least 32 characters long")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWT.Expiry)
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (postgres, mysql, sqlite)", c.Database.Driver)
	}

	switch c.Storage.Backend {
	case StorageS3:
		if c.Storage.Bucket == "" {
			return errors.New("AWS_S3_BUCKET must be set when STORAGE_BACKEND=s3")
		}
	case StorageLocal:
		if c.Storage.LocalDir == "" || c.Storage.LocalBaseURL == "" {
			return errors.New("LOCAL_UPLOAD_DIR and LOCAL_UPLOAD_BASE_URL must be set when STORAGE_BACKEND=local")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q (s3, local)", c.Storage.Backend)
	}

	if c.HTTP.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}
