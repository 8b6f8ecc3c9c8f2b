package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Config holds configuration for the S3 client
type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Folder    string

	// Endpoint targets an S3-compatible service (MinIO, Spaces); path-style addressing is used
	Endpoint string
	// PublicBaseURL replaces the default bucket URL (CDN)
	PublicBaseURL string
}

// S3Store uploads files to an S3 bucket
type S3Store struct {
	client  *s3.S3
	bucket  string
	folder  string
	baseURL string
}

// NewS3Store creates a new S3 client
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
	}

	return &S3Store{
		client:  s3.New(sess),
		bucket:  cfg.Bucket,
		folder:  cfg.Folder,
		baseURL: baseURL,
	}, nil
}

// Upload puts the file under a fresh key with a single PutObject call
func (s *S3Store) Upload(ctx context.Context, f Upload) (string, error) {
	if f.Body == nil {
		return "", fmt.Errorf("upload %q has no body", f.Filename)
	}
	key := ObjectKey(s.folder, f.Filename)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f.Body,
		ContentType: aws.String(ContentTypeOf(f)),
	}
	if f.Size > 0 {
		input.ContentLength = aws.Int64(f.Size)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.URL(key), nil
}

// URL returns the public URL for a key
func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}
