// Package storage uploads plate snapshot images to S3-compatible
// object storage (Cloudflare R2 in deployment). The store is
// optional: when the environment is not configured the service runs
// without snapshot support.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("snapshot storage is not configured")

type SnapshotStore struct {
	client        *s3.Client
	bucket        string
	endpoint      string
	publicBaseURL string
}

type storeConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	PublicBaseURL string
}

func NewSnapshotStoreFromEnv() (*SnapshotStore, error) {
	cfg := storeConfig{
		Endpoint:      strings.TrimSpace(os.Getenv("R2_ENDPOINT")),
		AccessKey:     strings.TrimSpace(os.Getenv("R2_ACCESS_KEY_ID")),
		SecretKey:     strings.TrimSpace(os.Getenv("R2_SECRET_ACCESS_KEY")),
		Bucket:        strings.TrimSpace(os.Getenv("R2_BUCKET")),
		Region:        strings.TrimSpace(os.Getenv("R2_REGION")),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("R2_PUBLIC_BASE_URL")), "/"),
	}

	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == s3.ServiceID {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg := aws.Config{
		Region:                      cfg.Region,
		Credentials:                 credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		EndpointResolverWithOptions: resolver,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &SnapshotStore{
		client:        client,
		bucket:        cfg.Bucket,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// UploadSnapshot stores a snapshot image for a recognition event and
// returns its public URL. Keys are date-partitioned so buckets stay
// browsable.
func (s *SnapshotStore) UploadSnapshot(ctx context.Context, eventID uuid.UUID, body io.Reader, size int64, contentType, filename string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrNotConfigured
	}
	if size <= 0 {
		return "", fmt.Errorf("empty file")
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("snapshots/%s/%s%s", time.Now().UTC().Format("2006/01/02"), eventID, ext)

	input := &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("snapshot upload failed: %w", err)
	}
	return s.objectURL(key), nil
}

func (s *SnapshotStore) objectURL(key string) string {
	trimmedKey := strings.TrimLeft(key, "/")
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, trimmedKey)
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, trimmedKey)
}
