package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/ardelias/judgeboard/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorage wraps the MinIO client for dataset files. One object per
// dataset version, keyed by projects/<project>/datasets/<dataset>/<version>.
type ObjectStorage struct {
	client *minio.Client
	bucket string
}

func NewObjectStorage(ctx context.Context) (*ObjectStorage, error) {
	cfg := config.LoadStorageConfig()

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
		log.Printf("Created bucket %s", cfg.Bucket)
	}

	log.Printf("MinIO client initialized to %s", cfg.Endpoint)
	return &ObjectStorage{client: client, bucket: cfg.Bucket}, nil
}

// DatasetObjectKey derives the storage path for one dataset version.
func DatasetObjectKey(projectID, datasetID, versionID string) string {
	return fmt.Sprintf("projects/%s/datasets/%s/%s", projectID, datasetID, versionID)
}

func (s *ObjectStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	return nil
}

func (s *ObjectStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %q: %w", key, err)
	}
	return obj, nil
}

func (s *ObjectStorage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// PresignedGet returns a temporary download URL for an uploaded file.
func (s *ObjectStorage) PresignedGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
