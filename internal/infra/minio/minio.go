package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	"viewtube/internal/config"
	"viewtube/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Buckets used by the media storage collaborator.
const (
	VideoBucket     = "videos"
	ThumbnailBucket = "thumbnails"
	ImageBucket     = "images"
)

var client *minio.Client

// Init connects the MinIO client and ensures every configured bucket
// exists with public read access, so stored media can be served by URL.
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucket := range cfg.Buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
			logger.Info("MinIO bucket created", zap.String("bucket", bucket))
		}

		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
		if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
			return fmt.Errorf("failed to set public policy for %s: %w", bucket, err)
		}
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.Int("buckets", len(cfg.Buckets)),
	)

	return nil
}

// Get returns the MinIO client.
func Get() *minio.Client {
	return client
}

// UploadFile stores an object and returns its public URL and object key.
// The key is kept alongside the URL so the object can be deleted later.
func UploadFile(ctx context.Context, bucket, objectName string, reader io.Reader, fileSize int64, contentType string) (url, key string, err error) {
	_, err = client.PutObject(ctx, bucket, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	cfg := config.GetMinIO()
	return PublicURL(cfg.Endpoint, cfg.UseSSL, bucket, objectName), objectName, nil
}

// DeleteFile removes an object. A missing object is not an error, so
// retrying a partially failed cleanup is safe.
func DeleteFile(ctx context.Context, bucket, objectName string) error {
	err := client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", bucket, objectName, err)
	}
	return nil
}

// PublicURL builds the public address of an object in a public bucket.
func PublicURL(endpoint string, useSSL bool, bucket, objectName string) string {
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, objectName)
}
