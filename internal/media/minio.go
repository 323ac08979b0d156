// Package media stores uploaded video files and images in object
// storage and hands back their public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vidtube/vidtube-api/internal/config"
)

// Store uploads and removes media objects.
type Store interface {
	// Upload stores the object under a generated name and returns its
	// public URL.
	Upload(ctx context.Context, filename string, src io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectURL string) error
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewStore connects to the object storage endpoint and ensures the
// bucket exists.
func NewStore(ctx context.Context, cfg config.MediaConfig) (Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}

		policy := fmt.Sprintf(`{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Effect": "Allow",
					"Principal": "*",
					"Action": "s3:GetObject",
					"Resource": "arn:aws:s3:::%s/*"
				}
			]
		}`, cfg.Bucket)
		if err := client.SetBucketPolicy(ctx, cfg.Bucket, policy); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}

	return &minioStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}, nil
}

func (s *minioStore) Upload(ctx context.Context, filename string, src io.Reader, size int64, contentType string) (string, error) {
	// A random prefix keeps distinct uploads of the same filename from
	// colliding.
	objectName := uuid.New().String() + path.Ext(filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, src, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}

	return s.publicURL + "/" + s.bucket + "/" + objectName, nil
}

func (s *minioStore) Remove(ctx context.Context, objectURL string) error {
	objectName := path.Base(objectURL)
	if objectName == "" || objectName == "." || objectName == "/" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove object: %w", err)
	}

	return nil
}
