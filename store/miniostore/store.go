// Package miniostore implements s3origin.ObjectStore on the MinIO Go
// client, for MinIO and other S3-compatible services reachable at an
// explicit endpoint.
package miniostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bucketlabs/s3origin"
)

// Config holds connection settings for the MinIO backend.
type Config struct {
	// Endpoint is the host:port of the service, without a scheme.
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Store is an s3origin.ObjectStore backed by a MinIO client.
type Store struct {
	client *minio.Client
}

// New builds a Store from static credentials. The endpoint is required.
func New(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio store: endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio store: %w", err)
	}

	return &Store{client: client}, nil
}

// NewFromClient wraps an already-constructed MinIO client.
func NewFromClient(client *minio.Client) *Store {
	return &Store{client: client}
}

// Stat issues a StatObject (HEAD) call; no body byte is requested.
func (s *Store) Stat(ctx context.Context, bucket, key string) (s3origin.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return s3origin.ObjectInfo{}, fmt.Errorf("stat object %q: %w", key, s3origin.ErrNotFound)
		}
		return s3origin.ObjectInfo{}, fmt.Errorf("stat object %q: %w: %w", key, s3origin.ErrUpstream, err)
	}

	return s3origin.ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// Open returns the object body. The MinIO client defers the actual request
// until the first read, so the stream stays lazy end to end; read errors
// surface through the returned reader.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get object %q: %w", key, s3origin.ErrNotFound)
		}
		return nil, fmt.Errorf("get object %q: %w: %w", key, s3origin.ErrUpstream, err)
	}

	return obj, nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return resp.StatusCode == http.StatusNotFound
}
