package store

import (
	"context"
	"fmt"

	"github.com/bucketlabs/s3origin"
	"github.com/bucketlabs/s3origin/store/awss3"
	"github.com/bucketlabs/s3origin/store/miniostore"
)

// Config holds the configuration for connecting to an object-store backend.
type Config struct {
	// Type specifies the backend: "aws" or "minio"
	Type string `mapstructure:"type" validate:"required,oneof=aws minio"`
	// Region is the bucket's region (AWS) or signing region (S3-compatible)
	Region string `mapstructure:"region"`
	// Endpoint overrides the service endpoint, for S3-compatible stores.
	// Required for the minio backend, optional for aws.
	Endpoint string `mapstructure:"endpoint"`
	// AccessKey and SecretKey are static credentials. When empty the aws
	// backend falls back to the SDK's default credential chain.
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// UseSSL controls TLS for the minio backend.
	UseSSL bool `mapstructure:"use_ssl"`
	// UsePathStyle forces path-style addressing on the aws backend,
	// needed by most S3-compatible services.
	UsePathStyle bool `mapstructure:"use_path_style"`
}

// Connect builds the configured object-store client. The returned store is
// safe for concurrent use and owns all transport, auth, and retry policy.
func Connect(ctx context.Context, cfg Config) (s3origin.ObjectStore, error) {
	switch cfg.Type {
	case "aws":
		st, err := awss3.New(ctx, awss3.Config{
			Region:       cfg.Region,
			Endpoint:     cfg.Endpoint,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			UsePathStyle: cfg.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("connect aws store: %w", err)
		}
		return st, nil
	case "minio":
		st, err := miniostore.New(miniostore.Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("connect minio store: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}
