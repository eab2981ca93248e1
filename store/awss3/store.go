// Package awss3 implements s3origin.ObjectStore on the AWS SDK for Go v2.
// It works against AWS itself and, with a custom endpoint plus path-style
// addressing, against most S3-compatible services.
package awss3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/bucketlabs/s3origin"
)

// Config holds connection settings for the AWS S3 backend.
type Config struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// Store is an s3origin.ObjectStore backed by an S3 client. The client is
// internally synchronized; a single Store serves all concurrent requests.
type Store struct {
	client *s3.Client
}

// New loads AWS configuration and returns a ready Store. Static credentials
// take precedence when set; otherwise the SDK's default chain (env,
// profile, instance role) applies. Retry policy is the SDK's default.
func New(ctx context.Context, cfg Config) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{client: client}, nil
}

// NewFromClient wraps an already-constructed S3 client, for callers that
// manage SDK configuration themselves.
func NewFromClient(client *s3.Client) *Store {
	return &Store{client: client}
}

// Stat issues a HeadObject call, so no body byte is requested.
func (s *Store) Stat(ctx context.Context, bucket, key string) (s3origin.ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return s3origin.ObjectInfo{}, fmt.Errorf("head object %q: %w", key, s3origin.ErrNotFound)
		}
		return s3origin.ObjectInfo{}, fmt.Errorf("head object %q: %w: %w", key, s3origin.ErrUpstream, err)
	}

	return s3origin.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         stripETag(aws.ToString(out.ETag)),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// Open issues a GetObject call and hands back the response body verbatim.
// The body is the SDK's transport stream; bytes are pulled as the caller
// reads, and Close releases the connection.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("get object %q: %w", key, s3origin.ErrNotFound)
		}
		return nil, fmt.Errorf("get object %q: %w: %w", key, s3origin.ErrUpstream, err)
	}

	return out.Body, nil
}

// isNotFound reports whether err is the service's missing-object signal
// rather than a transport or auth failure. HeadObject reports 404s without
// a modeled error body, so the HTTP status is checked as a fallback.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}

func stripETag(etag string) string {
	return strings.Trim(etag, `"`)
}
