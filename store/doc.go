// Package store provides a unified way to connect to object-store backends.
//
// # Supported Backends
//
//   - aws: AWS SDK for Go v2 S3 client; default credential chain, custom
//     endpoints, and path-style addressing for S3-compatible services
//   - minio: MinIO Go client; lightweight option for MinIO and other
//     S3-compatible deployments with static credentials
//
// # Usage
//
//	cfg := store.Config{
//	    Type:   "aws",
//	    Region: "us-east-1",
//	}
//
//	st, err := store.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both backends satisfy s3origin.ObjectStore: Stat fetches metadata without
// touching the body, Open returns a lazily-pulled body stream, missing
// objects surface as s3origin.ErrNotFound, and every other failure wraps
// s3origin.ErrUpstream.
//
// # Subpackages
//
//   - store/awss3: implementation using github.com/aws/aws-sdk-go-v2
//   - store/miniostore: implementation using github.com/minio/minio-go/v7
package store
