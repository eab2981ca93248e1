// Package s3origin serves the contents of an object-storage bucket as an
// HTTP resource tree. It is designed for serving static front-end assets
// (HTML, JS, CSS, images) straight from a bucket, so the same deployment
// artifact works in local development and behind a proxy or serverless
// front that enforces a hard response-size limit.
//
// # Key Components
//
//   - Origin: the read-only request-to-object translation core. It resolves
//     a request path to a key under a configured prefix, fetches metadata,
//     enforces an optional maximum payload size, and streams the body.
//   - Builder: single-shot, validated construction of an Origin.
//   - ObjectStore: the contract an Origin needs from a bucket. The store
//     and awss3/miniostore subpackages provide AWS SDK and MinIO backed
//     implementations.
//
// # Index Modes
//
// How the root of the mount point (and missing paths) resolve is an
// explicit configuration choice:
//
//   - ModeFlat: keys map one-to-one; the empty path is the prefix itself
//   - ModeStatic: the empty path serves index.html, and a missing path
//     falls back to path/index.html
//   - ModeSPA: any missing path falls back to /index.html so client-side
//     routing works
//
// # Example Usage
//
//	st, err := awss3.New(ctx, awss3.Config{Region: "us-east-1"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	origin, err := s3origin.NewBuilder().
//	    Bucket("my-static-assets").
//	    Prefix("deploy/").
//	    MaxSize(12 << 20).
//	    Store(st).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	handler := originhttp.NewHandler(&originhttp.HandlerConfig{}, origin)
//	router.Mount("/static", handler.Router())
//
// See the http package for the mountable chi handler and the cmd/s3origin
// command for a standalone server.
package s3origin
