package s3origin

import (
	"context"
	"fmt"
	"io"
	"time"
)

// ObjectInfo is the metadata snapshot a store reports for an object. It is
// read before any body byte is requested, so size limits can be enforced
// without downloading the object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// ObjectStore is the read-side contract an Origin needs from a bucket.
//
// Implementations must be safe for concurrent use, map their SDK's
// missing-object signal to ErrNotFound, and wrap every other failure in
// ErrUpstream. Open returns a lazy stream backed by the store's transport;
// closing it releases the in-flight fetch. Retry policy, if any, belongs to
// the implementation - the Origin never retries.
type ObjectStore interface {
	// Stat fetches object metadata without requesting the body.
	Stat(ctx context.Context, bucket, key string) (ObjectInfo, error)

	// Open returns the object body as an incrementally-pulled stream.
	// The caller is responsible for closing it.
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// DefaultIndexFile is the document served for index fallbacks in the
// static and spa modes.
const DefaultIndexFile = "index.html"

// IndexMode controls how the mount-point root and missing paths resolve.
type IndexMode string

const (
	// ModeFlat maps request paths to keys one-to-one with no fallback.
	ModeFlat IndexMode = "flat"
	// ModeStatic serves index.html for the root and retries missing
	// paths as path/index.html, like a static website host.
	ModeStatic IndexMode = "static"
	// ModeSPA falls back to /index.html for any missing path so
	// client-side routing keeps working.
	ModeSPA IndexMode = "spa"
)

func (m IndexMode) IsValid() bool {
	switch m {
	case ModeFlat, ModeStatic, ModeSPA:
		return true
	default:
		return false
	}
}

func ParseIndexMode(s string) (IndexMode, error) {
	mode := IndexMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid index mode: %s (valid modes: flat, static, spa)", s)
	}
	return mode, nil
}
