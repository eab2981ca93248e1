package s3origin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Origin translates HTTP request paths into object fetches against a single
// bucket/prefix namespace. It is immutable once built and safe for
// concurrent use; all mutable state lives in the store's own client.
type Origin struct {
	store   ObjectStore
	bucket  string
	prefix  string
	maxSize int64
	prune   int
	mode    IndexMode
}

// Builder accumulates Origin configuration for single-shot construction.
// Zero values are valid for every optional field; Build validates the rest.
type Builder struct {
	store   ObjectStore
	bucket  string
	prefix  string
	maxSize int64
	prune   int
	mode    IndexMode
}

// NewBuilder returns a Builder with mode flat, no prefix, and no size limit.
func NewBuilder() *Builder {
	return &Builder{mode: ModeFlat}
}

// Bucket sets the bucket name. Required.
func (b *Builder) Bucket(bucket string) *Builder {
	b.bucket = bucket
	return b
}

// Prefix sets the key namespace all served objects must reside under.
// Optional, defaults to the bucket root.
func (b *Builder) Prefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// MaxSize sets the maximum object size in bytes that will be served.
// Objects whose reported size exceeds it produce ErrTooLarge before any
// body byte is fetched. Zero means unbounded.
func (b *Builder) MaxSize(n int64) *Builder {
	b.maxSize = n
	return b
}

// PruneSegments sets the number of leading request-path segments to drop
// before key resolution, for handlers mounted behind proxy stages that
// leave routing components on the path.
func (b *Builder) PruneSegments(n int) *Builder {
	b.prune = n
	return b
}

// Mode sets the index-document resolution mode. Defaults to ModeFlat.
func (b *Builder) Mode(mode IndexMode) *Builder {
	b.mode = mode
	return b
}

// Store sets the object store client. Required; the client must already be
// configured (credentials, region, retry policy are its own concern).
func (b *Builder) Store(store ObjectStore) *Builder {
	b.store = store
	return b
}

// Build validates the accumulated configuration and returns a ready Origin.
// Validation failures wrap ErrConfig and are fatal to startup; an Origin is
// never created from invalid configuration.
func (b *Builder) Build() (*Origin, error) {
	if b.bucket == "" {
		return nil, fmt.Errorf("build origin: %w: bucket is required", ErrConfig)
	}
	if b.store == nil {
		return nil, fmt.Errorf("build origin: %w: store is required", ErrConfig)
	}
	if b.maxSize < 0 {
		return nil, fmt.Errorf("build origin: %w: max size cannot be negative", ErrConfig)
	}
	if b.prune < 0 {
		return nil, fmt.Errorf("build origin: %w: prune segments cannot be negative", ErrConfig)
	}
	if !b.mode.IsValid() {
		return nil, fmt.Errorf("build origin: %w: invalid mode %q", ErrConfig, b.mode)
	}

	return &Origin{
		store:   b.store,
		bucket:  b.bucket,
		prefix:  b.prefix,
		maxSize: b.maxSize,
		prune:   b.prune,
		mode:    b.mode,
	}, nil
}

// Bucket returns the configured bucket name.
func (o *Origin) Bucket() string { return o.bucket }

// Prefix returns the configured key prefix.
func (o *Origin) Prefix() string { return o.prefix }

// Stat resolves requestPath and fetches the object's metadata, enforcing
// the configured size limit. It never requests body bytes, which makes it
// the HEAD fast path and the gate GET passes through before streaming.
func (o *Origin) Stat(ctx context.Context, requestPath string) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}

	info, err := o.locate(ctx, requestPath)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat object: %w", err)
	}

	return info, nil
}

// Get resolves requestPath, checks metadata against the size limit, and
// opens the object body. The returned stream is pulled lazily from the
// store's transport; the caller must close it. No byte of an oversized
// object is ever requested.
func (o *Origin) Get(ctx context.Context, requestPath string) (ObjectInfo, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("get object: %w", err)
	}

	info, err := o.locate(ctx, requestPath)
	if err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("get object: %w", err)
	}

	body, err := o.store.Open(ctx, o.bucket, info.Key)
	if err != nil {
		return ObjectInfo{}, nil, fmt.Errorf("get object: %w", err)
	}

	return info, body, nil
}

// locate maps a request path to the object that should serve it, applying
// prune, prefix joining, index-mode fallbacks, and the size limit. The
// size check runs on whichever object ultimately serves the request,
// fallback documents included.
func (o *Origin) locate(ctx context.Context, requestPath string) (ObjectInfo, error) {
	path := strings.Trim(requestPath, "/")
	if o.prune > 0 {
		path = PruneSegments(path, o.prune)
	}

	if path == "" {
		switch o.mode {
		case ModeStatic, ModeSPA:
			path = DefaultIndexFile
		case ModeFlat:
			// The prefix itself is the key. With no prefix there is
			// nothing addressable at the root.
			if o.prefix == "" {
				return ObjectInfo{}, ErrNotFound
			}
		}
	}

	key, err := ResolveKey(o.prefix, path)
	if err != nil {
		return ObjectInfo{}, err
	}

	info, err := o.store.Stat(ctx, o.bucket, key)
	if errors.Is(err, ErrNotFound) {
		switch o.mode {
		case ModeStatic:
			info, err = o.store.Stat(ctx, o.bucket, JoinKey(key, DefaultIndexFile))
		case ModeSPA:
			info, err = o.store.Stat(ctx, o.bucket, JoinKey(o.prefix, DefaultIndexFile))
		}
	}
	if err != nil {
		return ObjectInfo{}, err
	}

	if o.maxSize > 0 && info.Size > o.maxSize {
		return ObjectInfo{}, fmt.Errorf("%q (%d bytes): %w", info.Key, info.Size, ErrTooLarge)
	}

	return info, nil
}
