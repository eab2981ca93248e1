package s3origin

import "errors"

var (
	// ErrNotFound is returned when the resolved key has no object behind it.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidPath is returned when a request path fails validation,
	// for example a parent-directory traversal segment. The HTTP layer
	// reports it identically to ErrNotFound.
	ErrInvalidPath = errors.New("invalid request path")
	// ErrTooLarge is returned when an object's reported size exceeds the
	// configured maximum. It is raised from metadata alone, before any
	// body byte is fetched.
	ErrTooLarge = errors.New("object exceeds maximum size")
	// ErrUpstream is returned when the object store fails for reasons
	// other than a missing object (transport, auth, throttling).
	ErrUpstream = errors.New("upstream store failure")
	// ErrConfig is returned by Builder.Build for invalid configuration.
	ErrConfig = errors.New("invalid origin configuration")
)
