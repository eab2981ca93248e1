package s3origin

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IsValidRequestPath validates a prefix-relative request path before it is
// joined into an object key. It checks that the path:
//   - is not ".", and does not start or end with "/"
//   - does not contain ".." anywhere; traversal is rejected outright,
//     never normalized away
//   - does not contain "." segments or "//" (empty segments)
//   - does not contain backslashes, null bytes, control characters
//     (< 0x20), or DEL (0x7f)
//   - is valid UTF-8
//
// Object keys are flat strings, so a traversal segment is never meaningful;
// concatenating one would at best waste bytes and at worst escape the
// configured prefix on stores that fold key namespaces.
func IsValidRequestPath(p string) bool {
	if p == "" || p == "." {
		return false
	}

	if p[0] == '/' || strings.HasSuffix(p, "/") {
		return false
	}

	if strings.Contains(p, "..") {
		return false
	}

	if strings.Contains(p, "//") {
		return false
	}

	if strings.HasPrefix(p, "./") || strings.Contains(p, "/./") || strings.HasSuffix(p, "/.") {
		return false
	}

	if strings.ContainsRune(p, '\\') {
		return false
	}

	if !utf8.ValidString(p) {
		return false
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	return true
}

// JoinKey joins a configured prefix and a prefix-relative path with exactly
// one separator, regardless of a trailing separator on the prefix or a
// leading one on the path. Joining is idempotent: joining the result with
// an empty path returns it unchanged.
func JoinKey(prefix, rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if prefix == "" {
		return rel
	}
	if rel == "" {
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + rel
}

// ResolveKey maps an inbound request path to a fully-qualified object key
// under prefix. The leading path separator is stripped so the path is
// treated as prefix-relative. Paths that fail validation return a wrapped
// ErrInvalidPath; they are never normalized and trusted.
//
// An empty request path resolves to the prefix itself treated as a key.
// Index-document conventions are the Origin's concern, not the resolver's.
func ResolveKey(prefix, requestPath string) (string, error) {
	rel := strings.TrimPrefix(requestPath, "/")

	if rel != "" && !IsValidRequestPath(rel) {
		return "", fmt.Errorf("resolve %q: %w", requestPath, ErrInvalidPath)
	}

	return JoinKey(prefix, rel), nil
}

// PruneSegments drops the first n segments from a request path. It is used
// when the handler is mounted behind a proxy stage that leaves routing
// components (stage name, app name) on the path. Pruning past the end of
// the path yields the empty path.
func PruneSegments(p string, n int) string {
	if n <= 0 {
		return p
	}

	p = strings.TrimPrefix(p, "/")
	segments := strings.Split(p, "/")
	if n >= len(segments) {
		return ""
	}
	return strings.Join(segments[n:], "/")
}
