// Package http provides the mountable HTTP surface for an s3origin Origin.
//
// The handler is read-only: it serves GET and HEAD for every path under its
// mount point and answers anything else with a 405. It is designed to be
// nested inside a host router, which owns listening, TLS, and per-request
// concurrency:
//
//	handler := originhttp.NewHandler(&originhttp.HandlerConfig{}, origin)
//	router.Mount("/static", handler.Router())
//
// # Status Mapping
//
//   - 200: object found and within the size limit; GET streams the body,
//     HEAD carries the identical headers with no body
//   - 404: object absent, or the request path failed validation (the two
//     are deliberately indistinguishable to clients)
//   - 405: any method other than GET or HEAD
//   - 413: the object's reported size exceeds the configured maximum;
//     raised before any body byte is fetched from the store
//   - 502: the store failed for reasons other than a missing object
//   - 500: anything else
//
// Error bodies are JSON ({"error": ..., "message": ...}).
//
// # Streaming
//
// Bodies are copied straight from the store's transport to the response
// writer, so memory use is bounded regardless of object size and client
// backpressure throttles the upstream fetch. When a client disconnects the
// request context is cancelled and the in-flight fetch is released.
package http
