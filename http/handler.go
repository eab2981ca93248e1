package http

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bucketlabs/s3origin"
)

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	CORS CORSConfig
	// DisableRequestLog turns off the per-request slog middleware,
	// for hosts that already log at their own edge.
	DisableRequestLog bool
}

// Handler serves an Origin as a mountable, read-only HTTP resource tree.
type Handler struct {
	config HandlerConfig
	origin *s3origin.Origin
}

// NewHandler creates a new Handler serving the given origin.
func NewHandler(config *HandlerConfig, origin *s3origin.Origin) *Handler {
	return &Handler{
		config: *config,
		origin: origin,
	}
}

// Router returns an http.Handler ready to mount under any path of a host
// router. GET and HEAD are served; every other method gets a 405.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if !h.config.DisableRequestLog {
		r.Use(RequestLogger)
	}

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodHead},
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, HEAD")
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	r.Get("/*", h.handleGet)
	r.Head("/*", h.handleHead)
	r.Get("/", h.handleGet)
	r.Head("/", h.handleHead)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	path := routePath(r)

	info, body, err := h.origin.Get(r.Context(), path)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = body.Close() }()

	writeObjectHeaders(w, info)
	w.WriteHeader(http.StatusOK)

	// Copy pulls from the store only as fast as the client drains the
	// response, so slow consumers throttle the upstream fetch naturally.
	if _, err := io.Copy(w, body); err != nil {
		// Headers are gone; all we can do is stop and log.
		slog.Debug("response stream aborted", "key", info.Key, "err", err)
	}
}

func (h *Handler) handleHead(w http.ResponseWriter, r *http.Request) {
	path := routePath(r)

	info, err := h.origin.Stat(r.Context(), path)
	if err != nil {
		HandleError(w, err)
		return
	}

	writeObjectHeaders(w, info)
	w.WriteHeader(http.StatusOK)
}

// routePath returns the request path relative to the handler's mount
// point, so nesting under a host router works the same as serving root.
func routePath(r *http.Request) string {
	if ctx := chi.RouteContext(r.Context()); ctx != nil {
		if wildcard := ctx.URLParam("*"); wildcard != "" {
			return wildcard
		}
	}
	return strings.TrimPrefix(r.URL.Path, "/")
}

func writeObjectHeaders(w http.ResponseWriter, info s3origin.ObjectInfo) {
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))

	if info.ETag != "" {
		w.Header().Set("ETag", `"`+strings.Trim(info.ETag, `"`)+`"`)
	}
	if !info.LastModified.IsZero() {
		w.Header().Set("Last-Modified", info.LastModified.UTC().Format(http.TimeFormat))
	}
}
