// Package v1handler implements the HTTP handlers for the resolver API:
// liveness greetings, the two resolution endpoints, and diagnostics.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"resolver/pkg/logger"
	"resolver/pkg/mediaresolver"
	"resolver/pkg/metrics"
	"resolver/pkg/serrors"
	"resolver/pkg/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// upstreamLatency observes how long each resolver adapter takes per request.
var upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint: gochecknoglobals
	Name:    "resolver_upstream_duration_seconds",
	Help:    "Latency of upstream resolution calls.",
	Buckets: metrics.DefaultBuckets,
}, []string{"adapter"})

// Deps carries the dependencies of the v1 handlers.
type Deps struct {
	// TikTok resolves TikTok URLs.
	TikTok mediaresolver.Client
	// Media resolves everything else through yt-dlp.
	Media mediaresolver.Client
	// Store is the diagnostics database; Noop when none is configured.
	Store storage.MetadataStore
	// DatabaseURLSet and DatabaseNameSet report whether the corresponding
	// settings were provided, for the diagnostics report.
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

// Handler serves the v1 API routes.
type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// resolveRequest is the body of both resolution endpoints.
type resolveRequest struct {
	URL string `json:"url"`
}

// errorResponse is the uniform failure shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

// statusFromError maps a resolution failure onto an HTTP status. Upstream
// status errors are echoed verbatim; semantic kinds map onto their usual
// codes; anything else is a 500.
func statusFromError(err error) int {
	var upstreamErr *mediaresolver.UpstreamStatusError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Code
	}

	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrBadGateway):
		return http.StatusBadGateway
	case errors.Is(err, serrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, serrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(writer http.ResponseWriter, request *http.Request, err error) {
	status := statusFromError(err)

	detail := err.Error()

	var upstreamErr *mediaresolver.UpstreamStatusError
	if errors.As(err, &upstreamErr) {
		detail = upstreamErr.Msg
	}

	logger.Warn(request.Context(), "request failed",
		zap.Int("status_code", status),
		zap.Error(err))

	writeJSON(writer, status, errorResponse{Detail: detail})
}

// decodeRequestURL reads and validates the resolution request body. The URL
// must be absolute with an http or https scheme and a host.
func decodeRequestURL(request *http.Request) (string, error) {
	var body resolveRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	if body.URL == "" {
		return "", serrors.With(serrors.ErrBadRequest, "url is required")
	}

	parsed, err := url.Parse(body.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", serrors.With(serrors.ErrBadRequest, "url must be an absolute http(s) URL")
	}

	return body.URL, nil
}
