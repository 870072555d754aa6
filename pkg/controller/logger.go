package controller

import (
	"net"
	"net/http"
	"strings"
	"time"

	"resolver/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CtxKey is a custom type for context keys used within this package.
type CtxKey string

// RequestIDKey is the context key under which the per-request ID is stored.
const RequestIDKey CtxKey = "requestID"

// statusRecorder wraps http.ResponseWriter to capture the status code written
// by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

// GetClientIP extracts the client IP address from the request, preferring
// X-Forwarded-For, then X-Real-IP, then the connection's remote address.
func GetClientIP(request *http.Request) string {
	if xff := request.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")

		return strings.TrimSpace(parts[0])
	}

	if xrip := request.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}

// WithLogger wraps the given handler with access logging. Each request gets a
// unique ID attached to its context logger, and a single access-log line is
// emitted when the handler returns.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()

		requestID := uuid.New().String()
		ctx := logger.WithFields(request.Context(),
			zap.String(string(RequestIDKey), requestID))

		recorder := &statusRecorder{ResponseWriter: writer, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, request.WithContext(ctx))

		logger.Info(ctx, "request handled",
			zap.Int("status_code", recorder.statusCode),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", GetClientIP(request)),
			zap.String("user_agent", request.UserAgent()),
			zap.String("url", request.URL.String()),
			zap.String("referer", request.Referer()),
			zap.String("method", request.Method))
	})
}
