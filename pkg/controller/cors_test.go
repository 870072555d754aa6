package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resolver/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestWithCORS(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	handler := controller.WithCORS(next)

	t.Run("sets permissive headers and forwards", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/api/hello", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusTeapot, recorder.Code, "should forward to next handler")
		require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Headers"))
		require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("answers preflight directly", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodOptions, "/api/resolve", nil)

		handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusNoContent, recorder.Code, "preflight should not reach next handler")
		require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}
