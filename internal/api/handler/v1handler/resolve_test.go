package v1handler_test

import (
	"net/http"
	"testing"

	"resolver/internal/api/handler/v1handler"
	"resolver/pkg/domain"
	mockmediaresolver "resolver/pkg/mediaresolver/mock"
	"resolver/pkg/serrors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newResolveHandler(t *testing.T) (*v1handler.Handler, *mockmediaresolver.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	resolver := mockmediaresolver.NewMockClient(ctrl)

	return v1handler.New(v1handler.Deps{Media: resolver}), resolver
}

func TestResolveSuccess(t *testing.T) {
	h, resolver := newResolveHandler(t)

	resolver.EXPECT().
		Resolve(gomock.Any(), "https://example.com/watch?v=1").
		Return(&domain.Media{
			Title:       "Some Clip",
			DownloadURL: "https://cdn/v.mp4",
			Author:      "alice",
			Source:      "Youtube",
		}, nil)

	status, body := doJSON(t, h.Resolve, http.MethodPost, "/api/resolve",
		`{"url":"https://example.com/watch?v=1"}`)

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Some Clip", body["title"])
	require.Equal(t, "https://cdn/v.mp4", body["download_url"])
	require.Equal(t, "alice", body["author"])
	require.Equal(t, "Youtube", body["source"])
}

func TestResolveErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "extractor rejection",
			err:        serrors.With(serrors.ErrBadRequest, "ERROR: Unsupported URL"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no usable URL",
			err:        serrors.With(serrors.ErrNotFound, "No direct media URL found"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "binary missing",
			err:        serrors.With(serrors.ErrInternal, "yt-dlp is not available"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, resolver := newResolveHandler(t)
			resolver.EXPECT().
				Resolve(gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			status, body := doJSON(t, h.Resolve, http.MethodPost, "/api/resolve",
				`{"url":"https://example.com/watch?v=1"}`)

			require.Equal(t, tt.wantStatus, status)
			require.NotEmpty(t, body["detail"])
		})
	}
}

func TestResolveInvalidBody(t *testing.T) {
	h, _ := newResolveHandler(t)

	status, body := doJSON(t, h.Resolve, http.MethodPost, "/api/resolve", `{"url":""}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "url is required", body["detail"])
}
