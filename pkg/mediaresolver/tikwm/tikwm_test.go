package tikwm_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resolver/pkg/mediaresolver"
	"resolver/pkg/mediaresolver/tikwm"
	"resolver/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// rtFunc adapts a function to http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func clientWith(rt rtFunc) *tikwm.Client {
	return tikwm.New(&http.Client{Transport: rt})
}

func TestResolveSendsFormAndHeaders(t *testing.T) {
	var captured *http.Request
	var capturedBody string

	client := clientWith(func(r *http.Request) (*http.Response, error) {
		captured = r
		body, _ := io.ReadAll(r.Body)
		capturedBody = string(body)

		return jsonResponse(http.StatusOK, `{
			"code": 0,
			"data": {"title": "t", "play": "https://cdn/play.mp4"}
		}`), nil
	})

	_, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, captured.Method)
	require.Equal(t, tikwm.BaseURL, captured.URL.String())
	require.Equal(t, "application/x-www-form-urlencoded", captured.Header.Get("Content-Type"))
	require.Contains(t, captured.Header.Get("User-Agent"), "Chrome/120.0")
	require.Equal(t, "https://www.tikwm.com/", captured.Header.Get("Referer"))
	require.Equal(t, "https://www.tikwm.com", captured.Header.Get("Origin"))
	require.Equal(t, "url=https%3A%2F%2Fwww.tiktok.com%2F%40u%2Fvideo%2F1", capturedBody)
}

func TestResolveNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantURL  string
		wantTile string
		wantCov  string
	}{
		{
			name: "prefers hdplay over play",
			body: `{"code":0,"data":{"title":"Dance","play":"https://cdn/sd.mp4","hdplay":"https://cdn/hd.mp4","cover":"https://cdn/c.jpg"}}`,

			wantURL:  "https://cdn/hd.mp4",
			wantTile: "Dance",
			wantCov:  "https://cdn/c.jpg",
		},
		{
			name:     "falls back to play",
			body:     `{"code":0,"data":{"title":"Dance","play":"https://cdn/sd.mp4"}}`,
			wantURL:  "https://cdn/sd.mp4",
			wantTile: "Dance",
		},
		{
			name:     "empty title gets placeholder",
			body:     `{"code":0,"data":{"play":"https://cdn/sd.mp4"}}`,
			wantURL:  "https://cdn/sd.mp4",
			wantTile: "TikTok Video",
		},
		{
			name:     "cover falls back to origin_cover",
			body:     `{"code":0,"data":{"title":"x","play":"https://cdn/sd.mp4","origin_cover":"https://cdn/oc.jpg"}}`,
			wantURL:  "https://cdn/sd.mp4",
			wantTile: "x",
			wantCov:  "https://cdn/oc.jpg",
		},
		{
			name:     "cover falls back to music cover",
			body:     `{"code":0,"data":{"title":"x","play":"https://cdn/sd.mp4","music_info":{"cover":"https://cdn/mc.jpg"}}}`,
			wantURL:  "https://cdn/sd.mp4",
			wantTile: "x",
			wantCov:  "https://cdn/mc.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := clientWith(func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			})

			media, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
			require.NoError(t, err)
			require.Equal(t, tt.wantURL, media.DownloadURL)
			require.Equal(t, tt.wantTile, media.Title)
			require.Equal(t, tt.wantCov, media.Cover)
		})
	}
}

func TestResolvePassesThroughAuthorAndDuration(t *testing.T) {
	client := clientWith(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{
			"code": 0,
			"data": {
				"title": "t",
				"play": "https://cdn/sd.mp4",
				"duration": 42,
				"author": {"id": "7", "unique_id": "someone", "nickname": "Some One"}
			}
		}`), nil
	})

	media, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)
	require.InDelta(t, 42.0, media.Duration, 0.001)

	author, ok := media.Author.(map[string]any)
	require.True(t, ok, "author should pass through as an object")
	require.Equal(t, "someone", author["unique_id"])
}

func TestResolveNetworkError(t *testing.T) {
	client := clientWith(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.ErrorIs(t, err, serrors.ErrBadGateway)
	require.Contains(t, err.Error(), "Resolver network error")
}

func TestResolveUpstreamStatusEchoed(t *testing.T) {
	client := clientWith(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `slow down`), nil
	})

	_, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")

	var upstreamErr *mediaresolver.UpstreamStatusError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusTooManyRequests, upstreamErr.Code)
	require.Equal(t, "Resolver error", upstreamErr.Msg)
}

func TestResolveSemanticRejection(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{
			name:       "nonzero code with message",
			body:       `{"code":-1,"msg":"Url parsing is failed! Please check url."}`,
			wantDetail: "Url parsing is failed! Please check url.",
		},
		{
			name:       "nonzero code without message",
			body:       `{"code":-1}`,
			wantDetail: "Failed to resolve video",
		},
		{
			name:       "success code but no data",
			body:       `{"code":0}`,
			wantDetail: "Failed to resolve video",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := clientWith(func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, tt.body), nil
			})

			_, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
			require.ErrorIs(t, err, serrors.ErrBadRequest)
			require.Equal(t, tt.wantDetail, err.Error())
		})
	}
}

func TestResolveNoDownloadURL(t *testing.T) {
	client := clientWith(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"code":0,"data":{"title":"t"}}`), nil
	})

	_, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.ErrorIs(t, err, serrors.ErrNotFound)
	require.Equal(t, "Download URL not found", err.Error())
}

func TestResolveMalformedBody(t *testing.T) {
	client := clientWith(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `<html>gateway error</html>`), nil
	})

	_, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.ErrorIs(t, err, serrors.ErrBadGateway)
}

func TestResolveAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, request.ParseForm())
		require.Equal(t, "https://www.tiktok.com/@u/video/1", request.PostForm.Get("url"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"code":0,"data":{"title":"hello","hdplay":"https://cdn/hd.mp4"}}`))
	}))
	defer server.Close()

	client := tikwm.New(server.Client(), tikwm.WithBaseURL(server.URL))

	media, err := client.Resolve(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)
	require.Equal(t, "hello", media.Title)
	require.Equal(t, "https://cdn/hd.mp4", media.DownloadURL)
}
