// Package tikwm resolves TikTok video URLs through the tikwm.com API.
package tikwm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resolver/pkg/domain"
	"resolver/pkg/mediaresolver"
	"resolver/pkg/serrors"
)

// BaseURL is the tikwm resolution endpoint.
const BaseURL = "https://www.tikwm.com/api/"

// requestTimeout bounds a single upstream call.
const requestTimeout = 20 * time.Second

// The upstream rejects requests without browser-looking headers.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	referer = "https://www.tikwm.com/"
	origin  = "https://www.tikwm.com"
)

// defaultTitle is used when the upstream returns an empty title.
const defaultTitle = "TikTok Video"

// Client resolves TikTok URLs via tikwm.com. It implements
// mediaresolver.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a tikwm client. A nil httpClient falls back to
// http.DefaultClient.
func New(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	client := &Client{httpClient: httpClient, baseURL: BaseURL}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

// apiResponse is the tikwm envelope. Code 0 means success.
type apiResponse struct {
	Code int      `json:"code"`
	Msg  string   `json:"msg"`
	Data *apiData `json:"data"`
}

type apiData struct {
	Title       string  `json:"title"`
	Cover       string  `json:"cover"`
	OriginCover string  `json:"origin_cover"`
	Play        string  `json:"play"`
	Hdplay      string  `json:"hdplay"`
	Duration    float64 `json:"duration"`
	Author      any     `json:"author"`
	MusicInfo   struct {
		Cover string `json:"cover"`
	} `json:"music_info"`
}

// Resolve looks up the given TikTok URL on tikwm.com and normalizes the
// answer. The HD stream URL is preferred over the standard one.
func (c *Client) Resolve(ctx context.Context, URL string) (*domain.Media, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	form := url.Values{}
	form.Set("url", URL)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not build upstream request")
	}

	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Referer", referer)
	request.Header.Set("Origin", origin)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadGateway, err, "Resolver network error")
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return nil, &mediaresolver.UpstreamStatusError{
			Code: response.StatusCode,
			Msg:  "Resolver error",
		}
	}

	var envelope apiResponse
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadGateway, err, "Resolver network error")
	}

	if envelope.Code != 0 || envelope.Data == nil {
		msg := envelope.Msg
		if msg == "" {
			msg = "Failed to resolve video"
		}

		return nil, serrors.With(serrors.ErrBadRequest, "%s", msg)
	}

	data := envelope.Data

	downloadURL := data.Hdplay
	if downloadURL == "" {
		downloadURL = data.Play
	}
	if downloadURL == "" {
		return nil, serrors.With(serrors.ErrNotFound, "Download URL not found")
	}

	title := data.Title
	if title == "" {
		title = defaultTitle
	}

	cover := data.Cover
	if cover == "" {
		cover = data.OriginCover
	}
	if cover == "" {
		cover = data.MusicInfo.Cover
	}

	return &domain.Media{
		Title:       title,
		Cover:       cover,
		DownloadURL: downloadURL,
		Duration:    data.Duration,
		Author:      data.Author,
	}, nil
}
