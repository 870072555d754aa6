// Package ytdlp resolves video URLs from any yt-dlp-supported site by
// invoking the yt-dlp binary in JSON-dump mode.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"resolver/pkg/domain"
	"resolver/pkg/serrors"
)

// DefaultBinary is the yt-dlp executable looked up on PATH when no explicit
// binary is configured.
const DefaultBinary = "yt-dlp"

// FormatPreference asks for the best muxed or mergeable format, falling back
// to audio-only for audio platforms.
const FormatPreference = "bestvideo+bestaudio/best[ext=mp4]/best/bestaudio"

// defaultTitle is used when the extractor reports no title.
const defaultTitle = "Video"

// Runner executes a command and returns its stdout and stderr. Injectable so
// tests can fake the binary.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()

	return outBuf.Bytes(), errBuf.Bytes(), err
}

// Client resolves URLs by shelling out to yt-dlp. It implements
// mediaresolver.Client.
type Client struct {
	binary string
	runner Runner
}

// New creates a yt-dlp client. Empty binary defaults to DefaultBinary, nil
// runner defaults to executing the real binary.
func New(binary string, runner Runner) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = execRunner
	}

	return &Client{binary: binary, runner: runner}
}

// thumbnail is a single entry of the extractor's thumbnail list.
type thumbnail struct {
	URL string `json:"url"`
}

// format is a single downloadable format reported by the extractor.
type format struct {
	URL      string `json:"url"`
	Ext      string `json:"ext"`
	Vcodec   string `json:"vcodec"`
	Acodec   string `json:"acodec"`
	FormatID string `json:"format_id"`
}

// info is the subset of yt-dlp's JSON dump the resolver uses. A playlist dump
// nests further info objects under entries.
type info struct {
	Type             string      `json:"_type"`
	Entries          []info      `json:"entries"`
	Title            string      `json:"title"`
	Thumbnail        string      `json:"thumbnail"`
	Thumbnails       []thumbnail `json:"thumbnails"`
	Duration         float64     `json:"duration"`
	Uploader         string      `json:"uploader"`
	Channel          string      `json:"channel"`
	Author           string      `json:"author"`
	ExtractorKey     string      `json:"extractor_key"`
	URL              string      `json:"url"`
	Formats          []format    `json:"formats"`
	RequestedFormats []format    `json:"requested_formats"`
}

// Resolve runs yt-dlp against the URL and normalizes its JSON dump.
func (c *Client) Resolve(ctx context.Context, URL string) (*domain.Media, error) {
	args := []string{
		"-J", "--no-warnings", "--skip-download",
		"-f", FormatPreference,
		"--", URL,
	}

	stdout, stderr, err := c.runner(ctx, c.binary, args...)
	if err != nil {
		return nil, classifyRunError(err, stderr)
	}

	var dump info
	if err := json.Unmarshal(stdout, &dump); err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse extractor output")
	}

	entry := &dump
	if dump.Type == "playlist" {
		if len(dump.Entries) == 0 {
			return nil, serrors.With(serrors.ErrNotFound, "No direct media URL found")
		}
		entry = &dump.Entries[0]
	}

	downloadURL := selectDownloadURL(entry)
	if downloadURL == "" {
		return nil, serrors.With(serrors.ErrNotFound, "No direct media URL found")
	}

	title := entry.Title
	if title == "" {
		title = defaultTitle
	}

	cover := entry.Thumbnail
	if cover == "" && len(entry.Thumbnails) > 0 {
		cover = entry.Thumbnails[0].URL
	}

	author := entry.Uploader
	if author == "" {
		author = entry.Channel
	}
	if author == "" {
		author = entry.Author
	}

	media := &domain.Media{
		Title:       title,
		Cover:       cover,
		DownloadURL: downloadURL,
		Duration:    entry.Duration,
		Source:      entry.ExtractorKey,
	}
	if author != "" {
		media.Author = author
	}

	return media, nil
}

// classifyRunError maps process failures onto semantic kinds: a missing
// binary is a local capability failure, a nonzero exit is an extractor
// rejection of the URL.
func classifyRunError(err error, stderr []byte) error {
	if errors.Is(err, exec.ErrNotFound) {
		return serrors.Wrap(serrors.ErrInternal, err, "yt-dlp is not available")
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := strings.TrimSpace(string(stderr))
		if detail == "" {
			detail = "Failed to resolve video"
		}

		return serrors.With(serrors.ErrBadRequest, "%s", detail)
	}

	return serrors.Wrap(serrors.ErrInternal, err, "could not run yt-dlp")
}
