// Package mediaresolver defines the resolver abstraction shared by all
// upstream adapters. An adapter takes a public video URL and returns the
// normalized metadata for it, including a direct download URL.
package mediaresolver

import (
	"context"
	"fmt"

	"resolver/pkg/domain"
)

//go:generate mockgen -destination=mock/mockmediaresolver.go -package=mockmediaresolver . Client

// Client resolves a public video URL into normalized media metadata.
type Client interface {
	// Resolve returns the metadata for the given URL. Failures carry a
	// serrors kind; upstream HTTP rejections carry an UpstreamStatusError
	// so the API layer can echo the upstream status.
	Resolve(ctx context.Context, URL string) (*domain.Media, error)
}

// UpstreamStatusError reports that an upstream resolver answered with a
// non-success HTTP status that should be propagated to the client verbatim.
type UpstreamStatusError struct {
	// Code is the upstream HTTP status code.
	Code int
	// Msg is the client-facing detail message.
	Msg string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Msg)
}
