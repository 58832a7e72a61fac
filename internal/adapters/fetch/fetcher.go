// Package fetch implements the source fetcher for local files and remote
// URLs. The dispatcher picks the backend from the source string itself, so
// callers never branch on source kind.
package fetch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/core/ports"
)

const (
	// fetchTimeout bounds a full document download.
	fetchTimeout = 30 * time.Second
	// revalidateTimeout bounds a lightweight HEAD revalidation.
	revalidateTimeout = 10 * time.Second
)

// Fetcher dispatches between the local-file and remote-URL backends based on
// the source prefix.
type Fetcher struct {
	local  *localFetcher
	remote *remoteFetcher
}

// New creates a Fetcher with pooled HTTP clients using the default timeouts.
func New() *Fetcher {
	return NewWithClients(
		&http.Client{Timeout: fetchTimeout},
		&http.Client{Timeout: revalidateTimeout},
	)
}

// NewWithClients creates a Fetcher with caller-supplied HTTP clients. Used by
// tests to inject transports.
func NewWithClients(getClient, headClient *http.Client) *Fetcher {
	return &Fetcher{
		local:  &localFetcher{},
		remote: &remoteFetcher{getClient: getClient, headClient: headClient},
	}
}

// Fetch retrieves the raw bytes of a source along with the change validators
// current at fetch time.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*ports.Payload, error) {
	if isRemote(source) {
		return f.remote.fetch(ctx, source)
	}
	return f.local.fetch(source)
}

// Revalidate checks whether a cached record still matches the source. It is
// only meaningful while the record's TTL has not elapsed; the caller gates on
// that first.
func (f *Fetcher) Revalidate(ctx context.Context, source string, record *domain.CacheRecord) (bool, string) {
	if isRemote(source) {
		return f.remote.revalidate(ctx, source, record)
	}
	return f.local.revalidate(source, record)
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
