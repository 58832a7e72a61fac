package fetch

import (
	"context"
	"io"
	"net/http"

	"go.trai.ch/zerr"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/core/ports"
)

// remoteFetcher downloads spec documents over HTTP. The two clients carry
// independent timeouts: a generous one for full downloads, a short one for
// revalidation so a slow origin cannot stall a cache hit.
type remoteFetcher struct {
	getClient  *http.Client
	headClient *http.Client
}

// fetch downloads the document and captures the ETag and Last-Modified
// response headers as remote change validators.
func (r *remoteFetcher) fetch(ctx context.Context, source string) (*ports.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, http.NoBody)
	if err != nil {
		return nil, domain.WithDetail(domain.ErrConnectionFailed, "url", source)
	}

	resp, err := r.getClient.Do(req)
	if err != nil {
		connErr := domain.WithDetail(domain.ErrConnectionFailed, "url", source)
		return nil, zerr.With(connErr, "cause", err.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := domain.WithDetail(domain.ErrHTTPStatus, "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "url", source)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		readErr := domain.WithDetail(domain.ErrReadFailed, "url", source)
		return nil, zerr.With(readErr, "cause", err.Error())
	}

	return &ports.Payload{
		Content: content,
		HTTP: domain.HTTPValidators{
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		},
	}, nil
}

// revalidate issues a HEAD request and compares the returned validators to
// the stored ones, ETag first, Last-Modified second. A request that fails at
// the network layer leaves the cache trusted: the TTL gate already passed, so
// a briefly unreachable origin must not force a refetch. A response carrying
// no validator headers also leaves the cache trusted.
func (r *remoteFetcher) revalidate(ctx context.Context, source string, record *domain.CacheRecord) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, source, http.NoBody)
	if err != nil {
		return true, "revalidation request not constructible, trusting ttl"
	}

	resp, err := r.headClient.Do(req)
	if err != nil {
		return true, "revalidation unreachable, trusting ttl"
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	etag := resp.Header.Get("ETag")
	if etag != "" && record.HTTPCache.ETag != "" {
		if etag == record.HTTPCache.ETag {
			return true, "etag unchanged"
		}
		return false, "etag changed"
	}

	lastModified := resp.Header.Get("Last-Modified")
	if lastModified != "" && record.HTTPCache.LastModified != "" {
		if lastModified == record.HTTPCache.LastModified {
			return true, "last-modified unchanged"
		}
		return false, "last-modified changed"
	}

	return true, "no validators in response, trusting ttl"
}
