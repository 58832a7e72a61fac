// Package ports defines the interfaces between the engine layer and the
// adapters that perform I/O.
package ports

import (
	"context"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Payload is the raw content of a source together with the change-detection
// validators observed at fetch time.
type Payload struct {
	Content []byte
	HTTP    domain.HTTPValidators
	Local   domain.LocalValidators
}

// Fetcher retrieves raw document bytes from a source (URL or file path) and
// answers revalidation checks against a cached record.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch retrieves the source's content and current validators.
	Fetch(ctx context.Context, source string) (*Payload, error)

	// Revalidate reports whether the source still matches the record's
	// stored validators. The reason explains an invalid verdict and is used
	// for logging and tests. Revalidate is only consulted after the record
	// has passed the TTL gate; a remote check that fails at the network
	// layer therefore reports valid (fail open).
	Revalidate(ctx context.Context, source string, record *domain.CacheRecord) (bool, string)
}
