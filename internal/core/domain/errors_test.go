package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Decorating a sentinel must keep it reachable through errors.Is; matching
// on the message text alone is not enough.
func TestWithDetail_PreservesSentinelIdentity(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		domain.ErrFileNotFound,
		domain.ErrPathTraversal,
		domain.ErrUnknownAnchor,
		domain.ErrCacheCorrupted,
		domain.ErrInvalidFormat,
	}

	for _, sentinel := range sentinels {
		err := domain.WithDetail(sentinel, "source", "petstore.json")
		assert.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), sentinel.Error())
	}
}

func TestWithDetail_CarriesMetadata(t *testing.T) {
	t.Parallel()

	err := domain.WithDetail(domain.ErrHTTPStatus, "status_code", 503)

	var metadated interface{ Metadata() map[string]any }
	require.ErrorAs(t, err, &metadated)
	assert.Equal(t, 503, metadated.Metadata()["status_code"])
}

func TestWithDetail_DistinctSentinelsStayDistinct(t *testing.T) {
	t.Parallel()

	err := domain.WithDetail(domain.ErrFileNotFound, "path", "x.json")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.NotErrorIs(t, err, domain.ErrPermissionDenied)
}
