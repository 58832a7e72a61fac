package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/core/ports"
	"github.com/oaspect/oaspect/internal/core/ports/mocks"
	"github.com/oaspect/oaspect/internal/engine/cache"
	"github.com/oaspect/oaspect/internal/engine/normalizer"
)

const specContent = `{
  "swagger": "2.0",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/Pet"}}}
      }
    }
  },
  "definitions": {"Pet": {"type": "object", "properties": {"name": {"type": "string"}}}}
}`

const testSource = "petstore.json"

type managerMocks struct {
	fetcher *mocks.MockFetcher
	store   *mocks.MockRecordStore
	logger  *mocks.MockLogger
	tracer  *mocks.MockTracer
}

func newTestManager(t *testing.T) (*cache.Manager, managerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := managerMocks{
		fetcher: mocks.NewMockFetcher(ctrl),
		store:   mocks.NewMockRecordStore(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		tracer:  mocks.NewMockTracer(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	memo, err := normalizer.NewMemo(4)
	require.NoError(t, err)

	return cache.NewManager(m.fetcher, m.store, m.logger, m.tracer, memo), m
}

func freshPayload() *ports.Payload {
	return &ports.Payload{
		Content: []byte(specContent),
		Local:   domain.LocalValidators{MTime: "2026-08-29T10:00:00Z"},
	}
}

// validRecord builds a record that passes every cascade stage as of now.
func validRecord(t *testing.T) *domain.CacheRecord {
	t.Helper()
	spec, err := normalizer.Normalize([]byte(specContent), testSource)
	require.NoError(t, err)
	return &domain.CacheRecord{
		Version:       domain.RecordFormatVersion,
		SchemaVersion: domain.RecordSchemaVersion,
		LastFetch:     time.Now().UTC(),
		ContentHash:   spec.ContentHash,
		Source:        testSource,
		TTLSeconds:    3600,
		LocalCache:    domain.LocalValidators{MTime: "2026-08-29T10:00:00Z"},
		Spec:          spec,
	}
}

func TestResolve_ColdPathPersistsRecord(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	m.store.EXPECT().Load().Return(nil, domain.ErrCacheNotFound)
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)

	var saved *domain.CacheRecord
	m.store.EXPECT().Save(gomock.Any()).DoAndReturn(func(r *domain.CacheRecord) error {
		saved = r
		return nil
	})

	spec, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Petstore", spec.Metadata.Title)

	require.NotNil(t, saved)
	assert.Equal(t, domain.RecordFormatVersion, saved.Version)
	assert.Equal(t, domain.RecordSchemaVersion, saved.SchemaVersion)
	assert.Equal(t, testSource, saved.Source)
	assert.Equal(t, spec.ContentHash, saved.ContentHash)
	assert.Equal(t, "2026-08-29T10:00:00Z", saved.LocalCache.MTime)
	assert.Equal(t, int64(86400), saved.TTLSeconds)
	require.NotNil(t, saved.Spec)
	assert.Equal(t, spec.ContentHash, saved.Spec.ContentHash)
	assert.Equal(t, spec.Metadata.Title, saved.Meta.Title)
	assert.Equal(t, 1, saved.Meta.EndpointCount)
}

func TestResolve_CacheHitSkipsReparse(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	m.store.EXPECT().Load().Return(record, nil)
	m.fetcher.EXPECT().Revalidate(gomock.Any(), testSource, record).Return(true, "modification time unchanged")

	spec, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)

	// The embedded model is handed back directly, no re-normalization.
	assert.Same(t, record.Spec, spec)
}

func TestResolve_SchemaVersionMismatchBeatsTTL(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	record.SchemaVersion = domain.RecordSchemaVersion - 1

	m.store.EXPECT().Load().Return(record, nil)
	// Revalidate must never run: the cascade fails before freshness.
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(nil)

	spec, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
	assert.NotSame(t, record.Spec, spec)
}

func TestResolve_SourceMismatch(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	record.Source = "other.json"

	m.store.EXPECT().Load().Return(record, nil)
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(nil)

	_, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
}

func TestResolve_TTLExpiredSkipsRevalidation(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	record.LastFetch = time.Now().UTC().Add(-2 * time.Hour) // TTL is one hour

	m.store.EXPECT().Load().Return(record, nil)
	// An elapsed TTL short-circuits to invalid; no revalidation request.
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(nil)

	_, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
}

func TestResolve_TTLOverride(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	record.LastFetch = time.Now().UTC().Add(-30 * time.Minute)

	m.store.EXPECT().Load().Return(record, nil)
	// Stored TTL is an hour, but the override of ten minutes has elapsed.
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)

	var saved *domain.CacheRecord
	m.store.EXPECT().Save(gomock.Any()).DoAndReturn(func(r *domain.CacheRecord) error {
		saved = r
		return nil
	})

	_, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{TTLOverride: 10 * time.Minute})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, int64(600), saved.TTLSeconds)
}

func TestResolve_RevalidationInvalidates(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)

	m.store.EXPECT().Load().Return(record, nil)
	m.fetcher.EXPECT().Revalidate(gomock.Any(), testSource, record).Return(false, "modification time changed")
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(nil)

	_, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
}

func TestResolve_CorruptedHashIgnoresEmbeddedSpec(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	record.ContentHash = "ffffffffffffffff"

	m.store.EXPECT().Load().Return(record, nil)
	m.fetcher.EXPECT().Revalidate(gomock.Any(), testSource, record).Return(true, "unchanged")
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)

	var saved *domain.CacheRecord
	m.store.EXPECT().Save(gomock.Any()).DoAndReturn(func(r *domain.CacheRecord) error {
		saved = r
		return nil
	})

	spec, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
	assert.NotSame(t, record.Spec, spec)

	// After the refetch the record is consistent again.
	require.NotNil(t, saved)
	assert.Equal(t, spec.ContentHash, saved.ContentHash)
	assert.Equal(t, saved.ContentHash, saved.Spec.ContentHash)
}

func TestResolve_MissingEmbeddedSpecForcesFetch(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	record := validRecord(t)
	record.Spec = nil

	m.store.EXPECT().Load().Return(record, nil)
	m.fetcher.EXPECT().Revalidate(gomock.Any(), testSource, record).Return(true, "unchanged")
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(nil)

	spec, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Petstore", spec.Metadata.Title)
}

func TestResolve_SaveFailureSwallowed(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	m.store.EXPECT().Load().Return(nil, domain.ErrCacheNotFound)
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(domain.ErrCacheWriteFailed)
	m.logger.EXPECT().Warn(gomock.Any())

	spec, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Petstore", spec.Metadata.Title)
}

func TestResolve_NoCacheForcesFetch(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	// Load is never consulted.
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(freshPayload(), nil)
	m.store.EXPECT().Save(gomock.Any()).Return(nil)

	_, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{NoCache: true})
	require.NoError(t, err)
}

func TestResolve_FetchFailurePropagates(t *testing.T) {
	t.Parallel()

	mgr, m := newTestManager(t)
	m.store.EXPECT().Load().Return(nil, domain.ErrCacheNotFound)
	m.fetcher.EXPECT().Fetch(gomock.Any(), testSource).Return(nil, domain.ErrFileNotFound)

	_, err := mgr.Resolve(context.Background(), testSource, cache.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}
