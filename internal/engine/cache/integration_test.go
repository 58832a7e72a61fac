package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oaspect/oaspect/internal/adapters/fetch"
	"github.com/oaspect/oaspect/internal/adapters/recordstore"
	"github.com/oaspect/oaspect/internal/core/ports"
	"github.com/oaspect/oaspect/internal/core/ports/mocks"
	"github.com/oaspect/oaspect/internal/engine/cache"
	"github.com/oaspect/oaspect/internal/engine/normalizer"
)

// TestResolve_LocalFileEndToEnd resolves a real file through the real fetcher
// and store twice. The second resolution must reuse the persisted model
// without re-normalizing.
func TestResolve_LocalFileEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "petstore.json")
	require.NoError(t, os.WriteFile(source, []byte(specContent), 0o644))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	memo, err := normalizer.NewMemo(4)
	require.NoError(t, err)

	store := recordstore.New(dir)
	mgr := cache.NewManager(fetch.New(), store, log, tracer, memo)

	first, err := mgr.Resolve(context.Background(), source, cache.ResolveOptions{})
	require.NoError(t, err)

	// The persisted record embeds the model with a matching hash.
	record, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, record.Spec)
	assert.Equal(t, first.ContentHash, record.ContentHash)

	second, err := mgr.Resolve(context.Background(), source, cache.ResolveOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first.EndpointKeys(), second.EndpointKeys())
	assert.Equal(t, first.SchemaNames(), second.SchemaNames())
}
