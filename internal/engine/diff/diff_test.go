package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaspect/oaspect/internal/engine/diff"
	"github.com/oaspect/oaspect/internal/engine/normalizer"

	"github.com/oaspect/oaspect/internal/core/domain"
)

func normalize(t *testing.T, content string) *domain.UnifiedSpec {
	t.Helper()
	spec, err := normalizer.Normalize([]byte(content), "diff.json")
	require.NoError(t, err)
	return spec
}

const diffOld = `{
  "openapi": "3.0.0",
  "info": {"title": "t", "version": "1.0.0"},
  "paths": {
    "/a": {"get": {"responses": {"200": {"description": "ok"}}}},
    "/b": {"get": {"responses": {"200": {"description": "ok"}}}}
  },
  "components": {"schemas": {
    "Kept": {"type": "object"},
    "Changed": {"type": "object", "properties": {"x": {"type": "string"}}},
    "Dropped": {"type": "object"}
  }}
}`

const diffNew = `{
  "openapi": "3.0.0",
  "info": {"title": "t", "version": "2.0.0"},
  "paths": {
    "/a": {"get": {"responses": {"200": {"description": "ok"}}}},
    "/b": {"get": {"responses": {"200": {"description": "changed"}}}},
    "/c": {"post": {"responses": {"201": {"description": "created"}}}}
  },
  "components": {"schemas": {
    "Kept": {"type": "object"},
    "Changed": {"type": "object", "properties": {"x": {"type": "integer"}}},
    "Added": {"type": "object"}
  }}
}`

func TestCompare(t *testing.T) {
	t.Parallel()

	d := diff.Compare(normalize(t, diffOld), normalize(t, diffNew))

	assert.Equal(t, "1.0.0", d.OldVersion)
	assert.Equal(t, "2.0.0", d.NewVersion)

	assert.Equal(t, []string{"POST /c"}, d.AddedEndpoints)
	assert.Empty(t, d.RemovedEndpoints)
	assert.Equal(t, []string{"GET /b"}, d.ModifiedEndpoints)

	assert.Equal(t, []string{"Added"}, d.AddedSchemas)
	assert.Equal(t, []string{"Dropped"}, d.RemovedSchemas)
	assert.Equal(t, []string{"Changed"}, d.ModifiedSchemas)
	assert.False(t, d.Empty())
}

func TestCompare_IdenticalSpecsAreEmpty(t *testing.T) {
	t.Parallel()

	d := diff.Compare(normalize(t, diffOld), normalize(t, diffOld))
	assert.True(t, d.Empty())
}

func TestCompare_KeyOrderDoesNotRegisterAsChange(t *testing.T) {
	t.Parallel()

	reordered := `{
  "info": {"version": "1.0.0", "title": "t"},
  "components": {"schemas": {
    "Dropped": {"type": "object"},
    "Changed": {"properties": {"x": {"type": "string"}}, "type": "object"},
    "Kept": {"type": "object"}
  }},
  "paths": {
    "/b": {"get": {"responses": {"200": {"description": "ok"}}}},
    "/a": {"get": {"responses": {"200": {"description": "ok"}}}}
  },
  "openapi": "3.0.0"
}`

	d := diff.Compare(normalize(t, diffOld), normalize(t, reordered))
	assert.True(t, d.Empty())
}
