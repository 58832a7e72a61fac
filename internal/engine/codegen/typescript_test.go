package codegen_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/engine/codegen"
	"github.com/oaspect/oaspect/internal/engine/normalizer"
)

const petsSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Pets", "version": "1.0.0"},
  "paths": {},
  "components": {"schemas": {
    "Pet": {
      "type": "object",
      "description": "A pet.",
      "required": ["id", "name"],
      "properties": {
        "id": {"type": "integer"},
        "name": {"type": "string"},
        "tag": {"type": "string"},
        "status": {"type": "string", "enum": ["available", "sold"]},
        "owner": {"$ref": "#/components/schemas/User"},
        "tags": {"type": "array", "items": {"type": "string"}}
      }
    },
    "NewPet": {
      "allOf": [
        {"$ref": "#/components/schemas/Pet"},
        {"type": "object", "properties": {"weight": {"type": "number"}}}
      ]
    },
    "PetOrUser": {
      "oneOf": [
        {"$ref": "#/components/schemas/Pet"},
        {"$ref": "#/components/schemas/User"}
      ]
    },
    "Id": {"type": "string"},
    "Pets": {"type": "array", "items": {"$ref": "#/components/schemas/Pet"}},
    "User": {
      "type": "object",
      "required": ["email"],
      "properties": {"email": {"type": "string", "format": "email"}}
    }
  }}
}`

func petsModel(t *testing.T) *domain.UnifiedSpec {
	t.Helper()
	spec, err := normalizer.Normalize([]byte(petsSpec), "pets.json")
	require.NoError(t, err)
	return spec
}

func TestGenerate_TypeScript_Golden(t *testing.T) {
	t.Parallel()

	artifact, err := codegen.Generate(petsModel(t), codegen.TargetTypeScript, codegen.Options{})
	require.NoError(t, err)

	assert.Equal(t, "types.ts", artifact.FileName)
	assert.Equal(t, 6, artifact.TypeCount)

	g := goldie.New(t)
	g.Assert(t, "typescript_pets", []byte(artifact.Content))
}

func TestGenerate_SubsetFilter(t *testing.T) {
	t.Parallel()

	artifact, err := codegen.Generate(petsModel(t), codegen.TargetTypeScript, codegen.Options{
		Names: []string{"User", "Nonexistent"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, artifact.TypeCount)
	assert.Contains(t, artifact.Content, "export interface User")
	// The header names the source document, so match on declarations.
	assert.NotContains(t, artifact.Content, "interface Pet ")
	assert.NotContains(t, artifact.Content, "type Pet ")
}

func TestGenerate_StyleOptions(t *testing.T) {
	t.Parallel()

	artifact, err := codegen.Generate(petsModel(t), codegen.TargetTypeScript, codegen.Options{
		Names:    []string{"User"},
		Readonly: true,
		Indent:   4,
	})
	require.NoError(t, err)

	assert.Contains(t, artifact.Content, "    readonly email: string;")
}

func TestGenerate_UnknownTarget(t *testing.T) {
	t.Parallel()

	_, err := codegen.Generate(petsModel(t), "cobol-copybooks", codegen.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTarget)
}
