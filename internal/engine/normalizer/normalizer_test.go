package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/engine/normalizer"
)

const petstoreSwagger = `{
  "swagger": "2.0",
  "info": {"title": "Petstore", "version": "1.2.3", "description": "pets"},
  "tags": [{"name": "pets"}],
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "tags": ["pets"],
        "parameters": [
          {"name": "limit", "in": "query", "type": "integer"}
        ],
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "ok", "schema": {"$ref": "#/definitions/PetList"}}
        }
      },
      "post": {
        "operationId": "createPet",
        "tags": ["pets", "write"],
        "parameters": [
          {"name": "pet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Pet"}}
        ],
        "responses": {
          "201": {"description": "created"}
        }
      }
    },
    "/pets/{petId}": {
      "get": {
        "operationId": "getPet",
        "parameters": [
          {"name": "petId", "in": "path", "type": "string"}
        ],
        "responses": {
          "200": {"description": "ok", "schema": {"$ref": "#/definitions/Pet"}}
        }
      }
    }
  },
  "definitions": {
    "Pet": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "owner": {"$ref": "#/definitions/User"}
      }
    },
    "PetList": {
      "type": "array",
      "items": {"$ref": "#/definitions/Pet"}
    },
    "User": {
      "type": "object",
      "properties": {"email": {"type": "string", "format": "email"}}
    }
  }
}`

func TestNormalize_Swagger2(t *testing.T) {
	t.Parallel()

	spec, err := normalizer.Normalize([]byte(petstoreSwagger), "petstore.json")
	require.NoError(t, err)

	assert.Equal(t, domain.DialectSwagger2, spec.Metadata.Dialect)
	assert.Equal(t, "Petstore", spec.Metadata.Title)
	assert.Equal(t, "1.2.3", spec.Metadata.Version)
	assert.Equal(t, "pets", spec.Metadata.Description)
	assert.Equal(t, 3, spec.Metadata.EndpointCount)
	assert.Equal(t, 3, spec.Metadata.SchemaCount)
	assert.Equal(t, "petstore.json", spec.Source)
	assert.Len(t, spec.ContentHash, 16)

	t.Run("endpoint keys", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"GET /pets", "GET /pets/{petId}", "POST /pets"}, spec.EndpointKeys())
	})

	t.Run("body parameter becomes request body", func(t *testing.T) {
		t.Parallel()
		create := spec.Endpoints["POST /pets"]
		require.NotNil(t, create.RequestBody)
		assert.True(t, create.RequestBody.Required)
		assert.Equal(t, "Pet", create.RequestBody.SchemaRef)
		assert.Equal(t, []string{"application/json"}, create.RequestBody.ContentTypes)
		assert.Empty(t, create.Parameters)
	})

	t.Run("path parameter required by default", func(t *testing.T) {
		t.Parallel()
		get := spec.Endpoints["GET /pets/{petId}"]
		require.Len(t, get.Parameters, 1)
		assert.Equal(t, "petId", get.Parameters[0].Name)
		assert.Equal(t, domain.ParameterLocationPath, get.Parameters[0].Location)
		assert.True(t, get.Parameters[0].Required)
		assert.Equal(t, "string", get.Parameters[0].SchemaType)
	})

	t.Run("query parameter optional by default", func(t *testing.T) {
		t.Parallel()
		list := spec.Endpoints["GET /pets"]
		require.Len(t, list.Parameters, 1)
		assert.False(t, list.Parameters[0].Required)
	})

	t.Run("endpoint refs collected", func(t *testing.T) {
		t.Parallel()
		list := spec.Endpoints["GET /pets"]
		assert.Equal(t, []string{"PetList"}, list.SchemaRefs)
		resp := list.Responses["200"]
		assert.Equal(t, "PetList", resp.SchemaRef)
	})

	t.Run("schema refs include nested properties", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"User"}, spec.Schemas["Pet"].Refs)
		assert.Equal(t, []string{"Pet"}, spec.Schemas["PetList"].Refs)
		assert.Empty(t, spec.Schemas["User"].Refs)
	})

	t.Run("tags merged and sorted", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"pets", "write"}, spec.Tags)
	})
}

const ordersOpenAPI = `
openapi: 3.1.0
info:
  title: Orders
  version: 2.0.0
paths:
  /orders:
    post:
      operationId: createOrder
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Order'
      responses:
        '201':
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Order'
  /orders/{id}:
    delete:
      operationId: cancelOrder
      deprecated: true
      parameters:
        - name: id
          in: path
          schema:
            type: string
      responses:
        '204':
          description: cancelled
components:
  schemas:
    Order:
      type: object
      required: [id]
      properties:
        id:
          type: string
        status:
          type: string
          enum: [pending, shipped]
        lines:
          type: array
          items:
            $ref: '#/components/schemas/Line'
    Line:
      type: object
      properties:
        sku:
          type: string
`

func TestNormalize_OpenAPI3YAML(t *testing.T) {
	t.Parallel()

	spec, err := normalizer.Normalize([]byte(ordersOpenAPI), "orders.yaml")
	require.NoError(t, err)

	assert.Equal(t, domain.DialectOpenAPI31, spec.Metadata.Dialect)
	assert.Equal(t, []string{"DELETE /orders/{id}", "POST /orders"}, spec.EndpointKeys())

	create := spec.Endpoints["POST /orders"]
	require.NotNil(t, create.RequestBody)
	assert.Equal(t, "Order", create.RequestBody.SchemaRef)
	assert.Equal(t, []string{"application/json"}, create.RequestBody.ContentTypes)
	assert.Equal(t, "Order", create.Responses["201"].SchemaRef)

	cancel := spec.Endpoints["DELETE /orders/{id}"]
	assert.True(t, cancel.Deprecated)
	require.Len(t, cancel.Parameters, 1)
	assert.True(t, cancel.Parameters[0].Required)
	assert.Equal(t, "string", cancel.Parameters[0].SchemaType)

	order := spec.Schemas["Order"]
	assert.Equal(t, domain.SchemaKindObject, order.Shape.Kind)
	assert.Equal(t, []string{"Line"}, order.Refs)
	assert.Equal(t, []string{"pending", "shipped"}, order.Shape.Properties["status"].Enum)
	require.NotNil(t, order.Shape.Properties["lines"].Items)
	assert.Equal(t, "Line", order.Shape.Properties["lines"].Items.Ref)
}

func TestNormalize_MetadataDefaults(t *testing.T) {
	t.Parallel()

	spec, err := normalizer.Normalize([]byte(`{"openapi": "3.0.1", "info": {}, "paths": {}}`), "bare.json")
	require.NoError(t, err)
	assert.Equal(t, "Unknown API", spec.Metadata.Title)
	assert.Equal(t, "0.0.0", spec.Metadata.Version)
	assert.Equal(t, domain.DialectOpenAPI30, spec.Metadata.Dialect)
}

func TestNormalize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"malformed json", `{"swagger": `, domain.ErrInvalidJSON},
		{"malformed yaml", "openapi: [3.0", domain.ErrInvalidYAML},
		{"unsupported swagger", `{"swagger": "1.0", "info": {}}`, domain.ErrUnsupportedVersion},
		{"unsupported openapi", `{"openapi": "4.0.0", "info": {}}`, domain.ErrUnsupportedVersion},
		{"missing version field", `{"info": {"title": "x"}}`, domain.ErrMissingField},
		{"missing info", `{"openapi": "3.0.0", "paths": {}}`, domain.ErrMissingField},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := normalizer.Normalize([]byte(tc.content), "bad.json")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
