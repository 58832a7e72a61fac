package normalizer

import (
	"github.com/oaspect/oaspect/internal/core/domain"
)

// parseOpenAPI3Operation fills the dialect-specific parts of an endpoint from
// an OpenAPI 3.x operation body. Parameters carry their schema under a nested
// schema object, and request bodies and responses declare content as a
// media-type map.
func parseOpenAPI3Operation(endpoint *domain.Endpoint, body map[string]any) {
	if params, ok := sliceField(body, "parameters"); ok {
		for _, raw := range params {
			paramBody, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			endpoint.Parameters = append(endpoint.Parameters, openAPI3Parameter(paramBody))
		}
	}

	if rbBody, ok := mapField(body, "requestBody"); ok {
		rb := &domain.RequestBody{}
		rb.Description, _ = stringField(rbBody, "description")
		rb.Required, _ = boolField(rbBody, "required")
		if content, ok := mapField(rbBody, "content"); ok {
			rb.ContentTypes, rb.SchemaRef = firstContentSchemaRef(content)
		}
		endpoint.RequestBody = rb
	}

	if responses, ok := mapField(body, "responses"); ok {
		for _, code := range sortedStatusCodes(responses) {
			respBody, ok := mapField(responses, code)
			if !ok {
				continue
			}
			resp := domain.Response{StatusCode: code}
			resp.Description, _ = stringField(respBody, "description")
			if content, ok := mapField(respBody, "content"); ok {
				resp.ContentTypes, resp.SchemaRef = firstContentSchemaRef(content)
			}
			endpoint.Responses[code] = resp
		}
	}
}

func openAPI3Parameter(body map[string]any) domain.Parameter {
	param := parseParameterCommon(body)
	if schema, ok := mapField(body, "schema"); ok {
		if ref, ok := stringField(schema, "$ref"); ok {
			param.SchemaRef = stripRefPrefix(ref)
		}
		param.SchemaType, _ = stringField(schema, "type")
	}
	return param
}
