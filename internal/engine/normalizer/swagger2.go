package normalizer

import (
	"github.com/oaspect/oaspect/internal/core/domain"
)

// defaultContentTypes stands in when a legacy operation declares no consumes
// or produces list.
var defaultContentTypes = []string{"application/json"}

// parseSwagger2Operation fills the dialect-specific parts of an endpoint from
// a Swagger 2.x operation body. Body parameters are lifted into the unified
// request-body slot; consumes and produces lists supply the content types,
// falling back to application/json.
func parseSwagger2Operation(endpoint *domain.Endpoint, body map[string]any) {
	consumes := stringSliceField(body, "consumes")
	if len(consumes) == 0 {
		consumes = defaultContentTypes
	}
	produces := stringSliceField(body, "produces")
	if len(produces) == 0 {
		produces = defaultContentTypes
	}

	if params, ok := sliceField(body, "parameters"); ok {
		for _, raw := range params {
			paramBody, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if location, _ := stringField(paramBody, "in"); location == "body" {
				endpoint.RequestBody = swagger2RequestBody(paramBody, consumes)
				continue
			}
			endpoint.Parameters = append(endpoint.Parameters, swagger2Parameter(paramBody))
		}
	}

	if responses, ok := mapField(body, "responses"); ok {
		for _, code := range sortedStatusCodes(responses) {
			respBody, ok := mapField(responses, code)
			if !ok {
				continue
			}
			resp := domain.Response{
				StatusCode:   code,
				ContentTypes: produces,
			}
			resp.Description, _ = stringField(respBody, "description")
			if schema, ok := mapField(respBody, "schema"); ok {
				if ref, ok := stringField(schema, "$ref"); ok {
					resp.SchemaRef = stripRefPrefix(ref)
				}
			}
			endpoint.Responses[code] = resp
		}
	}
}

func swagger2Parameter(body map[string]any) domain.Parameter {
	param := parseParameterCommon(body)
	// Legacy parameters carry their type inline rather than under a schema.
	param.SchemaType, _ = stringField(body, "type")
	if schema, ok := mapField(body, "schema"); ok {
		if ref, ok := stringField(schema, "$ref"); ok {
			param.SchemaRef = stripRefPrefix(ref)
		}
	}
	return param
}

func swagger2RequestBody(body map[string]any, consumes []string) *domain.RequestBody {
	rb := &domain.RequestBody{ContentTypes: consumes}
	rb.Description, _ = stringField(body, "description")
	rb.Required, _ = boolField(body, "required")
	if schema, ok := mapField(body, "schema"); ok {
		if ref, ok := stringField(schema, "$ref"); ok {
			rb.SchemaRef = stripRefPrefix(ref)
		}
	}
	return rb
}
