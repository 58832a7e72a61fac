package normalizer

import (
	"sort"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// rawOperation pairs one path-and-method combination with its raw body, ready
// for independent parsing.
type rawOperation struct {
	path   string
	method domain.HTTPMethod
	body   map[string]any
}

// flattenOperations expands the paths block into one entry per recognized
// HTTP method. Path-item keys that are not methods (parameters, servers,
// vendor extensions) are skipped. The result is ordered by path then method
// so downstream slices are deterministic.
func flattenOperations(paths map[string]any) []rawOperation {
	ops := make([]rawOperation, 0, len(paths))
	for _, path := range sortedKeys(paths) {
		item, ok := mapField(paths, path)
		if !ok {
			continue
		}
		for _, key := range sortedKeys(item) {
			method, ok := domain.ParseMethod(key)
			if !ok {
				continue
			}
			body, ok := mapField(item, key)
			if !ok {
				continue
			}
			ops = append(ops, rawOperation{path: path, method: method, body: body})
		}
	}
	return ops
}

// parseOperation converts one raw operation into a normalized endpoint. The
// dialect decides how parameters, request bodies, and response content are
// read; everything else is shared. The endpoint's refs and content hash come
// from a single traversal of the raw body.
func parseOperation(dialect domain.Dialect, op rawOperation) domain.Endpoint {
	endpoint := domain.Endpoint{
		Path:      op.path,
		Method:    op.method,
		Tags:      stringSliceField(op.body, "tags"),
		Responses: make(map[string]domain.Response),
	}
	endpoint.OperationID, _ = stringField(op.body, "operationId")
	endpoint.Summary, _ = stringField(op.body, "summary")
	endpoint.Description, _ = stringField(op.body, "description")
	endpoint.Deprecated, _ = boolField(op.body, "deprecated")

	if dialect == domain.DialectSwagger2 {
		parseSwagger2Operation(&endpoint, op.body)
	} else {
		parseOpenAPI3Operation(&endpoint, op.body)
	}

	endpoint.SchemaRefs, endpoint.ContentHash = refsAndHash(op.body)
	return endpoint
}

// parseParameterCommon reads the fields shared by both dialects. Path
// parameters default to required; every other location defaults to optional.
func parseParameterCommon(body map[string]any) domain.Parameter {
	param := domain.Parameter{}
	param.Name, _ = stringField(body, "name")
	if location, ok := stringField(body, "in"); ok {
		param.Location = domain.ParameterLocation(location)
	}
	param.Description, _ = stringField(body, "description")
	if required, ok := boolField(body, "required"); ok {
		param.Required = required
	} else {
		param.Required = param.Location == domain.ParameterLocationPath
	}
	return param
}

// firstContentSchemaRef scans a content block in sorted media-type order and
// returns the content types alongside the first referenced schema found.
func firstContentSchemaRef(content map[string]any) (contentTypes []string, schemaRef string) {
	contentTypes = sortedKeys(content)
	for _, mediaType := range contentTypes {
		media, ok := mapField(content, mediaType)
		if !ok {
			continue
		}
		schema, ok := mapField(media, "schema")
		if !ok {
			continue
		}
		if ref, ok := stringField(schema, "$ref"); ok {
			return contentTypes, stripRefPrefix(ref)
		}
	}
	return contentTypes, ""
}

func sortedStatusCodes(responses map[string]any) []string {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
