// Package domain contains the core domain models for normalized API
// descriptions, their cache records, and the dependency graph built over them.
package domain

import (
	"sort"
	"strings"
)

// Dialect identifies which document schema a spec was parsed from.
type Dialect string

const (
	// DialectSwagger2 is the legacy 2.x document schema.
	DialectSwagger2 Dialect = "swagger2"
	// DialectOpenAPI30 is the modern 3.0.x document schema.
	DialectOpenAPI30 Dialect = "openapi3.0"
	// DialectOpenAPI31 is the modern 3.1.x document schema.
	DialectOpenAPI31 Dialect = "openapi3.1"
)

// HTTPMethod is one of the fixed set of HTTP methods an operation may use.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodPatch   HTTPMethod = "PATCH"
	MethodDelete  HTTPMethod = "DELETE"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodTrace   HTTPMethod = "TRACE"
)

// ParseMethod maps a path-item key to an HTTPMethod. Non-method keys such as
// "parameters" or vendor extensions report ok=false.
func ParseMethod(s string) (HTTPMethod, bool) {
	switch strings.ToLower(s) {
	case "get":
		return MethodGet, true
	case "post":
		return MethodPost, true
	case "put":
		return MethodPut, true
	case "patch":
		return MethodPatch, true
	case "delete":
		return MethodDelete, true
	case "head":
		return MethodHead, true
	case "options":
		return MethodOptions, true
	case "trace":
		return MethodTrace, true
	default:
		return "", false
	}
}

// ParameterLocation is where a parameter is carried on the wire.
type ParameterLocation string

const (
	ParameterLocationPath   ParameterLocation = "path"
	ParameterLocationQuery  ParameterLocation = "query"
	ParameterLocationHeader ParameterLocation = "header"
	ParameterLocationCookie ParameterLocation = "cookie"
)

// Parameter describes a single operation parameter.
type Parameter struct {
	Name        string            `json:"name"`
	Location    ParameterLocation `json:"location"`
	Required    bool              `json:"required"`
	Description string            `json:"description,omitempty"`
	SchemaRef   string            `json:"schema_ref,omitempty"`
	SchemaType  string            `json:"schema_type,omitempty"`
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Required     bool     `json:"required"`
	Description  string   `json:"description,omitempty"`
	ContentTypes []string `json:"content_types"`
	SchemaRef    string   `json:"schema_ref,omitempty"`
}

// Response describes one response of an operation, keyed by status code in the
// endpoint's response map.
type Response struct {
	StatusCode   string   `json:"status_code"`
	Description  string   `json:"description,omitempty"`
	ContentTypes []string `json:"content_types"`
	SchemaRef    string   `json:"schema_ref,omitempty"`
}

// Endpoint is one normalized operation.
type Endpoint struct {
	Path        string              `json:"path"`
	Method      HTTPMethod          `json:"method"`
	OperationID string              `json:"operation_id,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags"`
	Parameters  []Parameter         `json:"parameters"`
	RequestBody *RequestBody        `json:"request_body,omitempty"`
	Responses   map[string]Response `json:"responses"`
	Deprecated  bool                `json:"deprecated"`
	ContentHash string              `json:"content_hash"`
	// SchemaRefs is the deduplicated, sorted set of schema names the
	// operation touches anywhere in its raw sub-document.
	SchemaRefs []string `json:"schema_refs"`
}

// Key returns the endpoint's identity in the spec's endpoint map.
func (e *Endpoint) Key() string {
	return string(e.Method) + " " + e.Path
}

// SpecMetadata is the summary header of a normalized spec.
type SpecMetadata struct {
	Title         string  `json:"title"`
	Version       string  `json:"version"`
	Description   string  `json:"description,omitempty"`
	Dialect       Dialect `json:"dialect"`
	EndpointCount int     `json:"endpoint_count"`
	SchemaCount   int     `json:"schema_count"`
	TagCount      int     `json:"tag_count"`
}

// UnifiedSpec is the dialect-independent model of an API description
// document. It is produced once per fetch or cache hit and never mutated.
type UnifiedSpec struct {
	Metadata  SpecMetadata        `json:"metadata"`
	Endpoints map[string]Endpoint `json:"endpoints"`
	Schemas   map[string]Schema   `json:"schemas"`
	Tags      []string            `json:"tags"`
	// ContentHash is the structural digest of the entire raw document.
	ContentHash string `json:"content_hash"`
	Source      string `json:"source"`
}

// EndpointKeys returns the sorted keys of the endpoint map.
func (s *UnifiedSpec) EndpointKeys() []string {
	keys := make([]string, 0, len(s.Endpoints))
	for k := range s.Endpoints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SchemaNames returns the sorted names of the schema map.
func (s *UnifiedSpec) SchemaNames() []string {
	names := make([]string, 0, len(s.Schemas))
	for n := range s.Schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
