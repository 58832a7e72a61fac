package app

import (
	"github.com/oaspect/oaspect/internal/core/domain"
	"github.com/oaspect/oaspect/internal/engine/cache"
)

// Output formats accepted by Parse.
const (
	FormatSummary       = "summary"
	FormatEndpointsList = "endpoints-list"
	FormatSchemasList   = "schemas-list"
	FormatEndpoints     = "endpoints"
	FormatSchemas       = "schemas"
	FormatFull          = "full"
)

// DefaultLimit is the pagination page size applied when the caller does not
// set one.
const DefaultLimit = 50

// PageInfo describes the pagination window applied to a listing.
type PageInfo struct {
	Limit    int `json:"limit"`
	Offset   int `json:"offset"`
	Total    int `json:"total"`
	Returned int `json:"returned"`
}

// EndpointSummary is the listing row for one endpoint.
type EndpointSummary struct {
	Key         string            `json:"key"`
	Path        string            `json:"path"`
	Method      domain.HTTPMethod `json:"method"`
	OperationID string            `json:"operation_id,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Deprecated  bool              `json:"deprecated,omitempty"`
	SchemaRefs  []string          `json:"schema_refs,omitempty"`
}

// SchemaSummary is the listing row for one schema.
type SchemaSummary struct {
	Name        string   `json:"name"`
	Refs        []string `json:"refs,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ParseResult is what Parse hands back; which sections are populated depends
// on the requested format.
type ParseResult struct {
	Metadata   domain.SpecMetadata `json:"metadata"`
	GraphStats domain.GraphStats   `json:"graph_stats"`

	EndpointKeys []string          `json:"endpoint_keys,omitempty"`
	SchemaNames  []string          `json:"schema_names,omitempty"`
	Endpoints    []EndpointSummary `json:"endpoints,omitempty"`
	Schemas      []SchemaSummary   `json:"schemas,omitempty"`

	// Spec is the complete model, populated for the full format only.
	Spec *domain.UnifiedSpec `json:"spec,omitempty"`

	Page *PageInfo `json:"page,omitempty"`
}

// DepsResult is the outcome of a dependency query.
type DepsResult struct {
	Anchor    string            `json:"anchor"`
	Direction domain.Direction  `json:"direction"`
	Affected  []string          `json:"affected"`
	Stats     domain.GraphStats `json:"stats"`
}

// DiffResult is the outcome of comparing two sources.
type DiffResult struct {
	OldSource string           `json:"old_source"`
	NewSource string           `json:"new_source"`
	Diff      *domain.SpecDiff `json:"diff"`
}

// StatusResult is the outcome of a cache status inspection.
type StatusResult struct {
	Source string        `json:"source"`
	Cache  *cache.Status `json:"cache"`
}

// GeneratedFile is one rendered artifact.
type GeneratedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// GenerateResult is the outcome of a code generation run.
type GenerateResult struct {
	Files     []GeneratedFile `json:"files"`
	TypeCount int             `json:"type_count"`
	FileCount int             `json:"file_count"`
}
