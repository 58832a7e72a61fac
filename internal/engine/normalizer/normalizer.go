// Package normalizer converts raw Swagger 2.x and OpenAPI 3.x documents into
// the dialect-neutral spec model. Both dialects come out the same shape, so
// nothing downstream needs to know which one a document was written in.
package normalizer

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// Normalize parses raw spec content and produces the unified model. The
// source string is carried through verbatim for provenance. Operations and
// schemas are parsed concurrently, each into its own pre-sized slot, and the
// whole-document hash is computed alongside them.
func Normalize(content []byte, source string) (*domain.UnifiedSpec, error) {
	root, err := decodeDocument(content)
	if err != nil {
		return nil, err
	}

	dialect, err := detectDialect(root)
	if err != nil {
		return nil, err
	}

	meta, err := extractMetadata(root, dialect)
	if err != nil {
		return nil, err
	}

	spec := &domain.UnifiedSpec{
		Metadata: meta,
		Source:   source,
	}

	var wholeHash string
	grp := new(errgroup.Group)
	grp.SetLimit(runtime.NumCPU())
	grp.Go(func() error {
		wholeHash = hashValue(root)
		return nil
	})

	var endpoints []domain.Endpoint
	if paths, ok := mapField(root, "paths"); ok {
		endpoints = extractEndpoints(grp, paths, dialect)
	}

	var schemaNames []string
	var schemas []domain.Schema
	if defs, ok := schemaDefinitions(root, dialect); ok {
		schemaNames, schemas = extractSchemas(grp, defs)
	}

	// Workers only write disjoint slice slots, never fail.
	_ = grp.Wait()

	spec.ContentHash = wholeHash
	spec.Endpoints = make(map[string]domain.Endpoint, len(endpoints))
	for _, endpoint := range endpoints {
		spec.Endpoints[endpoint.Key()] = endpoint
	}
	spec.Schemas = make(map[string]domain.Schema, len(schemas))
	for i, schema := range schemas {
		spec.Schemas[schemaNames[i]] = schema
	}
	spec.Tags = collectTags(root, endpoints)

	spec.Metadata.EndpointCount = len(spec.Endpoints)
	spec.Metadata.SchemaCount = len(spec.Schemas)
	spec.Metadata.TagCount = len(spec.Tags)

	return spec, nil
}

// schemaDefinitions locates the dialect's schema container: definitions at
// the root for Swagger 2.x, components.schemas for OpenAPI 3.x.
func schemaDefinitions(root map[string]any, dialect domain.Dialect) (map[string]any, bool) {
	if dialect == domain.DialectSwagger2 {
		return mapField(root, "definitions")
	}
	components, ok := mapField(root, "components")
	if !ok {
		return nil, false
	}
	return mapField(components, "schemas")
}

func extractEndpoints(grp *errgroup.Group, paths map[string]any, dialect domain.Dialect) []domain.Endpoint {
	ops := flattenOperations(paths)
	endpoints := make([]domain.Endpoint, len(ops))
	for i, op := range ops {
		grp.Go(func() error {
			endpoints[i] = parseOperation(dialect, op)
			return nil
		})
	}
	return endpoints
}

func extractSchemas(grp *errgroup.Group, defs map[string]any) ([]string, []domain.Schema) {
	names := sortedKeys(defs)
	schemas := make([]domain.Schema, len(names))
	for i, name := range names {
		body := defs[name]
		grp.Go(func() error {
			schema := domain.Schema{
				Name:  name,
				Shape: resolveShape(body),
			}
			if m, ok := body.(map[string]any); ok {
				schema.Description, _ = stringField(m, "description")
			}
			schema.Refs, schema.ContentHash = refsAndHash(body)
			schemas[i] = schema
			return nil
		})
	}
	return names, schemas
}

// collectTags merges root-level tag declarations with tags referenced on
// operations, deduplicated and sorted.
func collectTags(root map[string]any, endpoints []domain.Endpoint) []string {
	seen := make(map[string]struct{})
	if declared, ok := sliceField(root, "tags"); ok {
		for _, raw := range declared {
			if tag, ok := raw.(map[string]any); ok {
				if name, ok := stringField(tag, "name"); ok {
					seen[name] = struct{}{}
				}
			}
		}
	}
	for _, endpoint := range endpoints {
		for _, tag := range endpoint.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
