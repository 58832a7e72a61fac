package normalizer

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// decodeDocument parses raw spec bytes into a generic tree. Documents whose
// first non-space byte is '{' are treated as JSON, everything else as YAML.
// JSON numbers are kept as json.Number so digests see their source text.
func decodeDocument(content []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var root map[string]any
		if err := dec.Decode(&root); err != nil {
			return nil, domain.WithDetail(domain.ErrInvalidJSON, "cause", err.Error())
		}
		return root, nil
	}

	var root map[string]any
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, domain.WithDetail(domain.ErrInvalidYAML, "cause", err.Error())
	}
	normalized, ok := normalizeYAML(root).(map[string]any)
	if !ok {
		return nil, domain.WithDetail(domain.ErrInvalidYAML, "cause", "document root is not a mapping")
	}
	return normalized, nil
}

// normalizeYAML rewrites YAML-decoded trees so nested mappings always use
// string keys, matching the shape JSON decoding produces.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = normalizeYAML(child)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = normalizeYAML(child)
		}
		return out
	case []any:
		for i, elem := range v {
			v[i] = normalizeYAML(elem)
		}
		return v
	default:
		return v
	}
}

// detectDialect inspects the version markers at the document root. A swagger
// field starting with "2." selects the legacy dialect; an openapi field
// starting with "3.0" or "3.1" selects the corresponding modern dialect. A
// present but unrecognized version is an unsupported-version error, and a
// document carrying neither field is missing a required field.
func detectDialect(root map[string]any) (domain.Dialect, error) {
	if version, ok := stringField(root, "swagger"); ok {
		if strings.HasPrefix(version, "2.") {
			return domain.DialectSwagger2, nil
		}
		return "", domain.WithDetail(domain.ErrUnsupportedVersion, "swagger", version)
	}
	if version, ok := stringField(root, "openapi"); ok {
		switch {
		case strings.HasPrefix(version, "3.0"):
			return domain.DialectOpenAPI30, nil
		case strings.HasPrefix(version, "3.1"):
			return domain.DialectOpenAPI31, nil
		default:
			return "", domain.WithDetail(domain.ErrUnsupportedVersion, "openapi", version)
		}
	}
	return "", domain.WithDetail(domain.ErrMissingField, "field", "swagger|openapi")
}

// extractMetadata pulls spec identity out of the info block, applying the
// placeholder defaults for absent title and version.
func extractMetadata(root map[string]any, dialect domain.Dialect) (domain.SpecMetadata, error) {
	info, ok := mapField(root, "info")
	if !ok {
		return domain.SpecMetadata{}, domain.WithDetail(domain.ErrMissingField, "field", "info")
	}

	meta := domain.SpecMetadata{
		Title:   "Unknown API",
		Version: "0.0.0",
		Dialect: dialect,
	}
	if title, ok := stringField(info, "title"); ok {
		meta.Title = title
	}
	if version, ok := stringField(info, "version"); ok {
		meta.Version = version
	}
	if description, ok := stringField(info, "description"); ok {
		meta.Description = description
	}
	return meta, nil
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key].(string)
	return v, ok
}

func boolField(m map[string]any, key string) (bool, bool) {
	v, ok := m[key].(bool)
	return v, ok
}

func mapField(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key].(map[string]any)
	return v, ok
}

func sliceField(m map[string]any, key string) ([]any, bool) {
	v, ok := m[key].([]any)
	return v, ok
}

func stringSliceField(m map[string]any, key string) []string {
	raw, ok := sliceField(m, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, elem := range raw {
		if s, ok := elem.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
