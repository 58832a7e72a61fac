package normalizer

import (
	"github.com/oaspect/oaspect/internal/core/domain"
)

// resolveShape classifies a raw schema body into its structural shape.
// Precedence follows the document structure itself: an explicit $ref wins,
// then composition keywords, then the declared primitive type. Anything the
// classifier cannot place lands in the unknown shape rather than failing.
func resolveShape(value any) domain.SchemaShape {
	body, ok := value.(map[string]any)
	if !ok {
		return domain.SchemaShape{Kind: domain.SchemaKindUnknown}
	}

	if ref, ok := stringField(body, "$ref"); ok {
		return domain.SchemaShape{Kind: domain.SchemaKindRef, Ref: stripRefPrefix(ref)}
	}
	if variants, ok := sliceField(body, "oneOf"); ok {
		return compositeShape(domain.SchemaKindOneOf, variants)
	}
	if variants, ok := sliceField(body, "anyOf"); ok {
		return compositeShape(domain.SchemaKindAnyOf, variants)
	}
	if variants, ok := sliceField(body, "allOf"); ok {
		return compositeShape(domain.SchemaKindAllOf, variants)
	}

	typ, _ := stringField(body, "type")
	switch typ {
	case "string":
		shape := domain.SchemaShape{Kind: domain.SchemaKindString}
		shape.Format, _ = stringField(body, "format")
		shape.Enum = stringSliceField(body, "enum")
		return shape
	case "number":
		return domain.SchemaShape{Kind: domain.SchemaKindNumber}
	case "integer":
		return domain.SchemaShape{Kind: domain.SchemaKindInteger}
	case "boolean":
		return domain.SchemaShape{Kind: domain.SchemaKindBoolean}
	case "array":
		shape := domain.SchemaShape{Kind: domain.SchemaKindArray}
		if items, ok := body["items"]; ok {
			itemShape := resolveShape(items)
			shape.Items = &itemShape
		}
		return shape
	case "object":
		return objectShape(body)
	default:
		// Objects frequently omit the type keyword and declare properties
		// directly.
		if _, ok := mapField(body, "properties"); ok {
			return objectShape(body)
		}
		return domain.SchemaShape{Kind: domain.SchemaKindUnknown}
	}
}

func compositeShape(kind domain.SchemaKind, variants []any) domain.SchemaShape {
	shape := domain.SchemaShape{Kind: kind, Variants: make([]domain.SchemaShape, 0, len(variants))}
	for _, variant := range variants {
		shape.Variants = append(shape.Variants, resolveShape(variant))
	}
	return shape
}

func objectShape(body map[string]any) domain.SchemaShape {
	shape := domain.SchemaShape{Kind: domain.SchemaKindObject}
	if props, ok := mapField(body, "properties"); ok {
		shape.Properties = make(map[string]domain.SchemaShape, len(props))
		for name, prop := range props {
			shape.Properties[name] = resolveShape(prop)
		}
	}
	shape.Required = stringSliceField(body, "required")
	return shape
}
