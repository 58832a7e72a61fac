// Package codegen renders a normalized spec's schemas into target-language
// type declarations.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oaspect/oaspect/internal/core/domain"
)

// TargetTypeScript selects the TypeScript type-declaration generator.
const TargetTypeScript = "typescript-types"

// ErrUnknownTarget is returned for a target selector no generator handles.
var ErrUnknownTarget = domain.ErrUnknownTarget

// Options narrow and shape a generation run.
type Options struct {
	// Names restricts output to the named schemas. Empty means all.
	Names []string
	// Readonly marks every rendered property readonly.
	Readonly bool
	// Indent is the indentation width in spaces. Zero means the default of
	// two.
	Indent int
}

func (o Options) indent() string {
	width := o.Indent
	if width <= 0 {
		width = 2
	}
	return strings.Repeat(" ", width)
}

// Artifact is one generated output file.
type Artifact struct {
	FileName string
	Content  string
	// TypeCount is the number of declarations rendered.
	TypeCount int
}

// Generate renders the spec's schemas for the given target.
func Generate(spec *domain.UnifiedSpec, target string, opts Options) (*Artifact, error) {
	switch target {
	case TargetTypeScript:
		return generateTypeScript(spec, opts)
	default:
		return nil, domain.WithDetail(ErrUnknownTarget, "target", target)
	}
}

func generateTypeScript(spec *domain.UnifiedSpec, opts Options) (*Artifact, error) {
	names := selectNames(spec, opts.Names)
	r := &tsRenderer{opts: opts}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("// Generated from %s (%s %s)\n",
		spec.Source, spec.Metadata.Title, spec.Metadata.Version))

	for _, name := range names {
		schema := spec.Schemas[name]
		b.WriteString("\n")
		if schema.Description != "" {
			b.WriteString("/** " + schema.Description + " */\n")
		}
		r.writeDeclaration(&b, name, schema.Shape)
	}

	return &Artifact{
		FileName:  "types.ts",
		Content:   b.String(),
		TypeCount: len(names),
	}, nil
}

// selectNames returns the sorted schema names to render, honoring the subset
// filter. Unknown names in the filter are ignored.
func selectNames(spec *domain.UnifiedSpec, filter []string) []string {
	if len(filter) == 0 {
		return spec.SchemaNames()
	}
	names := make([]string, 0, len(filter))
	for _, name := range filter {
		if _, ok := spec.Schemas[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// tsRenderer renders shapes according to the run's style options.
type tsRenderer struct {
	opts Options
}

// writeDeclaration emits one top-level declaration. Object shapes become
// interfaces; everything else becomes a type alias.
func (r *tsRenderer) writeDeclaration(b *strings.Builder, name string, shape domain.SchemaShape) {
	if shape.Kind == domain.SchemaKindObject {
		b.WriteString("export interface " + name + " ")
		r.writeObjectBody(b, shape, 0)
		b.WriteString("\n")
		return
	}
	b.WriteString("export type " + name + " = " + r.typeExpr(shape) + ";\n")
}

// typeExpr renders a shape as a TypeScript type expression.
func (r *tsRenderer) typeExpr(shape domain.SchemaShape) string {
	switch shape.Kind {
	case domain.SchemaKindRef:
		return shape.Ref
	case domain.SchemaKindOneOf, domain.SchemaKindAnyOf:
		return r.joinVariants(shape.Variants, " | ")
	case domain.SchemaKindAllOf:
		return r.joinVariants(shape.Variants, " & ")
	case domain.SchemaKindString:
		if len(shape.Enum) > 0 {
			literals := make([]string, len(shape.Enum))
			for i, v := range shape.Enum {
				literals[i] = "'" + v + "'"
			}
			return strings.Join(literals, " | ")
		}
		return "string"
	case domain.SchemaKindNumber, domain.SchemaKindInteger:
		return "number"
	case domain.SchemaKindBoolean:
		return "boolean"
	case domain.SchemaKindArray:
		if shape.Items == nil {
			return "unknown[]"
		}
		item := r.typeExpr(*shape.Items)
		if strings.ContainsAny(item, "|&{ ") {
			return "Array<" + item + ">"
		}
		return item + "[]"
	case domain.SchemaKindObject:
		var b strings.Builder
		r.writeObjectBody(&b, shape, 0)
		return b.String()
	default:
		return "unknown"
	}
}

func (r *tsRenderer) joinVariants(variants []domain.SchemaShape, sep string) string {
	if len(variants) == 0 {
		return "unknown"
	}
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = r.typeExpr(v)
	}
	return strings.Join(parts, sep)
}

// writeObjectBody emits `{ prop: Type; ... }` with properties in sorted
// order, marking non-required properties optional.
func (r *tsRenderer) writeObjectBody(b *strings.Builder, shape domain.SchemaShape, depth int) {
	if len(shape.Properties) == 0 {
		b.WriteString("{}")
		return
	}

	required := make(map[string]struct{}, len(shape.Required))
	for _, name := range shape.Required {
		required[name] = struct{}{}
	}

	props := make([]string, 0, len(shape.Properties))
	for name := range shape.Properties {
		props = append(props, name)
	}
	sort.Strings(props)

	unit := r.opts.indent()
	indent := strings.Repeat(unit, depth)
	modifier := ""
	if r.opts.Readonly {
		modifier = "readonly "
	}
	b.WriteString("{\n")
	for _, prop := range props {
		marker := "?"
		if _, ok := required[prop]; ok {
			marker = ""
		}
		b.WriteString(fmt.Sprintf("%s%s%s%s%s: %s;\n", indent, unit, modifier, prop, marker, r.typeExpr(shape.Properties[prop])))
	}
	b.WriteString(indent + "}")
}
