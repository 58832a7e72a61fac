package domain

// SchemaKind discriminates the closed set of schema shapes. Exactly one
// payload field group of SchemaShape is meaningful for each kind.
type SchemaKind string

const (
	SchemaKindRef     SchemaKind = "ref"
	SchemaKindOneOf   SchemaKind = "oneOf"
	SchemaKindAnyOf   SchemaKind = "anyOf"
	SchemaKindAllOf   SchemaKind = "allOf"
	SchemaKindString  SchemaKind = "string"
	SchemaKindNumber  SchemaKind = "number"
	SchemaKindInteger SchemaKind = "integer"
	SchemaKindBoolean SchemaKind = "boolean"
	SchemaKindArray   SchemaKind = "array"
	SchemaKindObject  SchemaKind = "object"
	SchemaKindUnknown SchemaKind = "unknown"
)

// SchemaShape is the tagged structural type of a schema body. It is a sum
// type: Kind selects which payload fields apply.
type SchemaShape struct {
	Kind SchemaKind `json:"kind"`

	// Ref is set for SchemaKindRef: the name of the referenced schema.
	Ref string `json:"ref,omitempty"`

	// Variants is set for SchemaKindOneOf, SchemaKindAnyOf and SchemaKindAllOf.
	Variants []SchemaShape `json:"variants,omitempty"`

	// Format qualifies SchemaKindString, SchemaKindNumber and SchemaKindInteger.
	Format string `json:"format,omitempty"`

	// Enum lists the allowed values of a SchemaKindString shape.
	Enum []string `json:"enum,omitempty"`

	// Items is set for SchemaKindArray.
	Items *SchemaShape `json:"items,omitempty"`

	// Properties and Required are set for SchemaKindObject.
	Properties map[string]SchemaShape `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

// Schema is one named schema definition of a spec.
type Schema struct {
	Name        string      `json:"name"`
	Shape       SchemaShape `json:"shape"`
	Description string      `json:"description,omitempty"`
	// Refs is the deduplicated, sorted set of schema names reachable from
	// this schema's raw body.
	Refs        []string `json:"refs"`
	ContentHash string   `json:"content_hash"`
}
