// Package validator provides JSON Schema validation for cross-checking
// Redfish payloads against the DMTF-published JSON Schema rendering of the
// data model, alongside the primary CSDL catalog.
package validator

// Draft represents a JSON Schema draft version.
type Draft string

const (
	// Draft4 is JSON Schema Draft 4, used by early Redfish schema packs.
	Draft4 Draft = "http://json-schema.org/draft-04/schema#"
	// Draft6 is JSON Schema Draft 6.
	Draft6 Draft = "http://json-schema.org/draft-06/schema#"
	// Draft7 is JSON Schema Draft 7.
	Draft7 Draft = "http://json-schema.org/draft-07/schema#"
	// Draft2019_09 is JSON Schema Draft 2019-09.
	Draft2019_09 Draft = "https://json-schema.org/draft/2019-09/schema"
	// Draft2020_12 is JSON Schema Draft 2020-12, used by current packs.
	Draft2020_12 Draft = "https://json-schema.org/draft/2020-12/schema"
)

// A JSONDocument is any parsed JSON value, as produced by json.Unmarshal or
// jsonschema.UnmarshalJSON.
type JSONDocument any

// A JSONSchema is a parsed JSON document holding a JSON Schema. Compiling it
// is what surfaces schema errors; registration alone does not.
type JSONSchema JSONDocument

// Validator checks JSON documents against one compiled schema.
type Validator interface {
	// Validate returns nil when v conforms to the schema.
	Validate(v JSONDocument) error
}

// Compiler compiles registered JSON Schemas into Validators. The Redfish
// schema files reference each other heavily via $ref, so every file that
// compilation may need to reach must be registered before Compile runs.
type Compiler interface {
	// AddSchema registers a JSONSchema under an id. A schema referenced by
	// another must be registered before the referrer compiles.
	AddSchema(id string, data JSONSchema) error

	// Compile builds a Validator from the schema registered under id.
	Compile(id string) (Validator, error)

	// SupportedSchemaVersions lists the drafts the compiler accepts.
	SupportedSchemaVersions() []Draft

	// Clear drops every registered schema.
	Clear()
}
