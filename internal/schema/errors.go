package schema

import (
	"fmt"
	"sort"
	"strings"
)

// MissingSchemaError reports a namespace, document or type that could not be
// found in the catalog or through any declared reference.
type MissingSchemaError struct {
	Name string
}

func (e *MissingSchemaError) Error() string {
	return fmt.Sprintf("schema definition for %s could not be found in the catalog", e.Name)
}

// CircularReferenceError reports a cycle in a type inheritance chain.
// Cycle holds the qualified names along the chain, ending with the repeat.
type CircularReferenceError struct {
	Cycle []TypeName
}

func (e *CircularReferenceError) Error() string {
	names := make([]string, len(e.Cycle))
	for i, n := range e.Cycle {
		names[i] = string(n)
	}
	return fmt.Sprintf("circular base type chain: %s", strings.Join(names, " -> "))
}

// CatalogLoadError reports problems encountered while loading a schema
// directory. When the directory itself could not be read, Err is set and no
// catalog is returned. When individual documents failed to parse, Failures
// maps each file name to its error and the partial catalog remains usable.
type CatalogLoadError struct {
	Dir      string
	Err      error
	Failures map[string]error
}

func (e *CatalogLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog load from %s: %v", e.Dir, e.Err)
	}

	names := make([]string, 0, len(e.Failures))
	for name := range e.Failures {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %v", name, e.Failures[name])
	}
	return fmt.Sprintf("catalog load from %s: %d document(s) failed: %s",
		e.Dir, len(names), strings.Join(parts, "; "))
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// PropertyCoercionError reports a payload value that does not conform to the
// declared type of a property under strict checking.
type PropertyCoercionError struct {
	Property     string
	ExpectedKind string
	Actual       Value
}

func (e *PropertyCoercionError) Error() string {
	return fmt.Sprintf("property %s: value %s cannot be read as %s",
		e.Property, e.Actual, e.ExpectedKind)
}

// MalformedDocumentError reports a schema document that could not be parsed.
type MalformedDocumentError struct {
	Name    string
	Wrapped error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("schema document %s is not valid CSDL: %v", e.Name, e.Wrapped)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Wrapped
}

// InvalidVersionError reports a namespace segment that is not a valid
// "vX_Y_Z" version token.
type InvalidVersionError struct {
	Value string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("%s is not a valid namespace version", e.Value)
}

// UnqualifiedNameError reports a type name requested without a namespace.
type UnqualifiedNameError struct {
	Name string
}

func (e *UnqualifiedNameError) Error() string {
	return fmt.Sprintf("type name %s is not namespace-qualified", e.Name)
}

// NoTypeForPayloadError reports a payload carrying no usable @odata.type and
// no override to resolve it by.
type NoTypeForPayloadError struct {
	Path string
}

func (e *NoTypeForPayloadError) Error() string {
	return fmt.Sprintf("payload %s declares no @odata.type and no type override was given", e.Path)
}

// ValidationFailedError summarises a finished run with failed cases, so the
// CLI can exit non-zero after the report is written.
type ValidationFailedError struct {
	Failed int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %d payload(s) did not conform", e.Failed)
}
