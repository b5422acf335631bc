package validator

import (
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// santhoshCompiler implements Compiler on top of santhosh-tekuri/jsonschema.
// The underlying compiler is not safe for concurrent use, so every call takes
// the mutex.
type santhoshCompiler struct {
	mu sync.Mutex
	c  *jsonschema.Compiler
}

// NewSanthoshCompiler creates a Compiler backed by santhosh-tekuri/jsonschema/v6.
func NewSanthoshCompiler() Compiler {
	return &santhoshCompiler{c: jsonschema.NewCompiler()}
}

// AddSchema registers a parsed schema document under id.
func (s *santhoshCompiler) AddSchema(id string, data JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.AddResource(id, data)
}

// Compile compiles the schema registered under id into a Validator.
func (s *santhoshCompiler) Compile(id string) (Validator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	compiled, err := s.c.Compile(id)
	if err != nil {
		return nil, err
	}
	return &santhoshValidator{schema: compiled}, nil
}

var supportedDrafts = []Draft{Draft4, Draft6, Draft7, Draft2019_09, Draft2020_12}

// SupportedSchemaVersions lists the drafts the backing library understands.
func (s *santhoshCompiler) SupportedSchemaVersions() []Draft {
	return slices.Clone(supportedDrafts)
}

// Clear drops every registered schema by swapping in a fresh compiler.
func (s *santhoshCompiler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = jsonschema.NewCompiler()
}

// santhoshValidator adapts a compiled jsonschema.Schema to Validator.
type santhoshValidator struct {
	schema *jsonschema.Schema
}

func (sv *santhoshValidator) Validate(doc JSONDocument) error {
	return sv.schema.Validate(doc)
}
