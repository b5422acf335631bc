package validator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaBaseURL is the canonical base under which DMTF publishes the Redfish
// JSON Schema files. Pack registers every local file under this base so
// cross-file $ref targets resolve without network access.
const SchemaBaseURL = "http://redfish.dmtf.org/schemas/v1/"

// PackSuffix is the file suffix JSON Schema pack files carry.
const PackSuffix = ".json"

// Pack is a local directory of Redfish JSON Schema files, registered up
// front and compiled on demand. Compiled validators are cached per file.
type Pack struct {
	dir      string
	compiler Compiler

	mu         sync.Mutex
	files      map[string]bool
	validators map[string]Validator
}

// LoadPack reads every .json schema file in dir and registers it with the
// compiler under its canonical DMTF URL.
func LoadPack(dir string, c Compiler) (*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PackLoadError{Dir: dir, Wrapped: err}
	}

	p := &Pack{
		dir:        dir,
		compiler:   c,
		files:      make(map[string]bool),
		validators: make(map[string]Validator),
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, PackSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, &PackLoadError{Dir: dir, File: name, Wrapped: err}
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, &PackLoadError{Dir: dir, File: name, Wrapped: err}
		}
		if err := c.AddSchema(SchemaBaseURL+name, doc); err != nil {
			return nil, &PackLoadError{Dir: dir, File: name, Wrapped: err}
		}
		p.files[name] = true
	}

	return p, nil
}

// Dir returns the directory the pack was loaded from.
func (p *Pack) Dir() string {
	return p.dir
}

// Size returns the number of schema files registered.
func (p *Pack) Size() int {
	return len(p.files)
}

// Has reports whether the pack carries the given schema file.
func (p *Pack) Has(file string) bool {
	return p.files[file]
}

// ValidatorFor compiles and returns the validator for the first candidate
// schema file the pack carries. Callers pass candidates best-first, e.g. the
// exact versioned file ahead of the unversioned base file. Compiled
// validators are cached.
func (p *Pack) ValidatorFor(candidates ...string) (Validator, string, error) {
	for _, file := range candidates {
		if !p.files[file] {
			continue
		}

		p.mu.Lock()
		v, ok := p.validators[file]
		p.mu.Unlock()
		if ok {
			return v, file, nil
		}

		v, err := p.compiler.Compile(SchemaBaseURL + file)
		if err != nil {
			return nil, "", err
		}

		p.mu.Lock()
		p.validators[file] = v
		p.mu.Unlock()

		return v, file, nil
	}

	return nil, "", &NoSchemaForTypeError{Candidates: candidates}
}
