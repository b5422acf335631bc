package validator

import (
	"fmt"
	"strings"
)

// PackLoadError reports a JSON Schema pack directory or file that could not
// be loaded.
type PackLoadError struct {
	Dir     string
	File    string
	Wrapped error
}

func (e *PackLoadError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("schema pack %s could not be loaded: %v", e.Dir, e.Wrapped)
	}
	return fmt.Sprintf("schema pack file %s could not be loaded: %v", e.File, e.Wrapped)
}

func (e *PackLoadError) Unwrap() error {
	return e.Wrapped
}

// NoSchemaForTypeError reports that none of the candidate schema files for a
// type are present in the pack.
type NoSchemaForTypeError struct {
	Candidates []string
}

func (e *NoSchemaForTypeError) Error() string {
	return fmt.Sprintf("no schema file in the pack matches: %s", strings.Join(e.Candidates, ", "))
}
