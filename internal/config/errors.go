package config

import "fmt"

type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("rsv-config.yml missing in: %s", e.Path)
}

type InvalidYAMLError struct {
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("rsv-config.yml is not a valid yaml document: %v", e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

type MissingPropertyError struct {
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("rsv-config.yml is missing required property: %s", e.Property)
}

type InvalidSchemaSuffixError struct {
	Value string
}

func (e *InvalidSchemaSuffixError) Error() string {
	return fmt.Sprintf("rsv-config.yml property schemaSuffix must end in .xml, got '%s'", e.Value)
}

type InvalidWorkersError struct {
	Value int
}

func (e *InvalidWorkersError) Error() string {
	return fmt.Sprintf("rsv-config.yml property workers must not be negative, got %d", e.Value)
}
