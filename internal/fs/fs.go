// Package fs isolates filesystem path resolution and environment lookups
// behind small interfaces, keeping command wiring testable without touching
// the host environment.
package fs

import "os"

// EnvProvider reads environment variables.
type EnvProvider interface {
	// Get returns the value of the named variable, or "" when it is unset.
	Get(key string) string
}

// OSEnvProvider is the EnvProvider backed by the process environment.
type OSEnvProvider struct{}

// NewEnvProvider creates an OSEnvProvider.
func NewEnvProvider() *OSEnvProvider {
	return &OSEnvProvider{}
}

// Get returns the value of the named variable, or "" when it is unset.
func (p *OSEnvProvider) Get(key string) string {
	return os.Getenv(key)
}
