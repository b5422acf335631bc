package fs

import "path/filepath"

// PathResolver turns user-supplied paths into stable absolute forms.
type PathResolver interface {
	// CanonicalPath returns the absolute path with all symlinks resolved.
	// The path must exist.
	CanonicalPath(path string) (string, error)
	// Abs returns the absolute form of path.
	Abs(path string) (string, error)
}

// StandardPathResolver resolves paths through path/filepath.
type StandardPathResolver struct{}

// NewPathResolver creates a StandardPathResolver.
func NewPathResolver() *StandardPathResolver {
	return &StandardPathResolver{}
}

// CanonicalPath returns the absolute path with all symlinks resolved.
func (r *StandardPathResolver) CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Abs returns the absolute form of path.
func (r *StandardPathResolver) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

var defaultResolver = NewPathResolver()

// CanonicalPath resolves path through the package's default resolver.
func CanonicalPath(path string) (string, error) {
	return defaultResolver.CanonicalPath(path)
}

// Abs resolves path through the package's default resolver.
func Abs(path string) (string, error) {
	return defaultResolver.Abs(path)
}
