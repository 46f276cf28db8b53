package context_analyzer

import "fmt"

// ConfigError reports a project root that cannot be analyzed at all.
// It is the only error that aborts Analyze.
type ConfigError struct {
	Root string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid project root %q: %v", e.Root, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ManifestError reports a manifest that exists but could not be used.
// Callers fall back to an empty dependency map.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// FileError reports a single source file that was skipped.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
