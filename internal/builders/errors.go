package builders

import "fmt"

// BuildError wraps any codec or state-normalization failure raised while
// building an entity or projecting its DTO. Builders add no failure modes of
// their own; the originating cause is always reachable through Unwrap.
type BuildError struct {
	Kind string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func buildErr(kind string, err error) error {
	return &BuildError{Kind: kind, Err: err}
}
