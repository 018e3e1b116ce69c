// Package algorithm turns analyst-supplied formulas or atomic files
// into a topologically sorted, dependency-verified Algorithm: formula
// lowering and the algorithm builder.
package algorithm

import (
	"fmt"
	"strings"
)

// LoadError is a fatal error raised while constructing an Algorithm:
// an empty atomic list, a duplicate name, a cyclic dependency, or a
// parse failure. Loading never yields a partial Algorithm on error.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("algorithm load failed: %s", e.Reason)
}

func newLoadError(format string, args ...interface{}) *LoadError {
	return &LoadError{Reason: fmt.Sprintf(format, args...)}
}

// InputError is raised when a company's supplied Input is missing one
// or more required-input variables.
type InputError struct {
	Missing []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("missing input variables: [%s]", strings.Join(e.Missing, ", "))
}
