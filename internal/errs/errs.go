// Package errs classifies two error kinds: a usage error (bad input,
// reported on the diagnostic channel with exit code 1) and a
// programmer-error Fault (an invariant violation, which is always a bug
// and is never expected to be reachable from well-formed input).
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the two error classes.
type Kind string

const (
	// Usage covers malformed or semantically invalid input: duplicate
	// values, non-integer tokens, a missing argument.
	Usage Kind = "usage"
)

// UsageError is returned (never panicked) by the input-parsing layer.
// NewUsage and WrapUsage wrap it with github.com/pkg/errors' WithStack so
// %+v printing includes a stack trace during development, and Error() renders the
// one-line diagnostic the CLI writes to stderr before exiting 1.
type UsageError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *UsageError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *UsageError) Unwrap() error { return e.cause }

// NewUsage builds a usage error with no underlying cause.
func NewUsage(message string) error {
	return errors.WithStack(&UsageError{Kind: Usage, Message: message})
}

// WrapUsage builds a usage error around an underlying parse error.
func WrapUsage(message string, cause error) error {
	return errors.WithStack(&UsageError{Kind: Usage, Message: message, cause: cause})
}

// Fault is a programmer-error assertion failure: an op applied with its
// precondition violated, a size mismatch between the two stacks, an
// out-of-range bifurcation index. These are invariants the core enforces
// and must never be reachable via well-formed input, so they panic rather
// than return an error — the condition is always unrecoverable, not
// something a caller should be expected to handle.
type Fault struct {
	Message string
}

func (f *Fault) Error() string { return "pushopt: invariant violated: " + f.Message }

// Assert panics with a Fault if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(&Fault{Message: fmt.Sprintf(format, args...)})
	}
}
